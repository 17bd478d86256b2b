package bot

import (
	"fmt"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/example/roadmap/internal/progress"
	"github.com/example/roadmap/internal/scheduler"
)

// TelegramNotifier sends reminders to a Telegram chat
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier connects to the Bot API and checks the token
func NewTelegramNotifier(cfg *Config) (*TelegramNotifier, error) {
	return NewTelegramNotifierWithClient(cfg, &http.Client{})
}

// NewTelegramNotifierWithClient is NewTelegramNotifier with a custom HTTP client
func NewTelegramNotifierWithClient(cfg *Config, client tgbotapi.HTTPClient) (*TelegramNotifier, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("telegram token and chat id are required")
	}
	endpoint := cfg.APIEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	api, err := tgbotapi.NewBotAPIWithClient(cfg.Token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	return &TelegramNotifier{api: api, chatID: cfg.ChatID}, nil
}

// SendReminder posts the reminder text to the configured chat
func (n *TelegramNotifier) SendReminder(r scheduler.Reminder) error {
	msg := tgbotapi.NewMessage(n.chatID, FormatReminder(r))
	msg.DisableWebPagePreview = true
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// LogNotifier writes reminders to the log; used when Telegram is not configured
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) SendReminder(r scheduler.Reminder) error {
	logger := n.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("progress reminder", zap.String("text", FormatReminder(r)))
	return nil
}

// FormatReminder renders a reminder as plain text
func FormatReminder(r scheduler.Reminder) string {
	var b strings.Builder

	title := r.Title
	if title == "" {
		title = "Roadmap"
	}
	fmt.Fprintf(&b, "%s: %s done (%d/%d concepts)\n",
		title, progress.FormatPercent(r.Summary.Overall), r.Summary.CompletedCount, r.Summary.TotalCount)

	for _, p := range r.Summary.Phases {
		fmt.Fprintf(&b, "- %s: %s, %s\n", p.Title, progress.FormatPercent(p.Progress), p.Label())
	}

	if r.Remaining != nil {
		if r.Remaining.Zero() {
			b.WriteString("Target date reached\n")
		} else {
			fmt.Fprintf(&b, "Time left: %s\n", r.Remaining)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
