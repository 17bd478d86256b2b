package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Config represents the configuration of the Telegram notifier
type Config struct {
	// Bot token issued by BotFather
	Token string
	// Chat receiving the reminders
	ChatID int64
	// Bot API URL pattern with two %s verbs for token and method
	APIEndpoint string
}

// DefaultConfig returns the default notifier configuration
func DefaultConfig() *Config {
	return &Config{
		APIEndpoint: tgbotapi.APIEndpoint,
	}
}

// Enabled reports whether reminders can be sent to Telegram
func (c *Config) Enabled() bool {
	return c != nil && c.Token != "" && c.ChatID != 0
}
