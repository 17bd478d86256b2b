package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/roadmap/internal/bot"
	"github.com/example/roadmap/internal/database"
	"github.com/example/roadmap/internal/progress"
	"github.com/example/roadmap/internal/scheduler"
)

// Config holds everything read from the environment
type Config struct {
	Database         database.Options
	ProgressKey      string
	RoadmapFile      string // empty means the embedded roadmap
	TargetDate       string // overrides the roadmap target date
	LogLevel         string
	LogJSON          bool
	Telegram         bot.Config
	ReminderInterval time.Duration
}

// Default returns the configuration used when no variables are set
func Default() *Config {
	return &Config{
		Database: database.Options{
			Type:    database.TypeSQLite,
			DataDir: "data",
		},
		ProgressKey:      progress.DefaultKey,
		LogLevel:         "info",
		Telegram:         *bot.DefaultConfig(),
		ReminderInterval: scheduler.DefaultInterval,
	}
}

// Load reads envFiles (".env" when none are given; missing files are
// ignored) and then the process environment
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("error loading %s: %w", f, err)
		}
	}

	cfg := Default()

	if v := os.Getenv("DB_TYPE"); v != "" {
		if v != database.TypeSQLite && v != database.TypePostgres {
			return nil, fmt.Errorf("DB_TYPE must be %q or %q, got %q", database.TypeSQLite, database.TypePostgres, v)
		}
		cfg.Database.Type = v
	}
	cfg.Database.DSN = os.Getenv("DATABASE_URL")
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Database.DataDir = v
	}

	if v := os.Getenv("PROGRESS_KEY"); v != "" {
		cfg.ProgressKey = v
	}
	cfg.RoadmapFile = os.Getenv("ROADMAP_FILE")
	cfg.TargetDate = os.Getenv("TARGET_DATE")

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_JSON"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_JSON %q: %w", v, err)
		}
		cfg.LogJSON = b
	}

	cfg.Telegram.Token = os.Getenv("TELEGRAM_BOT_TOKEN")
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", v, err)
		}
		cfg.Telegram.ChatID = id
	}

	if v := os.Getenv("REMINDER_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REMINDER_INTERVAL %q: %w", v, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("REMINDER_INTERVAL must be positive, got %s", d)
		}
		cfg.ReminderInterval = d
	}

	return cfg, nil
}
