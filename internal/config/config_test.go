package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/roadmap/internal/database"
	"github.com/example/roadmap/internal/progress"
)

var configVars = []string{
	"DB_TYPE", "DATABASE_URL", "DATA_DIR", "PROGRESS_KEY", "ROADMAP_FILE", "TARGET_DATE",
	"LOG_LEVEL", "LOG_JSON", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "REMINDER_INTERVAL",
}

// clearEnv blanks every variable Load reads; t.Setenv restores them afterwards
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, database.TypeSQLite, cfg.Database.Type)
	assert.Equal(t, "data", cfg.Database.DataDir)
	assert.Equal(t, progress.DefaultKey, cfg.ProgressKey)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 24*time.Hour, cfg.ReminderInterval)
	assert.False(t, cfg.Telegram.Enabled())
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/roadmap")
	t.Setenv("PROGRESS_KEY", "custom")
	t.Setenv("LOG_JSON", "true")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "-100123")
	t.Setenv("REMINDER_INTERVAL", "90m")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, database.TypePostgres, cfg.Database.Type)
	assert.Equal(t, "postgres://localhost/roadmap", cfg.Database.DSN)
	assert.Equal(t, "custom", cfg.ProgressKey)
	assert.True(t, cfg.LogJSON)
	assert.Equal(t, int64(-100123), cfg.Telegram.ChatID)
	assert.True(t, cfg.Telegram.Enabled())
	assert.Equal(t, 90*time.Minute, cfg.ReminderInterval)
}

func TestLoadDotEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DATA_DIR=/tmp/roadmap\nLOG_LEVEL=debug\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/roadmap", cfg.Database.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)

	// godotenv.Load sets process variables; drop them for other tests
	os.Unsetenv("DATA_DIR")
	os.Unsetenv("LOG_LEVEL")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"DB_TYPE":           "mysql",
		"LOG_JSON":          "maybe",
		"TELEGRAM_CHAT_ID":  "chat",
		"REMINDER_INTERVAL": "daily",
	}
	for k, v := range tests {
		t.Run(k, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(k, v)
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}

	t.Run("negative interval", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("REMINDER_INTERVAL", "-1h")
		_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
		assert.Error(t, err)
	})
}
