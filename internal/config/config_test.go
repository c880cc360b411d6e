package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/cnbridge/leadbot/core/config"
	coredatabase "github.com/cnbridge/leadbot/core/database"
	"github.com/cnbridge/leadbot/internal/content"
)

const sample = `
telegram:
  token: "123:abc"
  admin_id: 42
logging:
  level: debug
database:
  driver: sqlite
  path: leads.db
bot:
  links:
    reviews: https://t.me/custom_reviews
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFillsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, int64(42), cfg.CoreConfig().Telegram.AdminID)
	assert.Equal(t, coreconfig.RunModeLongpoll, cfg.Telegram.RunMode)
	assert.Equal(t, coredatabase.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "leads.db", cfg.Database.Path)
	assert.Equal(t, "files", cfg.Bot.AssetsDir)
	assert.Equal(t, 50*time.Millisecond, cfg.Bot.BroadcastDelay())
	assert.Equal(t, "https://t.me/custom_reviews", cfg.Bot.Links.Reviews)
	assert.Equal(t, content.DefaultLinks.Course, cfg.Bot.Links.Course)
}

func TestLoadEnvOverlay(t *testing.T) {
	t.Setenv("ADMIN_ID", "77")
	t.Setenv("BROADCAST_DELAY_MS", "10")
	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)
	assert.Equal(t, int64(77), cfg.Telegram.AdminID)
	assert.Equal(t, 10*time.Millisecond, cfg.Bot.BroadcastDelay())
}

func TestLoadValidation(t *testing.T) {
	_, err := Load(writeConfig(t, "database:\n  driver: sqlite\n"))
	assert.ErrorContains(t, err, "token")

	_, err = Load(writeConfig(t, "telegram:\n  token: x\ndatabase:\n  driver: mysql\n"))
	assert.ErrorContains(t, err, "database.driver")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	var nilCfg *Config
	assert.Nil(t, nilCfg.CoreConfig())
}
