// Package config loads the leadbot configuration: the core sections plus the
// database and bot specific settings.
package config

import (
	"fmt"
	"time"

	coreconfig "github.com/cnbridge/leadbot/core/config"
	coredatabase "github.com/cnbridge/leadbot/core/database"
	"github.com/cnbridge/leadbot/internal/content"
)

// BotConfig holds settings of the lead bot itself.
type BotConfig struct {
	AssetsDir        string        `yaml:"assets_dir" envconfig:"ASSETS_DIR"`
	BroadcastDelayMS int           `yaml:"broadcast_delay_ms" envconfig:"BROADCAST_DELAY_MS"`
	Links            content.Links `yaml:"links"`
}

// BroadcastDelay returns the pause between broadcast deliveries.
func (b BotConfig) BroadcastDelay() time.Duration {
	return time.Duration(b.BroadcastDelayMS) * time.Millisecond
}

// Config is the full configuration file.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Database coredatabase.Config `yaml:"database"`
	Bot      BotConfig           `yaml:"bot"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	if c == nil {
		return nil
	}
	return &c.Config
}

// Load reads path, overlays the environment and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := coreconfig.LoadInto(path, &cfg); err != nil {
		return nil, err
	}
	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates every section and fills defaults.
func Normalize(cfg *Config) error {
	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return err
	}
	if err := coredatabase.Normalize(&cfg.Database); err != nil {
		return err
	}
	if cfg.Bot.AssetsDir == "" {
		cfg.Bot.AssetsDir = "files"
	}
	if cfg.Bot.BroadcastDelayMS < 0 {
		return fmt.Errorf("bot.broadcast_delay_ms must be >= 0")
	}
	if cfg.Bot.BroadcastDelayMS == 0 {
		cfg.Bot.BroadcastDelayMS = 50
	}
	cfg.Bot.Links = cfg.Bot.Links.WithDefaults()
	return nil
}
