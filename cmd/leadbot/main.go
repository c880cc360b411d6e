// Command leadbot runs the logistics lead bot.
package main

import (
	"errors"
	"log"

	"github.com/cnbridge/leadbot/core/cmd"
	"github.com/cnbridge/leadbot/internal/app"
	"github.com/cnbridge/leadbot/internal/config"
)

func main() {
	err := cmd.Run(cmd.Options{
		ConfigEnvVar:      "LEADBOT_CONFIG",
		DefaultConfigPath: "configs/config.yaml",
		LoadConfig: func(path string) (cmd.ConfigCarrier, error) {
			cfg, err := config.Load(path)
			if err != nil {
				return nil, err
			}
			return cfg, nil
		},
		Bootstrap: func(c cmd.ConfigCarrier) (cmd.TelegramApp, error) {
			cfg, ok := c.(*config.Config)
			if !ok {
				return nil, errors.New("leadbot: unexpected config type")
			}
			a, err := app.Bootstrap(cfg)
			if err != nil {
				return nil, err
			}
			return a, nil
		},
	})
	if err != nil {
		log.Fatal(err)
	}
}
