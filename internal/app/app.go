// Package app assembles the lead bot from configuration and infrastructure.
package app

import (
	"context"
	"fmt"

	"github.com/cnbridge/leadbot/core/bootstrap"
	coretelegram "github.com/cnbridge/leadbot/core/telegram"
	"github.com/cnbridge/leadbot/core/telegram/router"
	"github.com/cnbridge/leadbot/core/telegram/sender"
	"github.com/cnbridge/leadbot/core/telegram/state"
	"github.com/cnbridge/leadbot/internal/assets"
	"github.com/cnbridge/leadbot/internal/bot"
	"github.com/cnbridge/leadbot/internal/broadcast"
	"github.com/cnbridge/leadbot/internal/config"
	"github.com/cnbridge/leadbot/internal/flow"
	"github.com/cnbridge/leadbot/internal/notify"
	"github.com/cnbridge/leadbot/internal/storage"
)

// App owns the bootstrapped infrastructure and builds the Telegram runtime.
type App struct {
	cfg   *config.Config
	infra *bootstrap.Result
	store *storage.Store
}

// Bootstrap brings up logging, metrics and the database, then wraps them in an App.
func Bootstrap(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config")
	}
	res, err := bootstrap.Run(bootstrap.Options{
		Config:   &cfg.Config,
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}
	return New(cfg, res), nil
}

// New wraps already created infrastructure.
func New(cfg *config.Config, infra *bootstrap.Result) *App {
	return &App{cfg: cfg, infra: infra, store: storage.New(infra.DB)}
}

// TelegramRunOptions describes the bot for the core runner.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	if err := bot.RegisterCommands(reg); err != nil {
		return coretelegram.RunOptions{}, fmt.Errorf("app: register commands: %w", err)
	}
	sessions := state.NewMemory[flow.Session]()

	return coretelegram.RunOptions{
		Config:   &a.cfg.Config,
		Registry: reg,
		DispatcherOptions: sender.Options{
			QueueSize:  256,
			Workers:    2,
			MaxRetries: 3,
		},
		Middlewares: coretelegram.DefaultMiddlewares(&a.cfg.Config, nil),
		BuildRoutes: func(rt coretelegram.Runtime) ([]coretelegram.Route, error) {
			b := a.newBot(rt, sessions)
			return router.Routes(rt.Registry, b.Telebot(rt.Registry)), nil
		},
	}, nil
}

func (a *App) newBot(rt coretelegram.Runtime, sessions state.Store[flow.Session]) *bot.Bot {
	return bot.New(bot.Deps{
		Store:       a.store,
		Sessions:    sessions,
		Notifier:    notify.New(rt.Bot, rt.Dispatcher, a.store, a.cfg.Telegram.AdminID),
		Broadcaster: broadcast.New(rt.Bot, a.store, broadcast.Options{Delay: a.cfg.Bot.BroadcastDelay()}),
		Assets:      assets.Dir{Root: a.cfg.Bot.AssetsDir},
		Links:       a.cfg.Bot.Links,
		AdminID:     a.cfg.Telegram.AdminID,
	})
}

// Close releases the infrastructure.
func (a *App) Close(ctx context.Context) error {
	return a.infra.Close(ctx)
}
