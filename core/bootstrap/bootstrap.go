// Package bootstrap brings up the process-wide infrastructure in order:
// logger, metrics endpoint, database connection and schema migrations.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	coreconfig "github.com/cnbridge/leadbot/core/config"
	coredatabase "github.com/cnbridge/leadbot/core/database"
	"github.com/cnbridge/leadbot/core/logger"
	"github.com/cnbridge/leadbot/core/metrics"
)

// Options override individual bootstrap steps. Nil funcs use the core defaults.
type Options struct {
	Config   *coreconfig.Config
	Database coredatabase.Config

	LoggerInit   func(*coreconfig.Config) error
	MetricsStart func(coreconfig.MetricsConfig) (*metrics.Server, error)
	Connect      func(coredatabase.Config) (*sqlx.DB, error)
	Migrate      func(coredatabase.Config) error
}

// Result holds the infrastructure created by Run.
type Result struct {
	DB      *sqlx.DB
	Metrics *metrics.Server
}

// Close releases everything Run opened.
func (r *Result) Close(ctx context.Context) error {
	if r == nil {
		return nil
	}
	err := r.Metrics.Shutdown(ctx)
	if r.DB != nil {
		if cerr := r.DB.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Run initializes the logger, starts metrics, connects to the database and applies migrations.
func Run(opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	metricsStart := opts.MetricsStart
	if metricsStart == nil {
		metricsStart = metrics.Start
	}
	srv, err := metricsStart(opts.Config.Metrics)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: metrics endpoint failed: %w", err)
	}
	res := &Result{Metrics: srv}

	migrate := opts.Migrate
	if migrate == nil {
		migrate = coredatabase.RunMigrations
	}
	if err := migrate(opts.Database); err != nil {
		_ = res.Close(context.Background())
		return nil, fmt.Errorf("bootstrap: migrations failed: %w", err)
	}

	connect := opts.Connect
	if connect == nil {
		connect = coredatabase.Connect
	}
	if res.DB, err = connect(opts.Database); err != nil {
		_ = res.Close(context.Background())
		return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
	}
	return res, nil
}
