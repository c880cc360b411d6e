package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	coreconfig "github.com/cnbridge/leadbot/core/config"
	"github.com/cnbridge/leadbot/core/logger"
)

// Server serves the Prometheus scrape endpoint.
type Server struct {
	srv *http.Server
	ln  net.Listener
}

// Start listens on cfg.Listen and serves metrics in the background.
// It returns nil, nil when cfg.Listen is empty.
func Start(cfg coreconfig.MetricsConfig) (*Server, error) {
	if cfg.Listen == "" {
		return nil, nil
	}
	path := cfg.Path
	if path == "" {
		path = "/metrics"
	}
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.Handler())

	ln, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return nil, err
	}
	s := &Server{
		srv: &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		ln:  ln,
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(context.Background(), "metrics", "metrics.serve", slog.String("err", err.Error()))
		}
	}()
	logger.Info(context.Background(), "metrics", "metrics.listen",
		slog.String("listen", ln.Addr().String()),
		slog.String("path", path),
	)
	return s, nil
}

// Addr returns the bound listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Shutdown stops the server. It is safe on a nil Server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
