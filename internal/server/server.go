// Package server exposes the dashboard over HTTP: an HTML page, a JSON API
// and the monitoring endpoints, all on one chi router.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/paveg/salarydash/internal/dashboard"
	"github.com/paveg/salarydash/internal/dataset"
	"github.com/paveg/salarydash/internal/monitoring"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
	compressionLevel  = 5
)

// Config holds the dependencies of a Server.
type Config struct {
	Dataset   *dataset.Dataset
	Builder   *dashboard.Builder
	Collector *monitoring.MetricsCollector
	Port      int
	Logger    *slog.Logger
}

// Server serves one immutable dataset. Handlers share it without locking.
type Server struct {
	ds        *dataset.Dataset
	builder   *dashboard.Builder
	collector *monitoring.MetricsCollector
	options   dataset.Options
	port      int
	logger    *slog.Logger
}

// New creates a Server. Nil Builder, Collector or Logger get defaults.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	collector := cfg.Collector
	if collector == nil {
		collector = monitoring.NewMetricsCollector(false)
	}
	builder := cfg.Builder
	if builder == nil {
		builder = &dashboard.Builder{Collector: collector, Logger: logger}
	}
	return &Server{
		ds:        cfg.Dataset,
		builder:   builder,
		collector: collector,
		options:   dataset.OptionsOf(cfg.Dataset),
		port:      cfg.Port,
		logger:    logger,
	}
}

// Handler returns the router with every route and middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		requestLogger(s.logger),
		middleware.Recoverer,
		middleware.Compress(compressionLevel),
	)

	r.Get("/", s.handlePage)
	r.Route("/api", func(r chi.Router) {
		r.Get("/options", s.handleOptions)
		r.Get("/dashboard", s.handleDashboard)
		r.Post("/dashboard", s.handleDashboard)
		r.Get("/records", s.handleRecords)
	})
	monitoring.NewHandler(s.collector, s.ds.Len()).Routes(r)

	return r
}

// Serve starts the HTTP server and blocks until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting dashboard server", "addr", fmt.Sprintf("http://localhost:%d", s.port), "records", s.ds.Len())

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: readHeaderTimeout,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down dashboard server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
