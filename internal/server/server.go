// Package server exposes aggregation and the calculators over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finsight/insights/internal/aggregator"
	"finsight/insights/internal/categorizer"
	"finsight/insights/internal/factory"
	"finsight/insights/internal/logging"
	"finsight/insights/internal/report"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Defaults applied to zero Config values.
const (
	DefaultMaxUploadBytes  = 10 << 20
	DefaultShutdownTimeout = 10 * time.Second
)

// Dependencies are the services the handlers call.
type Dependencies struct {
	Logger     logging.Logger
	Parsers    *factory.Factory
	Aggregator *aggregator.Aggregator
	Generator  *report.Generator
	// Categorizer is optional; nil disables category enrichment.
	Categorizer *categorizer.Categorizer
}

// Config holds the listen address, limits and dependencies of the API.
// Zero durations and sizes select the package defaults.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	MaxUploadBytes  int64
	Dependencies    Dependencies
}

// WebAPI is the HTTP server of the aggregation and calculator API.
type WebAPI struct {
	router          *chi.Mux
	logger          logging.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

// ConfigureRouter builds the routes and middleware.
func ConfigureRouter(config Config) *chi.Mux {
	deps := withDefaults(config.Dependencies)
	maxUpload := config.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadBytes
	}
	h := newHandler(deps, maxUpload)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(RequestLogger(deps.Logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", h.Health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequestSize(maxUpload))
		r.Post("/aggregate", h.Aggregate)
		r.Get("/calculators", h.ListCalculators)
		r.Post("/calculators/{name}", h.Calculate)
	})

	return router
}

// NewWebAPI builds a WebAPI from config. Missing dependencies are replaced by
// defaults built around a discarding logger.
func NewWebAPI(config Config) *WebAPI {
	deps := withDefaults(config.Dependencies)
	config.Dependencies = deps

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}

	router := ConfigureRouter(config)
	return &WebAPI{
		router: router,
		logger: deps.Logger,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: timeout,
	}
}

// Handler returns the HTTP handler of the API.
func (w *WebAPI) Handler() http.Handler {
	return w.router
}

// Start listens on the configured address and blocks until ctx is cancelled,
// SIGINT or SIGTERM is received, or the server fails.
func (w *WebAPI) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", w.server.Addr)
	if err != nil {
		return err
	}
	return w.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (w *WebAPI) Serve(ctx context.Context, ln net.Listener) error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info("starting server", logging.F("addr", ln.Addr().String()))
		serverErrors <- w.server.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-shutdown:
	case <-ctx.Done():
	}

	w.logger.Info("shutdown initiated")

	// Give outstanding requests a deadline for completion.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
	defer cancel()

	if err := w.server.Shutdown(shutdownCtx); err != nil {
		w.logger.WithError(err).Error("graceful shutdown failed")
		return w.server.Close()
	}
	return nil
}

func withDefaults(deps Dependencies) Dependencies {
	if deps.Logger == nil {
		deps.Logger = logging.NewDiscardLogger()
	}
	if deps.Parsers == nil {
		deps.Parsers = factory.New(deps.Logger, factory.Options{})
	}
	if deps.Aggregator == nil {
		deps.Aggregator = aggregator.NewAggregator(deps.Logger, 0)
	}
	if deps.Generator == nil {
		deps.Generator = report.NewGenerator(deps.Logger, 0)
	}
	return deps
}
