package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"pos/internal/checkout"
	"pos/internal/platform/config"
	"pos/internal/platform/httpserver"
	"pos/internal/platform/logger"
	"pos/internal/platform/metrics"
	"pos/internal/platform/middleware"
	"pos/internal/session/handler"
)

const shutdownTimeout = 10 * time.Second

// main wires one checkout session behind the session API and keeps the
// server lifecycle small.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	m := metrics.New(prometheus.DefaultRegisterer)
	controller, err := checkout.NewController(cfg, log, m)
	if err != nil {
		log.Error("build session", "error", err)
		os.Exit(1)
	}

	srv := httpserver.New(cfg.Addr, newRouter(controller, log, prometheus.DefaultGatherer), cfg.HTTPTimeout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting pos server",
			"addr", cfg.Addr,
			"api_endpoint", cfg.APIEndpoint,
			"pos_no", cfg.TerminalNo,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func newRouter(s handler.Session, log *slog.Logger, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	handler.New(s, log).Register(r)
	return r
}
