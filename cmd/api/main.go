// Package main runs the Thursday Pints HTTP API. It only wires
// dependencies; behaviour lives under internal/.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pkordes/thursday-pints/backend/internal/config"
	"github.com/pkordes/thursday-pints/backend/internal/handler"
	"github.com/pkordes/thursday-pints/backend/internal/middleware"
	"github.com/pkordes/thursday-pints/backend/internal/repo"
	"github.com/pkordes/thursday-pints/backend/internal/service"
	"github.com/pkordes/thursday-pints/backend/internal/source"
)

const shutdownGrace = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// inputs is what the services read from and, optionally, write to.
type inputs struct {
	visits    source.VisitSource
	directory source.DirectorySource
	writer    repo.VisitLog
	close     func()
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	in, err := openInputs(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer in.close()

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     newRouter(cfg, logger, in),
		ReadTimeout: 10 * time.Second,
		// A load may wait on two fetches back to back.
		WriteTimeout: 2*cfg.FetchTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// openInputs prefers Postgres when DATABASE_URL is set. Otherwise the JSON
// resources are read on every request and POST /visits is only available
// when VISITS_FILE names a writable log.
func openInputs(ctx context.Context, cfg config.Config, logger *slog.Logger) (inputs, error) {
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return inputs{}, fmt.Errorf("database pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return inputs{}, fmt.Errorf("database ping: %w", err)
		}
		logger.Info("database connection established")

		visits := repo.NewVisitRepo(pool)
		return inputs{
			visits:    visits,
			directory: repo.NewBreweryRepo(pool),
			writer:    visits,
			close:     pool.Close,
		}, nil
	}

	client := &http.Client{Timeout: cfg.FetchTimeout}
	in := inputs{
		visits: source.NewVisitJSON(cfg.VisitsSource, client),
		close:  func() {},
	}
	if cfg.BreweriesSource != "" {
		in.directory = source.NewDirectoryJSON(cfg.BreweriesSource, client)
	}
	if cfg.VisitsFile != "" {
		in.writer = repo.NewFileVisitLog(cfg.VisitsFile, cfg.VisitsMirrors...)
	}
	logger.Info("using JSON sources",
		"visits", cfg.VisitsSource,
		"breweries", cfg.BreweriesSource,
		"writable", in.writer != nil,
	)
	return in, nil
}

func newRouter(cfg config.Config, logger *slog.Logger, in inputs) http.Handler {
	dashboard := service.NewDashboardService(in.visits, in.directory, logger)

	var recorder handler.VisitServicer
	if in.writer != nil {
		recorder = service.NewVisitService(in.writer)
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Mount("/", handler.NewServer(dashboard, recorder, service.NewExportService(dashboard), logger).Routes())
	return r
}
