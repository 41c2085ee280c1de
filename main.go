package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"tasklist/internal/app"
	"tasklist/internal/config"
	"tasklist/internal/fixture"
	"tasklist/internal/handlers"
	"tasklist/internal/source"
	"tasklist/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "optional config file (yaml, json or toml)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatalf("tasklist: %v", err)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	// Seed data
	fx, err := fixture.Open(cfg.FixtureDSN)
	if err != nil {
		return fmt.Errorf("failed to open fixture %q: %w", cfg.FixtureDSN, err)
	}
	defer fx.Close()

	src := source.NewMockSource(fx,
		source.WithDelay(cfg.EmitDelay),
		source.WithLogger(logger.Named("source")),
	)

	a := app.New(store.NewMemoryStore(), src, logger.Named("app"))
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.Start(ctx, cfg.AuthToken); err != nil {
		return fmt.Errorf("failed to start app: %w", err)
	}

	h := handlers.New(a, logger.Named("http"))

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/healthz", h.Health)

	// Task API routes
	r.Get("/api/tasks", h.ListTasks)
	r.Post("/api/tasks", h.CreateTask)
	r.Post("/api/tasks/{id}/toggle", h.ToggleTask)
	r.Delete("/api/tasks/{id}", h.DeleteTask)
	r.Put("/api/search", h.SetSearch)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", zap.String("addr", "http://localhost"+cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	if loadErr := a.Err(); loadErr != nil {
		logger.Warn("Exited without initial task list", zap.Error(loadErr))
	}
	return nil
}

func initLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.LogFormat == "json" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapConfig.Level = level

	return zapConfig.Build()
}
