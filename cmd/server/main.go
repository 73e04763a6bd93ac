package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/bizreg/internal/config"
	"github.com/JonMunkholm/bizreg/internal/core"
	"github.com/JonMunkholm/bizreg/internal/database"
	"github.com/JonMunkholm/bizreg/internal/logging"
	"github.com/JonMunkholm/bizreg/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"db_max_conns", cfg.Database.MaxConns,
		"submit_max_concurrent", cfg.Submit.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)
	slog.Debug("configuration", "config", cfg.String())

	ctx := context.Background()
	pool, err := database.OpenPool(ctx, cfg.Database)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	slog.Info("connected to database", "name", database.Name(cfg.Database.URL))

	repo := core.NewRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		slog.Error("failed to ensure schema", "error", err, "code", core.MapError(err).Code)
		os.Exit(1)
	}

	limiter := core.NewSubmitLimiter(cfg.Submit.MaxConcurrent, cfg.Submit.MaxWait)
	service := core.NewService(repo, core.WithSubmitLimiter(limiter))
	server := web.NewServer(service, repo, cfg)

	// Graceful shutdown
	idle := make(chan struct{})
	go func() {
		defer close(idle)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}

		// Shutdown stops waiting on handlers once its context expires. Writes
		// still running then are bounded by SUBMIT_TIMEOUT, so give them that
		// long to commit before the pool closes.
		if active := limiter.Active(); active > 0 {
			slog.Info("waiting for submissions to finish", "active", active)
			drainCtx, cancelDrain := context.WithTimeout(context.Background(), cfg.Submit.Timeout)
			defer cancelDrain()
			if err := limiter.Drain(drainCtx); err != nil {
				slog.Warn("submissions did not finish in time", "error", err)
			}
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		pool.Close()
		os.Exit(1)
	}
	<-idle
	slog.Info("server stopped")
}
