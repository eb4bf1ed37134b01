// Package main runs the local in-memory stub of the Bliic API.
// It exists for offline development of the CLI; nothing it stores
// survives a restart.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/bliic/bliic/internal/config"
	"github.com/bliic/bliic/internal/devserver"
	"github.com/bliic/bliic/internal/model"
)

// Seed account so a fresh dev server is immediately usable.
const (
	seedEmail    = "demo@bliic.app"
	seedPassword = "demo-password"
	seedName     = "Demo Admin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	store := devserver.NewStore()
	if _, err := store.CreateUser(seedEmail, seedPassword, seedName, model.PlanPremium, model.RoleAdmin); err != nil {
		logger.Error("failed to seed account", "error", err)
		os.Exit(1)
	}

	baseURL := fmt.Sprintf("http://localhost:%d", cfg.DevServerPort)
	router := devserver.NewRouter(store, baseURL, logger)

	srv := devserver.NewServer(
		router,
		cfg.DevServerPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("dev server listening",
		"base_url", baseURL,
		"seed_email", seedEmail,
		"seed_password", seedPassword,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
