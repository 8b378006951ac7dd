package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"finora-backend/internal/config"
	"finora-backend/internal/database"
	"finora-backend/internal/logging"
	"finora-backend/internal/repositories"
	"finora-backend/internal/router"
	"finora-backend/internal/services"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.SetupLogging(cfg.Log.Level, cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	db, err := database.Initialize(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.WithError(err).Error("Failed to close database")
		}
	}()

	if len(os.Args) > 1 && os.Args[1] == "token" {
		username := ""
		if len(os.Args) > 2 {
			username = os.Args[2]
		}
		users := repositories.NewUserRepository(db.DB)
		if err := issueToken(context.Background(), users, services.NewTokenService(&cfg.Auth), username, os.Stdout); err != nil {
			logger.WithError(err).Error("Failed to issue token")
			os.Exit(1)
		}
		return
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e := router.New(ctx, cfg, db, logger, registry)

	srv := &http.Server{
		Addr:           cfg.Address(),
		Handler:        e,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    2 * cfg.Server.ReadTimeout,
		MaxHeaderBytes: 1 << 16,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.WithFields(map[string]interface{}{
			"address":       cfg.Address(),
			"environment":   cfg.Server.Environment,
			"db_driver":     cfg.Database.Driver,
			"auth_required": cfg.Auth.Required,
		}).Info("Starting FINORA server")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.WithError(err).Error("Server error")
			stop()
			return
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server shutdown error")
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}
