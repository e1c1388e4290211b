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

	"example.com/wagelift/backend/internal/bls"
	"example.com/wagelift/backend/internal/config"
	"example.com/wagelift/backend/internal/database"
	"example.com/wagelift/backend/internal/repository"
	"example.com/wagelift/backend/internal/server"
)

func main() {
	ensureEnvFile()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	db, err := database.Open(context.Background(), cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		db.Close()
	}()

	cpiRepo := repository.NewCPIRepository(db, cfg.CPI.SeriesID)
	blsClient := bls.NewClient(cfg.CPI.BaseURL, cfg.CPI.APIKey, cfg.CPI.Timeout)
	refresher := bls.NewRefresher(blsClient, cpiRepo, logger, cfg.CPI.SeriesID, cfg.CPI.StartYear, cfg.CPI.RefreshInterval)

	refreshCtx, stopRefresher := context.WithCancel(context.Background())
	go refresher.Run(refreshCtx)

	tokenRepo := repository.NewRefreshTokenRepository(db)
	go purgeTokensLoop(refreshCtx, tokenRepo, cfg.Auth.RefreshTokenTTL, logger)

	e := server.New(cfg, logger, db, refresher, cpiRepo)
	httpServer := server.NewHTTPServer(cfg.Server, e)

	go func() {
		if err := e.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", slog.String("error", err.Error()))
		}
	}()

	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownSignal

	stopRefresher()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}
}

// purgeTokensLoop раз в сутки удаляет истекшие refresh-токены.
func purgeTokensLoop(ctx context.Context, tokens *repository.RefreshTokenRepository, retention time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := tokens.PurgeExpired(ctx, retention)
			if err != nil {
				logger.Error("token purge failed", slog.String("error", err.Error()))
				continue
			}
			if removed > 0 {
				logger.Info("expired tokens purged", slog.Int64("removed", removed))
			}
		}
	}
}

func ensureEnvFile() {
	if os.Getenv("ENV_FILE") != "" {
		return
	}

	if _, err := os.Stat(".env"); err == nil {
		_ = os.Setenv("ENV_FILE", ".env")
		return
	}

	if _, err := os.Stat("../.env"); err == nil {
		_ = os.Setenv("ENV_FILE", "../.env")
	}
}
