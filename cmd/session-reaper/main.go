package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ptbooth/ptbooth-api/internal/config"
	"github.com/ptbooth/ptbooth-api/internal/domain/photobooth"
	"github.com/ptbooth/ptbooth-api/internal/domain/session"
	"github.com/ptbooth/ptbooth-api/internal/pkg/database"
)

// The reaper expires overdue sessions and frees their booths on a fixed
// interval, covering kiosks that die without completing or cancelling.
func main() {
	cfg := config.Load()
	setupLogger(cfg)

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	sessionRepo := session.NewRepository(db)
	boothRepo := photobooth.NewRepository(db)
	sessionSvc := session.NewService(sessionRepo, boothRepo, nil, cfg.SessionTTL, cfg.SessionMaxPhotos)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Dur("interval", cfg.ReaperInterval).Msg("Session reaper starting")

	ticker := time.NewTicker(cfg.ReaperInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Session reaper stopped")
			return
		case <-ticker.C:
			runCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			cleaned, err := sessionSvc.ExpireOverdue(runCtx, time.Now())
			cancel()
			if err != nil {
				log.Error().Err(err).Msg("Reaper pass failed")
				continue
			}
			if cleaned > 0 {
				log.Info().Int("cleaned", cleaned).Msg("Reaper pass done")
			}
		}
	}
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
