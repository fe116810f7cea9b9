package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ptbooth/ptbooth-api/internal/config"
	"github.com/ptbooth/ptbooth-api/internal/domain/asset"
	"github.com/ptbooth/ptbooth-api/internal/domain/auth"
	"github.com/ptbooth/ptbooth-api/internal/domain/bank"
	"github.com/ptbooth/ptbooth-api/internal/domain/photo"
	"github.com/ptbooth/ptbooth-api/internal/domain/photobooth"
	"github.com/ptbooth/ptbooth-api/internal/domain/realtime"
	"github.com/ptbooth/ptbooth-api/internal/domain/session"
	"github.com/ptbooth/ptbooth-api/internal/domain/stats"
	"github.com/ptbooth/ptbooth-api/internal/domain/topup"
	"github.com/ptbooth/ptbooth-api/internal/domain/user"
	"github.com/ptbooth/ptbooth-api/internal/middleware"
	"github.com/ptbooth/ptbooth-api/internal/pkg/database"
	"github.com/ptbooth/ptbooth-api/internal/pkg/imaging"
	"github.com/ptbooth/ptbooth-api/internal/pkg/jwt"
	"github.com/ptbooth/ptbooth-api/internal/pkg/response"
	"github.com/ptbooth/ptbooth-api/internal/pkg/sepay"
	"github.com/ptbooth/ptbooth-api/internal/pkg/storage"
	"github.com/ptbooth/ptbooth-api/internal/pkg/vietqr"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	rdb, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(rdb)

	store, err := storage.NewS3Storage(storage.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize object storage")
	}

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)

	var revChecker middleware.RevocationChecker
	var revoker auth.Revoker
	if rdb != nil {
		revStore := auth.NewRevocationStore(rdb)
		revChecker = revStore
		revoker = revStore
	}
	authMw := middleware.Auth(jwtService, revChecker)

	hub := realtime.NewHub()
	go hub.Run()

	// Repositories
	adminRepo := auth.NewRepository(db)
	userRepo := user.NewRepository(db)
	bankRepo := bank.NewRepository(db)
	boothRepo := photobooth.NewRepository(db)
	sessionRepo := session.NewRepository(db)
	photoRepo := photo.NewRepository(db)
	assetRepo := asset.NewRepository(db)

	// Services
	authSvc := auth.NewService(adminRepo, jwtService, revoker)
	userSvc := user.NewService(userRepo)
	bankSvc := bank.NewService(bankRepo, vietqr.NewClient(cfg.BankDirectoryBaseURL, cfg.BankDirectoryTimeout))
	topupSvc := topup.NewService(userSvc, bankRepo, userSvc, sepay.NewEncoder(cfg.SepayQRBaseURL))
	boothSvc := photobooth.NewService(boothRepo, nil, hub)
	sessionSvc := session.NewService(sessionRepo, boothRepo, hub, cfg.SessionTTL, cfg.SessionMaxPhotos)
	boothSvc.SetSessionCanceller(sessionSvc)
	photoSvc := photo.NewService(photoRepo, sessionSvc, store, imaging.NewProcessor(imaging.DefaultConfig()))
	assetSvc := asset.NewService(assetRepo, store)
	statsSvc := stats.NewService(db, boothRepo, sessionRepo, photoRepo, rdb)

	// Handlers
	authHandler := auth.NewHandler(authSvc)
	userHandler := user.NewHandler(userSvc)
	bankHandler := bank.NewHandler(bankSvc)
	topupHandler := topup.NewHandler(topupSvc)
	boothHandler := photobooth.NewHandler(boothSvc)
	sessionHandler := session.NewHandler(sessionSvc)
	photoHandler := photo.NewHandler(photoSvc)
	assetHandler := asset.NewHandler(assetSvc)
	statsHandler := stats.NewHandler(statsSvc, sessionSvc)
	wsHandler := realtime.NewHandler(hub, jwtService, originChecker(cfg.AllowedOrigins))

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(chimw.Compress(5))
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.OK(w, map[string]string{"status": "ok"})
	})

	r.Mount("/auth", authHandler.Routes())
	r.Mount("/assets", assetHandler.PublicRoutes())
	r.Mount("/photobooth", photoHandler.KioskRoutes())
	r.Get("/ws", wsHandler.Serve)

	r.Route("/admin", func(r chi.Router) {
		r.Mount("/users", userHandler.Routes(authMw))
		r.Mount("/users/{id}/topup", topupHandler.Routes(authMw))
		r.Mount("/banks", bankHandler.DirectoryRoutes(authMw))
		r.Mount("/bank-info", bankHandler.ProfileRoutes(authMw))
		r.Mount("/assets", assetHandler.AdminRoutes(authMw))
		r.Route("/photobooth", func(r chi.Router) {
			r.Mount("/photobooths", boothHandler.Routes(authMw))
			r.Mount("/sessions", sessionHandler.Routes(authMw))
			r.Mount("/photos", photoHandler.AdminRoutes(authMw))
			r.Mount("/", statsHandler.Routes(authMw))
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}
	log.Info().Msg("Server stopped")
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

// originChecker validates websocket handshake origins against the CORS
// allowlist. An empty allowlist admits everything (development).
func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		if len(allowed) == 0 {
			return true
		}
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}
