package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pageza/healthara/backend/config"
	"github.com/pageza/healthara/backend/internal/api"
	"github.com/pageza/healthara/backend/internal/database"
	"github.com/pageza/healthara/backend/internal/middleware"
	"github.com/pageza/healthara/backend/internal/router"
	"github.com/pageza/healthara/backend/internal/server"
	"github.com/pageza/healthara/backend/internal/service"
	"github.com/pageza/healthara/backend/internal/session"
	"github.com/pageza/healthara/backend/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var redisClient *redis.Client
	if cfg.HasRedis() {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			if cfg.ProfileStore == config.StoreRedis {
				log.Fatal().Err(err).Msg("Failed to connect to Redis")
			}
			log.Warn().Err(err).Msg("Redis unavailable, chat rate limiting disabled")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	if db != nil {
		if err := database.RunMigrations(db); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
	}

	backends := storage.Backends{Redis: redisClient, DB: db}
	if _, err := storage.New(cfg, backends); err != nil {
		log.Fatal().Err(err).Msg("Failed to configure profile store")
	}
	records := func(ctx context.Context) (storage.RecordStore, error) {
		return storage.New(cfg, backends)
	}

	chat, err := service.NewChatClient(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create chat client")
	}
	if closer, ok := chat.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	sessions, err := session.NewManager(cfg.SessionCapacity, records, chat, session.NewTokenSigner(cfg.SessionSecret, cfg.SessionTTL))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create session manager")
	}

	deps := api.Dependencies{Sessions: sessions}
	if redisClient != nil && cfg.ChatRateLimit > 0 {
		deps.ChatLimiter = middleware.NewChatRateLimiter(redisClient, cfg.ChatRateLimit)
	}
	if cfg.HasS3() {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to configure S3")
		}
		deps.Uploader = service.NewExportUploader(s3cfg, cfg.ExportURLTTL)
	}

	log.Info().
		Str("env", string(cfg.Environment)).
		Str("provider", cfg.LLMProvider).
		Str("model", cfg.LLMModel).
		Str("profile_store", cfg.ProfileStore).
		Msg("Starting Healthara API")

	srv := server.New(cfg, router.SetupRouter(cfg, deps))
	if err := srv.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
	log.Info().Msg("Server stopped")
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Environment.PrettyLogs() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
