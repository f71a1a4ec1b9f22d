package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lumi-diary/lumi/backend/config"
	"github.com/lumi-diary/lumi/backend/internal/database"
	"github.com/lumi-diary/lumi/backend/internal/logging"
	"github.com/lumi-diary/lumi/backend/internal/router"
	"github.com/lumi-diary/lumi/backend/internal/server"
	"github.com/lumi-diary/lumi/backend/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Setup(cfg.LogLevel, cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	db, err := database.New(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, continuing without token revocation, chat history and rate limiting")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	avatars, err := newAvatarStorage(ctx, cfg)
	if err != nil {
		return err
	}

	deps := router.NewDependencies(cfg, db, redisClient, avatars)
	handler := router.SetupRouter(cfg, deps)

	return server.New(cfg.ListenAddr(), handler).Run(ctx)
}

func newAvatarStorage(ctx context.Context, cfg *config.Config) (service.AvatarStorage, error) {
	if cfg.AvatarStorage != "s3" {
		return service.NewLocalAvatarStorage(cfg.StaticDir), nil
	}
	s3cfg, err := config.NewS3Config(ctx, cfg.S3BucketName, cfg.AWSRegion)
	if err != nil {
		return nil, err
	}
	log.Info().Str("bucket", cfg.S3BucketName).Msg("storing avatars in s3")
	return service.NewS3AvatarStorage(s3cfg), nil
}
