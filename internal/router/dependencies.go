package router

import (
	"errors"

	"github.com/lumi-diary/lumi/backend/config"
	"github.com/lumi-diary/lumi/backend/internal/api"
	"github.com/lumi-diary/lumi/backend/internal/middleware"
	"github.com/lumi-diary/lumi/backend/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// NewDependencies builds every service. A nil redisClient disables token
// revocation, chat history and chat rate limiting; a missing LLM key leaves
// chat on the keyword fallback.
func NewDependencies(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, avatars service.AvatarStorage) api.Dependencies {
	var (
		revoker service.TokenRevoker
		history service.ChatHistory
		limiter *middleware.RateLimiter
	)
	if redisClient != nil {
		revoker = service.NewRedisTokenRevoker(redisClient)
		history = service.NewRedisChatHistory(redisClient)
		limiter = middleware.NewChatRateLimiter(redisClient, cfg.ChatRateLimit)
	}

	var completer service.Completer
	client, err := service.NewDeepSeekClient(cfg)
	switch {
	case err == nil:
		completer = client
		log.Info().Dur("timeout", client.Timeout()).Msg("llm chat enabled")
	case errors.Is(err, service.ErrLLMUnavailable):
		log.Warn().Msg("no llm api key configured, chat uses the keyword fallback")
	default:
		log.Warn().Err(err).Msg("llm client unavailable, chat uses the keyword fallback")
	}

	stats := service.NewStatsService(db)
	return api.Dependencies{
		Auth:        service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL, revoker),
		Profile:     service.NewProfileService(db, avatars),
		Mood:        service.NewMoodService(db),
		Goals:       service.NewGoalService(db),
		Joys:        service.NewJoyService(db),
		Cycle:       service.NewCycleService(db),
		Stats:       stats,
		Insights:    service.NewInsightService(stats, service.RandomChooser()),
		Export:      service.NewExportService(db),
		Chat:        service.NewChatService(completer, stats, history, service.NewChatbot(nil)),
		ChatLimiter: limiter,
	}
}
