package api

import (
	"github.com/gin-gonic/gin"
	"github.com/lumi-diary/lumi/backend/internal/middleware"
	"github.com/lumi-diary/lumi/backend/internal/service"
)

// Dependencies are the services the HTTP layer is built from.
type Dependencies struct {
	Auth     service.IAuthService
	Profile  service.IProfileService
	Mood     service.IMoodService
	Goals    service.IGoalService
	Joys     service.IJoyService
	Cycle    service.ICycleService
	Stats    service.IStatsService
	Insights service.IInsightService
	Export   service.IExportService
	Chat     service.IChatService

	// ChatLimiter guards the LLM chat route; nil disables limiting.
	ChatLimiter *middleware.RateLimiter
}

// SetupAPI mounts the health check and every /api route on router.
func SetupAPI(router *gin.Engine, deps Dependencies) {
	RegisterValidators()

	router.GET("/health", HealthCheck)

	public := router.Group("/api")
	public.GET("/health", HealthCheck)

	protected := public.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Auth))

	NewAuthHandler(deps.Auth).RegisterRoutes(public, protected)
	NewProfileHandler(deps.Profile).RegisterRoutes(protected)
	NewMoodHandler(deps.Mood).RegisterRoutes(protected)
	NewGoalHandler(deps.Goals, deps.Joys).RegisterRoutes(protected)
	NewCycleHandler(deps.Cycle).RegisterRoutes(protected)
	NewStatsHandler(deps.Stats, deps.Insights, deps.Export).RegisterRoutes(protected)

	var limit gin.HandlerFunc
	if deps.ChatLimiter != nil {
		limit = deps.ChatLimiter.Middleware()
	}
	NewChatHandler(deps.Chat).RegisterRoutes(protected, limit)
}
