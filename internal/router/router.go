package router

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/vegandiet/backend/internal/api"
	"github.com/pageza/vegandiet/backend/internal/metrics"
	"github.com/pageza/vegandiet/backend/internal/middleware"
)

// Dependencies are the collaborators the HTTP routes are built from
type Dependencies struct {
	Environment    string
	AllowedOrigins []string
	Logger         *zap.Logger
	Metrics        *metrics.Collector
	Auth           middleware.TokenValidator
	Planner        api.MenuPlanner
	Profiles       api.ProfileService
	Catalog        api.Catalog
	Alternatives   api.AlternativeGenerator
	// GenerationLimiter is nil when Redis is not configured
	GenerationLimiter *middleware.RateLimiter
	// Ping checks the database for /health, may be nil
	Ping func(ctx context.Context) error
}

// SetupRouter configures the application routes
func SetupRouter(d Dependencies) *gin.Engine {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(
		middleware.RequestIDMiddleware(),
		middleware.RequestLogger(d.Logger),
		middleware.Recovery(d.Logger),
		middleware.CORS(d.AllowedOrigins),
	)
	if d.Metrics != nil {
		router.Use(d.Metrics.HTTPMiddleware())
		router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	health := api.NewHealthHandler(d.Environment, d.Ping)
	router.GET("/health", health.HealthCheck)
	router.GET("/api/health", health.HealthCheck)

	// Protected routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(d.Auth))

	var limits []gin.HandlerFunc
	if d.GenerationLimiter != nil {
		limits = append(limits, d.GenerationLimiter.RateLimitMiddleware())
	}
	api.NewWeeklyMenuHandler(d.Planner, d.Logger).RegisterRoutes(v1, limits...)
	api.NewProfileHandler(d.Profiles, d.Logger).RegisterRoutes(v1)
	api.NewCatalogHandler(d.Catalog, d.Logger).RegisterRoutes(v1)
	api.NewAlternativeHandler(d.Alternatives, d.Logger).RegisterRoutes(v1, limits...)

	return router
}
