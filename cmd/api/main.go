package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/vegandiet/backend/config"
	"github.com/pageza/vegandiet/backend/internal/database"
	"github.com/pageza/vegandiet/backend/internal/metrics"
	"github.com/pageza/vegandiet/backend/internal/middleware"
	"github.com/pageza/vegandiet/backend/internal/repository"
	"github.com/pageza/vegandiet/backend/internal/router"
	"github.com/pageza/vegandiet/backend/internal/server"
	"github.com/pageza/vegandiet/backend/internal/service"
	"github.com/pageza/vegandiet/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: cfg.Environment == config.Development,
	})
	defer func() { _ = zlog.Sync() }()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server error", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	client, err := database.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			zlog.Warn("mongo disconnect failed", zap.Error(err))
		}
	}()
	db := client.Database(cfg.MongoDatabase)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	// Redis is optional; without it generation is not rate limited
	var limiter *middleware.RateLimiter
	m := metrics.NewCollector()
	if cfg.RedisURL != "" {
		var rdb *redis.Client
		rdb, err = database.NewRedisClient(cfg.RedisURL, zlog)
		if err != nil {
			zlog.Warn("redis unavailable, generation rate limiting disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			limiter = middleware.NewGenerationRateLimiter(rdb, cfg.GenerationRateLimit, zlog, m)
		}
	}

	validator, err := newTokenValidator(ctx, cfg)
	if err != nil {
		return err
	}

	// Firebase accounts are removed with the user; dev JWTs have no account
	accounts, _ := validator.(service.AccountRemover)

	// Initialize services
	profiles := repository.NewProfileRepository(db)
	menus := repository.NewMenuRepository(db)
	dishes := repository.NewDishRepository(db)
	stores := repository.NewStoreRepository(db)
	llm := service.NewLLMClient(service.LLMConfig{
		APIURL:  cfg.LLMAPIURL,
		APIKey:  cfg.LLMAPIKey,
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMTimeout,
	}, nil, m)
	planner := service.NewWeeklyMenuService(
		profiles,
		menus,
		dishes,
		stores,
		service.NewMealGenerator(llm, zlog, m),
		zlog,
		m,
		service.WeeklyMenuConfig{
			DefaultLocation:    cfg.Location(),
			GenerationDeadline: cfg.GenerationDeadline,
		},
	)

	handler := router.SetupRouter(router.Dependencies{
		Environment:       string(cfg.Environment),
		AllowedOrigins:    cfg.CORSAllowedOrigins,
		Logger:            zlog,
		Metrics:           m,
		Auth:              validator,
		Planner:           planner,
		Profiles:          service.NewProfileService(profiles, menus, accounts, zlog),
		Catalog:           service.NewCatalogService(dishes, stores),
		Alternatives:      service.NewAlternativeService(llm, zlog, m, cfg.GenerationDeadline),
		GenerationLimiter: limiter,
		Ping: func(ctx context.Context) error {
			return database.HealthCheck(ctx, client)
		},
	})

	srv := server.New(cfg.Addr(), handler, zlog)
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		zlog.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newTokenValidator(ctx context.Context, cfg *config.Config) (middleware.TokenValidator, error) {
	if cfg.AuthProvider == config.AuthProviderJWT {
		return service.NewJWTVerifier(cfg.JWTSecret), nil
	}
	return service.NewFirebaseVerifier(ctx, cfg.FirebaseProjectID, cfg.FirebaseClientEmail, cfg.FirebasePrivateKey)
}
