package di

import (
	"fmt"
	"time"

	"exercise-tracker-service/cmd/api/infrastructure"
	"exercise-tracker-service/internal/adapter/cache"
	"exercise-tracker-service/internal/adapter/db/postgres"
	ginhandler "exercise-tracker-service/internal/adapter/gin/handler"
	ginmiddleware "exercise-tracker-service/internal/adapter/gin/middleware"
	"exercise-tracker-service/internal/adapter/repository/cached"
	"exercise-tracker-service/internal/config"
	"exercise-tracker-service/internal/usecase/tracker"
	redisclient "exercise-tracker-service/pkg/redis"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client
	TrackerUC   tracker.Usecase
	RateLimiter *ginmiddleware.RateLimiter
	Handler     *ginhandler.TrackerHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Initialize database
	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis client
	rdb, err := infrastructure.NewRedisClient(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	// Initialize cache layer
	userCache := cache.NewRedisUserCache(
		rdb.Client,
		time.Duration(cfg.Redis.CacheTTL)*time.Second,
		l,
	)

	// Initialize repositories; user lookups go through the cache
	userRepo := cached.NewCachedUserRepository(postgres.NewUserRepoPG(db, l), userCache, l)
	exerciseRepo := postgres.NewExerciseRepoPG(db, l)

	// Initialize use case
	trackerUC := tracker.New(userRepo, exerciseRepo, l)

	// Initialize rate limiter
	rateLimiter := ginmiddleware.NewRateLimiter(
		rdb.Client,
		ginmiddleware.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstCapacity:     cfg.RateLimit.BurstCapacity,
			Enabled:           cfg.RateLimit.Enabled,
		},
		l,
	)

	// Initialize HTTP handler
	h := ginhandler.NewTrackerHandler(trackerUC, l)

	return &Container{
		Config:      cfg,
		Logger:      l,
		DB:          db,
		RedisClient: rdb,
		TrackerUC:   trackerUC,
		RateLimiter: rateLimiter,
		Handler:     h,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
