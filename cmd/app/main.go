package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	dbadapter "blog/internal/adapters/database"
	"blog/internal/adapters/httpapi"
	redisadapter "blog/internal/adapters/redis"
	"blog/internal/config"
	postapp "blog/internal/core/post/service"
	userapp "blog/internal/core/user/service"
	cachePort "blog/internal/ports/cache"
	"blog/internal/ports/clock"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("blog: %v", err)
	}
}

// run returns instead of exiting so every deferred close runs.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize zap logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.OpenDB(cfg, logger)
	if err != nil {
		logger.Error("Database connection failed", zap.Error(err))
		return err
	}

	redisClient, err := config.OpenRedis(ctx, cfg, logger)
	if err != nil {
		logger.Error("Redis connection failed", zap.Error(err))
		closeResources(logger, db, nil)
		return err
	}
	defer closeResources(logger, db, redisClient)

	if err := dbadapter.AutoMigrate(db); err != nil {
		logger.Error("Error during migrations", zap.Error(err))
		return err
	}
	logger.Info("Database migrations completed")

	var recordCache cachePort.RecordCache = cachePort.Disabled{}
	if redisClient != nil && cfg.CacheTTL > 0 {
		recordCache = redisadapter.NewRecordCacheRedis(redisClient, cfg.CacheTTL, logger.Named("cache"))
	}

	userRepo := dbadapter.NewUserRepositoryDatabase(db)
	postRepo := dbadapter.NewPostRepositoryDatabase(db)
	userSvc := userapp.NewUserService(userRepo, recordCache, logger)
	postSvc := postapp.NewPostService(postRepo, userRepo, recordCache, clock.System{}, logger)

	gin.SetMode(ginMode(cfg.GinMode))
	r := httpapi.SetupRoutes(userSvc, postSvc, httpapi.RouterOptions{
		Logger:             logger.Named("http"),
		AllowedOrigins:     cfg.AllowedOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		HealthCheck: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("App is running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("Server failed to start", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
		return err
	}
	return nil
}

// closeResources closes the Redis and database connections.
func closeResources(logger *zap.Logger, db *gorm.DB, redisClient *redis.Client) {
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Error getting raw DB", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
	}
}

func ginMode(mode string) string {
	switch mode {
	case gin.DebugMode, gin.TestMode:
		return mode
	default:
		return gin.ReleaseMode
	}
}
