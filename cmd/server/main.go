package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "github.com/d60-Lab/social-graph/docs"
	"github.com/d60-Lab/social-graph/internal/api"
	"github.com/d60-Lab/social-graph/internal/api/handler"
	"github.com/d60-Lab/social-graph/internal/cache"
	"github.com/d60-Lab/social-graph/internal/config"
	"github.com/d60-Lab/social-graph/internal/model"
	"github.com/d60-Lab/social-graph/internal/repository"
	"github.com/d60-Lab/social-graph/internal/service"
	"github.com/d60-Lab/social-graph/pkg/logger"
	"github.com/d60-Lab/social-graph/pkg/tracing"
)

// @title social-graph API
// @version 1.0
// @description 社交图谱服务：用户、好友关系、人气分与图投影
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}
	if err := logger.Init(cfg.Log.Level, cfg.Server.Mode); err != nil {
		panic(fmt.Sprintf("init logger: %v", err))
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Otel.Enabled {
		shutdown, err := tracing.Init(ctx, cfg.Otel.Endpoint, "social-graph")
		if err != nil {
			logger.Warn("tracing init failed", zap.Error(err))
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdown(shutdownCtx)
			}()
		}
	}

	db, err := openDB(cfg)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	if err := db.AutoMigrate(&model.User{}, &model.Relationship{}, &model.Hobby{}); err != nil {
		logger.Fatal("migrate database", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	c := cache.New(rdb, cfg.CacheTTL())
	defer c.Close()

	userRepo := repository.NewUserRepository(db)
	relRepo := repository.NewRelationshipRepository(db)
	hobbyRepo := repository.NewHobbyRepository(db)

	popularity := service.NewPopularityService(userRepo, relRepo, c)
	invalidator := service.NewCacheInvalidator(c)
	userService := service.NewUserService(userRepo, relRepo, hobbyRepo, popularity, invalidator, c)
	relService := service.NewRelationshipService(userRepo, relRepo, popularity, invalidator)
	graphService := service.NewGraphService(userRepo, relRepo, c)

	h := handler.New(userService, relService, graphService, db, c)
	router := api.NewRouter(cfg, h)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	default:
		return gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	}
}
