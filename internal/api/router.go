package api

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/social-graph/internal/api/handler"
	"github.com/d60-Lab/social-graph/internal/api/middleware"
	"github.com/d60-Lab/social-graph/internal/config"
)

// NewRouter 组装全部路由与中间件。写接口可按配置挂 JWT 校验
func NewRouter(cfg *config.Config, h *handler.Handler) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.Otel.Enabled {
		r.Use(otelgin.Middleware("social-graph"))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if cfg.RateLimit.RPS > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	r.GET("/healthz", h.Healthz)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/users", h.GetAllUsers)
	r.GET("/graph", h.GetGraph)
	r.GET("/hobbies", h.GetAllHobbies)
	r.GET("/debug/state", h.DebugState)

	mutations := r.Group("")
	if cfg.Auth.Enabled {
		mutations.Use(middleware.Auth(cfg.Auth.JWTSecret))
	}
	mutations.POST("/users", h.CreateUser)
	mutations.PUT("/users/:id", h.UpdateUser)
	mutations.DELETE("/users/:id", h.DeleteUser)
	mutations.POST("/users/:id/link", h.Link)
	mutations.DELETE("/users/:id/unlink", h.Unlink)
	mutations.POST("/hobbies", h.AddHobby)
	mutations.DELETE("/hobbies", h.RemoveHobby)

	return r
}
