package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-graph/internal/cache"
	"github.com/d60-Lab/social-graph/internal/service"
	"github.com/d60-Lab/social-graph/pkg/response"
)

type Handler struct {
	userService  *service.UserService
	relService   *service.RelationshipService
	graphService *service.GraphService
	db           *gorm.DB
	cache        *cache.Cache
}

func New(
	userService *service.UserService,
	relService *service.RelationshipService,
	graphService *service.GraphService,
	db *gorm.DB,
	c *cache.Cache,
) *Handler {
	return &Handler{
		userService:  userService,
		relService:   relService,
		graphService: graphService,
		db:           db,
		cache:        c,
	}
}

// writeServiceError 按错误种类映射状态码：校验 400 / 未找到 404 / 冲突 409
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrSelfRelationship),
		errors.Is(err, service.ErrRelationshipExists),
		errors.Is(err, service.ErrHasRelationships):
		response.Conflict(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

// Healthz 存活探针，顺带检查 DB 与 redis 连通性
// @Summary 健康检查
// @Tags 运维
// @Produce json
// @Success 200 {object} response.Response
// @Router /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	status := gin.H{"db": "ok", "cache": "ok"}
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		status["db"] = err.Error()
	}
	if err := h.cache.Ping(c.Request.Context()); err != nil {
		// 缓存不可用不算不健康，读路径会回源
		status["cache"] = err.Error()
	}
	response.Success(c, status)
}
