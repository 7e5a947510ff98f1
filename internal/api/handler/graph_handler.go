package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-graph/internal/model"
	"github.com/d60-Lab/social-graph/pkg/response"
)

// GetGraph 图投影（缓存 graph:data）
// @Summary 图投影
// @Tags 图谱
// @Produce json
// @Success 200 {object} response.Response{data=model.GraphData}
// @Router /graph [get]
func (h *Handler) GetGraph(c *gin.Context) {
	data, err := h.graphService.GetGraphData(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, data)
}

// DebugState 原始表计数与关系行，排查成对行是否对称时用
// @Summary 调试：数据库状态
// @Tags 运维
// @Produce json
// @Success 200 {object} response.Response
// @Router /debug/state [get]
func (h *Handler) DebugState(c *gin.Context) {
	ctx := c.Request.Context()

	var userCount, relCount int64
	if err := h.db.WithContext(ctx).Model(&model.User{}).Count(&userCount).Error; err != nil {
		response.InternalError(c, err)
		return
	}
	if err := h.db.WithContext(ctx).Model(&model.Relationship{}).Count(&relCount).Error; err != nil {
		response.InternalError(c, err)
		return
	}
	var rels []*model.Relationship
	if err := h.db.WithContext(ctx).Order("user_id, friend_id").Find(&rels).Error; err != nil {
		response.InternalError(c, err)
		return
	}

	graph, err := h.graphService.GetGraphData(ctx)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{
		"users":         gin.H{"count": userCount},
		"relationships": gin.H{"count": relCount, "rows": rels},
		"graphData":     graph,
	})
}
