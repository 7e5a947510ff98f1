package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-graph/pkg/response"
)

type linkRequest struct {
	FriendID string `json:"friendId" binding:"required"`
}

// Link 建立好友关系（对称边，成对写入）
// @Summary 建立好友关系
// @Tags 关系
// @Accept json
// @Produce json
// @Param id path string true "用户ID"
// @Param request body linkRequest true "对端用户"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/{id}/link [post]
func (h *Handler) Link(c *gin.Context) {
	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "friendId is required")
		return
	}
	if err := h.relService.Create(c.Request.Context(), c.Param("id"), req.FriendID); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// Unlink 解除好友关系
// @Summary 解除好友关系
// @Tags 关系
// @Accept json
// @Produce json
// @Param id path string true "用户ID"
// @Param request body linkRequest true "对端用户"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /users/{id}/unlink [delete]
func (h *Handler) Unlink(c *gin.Context) {
	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "friendId is required")
		return
	}
	if err := h.relService.Remove(c.Request.Context(), c.Param("id"), req.FriendID); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
