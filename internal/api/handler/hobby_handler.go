package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-graph/pkg/response"
)

type hobbyRequest struct {
	Name string `json:"name" binding:"required"`
}

// GetAllHobbies 爱好词表（按名称升序）
// @Summary 爱好词表
// @Tags 爱好
// @Produce json
// @Success 200 {object} response.Response{data=[]string}
// @Router /hobbies [get]
func (h *Handler) GetAllHobbies(c *gin.Context) {
	hobbies, err := h.userService.GetAllHobbies(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, hobbies)
}

// AddHobby 向词表添加爱好（幂等）
// @Summary 添加爱好
// @Tags 爱好
// @Accept json
// @Produce json
// @Param request body hobbyRequest true "爱好名称"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /hobbies [post]
func (h *Handler) AddHobby(c *gin.Context) {
	var req hobbyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name is required")
		return
	}
	if err := h.userService.AddHobby(c.Request.Context(), req.Name); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// RemoveHobby 从词表移除爱好；已选择该爱好的用户不受影响
// @Summary 移除爱好
// @Tags 爱好
// @Accept json
// @Produce json
// @Param request body hobbyRequest true "爱好名称"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /hobbies [delete]
func (h *Handler) RemoveHobby(c *gin.Context) {
	var req hobbyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name is required")
		return
	}
	if err := h.userService.RemoveHobby(c.Request.Context(), req.Name); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
