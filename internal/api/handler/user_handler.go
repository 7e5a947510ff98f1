package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-graph/internal/service"
	"github.com/d60-Lab/social-graph/pkg/response"
)

type createUserRequest struct {
	Username string   `json:"username" binding:"required"`
	Age      int      `json:"age" binding:"gte=0,lte=150"`
	Hobbies  []string `json:"hobbies"`
}

type updateUserRequest struct {
	Username *string   `json:"username"`
	Age      *int      `json:"age" binding:"omitempty,gte=0,lte=150"`
	Hobbies  *[]string `json:"hobbies"`
}

// GetAllUsers 用户列表（按人气分降序，含好友 id）
// @Summary 用户列表
// @Tags 用户
// @Produce json
// @Success 200 {object} response.Response{data=[]model.User}
// @Router /users [get]
func (h *Handler) GetAllUsers(c *gin.Context) {
	users, err := h.userService.GetAllUsers(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, users)
}

// CreateUser 创建用户
// @Summary 创建用户
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body createUserRequest true "用户信息"
// @Success 200 {object} response.Response{data=model.User}
// @Failure 400 {object} response.Response
// @Router /users [post]
func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.userService.CreateUser(c.Request.Context(), service.CreateUserInput{
		Username: req.Username,
		Age:      req.Age,
		Hobbies:  req.Hobbies,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, user)
}

// UpdateUser 更新用户（部分字段）
// @Summary 更新用户
// @Tags 用户
// @Accept json
// @Produce json
// @Param id path string true "用户ID"
// @Param request body updateUserRequest true "要修改的字段"
// @Success 200 {object} response.Response{data=model.User}
// @Failure 404 {object} response.Response
// @Router /users/{id} [put]
func (h *Handler) UpdateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.userService.UpdateUser(c.Request.Context(), c.Param("id"), service.UpdateUserInput{
		Username: req.Username,
		Age:      req.Age,
		Hobbies:  req.Hobbies,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if user == nil {
		response.NotFound(c, "user not found")
		return
	}
	response.Success(c, user)
}

// DeleteUser 删除用户（仅限无任何好友关系的用户）
// @Summary 删除用户
// @Tags 用户
// @Produce json
// @Param id path string true "用户ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/{id} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	found, err := h.userService.DeleteUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if !found {
		response.NotFound(c, "user not found")
		return
	}
	response.Success(c, nil)
}
