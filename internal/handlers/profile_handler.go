package handlers

import (
	"renthub/internal/middleware"
	"renthub/internal/services"
	"renthub/pkg/response"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	userService *services.UserService
}

func NewProfileHandler(userService *services.UserService) *ProfileHandler {
	return &ProfileHandler{
		userService: userService,
	}
}

type UpdateProfileRequest struct {
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone"`
	Avatar   *string `json:"avatar"`
}

// Get 获取个人资料
func (h *ProfileHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)
	response.Success(c, user)
}

// Update 更新个人资料
func (h *ProfileHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	updated, err := h.userService.UpdateProfile(user.ID, req.FullName, req.Phone, req.Avatar)
	if err != nil {
		response.ServerError(c, "更新失败")
		return
	}

	response.Success(c, updated)
}
