package handlers

import (
	"errors"
	"time"

	"renthub/internal/middleware"
	"renthub/internal/services"
	"renthub/pkg/jwt"
	"renthub/pkg/logger"
	"renthub/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	userService *services.UserService
	jwtManager  *jwt.JWTManager
}

func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtManager:  jwt.GetJWTManager(), // 使用全局JWT管理器
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role" binding:"required,renthubrole"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expires_at"`
	User      UserInfo `json:"user"`
}

type UserInfo struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Register 用户注册（租客/房东）
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	user, err := h.userService.Register(req.Email, req.Password, req.FullName, req.Role)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			response.BadRequest(c, "邮箱已被注册")
			return
		}
		response.ServerError(c, "注册失败")
		return
	}

	response.Success(c, UserInfo{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
	})
}

// Login 用户登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	// 根据邮箱获取用户
	user, err := h.userService.GetByEmail(req.Email)
	if err != nil {
		response.Unauthorized(c, "邮箱或密码错误")
		return
	}

	// 检查用户状态
	if user.Status != "active" {
		response.Unauthorized(c, "用户已被禁用")
		return
	}

	// 验证密码
	if !user.CheckPassword(req.Password) {
		response.Unauthorized(c, "邮箱或密码错误")
		return
	}

	// 生成Token
	token, err := h.jwtManager.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		response.ServerError(c, "生成Token失败")
		return
	}

	// 更新最后登录时间
	if err := h.userService.UpdateLastLogin(user.ID); err != nil {
		// 记录日志但不影响登录流程
		logger.GetLogger().Warnf("更新最后登录时间失败: %v", err)
	}

	// 计算过期时间
	expiresAt := time.Now().Add(h.jwtManager.GetTokenDuration()).Unix()

	resp := LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User: UserInfo{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			Role:     user.Role,
		},
	}

	response.Success(c, resp)
}

// RefreshToken 刷新令牌
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}

	newToken, err := h.jwtManager.RefreshToken(req.Token)
	if err != nil {
		response.Unauthorized(c, "Token无效或已过期")
		return
	}

	expiresAt := time.Now().Add(h.jwtManager.GetTokenDuration()).Unix()
	response.Success(c, gin.H{
		"token":      newToken,
		"expires_at": expiresAt,
	})
}

// Logout 用户登出
// 无服务端会话，客户端丢弃token即完成登出
func (h *AuthHandler) Logout(c *gin.Context) {
	response.SuccessWithMessage(c, "登出成功", nil)
}

// Me 获取当前用户信息
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		response.Unauthorized(c, "请先登录")
		return
	}
	response.Success(c, user)
}
