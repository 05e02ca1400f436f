package handlers

import (
	"errors"

	"renthub/internal/middleware"
	"renthub/internal/services"
	"renthub/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AgreementHandler struct {
	service *services.AgreementService
}

func NewAgreementHandler(service *services.AgreementService) *AgreementHandler {
	return &AgreementHandler{
		service: service,
	}
}

type CreateAgreementRequest struct {
	TenancyID uint   `json:"tenancy_id" binding:"required"`
	Title     string `json:"title" binding:"required"`
	FileURL   string `json:"file_url"`
}

// GetAll 协议列表（模块未启用时返回空列表）
func (h *AgreementHandler) GetAll(c *gin.Context) {
	user := middleware.CurrentUser(c)

	agreements, err := h.service.ListForUser(user)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	response.Success(c, agreements)
}

// Create 房东/管理员为租约创建协议
func (h *AgreementHandler) Create(c *gin.Context) {
	var req CreateAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	user := middleware.CurrentUser(c)
	agreement, err := h.service.Create(user, req.TenancyID, req.Title, req.FileURL)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrInvalidDB):
			response.BadRequest(c, "协议模块未启用")
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.NotFound(c, "租约不存在")
		case errors.Is(err, services.ErrNotTenancyLandlord):
			response.Forbidden(c, err.Error())
		default:
			response.ServerError(c, "创建失败")
		}
		return
	}

	response.Success(c, agreement)
}
