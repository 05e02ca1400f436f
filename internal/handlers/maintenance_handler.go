package handlers

import (
	"errors"
	"strconv"

	"renthub/internal/middleware"
	"renthub/internal/services"
	"renthub/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MaintenanceHandler struct {
	service *services.MaintenanceService
}

func NewMaintenanceHandler(service *services.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{
		service: service,
	}
}

type CreateMaintenanceRequest struct {
	PropertyID  *uint    `json:"property_id"`
	UnitID      *uint    `json:"unit_id"`
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Photos      []string `json:"photos"`
}

type UpdateMaintenanceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetAll 维修工单列表（模块未启用时返回空列表）
func (h *MaintenanceHandler) GetAll(c *gin.Context) {
	user := middleware.CurrentUser(c)

	requests, err := h.service.ListForUser(user)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	response.Success(c, requests)
}

// Create 租客提交维修工单
func (h *MaintenanceHandler) Create(c *gin.Context) {
	var req CreateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	user := middleware.CurrentUser(c)
	request, err := h.service.Create(user.ID, req.PropertyID, req.UnitID, req.Title, req.Description, req.Photos)
	if err != nil {
		if errors.Is(err, gorm.ErrInvalidDB) {
			response.BadRequest(c, "维修工单模块未启用")
			return
		}
		response.ServerError(c, "提交失败")
		return
	}

	response.SuccessWithMessage(c, "工单已提交", request)
}

// UpdateStatus 房东/管理员推进工单状态
func (h *MaintenanceHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var req UpdateMaintenanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	user := middleware.CurrentUser(c)
	request, err := h.service.UpdateStatus(uint(id), user, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidMaintenanceStatus):
			response.BadRequest(c, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.NotFound(c, "工单不存在")
		case errors.Is(err, services.ErrNotOwner):
			response.Forbidden(c, "只能处理自己房产下的工单")
		default:
			response.ServerError(c, "更新失败")
		}
		return
	}

	response.Success(c, request)
}
