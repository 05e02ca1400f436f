package handlers

import (
	"errors"
	"strconv"
	"time"

	"renthub/internal/middleware"
	"renthub/internal/models"
	"renthub/internal/services"
	"renthub/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TenancyHandler struct {
	service *services.TenancyService
}

func NewTenancyHandler(service *services.TenancyService) *TenancyHandler {
	return &TenancyHandler{
		service: service,
	}
}

type CreateTenancyRequest struct {
	UnitID    uint   `json:"unit_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"` // 2006-01-02
	EndDate   string `json:"end_date"`
}

type AddTenantRequest struct {
	TenantID uint `json:"tenant_id" binding:"required"`
}

// GetAll 租约列表（按角色过滤，支持status筛选）
func (h *TenancyHandler) GetAll(c *gin.Context) {
	user := middleware.CurrentUser(c)
	status := c.Query("status")

	tenancies, err := h.service.ListForUser(user, status)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	response.Success(c, tenancies)
}

// GetByID 获取租约详情
func (h *TenancyHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	tenancy, err := h.service.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "租约不存在")
			return
		}
		response.ServerError(c, "查询失败")
		return
	}

	// 非管辖范围内的租约不可见
	user := middleware.CurrentUser(c)
	if !user.IsAdmin() && !tenancy.HasTenant(user.ID) {
		if tenancy.Unit == nil || tenancy.Unit.Property == nil ||
			tenancy.Unit.Property.LandlordID != user.ID {
			response.Forbidden(c, "无权查看该租约")
			return
		}
	}

	response.Success(c, tenancy)
}

// Create 租客申请租约
func (h *TenancyHandler) Create(c *gin.Context) {
	var req CreateTenancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		response.BadRequest(c, "start_date格式错误，应为YYYY-MM-DD")
		return
	}

	var endDate *time.Time
	if req.EndDate != "" {
		parsed, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			response.BadRequest(c, "end_date格式错误，应为YYYY-MM-DD")
			return
		}
		if parsed.Before(startDate) {
			response.BadRequest(c, "end_date不能早于start_date")
			return
		}
		endDate = &parsed
	}

	user := middleware.CurrentUser(c)
	tenancy, err := h.service.Apply(user.ID, req.UnitID, startDate, endDate)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "单元不存在")
			return
		}
		response.ServerError(c, "申请失败")
		return
	}

	response.SuccessWithMessage(c, "申请已提交，等待房东审批", tenancy)
}

// Approve 批准租约（pending -> active）
func (h *TenancyHandler) Approve(c *gin.Context) {
	h.transition(c, h.service.Approve)
}

// Reject 驳回租约（pending -> ended）
func (h *TenancyHandler) Reject(c *gin.Context) {
	h.transition(c, h.service.Reject)
}

// End 结束租约（active -> ended）
func (h *TenancyHandler) End(c *gin.Context) {
	h.transition(c, h.service.End)
}

// transition 状态流转的公共处理
func (h *TenancyHandler) transition(c *gin.Context, fn func(uint, *models.User) (*models.Tenancy, error)) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	user := middleware.CurrentUser(c)
	tenancy, err := fn(uint(id), user)
	if err != nil {
		h.translateError(c, err)
		return
	}

	response.Success(c, tenancy)
}

// AddTenant 添加共同租客
func (h *TenancyHandler) AddTenant(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var req AddTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.service.AddTenant(uint(id), req.TenantID, user); err != nil {
		h.translateError(c, err)
		return
	}

	response.SuccessWithMessage(c, "添加成功", nil)
}

func (h *TenancyHandler) translateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.NotFound(c, "租约不存在")
	case errors.Is(err, services.ErrNotTenancyLandlord):
		response.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTenancyNotPending),
		errors.Is(err, services.ErrTenancyNotActive),
		errors.Is(err, services.ErrUnitOccupied):
		response.BadRequest(c, err.Error())
	default:
		response.ServerError(c, "操作失败")
	}
}
