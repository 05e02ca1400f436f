package handlers

import (
	"errors"
	"strconv"

	"renthub/internal/middleware"
	"renthub/internal/services"
	"renthub/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UnitHandler struct {
	service *services.UnitService
}

func NewUnitHandler(service *services.UnitService) *UnitHandler {
	return &UnitHandler{
		service: service,
	}
}

type CreateUnitRequest struct {
	Name       string          `json:"name" binding:"required"`
	RentAmount decimal.Decimal `json:"rent_amount" binding:"required"`
}

type UpdateUnitRequest struct {
	Name        string           `json:"name"`
	RentAmount  *decimal.Decimal `json:"rent_amount"`
	IsAvailable *bool            `json:"is_available"`
}

// Create 在房产下创建单元
func (h *UnitHandler) Create(c *gin.Context) {
	propertyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var req CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	if req.RentAmount.IsNegative() {
		response.BadRequest(c, "租金不能为负数")
		return
	}

	user := middleware.CurrentUser(c)
	unit, err := h.service.Create(uint(propertyID), user, req.Name, req.RentAmount)
	if err != nil {
		h.translateError(c, err, "创建失败")
		return
	}

	response.Success(c, unit)
}

// Update 更新单元
func (h *UnitHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var req UpdateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	if req.RentAmount != nil && req.RentAmount.IsNegative() {
		response.BadRequest(c, "租金不能为负数")
		return
	}

	user := middleware.CurrentUser(c)
	unit, err := h.service.Update(uint(id), user, req.Name, req.RentAmount, req.IsAvailable)
	if err != nil {
		h.translateError(c, err, "更新失败")
		return
	}

	response.Success(c, unit)
}

// Delete 删除单元
func (h *UnitHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.service.Delete(uint(id), user); err != nil {
		h.translateError(c, err, "删除失败")
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

func (h *UnitHandler) translateError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.NotFound(c, "记录不存在")
	case errors.Is(err, services.ErrNotOwner):
		response.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrUnitOccupied):
		response.BadRequest(c, err.Error())
	default:
		response.ServerError(c, fallback)
	}
}
