package handlers

import (
	"errors"
	"time"

	"renthub/internal/middleware"
	"renthub/internal/models"
	"renthub/internal/services"
	"renthub/pkg/pagination"
	"renthub/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentHandler struct {
	service *services.PaymentService
}

func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		service: service,
	}
}

type RecordPaymentRequest struct {
	TenancyID uint            `json:"tenancy_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	DueDate   string          `json:"due_date"` // 2006-01-02，可为空
	Method    string          `json:"method"`   // card/bank/cash，可为空
}

// GetAll 缴费记录列表（按角色过滤，分页）
func (h *PaymentHandler) GetAll(c *gin.Context) {
	user := middleware.CurrentUser(c)
	pageParams := pagination.ParsePageParams(c)

	payments, total, err := h.service.ListForUser(user, pageParams.Page, pageParams.PageSize)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, total)
	response.SuccessWithPage(c, payments, pageInfo)
}

// Record 登记缴费记录（创建后不可修改）
func (h *PaymentHandler) Record(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	switch req.Method {
	case "", models.PaymentMethodCard, models.PaymentMethodBank, models.PaymentMethodCash:
	default:
		response.BadRequest(c, "缴费方式只能是 card/bank/cash")
		return
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			response.BadRequest(c, "due_date格式错误，应为YYYY-MM-DD")
			return
		}
		dueDate = &parsed
	}

	user := middleware.CurrentUser(c)
	payment, err := h.service.Record(user, req.TenancyID, req.Amount, dueDate, req.Method)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.NotFound(c, "租约不存在")
		case errors.Is(err, services.ErrNotTenancyMember):
			response.Forbidden(c, err.Error())
		case errors.Is(err, services.ErrNegativeAmount):
			response.BadRequest(c, err.Error())
		default:
			response.ServerError(c, "登记失败")
		}
		return
	}

	response.SuccessWithMessage(c, "缴费登记成功", payment)
}
