package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment 缴费记录模型（创建后不可修改，无更新/删除接口）
type Payment struct {
	BaseModel
	TenancyID uint            `json:"tenancy_id" gorm:"not null;index"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	DueDate   *time.Time      `json:"due_date" gorm:"index"`
	Status    string          `json:"status" gorm:"default:'pending';size:20;index"`
	Method    string          `json:"method" gorm:"size:20"` // card/bank/cash，可为空

	// 关联
	Tenancy *Tenancy `json:"tenancy,omitempty" gorm:"foreignKey:TenancyID"`
}

// TableName 表名
func (p *Payment) TableName() string {
	return "payments"
}

// 缴费状态常量
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusOverdue = "overdue"
)

// 缴费方式常量
const (
	PaymentMethodCard = "card"
	PaymentMethodBank = "bank"
	PaymentMethodCash = "cash"
)
