package services

import (
	"math"
	"renthub/internal/models"
	"time"

	"github.com/shopspring/decimal"
)

// 租金状态标签
const (
	RentStatusCurrent  = "Current"
	RentStatusDueSoon  = "Due Soon"
	RentStatusDueToday = "Due Today"
	RentStatusOverdue  = "Overdue"
)

// RentStatus 租金状态派生结果
type RentStatus struct {
	ActiveTenancy  *models.Tenancy `json:"active_tenancy,omitempty"`
	NextDuePayment *models.Payment `json:"next_due_payment,omitempty"`
	DaysTillDue    *int            `json:"days_till_due,omitempty"`
	Status         string          `json:"status"`
	Urgent         bool            `json:"urgent"`
	TotalDue       decimal.Decimal `json:"total_due"`
}

// ActiveTenancy 返回第一个active状态的租约（按输入顺序），没有则返回nil
// 系统假定每个租客同时最多一个active租约
func ActiveTenancy(tenancies []models.Tenancy) *models.Tenancy {
	for i := range tenancies {
		if tenancies[i].Status == models.TenancyStatusActive {
			return &tenancies[i]
		}
	}
	return nil
}

// NextDuePayment 在所有租约的缴费记录中找到期日最早的一笔
// 只考虑带到期日的记录；到期日相同时保留输入顺序靠前的一笔
func NextDuePayment(tenancies []models.Tenancy) *models.Payment {
	var next *models.Payment
	for i := range tenancies {
		for j := range tenancies[i].Payments {
			p := &tenancies[i].Payments[j]
			if p.DueDate == nil {
				continue
			}
			if next == nil || p.DueDate.Before(*next.DueDate) {
				next = p
			}
		}
	}
	return next
}

// DaysTillDue 计算距离到期日的整天数，向上取整
// 渲染时以当前时间实时计算，不做缓存
func DaysTillDue(due, now time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}

// classify 按顺序匹配状态，命中即返回
func classify(daysTillDue *int) (string, bool) {
	if daysTillDue == nil {
		return RentStatusCurrent, false
	}
	days := *daysTillDue
	switch {
	case days < 0:
		return RentStatusOverdue, true
	case days == 0:
		return RentStatusDueToday, true
	case days <= 7:
		return RentStatusDueSoon, true
	default:
		return RentStatusCurrent, false
	}
}

// DeriveRentStatus 根据租约及其缴费记录派生租金状态
// 纯函数：输出只取决于输入和now，无副作用；缺失到期日按无数据处理，不报错
func DeriveRentStatus(tenancies []models.Tenancy, now time.Time) *RentStatus {
	result := &RentStatus{
		ActiveTenancy: ActiveTenancy(tenancies),
		TotalDue:      decimal.Zero,
	}

	result.NextDuePayment = NextDuePayment(tenancies)
	if result.NextDuePayment != nil {
		days := DaysTillDue(*result.NextDuePayment.DueDate, now)
		result.DaysTillDue = &days
		result.TotalDue = result.NextDuePayment.Amount
	}

	result.Status, result.Urgent = classify(result.DaysTillDue)
	return result
}
