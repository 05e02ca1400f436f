package services

import (
	"testing"
	"time"

	"renthub/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(t time.Time) *time.Time {
	return &t
}

func TestDeriveRentStatusClassification(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		due        time.Time
		wantStatus string
		wantUrgent bool
		wantDays   int
	}{
		{"逾期", now.Add(-48 * time.Hour), RentStatusOverdue, true, -2},
		{"今天到期", now.Add(-6 * time.Hour), RentStatusDueToday, true, 0},
		{"明天到期", now.Add(24 * time.Hour), RentStatusDueSoon, true, 1},
		{"七天内到期", now.Add(7 * 24 * time.Hour), RentStatusDueSoon, true, 7},
		{"八天后到期", now.Add(8 * 24 * time.Hour), RentStatusCurrent, false, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tenancies := []models.Tenancy{{
				Status: models.TenancyStatusActive,
				Payments: []models.Payment{{
					Amount:  decimal.NewFromInt(1500),
					DueDate: datePtr(tt.due),
					Status:  models.PaymentStatusPending,
				}},
			}}

			result := DeriveRentStatus(tenancies, now)

			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, tt.wantUrgent, result.Urgent)
			require.NotNil(t, result.DaysTillDue)
			assert.Equal(t, tt.wantDays, *result.DaysTillDue)
			assert.True(t, result.TotalDue.Equal(decimal.NewFromInt(1500)))
		})
	}
}

func TestDeriveRentStatusNoDueDate(t *testing.T) {
	now := time.Now()
	tenancies := []models.Tenancy{{
		Status: models.TenancyStatusActive,
		Payments: []models.Payment{{
			Amount: decimal.NewFromInt(900),
			Status: models.PaymentStatusPending,
		}},
	}}

	result := DeriveRentStatus(tenancies, now)

	assert.Equal(t, RentStatusCurrent, result.Status)
	assert.False(t, result.Urgent)
	assert.Nil(t, result.DaysTillDue)
	assert.Nil(t, result.NextDuePayment)
	assert.True(t, result.TotalDue.IsZero())
}

func TestDeriveRentStatusEmpty(t *testing.T) {
	result := DeriveRentStatus(nil, time.Now())

	assert.Nil(t, result.ActiveTenancy)
	assert.Nil(t, result.NextDuePayment)
	assert.Equal(t, RentStatusCurrent, result.Status)
	assert.False(t, result.Urgent)
	assert.True(t, result.TotalDue.IsZero())
}

func TestNextDuePaymentPicksEarliest(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	early := now.AddDate(0, 0, 3)
	late := now.AddDate(0, 1, 0)

	tenancies := []models.Tenancy{
		{
			Status: models.TenancyStatusEnded,
			Payments: []models.Payment{
				{Amount: decimal.NewFromInt(100), DueDate: datePtr(late)},
			},
		},
		{
			Status: models.TenancyStatusActive,
			Payments: []models.Payment{
				{Amount: decimal.NewFromInt(200)}, // 没有到期日，不参与
				{Amount: decimal.NewFromInt(300), DueDate: datePtr(early)},
			},
		},
	}

	next := NextDuePayment(tenancies)

	require.NotNil(t, next)
	assert.True(t, next.Amount.Equal(decimal.NewFromInt(300)))
}

func TestNextDuePaymentStableOnTie(t *testing.T) {
	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	tenancies := []models.Tenancy{{
		Payments: []models.Payment{
			{Amount: decimal.NewFromInt(111), DueDate: datePtr(due)},
			{Amount: decimal.NewFromInt(222), DueDate: datePtr(due)},
		},
	}}

	next := NextDuePayment(tenancies)

	// 到期日相同时保留输入顺序靠前的一笔
	require.NotNil(t, next)
	assert.True(t, next.Amount.Equal(decimal.NewFromInt(111)))
}

func TestActiveTenancySkipsNonActive(t *testing.T) {
	tenancies := []models.Tenancy{
		{Status: models.TenancyStatusPending},
		{Status: models.TenancyStatusEnded},
		{Status: models.TenancyStatusActive, UnitID: 42},
	}

	active := ActiveTenancy(tenancies)

	require.NotNil(t, active)
	assert.Equal(t, uint(42), active.UnitID)
}

func TestDaysTillDueCeiling(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	// 不足一天按一天算
	assert.Equal(t, 1, DaysTillDue(now.Add(1*time.Hour), now))
	// 过期不足一天算今天
	assert.Equal(t, 0, DaysTillDue(now.Add(-12*time.Hour), now))
	assert.Equal(t, -1, DaysTillDue(now.Add(-25*time.Hour), now))
}
