package services

import (
	"testing"
	"time"

	"renthub/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedActiveTenancy 创建房东、单元和一份生效租约
func seedActiveTenancy(t *testing.T, db *gorm.DB, tenant *models.User) (*models.User, *models.Tenancy) {
	t.Helper()

	landlord, unit := seedUnit(t, db)
	service := NewTenancyServiceWithDB(db)

	tenancy, err := service.Apply(tenant.ID, unit.ID, time.Now(), nil)
	require.NoError(t, err)
	tenancy, err = service.Approve(tenancy.ID, landlord)
	require.NoError(t, err)
	return landlord, tenancy
}

func TestRecordPayment(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentServiceWithDB(db)

	tenant := createUser(t, db, "tenant@test.local", models.RoleTenant)
	_, tenancy := seedActiveTenancy(t, db, tenant)

	due := time.Now().AddDate(0, 1, 0)
	payment, err := service.Record(tenant, tenancy.ID, decimal.NewFromInt(2000), &due, models.PaymentMethodCard)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.True(t, payment.Amount.Equal(decimal.NewFromInt(2000)))
	require.NotNil(t, payment.DueDate)
}

func TestRecordPaymentRejectsNegativeAmount(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentServiceWithDB(db)

	tenant := createUser(t, db, "tenant@test.local", models.RoleTenant)
	_, tenancy := seedActiveTenancy(t, db, tenant)

	_, err := service.Record(tenant, tenancy.ID, decimal.NewFromInt(-100), nil, models.PaymentMethodCash)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestRecordPaymentMembership(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentServiceWithDB(db)

	tenant := createUser(t, db, "tenant@test.local", models.RoleTenant)
	stranger := createUser(t, db, "stranger@test.local", models.RoleTenant)
	landlord, tenancy := seedActiveTenancy(t, db, tenant)

	// 非参与租客不能登记
	_, err := service.Record(stranger, tenancy.ID, decimal.NewFromInt(100), nil, models.PaymentMethodBank)
	assert.ErrorIs(t, err, ErrNotTenancyMember)

	// 房东可以给自己房产下的租约登记
	_, err = service.Record(landlord, tenancy.ID, decimal.NewFromInt(100), nil, models.PaymentMethodBank)
	assert.NoError(t, err)

	// 别的房东不行
	other := createUser(t, db, "other@test.local", models.RoleLandlord)
	_, err = service.Record(other, tenancy.ID, decimal.NewFromInt(100), nil, models.PaymentMethodBank)
	assert.ErrorIs(t, err, ErrNotTenancyMember)
}

func TestListForUserPayments(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentServiceWithDB(db)

	tenant := createUser(t, db, "tenant@test.local", models.RoleTenant)
	stranger := createUser(t, db, "stranger@test.local", models.RoleTenant)
	landlord, tenancy := seedActiveTenancy(t, db, tenant)

	for i := 0; i < 3; i++ {
		_, err := service.Record(tenant, tenancy.ID, decimal.NewFromInt(2000), nil, models.PaymentMethodCard)
		require.NoError(t, err)
	}

	own, total, err := service.ListForUser(tenant, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, own, 3)

	_, total, err = service.ListForUser(stranger, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)

	_, total, err = service.ListForUser(landlord, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	// 分页
	page, _, err := service.ListForUser(tenant, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}

func TestMarkOverduePending(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentServiceWithDB(db)

	tenant := createUser(t, db, "tenant@test.local", models.RoleTenant)
	_, tenancy := seedActiveTenancy(t, db, tenant)

	now := time.Now()
	past := now.AddDate(0, 0, -3)
	future := now.AddDate(0, 0, 3)

	payments := []models.Payment{
		{TenancyID: tenancy.ID, Amount: decimal.NewFromInt(100), DueDate: &past, Status: models.PaymentStatusPending},
		{TenancyID: tenancy.ID, Amount: decimal.NewFromInt(100), DueDate: &future, Status: models.PaymentStatusPending},
		{TenancyID: tenancy.ID, Amount: decimal.NewFromInt(100), DueDate: &past, Status: models.PaymentStatusPaid},
		{TenancyID: tenancy.ID, Amount: decimal.NewFromInt(100), Status: models.PaymentStatusPending},
	}
	require.NoError(t, db.Create(&payments).Error)

	affected, err := service.MarkOverduePending(now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// 只有到期未付的那笔被置为overdue
	var overdue int64
	db.Model(&models.Payment{}).Where("status = ?", models.PaymentStatusOverdue).Count(&overdue)
	assert.Equal(t, int64(1), overdue)

	var paid models.Payment
	require.NoError(t, db.First(&paid, payments[2].ID).Error)
	assert.Equal(t, models.PaymentStatusPaid, paid.Status)
}
