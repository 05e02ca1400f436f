package services

import (
	"encoding/json"
	"testing"
	"time"

	"renthub/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAgreementCreateAndList(t *testing.T) {
	db := newTestDB(t)
	features := NewFeatureService(db)
	service := NewAgreementServiceWithDB(db, features)

	tenant := createUser(t, db, "tenant@test.local", models.RoleTenant)
	landlord, tenancy := seedActiveTenancy(t, db, tenant)
	other := createUser(t, db, "other@test.local", models.RoleLandlord)

	// 非租约房东不能创建协议
	_, err := service.Create(other, tenancy.ID, "租赁协议", "/files/a.pdf")
	assert.ErrorIs(t, err, ErrNotTenancyLandlord)

	agreement, err := service.Create(landlord, tenancy.ID, "租赁协议", "/files/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, models.AgreementStatusDraft, agreement.Status)

	// 参与租客能看到
	list, err := service.ListForUser(tenant)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	// 旁观租客看不到
	stranger := createUser(t, db, "stranger@test.local", models.RoleTenant)
	list, err = service.ListForUser(stranger)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAgreementDisabledModule(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrator().DropTable(&models.Agreement{}))

	features := NewFeatureService(db)
	service := NewAgreementServiceWithDB(db, features)

	tenant := createUser(t, db, "tenant@test.local", models.RoleTenant)
	landlord, tenancy := seedActiveTenancy(t, db, tenant)

	// 未启用时列表为空、创建报错
	list, err := service.ListForUser(tenant)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = service.Create(landlord, tenancy.ID, "租赁协议", "")
	assert.ErrorIs(t, err, gorm.ErrInvalidDB)
}

func TestMaintenanceLifecycle(t *testing.T) {
	db := newTestDB(t)
	features := NewFeatureService(db)
	service := NewMaintenanceServiceWithDB(db, features)

	landlord, unit := seedUnit(t, db)
	tenant := createUser(t, db, "tenant@test.local", models.RoleTenant)
	other := createUser(t, db, "other@test.local", models.RoleLandlord)

	request, err := service.Create(tenant.ID, &unit.PropertyID, &unit.ID,
		"水管漏水", "厨房水管接头渗水", []string{"/static/leak1.jpg", "/static/leak2.jpg"})
	require.NoError(t, err)
	assert.Equal(t, models.MaintenanceStatusOpen, request.Status)

	var photos []string
	require.NoError(t, json.Unmarshal(request.Photos, &photos))
	assert.Len(t, photos, 2)

	// 非房产房东不能推进状态
	_, err = service.UpdateStatus(request.ID, other, models.MaintenanceStatusInProgress)
	assert.ErrorIs(t, err, ErrNotOwner)

	updated, err := service.UpdateStatus(request.ID, landlord, models.MaintenanceStatusResolved)
	require.NoError(t, err)
	assert.Equal(t, models.MaintenanceStatusResolved, updated.Status)

	// 租客看自己的，房东看名下房产的
	own, err := service.ListForUser(tenant)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	mine, err := service.ListForUser(landlord)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	none, err := service.ListForUser(createUser(t, db, "else@test.local", models.RoleTenant))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMaintenanceUpdateStatusValidatesInput(t *testing.T) {
	db := newTestDB(t)
	features := NewFeatureService(db)
	service := NewMaintenanceServiceWithDB(db, features)

	landlord, unit := seedUnit(t, db)
	tenant := createUser(t, db, "tenant@test.local", models.RoleTenant)

	request, err := service.Create(tenant.ID, &unit.PropertyID, &unit.ID, "门锁损坏", "", nil)
	require.NoError(t, err)

	_, err = service.UpdateStatus(request.ID, landlord, "closed")
	assert.ErrorIs(t, err, ErrInvalidMaintenanceStatus)

	var fresh models.MaintenanceRequest
	require.NoError(t, db.First(&fresh, request.ID).Error)
	assert.Equal(t, models.MaintenanceStatusOpen, fresh.Status)
}

func TestMaintenanceWithoutPropertyOnlyAdminUpdates(t *testing.T) {
	db := newTestDB(t)
	features := NewFeatureService(db)
	service := NewMaintenanceServiceWithDB(db, features)

	landlord, _ := seedUnit(t, db)
	tenant := createUser(t, db, "tenant@test.local", models.RoleTenant)
	admin := createUser(t, db, "admin@test.local", models.RoleAdmin)

	// 未关联房产的工单无从判断归属，房东不能处理
	request, err := service.Create(tenant.ID, nil, nil, "公共区域灯坏", "", nil)
	require.NoError(t, err)

	_, err = service.UpdateStatus(request.ID, landlord, models.MaintenanceStatusInProgress)
	assert.ErrorIs(t, err, ErrNotOwner)

	updated, err := service.UpdateStatus(request.ID, admin, models.MaintenanceStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.MaintenanceStatusInProgress, updated.Status)
}

func TestMaintenanceDisabledModule(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrator().DropTable(&models.MaintenanceRequest{}))

	features := NewFeatureService(db)
	service := NewMaintenanceServiceWithDB(db, features)

	tenant := createUser(t, db, "tenant@test.local", models.RoleTenant)

	_, err := service.Create(tenant.ID, nil, nil, "报修", "", nil)
	assert.ErrorIs(t, err, gorm.ErrInvalidDB)
}

func TestOverdueSchedulerSweep(t *testing.T) {
	db := newTestDB(t)

	tenant := createUser(t, db, "tenant@test.local", models.RoleTenant)
	_, tenancy := seedActiveTenancy(t, db, tenant)

	past := time.Now().AddDate(0, 0, -1)
	require.NoError(t, db.Create(&models.Payment{
		TenancyID: tenancy.ID,
		Amount:    decimal.NewFromInt(500),
		DueDate:   &past,
		Status:    models.PaymentStatusPending,
	}).Error)

	scheduler := NewOverdueScheduler(db)
	require.NoError(t, scheduler.Start())
	defer scheduler.Stop()

	// 启动时立即扫一遍
	assert.Eventually(t, func() bool {
		var count int64
		db.Model(&models.Payment{}).Where("status = ?", models.PaymentStatusOverdue).Count(&count)
		return count == 1
	}, 2*time.Second, 50*time.Millisecond)
}
