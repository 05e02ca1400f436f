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

func TestUnitCreateRequiresOwner(t *testing.T) {
	db := newTestDB(t)
	service := NewUnitServiceWithDB(db)

	landlord := createUser(t, db, "landlord@test.local", models.RoleLandlord)
	other := createUser(t, db, "other@test.local", models.RoleLandlord)

	property := &models.Property{Name: "阳光公寓", Address: "测试路1号", LandlordID: landlord.ID}
	require.NoError(t, db.Create(property).Error)

	_, err := service.Create(property.ID, other, "101", decimal.NewFromInt(2000))
	assert.ErrorIs(t, err, ErrNotOwner)

	unit, err := service.Create(property.ID, landlord, "101", decimal.NewFromInt(2000))
	require.NoError(t, err)
	assert.True(t, unit.IsAvailable)
	assert.True(t, unit.RentAmount.Equal(decimal.NewFromInt(2000)))
}

func TestUnitUpdatePartialFields(t *testing.T) {
	db := newTestDB(t)
	service := NewUnitServiceWithDB(db)

	landlord, unit := seedUnit(t, db)

	newRent := decimal.NewFromInt(2500)
	updated, err := service.Update(unit.ID, landlord, "", &newRent, nil)
	require.NoError(t, err)

	// 名称保持原值，租金更新
	assert.Equal(t, "101", updated.Name)
	assert.True(t, updated.RentAmount.Equal(newRent))
	assert.True(t, updated.IsAvailable)

	unavailable := false
	updated, err = service.Update(unit.ID, landlord, "旗舰房", nil, &unavailable)
	require.NoError(t, err)
	assert.Equal(t, "旗舰房", updated.Name)
	assert.False(t, updated.IsAvailable)
}

func TestUnitUpdateCannotReleaseOccupiedUnit(t *testing.T) {
	db := newTestDB(t)
	service := NewUnitServiceWithDB(db)
	tenancyService := NewTenancyServiceWithDB(db)

	landlord, unit := seedUnit(t, db)
	tenant := createUser(t, db, "tenant@test.local", models.RoleTenant)

	tenancy, err := tenancyService.Apply(tenant.ID, unit.ID, time.Now(), nil)
	require.NoError(t, err)
	_, err = tenancyService.Approve(tenancy.ID, landlord)
	require.NoError(t, err)

	// 租约生效期间不能手动恢复可租
	available := true
	_, err = service.Update(unit.ID, landlord, "", nil, &available)
	assert.ErrorIs(t, err, ErrUnitOccupied)

	var fresh models.Unit
	require.NoError(t, db.First(&fresh, unit.ID).Error)
	assert.False(t, fresh.IsAvailable)

	// 被占用的单元不会回到搜索结果里
	properties, err := NewPropertyServiceWithDB(db).GetAllForSearch()
	require.NoError(t, err)
	assert.Empty(t, SearchProperties(properties, SearchParams{}))

	// 租约结束后才能恢复可租
	_, err = tenancyService.End(tenancy.ID, landlord)
	require.NoError(t, err)
	updated, err := service.Update(unit.ID, landlord, "", nil, &available)
	require.NoError(t, err)
	assert.True(t, updated.IsAvailable)
}

func TestUnitDelete(t *testing.T) {
	db := newTestDB(t)
	service := NewUnitServiceWithDB(db)

	landlord, unit := seedUnit(t, db)
	other := createUser(t, db, "other@test.local", models.RoleLandlord)

	assert.ErrorIs(t, service.Delete(unit.ID, other), ErrNotOwner)

	require.NoError(t, service.Delete(unit.ID, landlord))
	_, err := service.GetByID(unit.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
