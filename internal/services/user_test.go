package services

import (
	"testing"

	"renthub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRegister(t *testing.T) {
	db := newTestDB(t)
	service := NewUserServiceWithDB(db)

	user, err := service.Register("new@test.local", "Secret@123", "新用户", models.RoleTenant)
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, models.UserStatusActive, user.Status)
	assert.True(t, user.CheckPassword("Secret@123"))
	assert.False(t, user.CheckPassword("wrong"))
	// 密码只存哈希
	assert.NotEqual(t, "Secret@123", user.PasswordHash)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	db := newTestDB(t)
	service := NewUserServiceWithDB(db)

	_, err := service.Register("boss@test.local", "Secret@123", "想当管理员", models.RoleAdmin)
	assert.Error(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	service := NewUserServiceWithDB(db)

	_, err := service.Register("dup@test.local", "Secret@123", "第一个", models.RoleTenant)
	require.NoError(t, err)

	_, err = service.Register("dup@test.local", "Other@123", "第二个", models.RoleLandlord)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	service := NewUserServiceWithDB(db)

	user := createUser(t, db, "profile@test.local", models.RoleTenant)

	phone := "13800000000"
	updated, err := service.UpdateProfile(user.ID, "新名字", &phone, nil)
	require.NoError(t, err)

	assert.Equal(t, "新名字", updated.FullName)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, phone, *updated.Phone)
	assert.Nil(t, updated.Avatar)

	// 空姓名保持原值
	updated, err = service.UpdateProfile(user.ID, "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "新名字", updated.FullName)
}

func TestUpdateLastLogin(t *testing.T) {
	db := newTestDB(t)
	service := NewUserServiceWithDB(db)

	user := createUser(t, db, "login@test.local", models.RoleTenant)
	assert.Nil(t, user.LastLoginAt)

	require.NoError(t, service.UpdateLastLogin(user.ID))

	fresh, err := service.GetByID(user.ID)
	require.NoError(t, err)
	assert.NotNil(t, fresh.LastLoginAt)
}
