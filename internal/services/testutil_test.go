package services

import (
	"testing"

	"renthub/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 创建独立的内存数据库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// 内存库绑定单连接，连接关闭即销毁
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.PropertyImage{},
		&models.PropertyRating{},
		&models.Unit{},
		&models.Tenancy{},
		&models.TenancyTenant{},
		&models.Payment{},
		&models.Agreement{},
		&models.MaintenanceRequest{},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

// createUser 写入测试用户
func createUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	user := &models.User{
		Email:    email,
		FullName: "测试用户",
		Role:     role,
		Status:   models.UserStatusActive,
	}
	require.NoError(t, user.SetPassword("Test@123"))
	require.NoError(t, db.Create(user).Error)
	return user
}
