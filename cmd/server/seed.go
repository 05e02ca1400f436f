package main

import (
	"fmt"
	"time"

	"renthub/internal/database"
	"renthub/internal/models"
	"renthub/pkg/config"
	"renthub/pkg/logger"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// seedData 初始化种子数据
func seedData() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting seed data initialization...")

	db := database.GetDB()
	cfg := config.GetConfig()

	// 1. 创建默认管理员用户
	if err := createDefaultAdmin(db, cfg); err != nil {
		return fmt.Errorf("创建默认管理员失败: %v", err)
	}

	// 2. 写入演示数据（可选）
	if cfg.Seed.Demo {
		if err := createDemoData(db); err != nil {
			return fmt.Errorf("写入演示数据失败: %v", err)
		}
	}

	appLogger.Info("Seed data initialization completed successfully")
	return nil
}

// createDefaultAdmin 创建默认管理员用户
func createDefaultAdmin(db *gorm.DB, cfg *config.Config) error {
	var count int64
	db.Model(&models.User{}).Where("email = ?", cfg.Seed.AdminEmail).Count(&count)
	if count > 0 {
		logger.GetLogger().Info("管理员用户已存在，跳过创建")
		return nil
	}

	user := &models.User{
		Email:    cfg.Seed.AdminEmail,
		FullName: cfg.Seed.AdminName,
		Role:     models.RoleAdmin,
		Status:   models.UserStatusActive,
	}

	// 设置密码
	if err := user.SetPassword(cfg.Seed.AdminPassword); err != nil {
		return fmt.Errorf("设置密码失败: %v", err)
	}

	if err := db.Create(user).Error; err != nil {
		return err
	}

	logger.GetLogger().Infof("默认管理员创建成功 - 邮箱: %s", cfg.Seed.AdminEmail)
	return nil
}

// createDemoData 创建演示用的房东、租客、房源和租约
func createDemoData(db *gorm.DB) error {
	var count int64
	db.Model(&models.User{}).Where("email = ?", "landlord@renthub.local").Count(&count)
	if count > 0 {
		logger.GetLogger().Info("演示数据已存在，跳过创建")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		landlord := &models.User{
			Email:    "landlord@renthub.local",
			FullName: "演示房东",
			Role:     models.RoleLandlord,
			Status:   models.UserStatusActive,
		}
		if err := landlord.SetPassword("Landlord@123"); err != nil {
			return err
		}
		if err := tx.Create(landlord).Error; err != nil {
			return err
		}

		tenant := &models.User{
			Email:    "tenant@renthub.local",
			FullName: "演示租客",
			Role:     models.RoleTenant,
			Status:   models.UserStatusActive,
		}
		if err := tenant.SetPassword("Tenant@123"); err != nil {
			return err
		}
		if err := tx.Create(tenant).Error; err != nil {
			return err
		}

		property := &models.Property{
			Name:        "阳光公寓",
			Address:     "示例市示例区示例路100号",
			Description: "近地铁，拎包入住",
			LandlordID:  landlord.ID,
		}
		if err := tx.Create(property).Error; err != nil {
			return err
		}

		units := []models.Unit{
			{PropertyID: property.ID, Name: "A-101", RentAmount: decimal.NewFromInt(2800), IsAvailable: true},
			{PropertyID: property.ID, Name: "A-102", RentAmount: decimal.NewFromInt(3200), IsAvailable: false},
		}
		if err := tx.Create(&units).Error; err != nil {
			return err
		}

		// 演示租客在A-102上的生效租约
		start := time.Now().AddDate(0, -2, 0)
		tenancy := &models.Tenancy{
			UnitID:    units[1].ID,
			Status:    models.TenancyStatusActive,
			StartDate: start,
		}
		if err := tx.Create(tenancy).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.TenancyTenant{TenancyID: tenancy.ID, TenantID: tenant.ID}).Error; err != nil {
			return err
		}

		// 一笔已付和一笔待付的租金记录
		paidDue := start.AddDate(0, 1, 0)
		pendingDue := time.Now().AddDate(0, 0, 5)
		payments := []models.Payment{
			{TenancyID: tenancy.ID, Amount: decimal.NewFromInt(3200), DueDate: &paidDue, Status: models.PaymentStatusPaid, Method: models.PaymentMethodCard},
			{TenancyID: tenancy.ID, Amount: decimal.NewFromInt(3200), DueDate: &pendingDue, Status: models.PaymentStatusPending, Method: models.PaymentMethodBank},
		}
		if err := tx.Create(&payments).Error; err != nil {
			return err
		}

		logger.GetLogger().Info("演示数据创建成功")
		return nil
	})
}
