package database

import (
	"renthub/internal/models"
	"renthub/pkg/config"
	"renthub/pkg/logger"
)

// Migrate 执行数据库迁移
func Migrate() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting database migration...")

	// 核心业务表
	err := DB.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.PropertyImage{},
		&models.PropertyRating{},
		&models.Unit{},
		&models.Tenancy{},
		&models.TenancyTenant{},
		&models.Payment{},
	)
	if err != nil {
		appLogger.Errorf("Database migration failed: %v", err)
		return err
	}

	// 可选模块表（协议/维修工单），由配置开关控制
	if config.GetConfig().Features.Extras {
		err = DB.AutoMigrate(
			&models.Agreement{},
			&models.MaintenanceRequest{},
		)
		if err != nil {
			appLogger.Errorf("Extras migration failed: %v", err)
			return err
		}
	}

	appLogger.Info("Database migration completed successfully")
	return nil
}
