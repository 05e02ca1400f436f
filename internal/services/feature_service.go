package services

import (
	"renthub/internal/models"

	"gorm.io/gorm"
)

// FeatureService 可选模块能力检查
// 协议/维修工单的数据表可能不存在，启动时探测一次，之后按结果分流，
// 不做逐次请求的错误字符串嗅探
type FeatureService struct {
	agreements  bool
	maintenance bool
}

// NewFeatureService 探测可选模块数据表是否存在
func NewFeatureService(db *gorm.DB) *FeatureService {
	migrator := db.Migrator()
	return &FeatureService{
		agreements:  migrator.HasTable(&models.Agreement{}),
		maintenance: migrator.HasTable(&models.MaintenanceRequest{}),
	}
}

// AgreementsEnabled 协议模块是否可用
func (s *FeatureService) AgreementsEnabled() bool {
	return s.agreements
}

// MaintenanceEnabled 维修工单模块是否可用
func (s *FeatureService) MaintenanceEnabled() bool {
	return s.maintenance
}
