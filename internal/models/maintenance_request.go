package models

import (
	"gorm.io/datatypes"
)

// MaintenanceRequest 维修工单（可选模块，表可能不存在）
type MaintenanceRequest struct {
	BaseModel
	TenantID    uint           `json:"tenant_id" gorm:"not null;index"`
	PropertyID  *uint          `json:"property_id" gorm:"index"`
	UnitID      *uint          `json:"unit_id" gorm:"index"`
	Title       string         `json:"title" gorm:"not null;size:200"`
	Description string         `json:"description" gorm:"size:1000"`
	Status      string         `json:"status" gorm:"default:'open';size:20;index"`
	Photos      datatypes.JSON `json:"photos"` // 照片URL列表

	// 关联
	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}

// TableName 表名
func (m *MaintenanceRequest) TableName() string {
	return "maintenance_requests"
}

// 工单状态常量
const (
	MaintenanceStatusOpen       = "open"
	MaintenanceStatusInProgress = "in_progress"
	MaintenanceStatusResolved   = "resolved"
)
