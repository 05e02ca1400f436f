package models

import (
	"time"
)

// Tenancy 租约模型（租客与单元在一段时间内的租赁关系）
type Tenancy struct {
	BaseModel
	UnitID    uint       `json:"unit_id" gorm:"not null;index"`
	Status    string     `json:"status" gorm:"default:'pending';size:20;index"`
	StartDate time.Time  `json:"start_date" gorm:"not null"`
	EndDate   *time.Time `json:"end_date"`

	// 关联
	Unit     *Unit           `json:"unit,omitempty" gorm:"foreignKey:UnitID"`
	Tenants  []TenancyTenant `json:"tenants,omitempty" gorm:"foreignKey:TenancyID"`
	Payments []Payment       `json:"payments,omitempty" gorm:"foreignKey:TenancyID"`
}

// TableName 表名
func (t *Tenancy) TableName() string {
	return "tenancies"
}

// 租约状态常量
const (
	TenancyStatusPending = "pending"
	TenancyStatusActive  = "active"
	TenancyStatusEnded   = "ended"
)

// TenancyTenant 租约参与人（一个租约可有多个租客）
type TenancyTenant struct {
	BaseModel
	TenancyID uint `json:"tenancy_id" gorm:"not null;index;uniqueIndex:idx_tenancy_tenant"`
	TenantID  uint `json:"tenant_id" gorm:"not null;index;uniqueIndex:idx_tenancy_tenant"`

	// 关联
	Tenant *User `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
}

// TableName 表名
func (tt *TenancyTenant) TableName() string {
	return "tenancy_tenants"
}

// HasTenant 检查指定用户是否为该租约的租客
func (t *Tenancy) HasTenant(userID uint) bool {
	for _, tt := range t.Tenants {
		if tt.TenantID == userID {
			return true
		}
	}
	return false
}
