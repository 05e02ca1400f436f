package models

import (
	"github.com/shopspring/decimal"
)

// Unit 房屋单元模型（房产下可出租的最小单位）
type Unit struct {
	BaseModel
	PropertyID  uint            `json:"property_id" gorm:"not null;index"`
	Name        string          `json:"name" gorm:"not null;size:100"`
	RentAmount  decimal.Decimal `json:"rent_amount" gorm:"type:decimal(10,2);not null"`
	IsAvailable bool            `json:"is_available" gorm:"default:true"`

	// 关联
	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}

// TableName 表名
func (u *Unit) TableName() string {
	return "units"
}
