package models

// Agreement 租约协议文档（可选模块，表可能不存在）
type Agreement struct {
	BaseModel
	TenancyID uint   `json:"tenancy_id" gorm:"not null;index"`
	Title     string `json:"title" gorm:"size:200"`
	Status    string `json:"status" gorm:"default:'draft';size:20"`
	FileURL   string `json:"file_url" gorm:"size:255"`
}

// TableName 表名
func (a *Agreement) TableName() string {
	return "agreements"
}

// 协议状态常量
const (
	AgreementStatusDraft  = "draft"
	AgreementStatusSigned = "signed"
)
