package models

// Property 房产模型 - 贫血模型，只包含数据结构
type Property struct {
	BaseModel
	Name        string `json:"name" gorm:"not null;size:100;index"`
	Address     string `json:"address" gorm:"not null;size:255"`
	Description string `json:"description" gorm:"size:500"`
	LandlordID  uint   `json:"landlord_id" gorm:"not null;index"`

	// 关联
	Landlord *User            `json:"landlord,omitempty" gorm:"foreignKey:LandlordID"`
	Units    []Unit           `json:"units,omitempty" gorm:"foreignKey:PropertyID"`
	Images   []PropertyImage  `json:"images,omitempty" gorm:"foreignKey:PropertyID"`
	Ratings  []PropertyRating `json:"ratings,omitempty" gorm:"foreignKey:PropertyID"`
}

// TableName 表名
func (p *Property) TableName() string {
	return "properties"
}

// PropertyImage 房产图片
type PropertyImage struct {
	BaseModel
	PropertyID uint   `json:"property_id" gorm:"not null;index"`
	URL        string `json:"url" gorm:"not null;size:255"`
	FileName   string `json:"file_name" gorm:"size:255"` // 存储文件名（uuid+扩展名）
}

// TableName 表名
func (i *PropertyImage) TableName() string {
	return "property_images"
}

// PropertyRating 房产评分
type PropertyRating struct {
	BaseModel
	PropertyID uint   `json:"property_id" gorm:"not null;index"`
	TenantID   uint   `json:"tenant_id" gorm:"not null;index"`
	Rating     int    `json:"rating" gorm:"not null"` // 1-5
	Comment    string `json:"comment" gorm:"size:500"`
}

// TableName 表名
func (r *PropertyRating) TableName() string {
	return "property_ratings"
}

// AverageRating 计算平均评分，无评分时返回0
func (p *Property) AverageRating() float64 {
	if len(p.Ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range p.Ratings {
		sum += r.Rating
	}
	return float64(sum) / float64(len(p.Ratings))
}

// AvailableUnits 返回当前可租的单元
func (p *Property) AvailableUnits() []Unit {
	available := make([]Unit, 0, len(p.Units))
	for _, u := range p.Units {
		if u.IsAvailable {
			available = append(available, u)
		}
	}
	return available
}
