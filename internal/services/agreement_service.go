package services

import (
	"renthub/internal/database"
	"renthub/internal/models"

	"gorm.io/gorm"
)

type AgreementService struct {
	db       *gorm.DB
	features *FeatureService
}

func NewAgreementService(features *FeatureService) *AgreementService {
	return &AgreementService{
		db:       database.GetDB(),
		features: features,
	}
}

// NewAgreementServiceWithDB 注入数据库实例（测试用）
func NewAgreementServiceWithDB(db *gorm.DB, features *FeatureService) *AgreementService {
	return &AgreementService{db: db, features: features}
}

// ListForUser 按角色过滤协议列表
// 模块未启用时返回空列表，不报错
func (s *AgreementService) ListForUser(user *models.User) ([]models.Agreement, error) {
	if s.features != nil && !s.features.AgreementsEnabled() {
		return []models.Agreement{}, nil
	}

	var agreements []models.Agreement
	query := s.db.Model(&models.Agreement{})

	switch user.Role {
	case models.RoleTenant:
		query = query.Where("tenancy_id IN (?)",
			s.db.Model(&models.TenancyTenant{}).Select("tenancy_id").Where("tenant_id = ?", user.ID))
	case models.RoleLandlord:
		query = query.Where("tenancy_id IN (?)",
			s.db.Model(&models.Tenancy{}).Select("tenancies.id").
				Joins("JOIN units ON units.id = tenancies.unit_id").
				Joins("JOIN properties ON properties.id = units.property_id").
				Where("properties.landlord_id = ?", user.ID))
	}

	err := query.Order("created_at DESC").Find(&agreements).Error
	return agreements, err
}

// Create 房东/管理员为租约创建协议
func (s *AgreementService) Create(operator *models.User, tenancyID uint, title, fileURL string) (*models.Agreement, error) {
	if s.features != nil && !s.features.AgreementsEnabled() {
		return nil, gorm.ErrInvalidDB
	}

	var tenancy models.Tenancy
	if err := s.db.First(&tenancy, tenancyID).Error; err != nil {
		return nil, err
	}

	if !operator.IsAdmin() {
		if err := NewTenancyServiceWithDB(s.db).checkLandlord(&tenancy, operator); err != nil {
			return nil, err
		}
	}

	agreement := &models.Agreement{
		TenancyID: tenancyID,
		Title:     title,
		Status:    models.AgreementStatusDraft,
		FileURL:   fileURL,
	}
	err := s.db.Create(agreement).Error
	return agreement, err
}
