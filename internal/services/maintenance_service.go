package services

import (
	"encoding/json"
	"errors"
	"renthub/internal/database"
	"renthub/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrInvalidMaintenanceStatus 非法的工单状态
var ErrInvalidMaintenanceStatus = errors.New("工单状态只能是 open/in_progress/resolved")

type MaintenanceService struct {
	db       *gorm.DB
	features *FeatureService
}

func NewMaintenanceService(features *FeatureService) *MaintenanceService {
	return &MaintenanceService{
		db:       database.GetDB(),
		features: features,
	}
}

// NewMaintenanceServiceWithDB 注入数据库实例（测试用）
func NewMaintenanceServiceWithDB(db *gorm.DB, features *FeatureService) *MaintenanceService {
	return &MaintenanceService{db: db, features: features}
}

// ListForUser 按角色过滤维修工单
// 模块未启用时返回空列表，不报错
func (s *MaintenanceService) ListForUser(user *models.User) ([]models.MaintenanceRequest, error) {
	if s.features != nil && !s.features.MaintenanceEnabled() {
		return []models.MaintenanceRequest{}, nil
	}

	var requests []models.MaintenanceRequest
	query := s.db.Model(&models.MaintenanceRequest{})

	switch user.Role {
	case models.RoleTenant:
		query = query.Where("tenant_id = ?", user.ID)
	case models.RoleLandlord:
		query = query.Where("property_id IN (?)",
			s.db.Model(&models.Property{}).Select("id").Where("landlord_id = ?", user.ID))
	}

	err := query.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// Create 租客提交维修工单
func (s *MaintenanceService) Create(tenantID uint, propertyID, unitID *uint, title, description string, photos []string) (*models.MaintenanceRequest, error) {
	if s.features != nil && !s.features.MaintenanceEnabled() {
		return nil, gorm.ErrInvalidDB
	}

	var photosJSON datatypes.JSON
	if len(photos) > 0 {
		data, err := json.Marshal(photos)
		if err != nil {
			return nil, err
		}
		photosJSON = datatypes.JSON(data)
	}

	request := &models.MaintenanceRequest{
		TenantID:    tenantID,
		PropertyID:  propertyID,
		UnitID:      unitID,
		Title:       title,
		Description: description,
		Status:      models.MaintenanceStatusOpen,
		Photos:      photosJSON,
	}
	err := s.db.Create(request).Error
	return request, err
}

// UpdateStatus 房东/管理员推进工单状态
func (s *MaintenanceService) UpdateStatus(id uint, operator *models.User, status string) (*models.MaintenanceRequest, error) {
	switch status {
	case models.MaintenanceStatusOpen, models.MaintenanceStatusInProgress, models.MaintenanceStatusResolved:
	default:
		return nil, ErrInvalidMaintenanceStatus
	}

	var request models.MaintenanceRequest
	if err := s.db.First(&request, id).Error; err != nil {
		return nil, err
	}

	// 未关联房产的工单只有管理员能处理
	if !operator.IsAdmin() {
		if request.PropertyID == nil {
			return nil, ErrNotOwner
		}
		var property models.Property
		if err := s.db.First(&property, *request.PropertyID).Error; err != nil {
			return nil, err
		}
		if property.LandlordID != operator.ID {
			return nil, ErrNotOwner
		}
	}

	request.Status = status
	err := s.db.Save(&request).Error
	return &request, err
}
