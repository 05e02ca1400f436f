package services

import (
	"renthub/internal/database"
	"renthub/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UnitService struct {
	db *gorm.DB
}

func NewUnitService() *UnitService {
	return &UnitService{
		db: database.GetDB(),
	}
}

// NewUnitServiceWithDB 注入数据库实例（测试用）
func NewUnitServiceWithDB(db *gorm.DB) *UnitService {
	return &UnitService{db: db}
}

// Create 在房产下创建单元（仅房产所有者或管理员）
func (s *UnitService) Create(propertyID uint, operator *models.User, name string, rentAmount decimal.Decimal) (*models.Unit, error) {
	var property models.Property
	if err := s.db.First(&property, propertyID).Error; err != nil {
		return nil, err
	}

	if !operator.IsAdmin() && property.LandlordID != operator.ID {
		return nil, ErrNotOwner
	}

	unit := &models.Unit{
		PropertyID:  propertyID,
		Name:        name,
		RentAmount:  rentAmount,
		IsAvailable: true,
	}
	err := s.db.Create(unit).Error
	return unit, err
}

// GetByID 根据ID获取单元
func (s *UnitService) GetByID(id uint) (*models.Unit, error) {
	var unit models.Unit
	err := s.db.Preload("Property").First(&unit, id).Error
	return &unit, err
}

// Update 更新单元名称/租金/可租状态（仅房产所有者或管理员）
func (s *UnitService) Update(id uint, operator *models.User, name string, rentAmount *decimal.Decimal, isAvailable *bool) (*models.Unit, error) {
	var unit models.Unit
	if err := s.db.Preload("Property").First(&unit, id).Error; err != nil {
		return nil, err
	}

	if !operator.IsAdmin() && unit.Property.LandlordID != operator.ID {
		return nil, ErrNotOwner
	}

	if name != "" {
		unit.Name = name
	}
	if rentAmount != nil {
		unit.RentAmount = *rentAmount
	}
	if isAvailable != nil {
		// 有生效租约的单元不能手动恢复可租
		if *isAvailable {
			var activeCount int64
			if err := s.db.Model(&models.Tenancy{}).
				Where("unit_id = ? AND status = ?", unit.ID, models.TenancyStatusActive).
				Count(&activeCount).Error; err != nil {
				return nil, err
			}
			if activeCount > 0 {
				return nil, ErrUnitOccupied
			}
		}
		unit.IsAvailable = *isAvailable
	}

	err := s.db.Save(&unit).Error
	return &unit, err
}

// Delete 删除单元（仅房产所有者或管理员）
func (s *UnitService) Delete(id uint, operator *models.User) error {
	var unit models.Unit
	if err := s.db.Preload("Property").First(&unit, id).Error; err != nil {
		return err
	}

	if !operator.IsAdmin() && unit.Property.LandlordID != operator.ID {
		return ErrNotOwner
	}

	return s.db.Delete(&unit).Error
}
