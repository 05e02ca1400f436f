package services

import (
	"errors"
	"fmt"
	"renthub/internal/database"
	"renthub/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrNotOwner 非资源所有者
	ErrNotOwner = errors.New("只能操作自己名下的房产")
	// ErrPropertyHasTenancies 房产下仍有未结束的租约
	ErrPropertyHasTenancies = errors.New("房产下存在未结束的租约，不能删除")
)

type PropertyService struct {
	db *gorm.DB
}

func NewPropertyService() *PropertyService {
	return &PropertyService{
		db: database.GetDB(),
	}
}

// NewPropertyServiceWithDB 注入数据库实例（测试用）
func NewPropertyServiceWithDB(db *gorm.DB) *PropertyService {
	return &PropertyService{db: db}
}

// GetWithFiltersAndPage 组合查询（分页版本），带单元/图片/评分预加载
func (s *PropertyService) GetWithFiltersAndPage(landlordID uint, keyword string, page, pageSize int) ([]*models.Property, int64, error) {
	var properties []*models.Property
	var total int64

	query := s.db.Model(&models.Property{})

	// 添加过滤条件
	if landlordID > 0 {
		query = query.Where("landlord_id = ?", landlordID)
	}
	if keyword != "" {
		searchPattern := fmt.Sprintf("%%%s%%", keyword)
		query = query.Where("name LIKE ? OR address LIKE ?", searchPattern, searchPattern)
	}

	// 计算总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询
	offset := (page - 1) * pageSize
	err := query.
		Preload("Units").
		Preload("Images").
		Preload("Ratings").
		Order("created_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&properties).Error
	if err != nil {
		return nil, 0, err
	}

	return properties, total, nil
}

// GetAllForSearch 获取全部房产（搜索用，不分页）
func (s *PropertyService) GetAllForSearch() ([]models.Property, error) {
	var properties []models.Property
	err := s.db.
		Preload("Units").
		Preload("Images").
		Preload("Ratings").
		Find(&properties).Error
	return properties, err
}

// GetByID 根据ID获取房产
func (s *PropertyService) GetByID(id uint) (*models.Property, error) {
	var property models.Property
	err := s.db.
		Preload("Units").
		Preload("Images").
		Preload("Ratings").
		First(&property, id).Error
	return &property, err
}

// Create 创建房产（房东或管理员）
func (s *PropertyService) Create(landlordID uint, name, address, description string) (*models.Property, error) {
	property := &models.Property{
		Name:        name,
		Address:     address,
		Description: description,
		LandlordID:  landlordID,
	}

	err := s.db.Create(property).Error
	return property, err
}

// checkOwner 校验操作者是所有者或管理员
func (s *PropertyService) checkOwner(property *models.Property, operator *models.User) error {
	if operator.IsAdmin() {
		return nil
	}
	if property.LandlordID != operator.ID {
		return ErrNotOwner
	}
	return nil
}

// Update 更新房产（仅所有者或管理员）
func (s *PropertyService) Update(id uint, operator *models.User, name, address, description string) (*models.Property, error) {
	var property models.Property
	if err := s.db.First(&property, id).Error; err != nil {
		return nil, err
	}

	if err := s.checkOwner(&property, operator); err != nil {
		return nil, err
	}

	if name != "" {
		property.Name = name
	}
	if address != "" {
		property.Address = address
	}
	if description != "" {
		property.Description = description
	}

	err := s.db.Save(&property).Error
	return &property, err
}

// Delete 删除房产及其下级记录（仅所有者或管理员）
// 名下单元上还有pending/active租约时拒绝删除，已结束的租约连同缴费记录一并清理
func (s *PropertyService) Delete(id uint, operator *models.User) error {
	var property models.Property
	if err := s.db.First(&property, id).Error; err != nil {
		return err
	}

	if err := s.checkOwner(&property, operator); err != nil {
		return err
	}

	var liveCount int64
	if err := s.db.Model(&models.Tenancy{}).
		Where("unit_id IN (?) AND status <> ?",
			s.db.Model(&models.Unit{}).Select("id").Where("property_id = ?", id),
			models.TenancyStatusEnded).
		Count(&liveCount).Error; err != nil {
		return err
	}
	if liveCount > 0 {
		return ErrPropertyHasTenancies
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var unitIDs []uint
		if err := tx.Model(&models.Unit{}).Where("property_id = ?", id).
			Pluck("id", &unitIDs).Error; err != nil {
			return err
		}

		var tenancyIDs []uint
		if len(unitIDs) > 0 {
			if err := tx.Model(&models.Tenancy{}).Where("unit_id IN ?", unitIDs).
				Pluck("id", &tenancyIDs).Error; err != nil {
				return err
			}
		}

		if len(tenancyIDs) > 0 {
			if err := tx.Where("tenancy_id IN ?", tenancyIDs).Delete(&models.Payment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("tenancy_id IN ?", tenancyIDs).Delete(&models.TenancyTenant{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", tenancyIDs).Delete(&models.Tenancy{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.PropertyImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.PropertyRating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.Unit{}).Error; err != nil {
			return err
		}
		return tx.Delete(&property).Error
	})
}

// AddImage 记录上传的房产图片（仅所有者或管理员）
func (s *PropertyService) AddImage(propertyID uint, operator *models.User, url, fileName string) (*models.PropertyImage, error) {
	var property models.Property
	if err := s.db.First(&property, propertyID).Error; err != nil {
		return nil, err
	}

	if err := s.checkOwner(&property, operator); err != nil {
		return nil, err
	}

	image := &models.PropertyImage{
		PropertyID: propertyID,
		URL:        url,
		FileName:   fileName,
	}
	err := s.db.Create(image).Error
	return image, err
}

// AddRating 租客给房产评分，重复评分则覆盖
func (s *PropertyService) AddRating(propertyID, tenantID uint, rating int, comment string) (*models.PropertyRating, error) {
	if rating < 1 || rating > 5 {
		return nil, errors.New("评分必须在1到5之间")
	}

	if err := s.db.First(&models.Property{}, propertyID).Error; err != nil {
		return nil, err
	}

	var existing models.PropertyRating
	err := s.db.Where("property_id = ? AND tenant_id = ?", propertyID, tenantID).First(&existing).Error
	if err == nil {
		existing.Rating = rating
		existing.Comment = comment
		err = s.db.Save(&existing).Error
		return &existing, err
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	record := &models.PropertyRating{
		PropertyID: propertyID,
		TenantID:   tenantID,
		Rating:     rating,
		Comment:    comment,
	}
	err = s.db.Create(record).Error
	return record, err
}
