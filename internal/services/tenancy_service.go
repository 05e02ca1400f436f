package services

import (
	"errors"
	"renthub/internal/database"
	"renthub/internal/models"
	"renthub/pkg/cache"
	"renthub/pkg/logger"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrTenancyNotPending 租约不处于待审批状态
	ErrTenancyNotPending = errors.New("租约不是待审批状态")
	// ErrTenancyNotActive 租约不处于生效状态
	ErrTenancyNotActive = errors.New("租约不是生效状态")
	// ErrUnitOccupied 单元已有生效租约
	ErrUnitOccupied = errors.New("该单元已有生效中的租约")
	// ErrNotTenancyLandlord 非租约所属房产的房东
	ErrNotTenancyLandlord = errors.New("只能处理自己房产下的租约")
)

type TenancyService struct {
	db    *gorm.DB
	hub   *NotificationHub
	cache *cache.RedisCache
}

func NewTenancyService() *TenancyService {
	return &TenancyService{
		db:    database.GetDB(),
		hub:   GetNotificationHub(),
		cache: database.GetRedisCache(),
	}
}

// NewTenancyServiceWithDB 注入数据库实例（测试用，不推送通知、不写缓存）
func NewTenancyServiceWithDB(db *gorm.DB) *TenancyService {
	return &TenancyService{db: db}
}

// invalidateDashboardCache 租约状态变化后清除管理员仪表盘缓存，缓存未启用时忽略
func (s *TenancyService) invalidateDashboardCache() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(adminDashboardCacheKey); err != nil {
		logger.GetLogger().Warnf("清除仪表盘缓存失败: %v", err)
	}
}

// tenancyPreloads 列表/详情通用预加载
func (s *TenancyService) tenancyPreloads(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Unit").
		Preload("Unit.Property").
		Preload("Tenants").
		Preload("Tenants.Tenant").
		Preload("Payments")
}

// ListForUser 按角色过滤租约列表
// 租客看自己参与的，房东看自己房产下的，管理员看全部
func (s *TenancyService) ListForUser(user *models.User, status string) ([]models.Tenancy, error) {
	var tenancies []models.Tenancy

	query := s.db.Model(&models.Tenancy{})

	switch user.Role {
	case models.RoleTenant:
		query = query.Where("id IN (?)",
			s.db.Model(&models.TenancyTenant{}).Select("tenancy_id").Where("tenant_id = ?", user.ID))
	case models.RoleLandlord:
		query = query.Where("unit_id IN (?)",
			s.db.Model(&models.Unit{}).Select("units.id").
				Joins("JOIN properties ON properties.id = units.property_id").
				Where("properties.landlord_id = ?", user.ID))
	}

	if status != "" {
		query = query.Where("status = ?", status)
	}

	err := s.tenancyPreloads(query).Order("created_at DESC").Find(&tenancies).Error
	return tenancies, err
}

// GetByID 根据ID获取租约
func (s *TenancyService) GetByID(id uint) (*models.Tenancy, error) {
	var tenancy models.Tenancy
	err := s.tenancyPreloads(s.db).First(&tenancy, id).Error
	return &tenancy, err
}

// Apply 租客申请租约：创建pending租约并将申请人加入参与人，单事务完成
func (s *TenancyService) Apply(tenantID, unitID uint, startDate time.Time, endDate *time.Time) (*models.Tenancy, error) {
	if err := s.db.First(&models.Unit{}, unitID).Error; err != nil {
		return nil, err
	}

	tenancy := &models.Tenancy{
		UnitID:    unitID,
		Status:    models.TenancyStatusPending,
		StartDate: startDate,
		EndDate:   endDate,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tenancy).Error; err != nil {
			return err
		}
		participant := &models.TenancyTenant{
			TenancyID: tenancy.ID,
			TenantID:  tenantID,
		}
		return tx.Create(participant).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidateDashboardCache()
	s.notifyLandlord(tenancy.UnitID, "tenancy_applied", tenancy.ID)
	return s.GetByID(tenancy.ID)
}

// checkLandlord 校验操作者是租约所属房产的房东或管理员
func (s *TenancyService) checkLandlord(tenancy *models.Tenancy, operator *models.User) error {
	if operator.IsAdmin() {
		return nil
	}

	var unit models.Unit
	if err := s.db.Preload("Property").First(&unit, tenancy.UnitID).Error; err != nil {
		return err
	}
	if unit.Property == nil || unit.Property.LandlordID != operator.ID {
		return ErrNotTenancyLandlord
	}
	return nil
}

// Approve 批准待审批租约：置为active并锁定单元，单事务完成
// 同一单元同时最多一个生效租约，违反则拒绝批准
func (s *TenancyService) Approve(id uint, operator *models.User) (*models.Tenancy, error) {
	var tenancy models.Tenancy
	if err := s.db.First(&tenancy, id).Error; err != nil {
		return nil, err
	}

	if err := s.checkLandlord(&tenancy, operator); err != nil {
		return nil, err
	}

	if tenancy.Status != models.TenancyStatusPending {
		return nil, ErrTenancyNotPending
	}

	// 单元上已有别的生效租约则不能批准
	var activeCount int64
	s.db.Model(&models.Tenancy{}).
		Where("unit_id = ? AND status = ? AND id <> ?", tenancy.UnitID, models.TenancyStatusActive, id).
		Count(&activeCount)
	if activeCount > 0 {
		return nil, ErrUnitOccupied
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&tenancy).Update("status", models.TenancyStatusActive).Error; err != nil {
			return err
		}
		return tx.Model(&models.Unit{}).Where("id = ?", tenancy.UnitID).
			Update("is_available", false).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidateDashboardCache()
	s.notifyTenants(id, "tenancy_active")
	return s.GetByID(id)
}

// Reject 驳回待审批租约：置为ended，单元保持可租
func (s *TenancyService) Reject(id uint, operator *models.User) (*models.Tenancy, error) {
	var tenancy models.Tenancy
	if err := s.db.First(&tenancy, id).Error; err != nil {
		return nil, err
	}

	if err := s.checkLandlord(&tenancy, operator); err != nil {
		return nil, err
	}

	if tenancy.Status != models.TenancyStatusPending {
		return nil, ErrTenancyNotPending
	}

	if err := s.db.Model(&tenancy).Update("status", models.TenancyStatusEnded).Error; err != nil {
		return nil, err
	}

	s.invalidateDashboardCache()
	s.notifyTenants(id, "tenancy_ended")
	return s.GetByID(id)
}

// End 结束生效租约：置为ended并释放单元，单事务完成
func (s *TenancyService) End(id uint, operator *models.User) (*models.Tenancy, error) {
	var tenancy models.Tenancy
	if err := s.db.First(&tenancy, id).Error; err != nil {
		return nil, err
	}

	if err := s.checkLandlord(&tenancy, operator); err != nil {
		return nil, err
	}

	if tenancy.Status != models.TenancyStatusActive {
		return nil, ErrTenancyNotActive
	}

	now := time.Now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&tenancy).Updates(map[string]interface{}{
			"status":   models.TenancyStatusEnded,
			"end_date": &now,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Unit{}).Where("id = ?", tenancy.UnitID).
			Update("is_available", true).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidateDashboardCache()
	s.notifyTenants(id, "tenancy_ended")
	return s.GetByID(id)
}

// AddTenant 添加共同租客（房东/管理员/现有参与人可操作）
func (s *TenancyService) AddTenant(tenancyID, tenantID uint, operator *models.User) error {
	tenancy, err := s.GetByID(tenancyID)
	if err != nil {
		return err
	}

	if !operator.IsAdmin() && !tenancy.HasTenant(operator.ID) {
		if err := s.checkLandlord(tenancy, operator); err != nil {
			return err
		}
	}

	if tenancy.HasTenant(tenantID) {
		return errors.New("该用户已是租约参与人")
	}

	participant := &models.TenancyTenant{
		TenancyID: tenancyID,
		TenantID:  tenantID,
	}
	return s.db.Create(participant).Error
}

// notifyLandlord 向单元所属房东推送事件，hub未启用时忽略
func (s *TenancyService) notifyLandlord(unitID uint, event string, tenancyID uint) {
	if s.hub == nil {
		return
	}

	var unit models.Unit
	if err := s.db.Preload("Property").First(&unit, unitID).Error; err != nil {
		return
	}
	if unit.Property != nil {
		s.hub.Notify(unit.Property.LandlordID, event, map[string]interface{}{"tenancy_id": tenancyID})
	}
}

// notifyTenants 向租约全部参与人推送事件，hub未启用时忽略
func (s *TenancyService) notifyTenants(tenancyID uint, event string) {
	if s.hub == nil {
		return
	}

	var participants []models.TenancyTenant
	if err := s.db.Where("tenancy_id = ?", tenancyID).Find(&participants).Error; err != nil {
		return
	}
	for _, p := range participants {
		s.hub.Notify(p.TenantID, event, map[string]interface{}{"tenancy_id": tenancyID})
	}
}
