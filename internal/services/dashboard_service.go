package services

import (
	"renthub/internal/database"
	"renthub/internal/models"
	"renthub/pkg/cache"
	"renthub/pkg/config"
	"renthub/pkg/logger"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const adminDashboardCacheKey = "dashboard:admin"

// TenancyCounts 租约状态分布
type TenancyCounts struct {
	Pending int64 `json:"pending"`
	Active  int64 `json:"active"`
	Ended   int64 `json:"ended"`
}

// AdminDashboard 管理员视图：平台全量统计
type AdminDashboard struct {
	TotalProperties int64            `json:"total_properties"`
	TotalUnits      int64            `json:"total_units"`
	Tenancies       TenancyCounts    `json:"tenancies"`
	TotalPayments   int64            `json:"total_payments"`
	PlatformRevenue decimal.Decimal  `json:"platform_revenue"`
	RecentPending   []models.Tenancy `json:"recent_pending"`
}

// LandlordDashboard 房东视图：按名下房产过滤的统计
type LandlordDashboard struct {
	TotalProperties     int64            `json:"total_properties"`
	TotalUnits          int64            `json:"total_units"`
	AvailableUnits      int64            `json:"available_units"`
	Tenancies           TenancyCounts    `json:"tenancies"`
	MonthlyIncome       decimal.Decimal  `json:"monthly_income"`
	PendingApplications []models.Tenancy `json:"pending_applications"`
}

// TenantDashboard 租客视图：自己的租约、缴费与租金状态派生结果
type TenantDashboard struct {
	Tenancies          []models.Tenancy `json:"tenancies"`
	RentStatus         *RentStatus      `json:"rent_status"`
	AgreementCount     int64            `json:"agreement_count"`
	MaintenanceCount   int64            `json:"maintenance_count"`
	AgreementsEnabled  bool             `json:"agreements_enabled"`
	MaintenanceEnabled bool             `json:"maintenance_enabled"`
}

type DashboardService struct {
	db       *gorm.DB
	tenancy  *TenancyService
	features *FeatureService
	cache    *cache.RedisCache
	cacheTTL time.Duration
}

func NewDashboardService(features *FeatureService) *DashboardService {
	cfg := config.GetConfig()
	return &DashboardService{
		db:       database.GetDB(),
		tenancy:  NewTenancyService(),
		features: features,
		cache:    database.GetRedisCache(),
		cacheTTL: time.Duration(cfg.Redis.CacheTTL) * time.Second,
	}
}

// NewDashboardServiceWithDB 注入数据库实例（测试用，无缓存）
func NewDashboardServiceWithDB(db *gorm.DB, features *FeatureService) *DashboardService {
	return &DashboardService{
		db:       db,
		tenancy:  NewTenancyServiceWithDB(db),
		features: features,
	}
}

// tenancyCounts 按状态统计租约数量，query须已施加范围过滤
func (s *DashboardService) tenancyCounts(scope func() *gorm.DB) TenancyCounts {
	var counts TenancyCounts
	scope().Where("status = ?", models.TenancyStatusPending).Count(&counts.Pending)
	scope().Where("status = ?", models.TenancyStatusActive).Count(&counts.Active)
	scope().Where("status = ?", models.TenancyStatusEnded).Count(&counts.Ended)
	return counts
}

// GetAdminDashboard 平台全量统计，启用Redis时带短TTL缓存
func (s *DashboardService) GetAdminDashboard() (*AdminDashboard, error) {
	if s.cache != nil {
		var cached AdminDashboard
		hit, err := s.cache.GetJSON(adminDashboardCacheKey, &cached)
		if err != nil {
			logger.GetLogger().Warnf("读取仪表盘缓存失败: %v", err)
		}
		if hit {
			return &cached, nil
		}
	}

	dashboard := &AdminDashboard{PlatformRevenue: decimal.Zero}

	if err := s.db.Model(&models.Property{}).Count(&dashboard.TotalProperties).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Unit{}).Count(&dashboard.TotalUnits).Error; err != nil {
		return nil, err
	}
	dashboard.Tenancies = s.tenancyCounts(func() *gorm.DB {
		return s.db.Model(&models.Tenancy{})
	})
	if err := s.db.Model(&models.Payment{}).Count(&dashboard.TotalPayments).Error; err != nil {
		return nil, err
	}

	// 平台总收入 = 所有租约的缴费金额之和
	row := s.db.Model(&models.Payment{}).Select("COALESCE(SUM(amount), 0)").Row()
	if err := row.Scan(&dashboard.PlatformRevenue); err != nil {
		return nil, err
	}

	// 最近的待审批申请
	err := s.db.Model(&models.Tenancy{}).
		Where("status = ?", models.TenancyStatusPending).
		Preload("Unit").Preload("Unit.Property").
		Preload("Tenants").Preload("Tenants.Tenant").
		Order("created_at DESC").Limit(5).
		Find(&dashboard.RecentPending).Error
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(adminDashboardCacheKey, dashboard, s.cacheTTL); err != nil {
			logger.GetLogger().Warnf("写入仪表盘缓存失败: %v", err)
		}
	}

	return dashboard, nil
}

// landlordUnitIDs 房东名下全部单元的子查询
func (s *DashboardService) landlordUnitIDs(landlordID uint) *gorm.DB {
	return s.db.Model(&models.Unit{}).Select("units.id").
		Joins("JOIN properties ON properties.id = units.property_id").
		Where("properties.landlord_id = ?", landlordID)
}

// GetLandlordDashboard 房东视图：统计口径与管理员一致，范围限定在名下房产
func (s *DashboardService) GetLandlordDashboard(user *models.User) (*LandlordDashboard, error) {
	dashboard := &LandlordDashboard{MonthlyIncome: decimal.Zero}

	if err := s.db.Model(&models.Property{}).
		Where("landlord_id = ?", user.ID).
		Count(&dashboard.TotalProperties).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Unit{}).
		Where("id IN (?)", s.landlordUnitIDs(user.ID)).
		Count(&dashboard.TotalUnits).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Unit{}).
		Where("is_available = ? AND id IN (?)", true, s.landlordUnitIDs(user.ID)).
		Count(&dashboard.AvailableUnits).Error; err != nil {
		return nil, err
	}

	dashboard.Tenancies = s.tenancyCounts(func() *gorm.DB {
		return s.db.Model(&models.Tenancy{}).Where("unit_id IN (?)", s.landlordUnitIDs(user.ID))
	})

	// 月收入 = 生效租约对应单元租金之和
	row := s.db.Model(&models.Tenancy{}).
		Joins("JOIN units ON units.id = tenancies.unit_id").
		Joins("JOIN properties ON properties.id = units.property_id").
		Where("tenancies.status = ? AND properties.landlord_id = ?", models.TenancyStatusActive, user.ID).
		Select("COALESCE(SUM(units.rent_amount), 0)").Row()
	if err := row.Scan(&dashboard.MonthlyIncome); err != nil {
		return nil, err
	}

	// 待审批申请列表
	pending, err := NewTenancyServiceWithDB(s.db).ListForUser(user, models.TenancyStatusPending)
	if err != nil {
		return nil, err
	}
	dashboard.PendingApplications = pending

	return dashboard, nil
}

// GetTenantDashboard 租客视图：自己的租约加租金状态派生
func (s *DashboardService) GetTenantDashboard(user *models.User) (*TenantDashboard, error) {
	tenancies, err := s.tenancy.ListForUser(user, "")
	if err != nil {
		return nil, err
	}

	dashboard := &TenantDashboard{
		Tenancies:  tenancies,
		RentStatus: DeriveRentStatus(tenancies, time.Now()),
	}

	// 可选模块的汇总，模块未启用时保持为0
	if s.features != nil && s.features.AgreementsEnabled() {
		dashboard.AgreementsEnabled = true
		tenancyIDs := make([]uint, 0, len(tenancies))
		for _, t := range tenancies {
			tenancyIDs = append(tenancyIDs, t.ID)
		}
		if len(tenancyIDs) > 0 {
			s.db.Model(&models.Agreement{}).Where("tenancy_id IN ?", tenancyIDs).Count(&dashboard.AgreementCount)
		}
	}
	if s.features != nil && s.features.MaintenanceEnabled() {
		dashboard.MaintenanceEnabled = true
		s.db.Model(&models.MaintenanceRequest{}).Where("tenant_id = ?", user.ID).Count(&dashboard.MaintenanceCount)
	}

	return dashboard, nil
}
