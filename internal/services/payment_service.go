package services

import (
	"errors"
	"renthub/internal/database"
	"renthub/internal/models"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrNotTenancyMember 非租约参与人
	ErrNotTenancyMember = errors.New("只能给自己参与的租约登记缴费")
	// ErrNegativeAmount 缴费金额为负
	ErrNegativeAmount = errors.New("金额不能为负数")
)

type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService() *PaymentService {
	return &PaymentService{
		db: database.GetDB(),
	}
}

// NewPaymentServiceWithDB 注入数据库实例（测试用）
func NewPaymentServiceWithDB(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// Record 登记缴费记录，创建后不可修改
// 租客只能给自己参与的租约登记；房东/管理员可给其管辖租约登记
func (s *PaymentService) Record(operator *models.User, tenancyID uint, amount decimal.Decimal, dueDate *time.Time, method string) (*models.Payment, error) {
	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	var tenancy models.Tenancy
	if err := s.db.Preload("Tenants").Preload("Unit.Property").First(&tenancy, tenancyID).Error; err != nil {
		return nil, err
	}

	if !s.canAccessTenancy(operator, &tenancy) {
		return nil, ErrNotTenancyMember
	}

	payment := &models.Payment{
		TenancyID: tenancyID,
		Amount:    amount,
		DueDate:   dueDate,
		Status:    models.PaymentStatusPending,
		Method:    method,
	}
	err := s.db.Create(payment).Error
	return payment, err
}

// canAccessTenancy 判断操作者与租约的从属关系
func (s *PaymentService) canAccessTenancy(user *models.User, tenancy *models.Tenancy) bool {
	if user.IsAdmin() {
		return true
	}
	if user.IsLandlord() {
		return tenancy.Unit != nil && tenancy.Unit.Property != nil &&
			tenancy.Unit.Property.LandlordID == user.ID
	}
	return tenancy.HasTenant(user.ID)
}

// ListForUser 按角色过滤缴费记录，按创建时间降序
func (s *PaymentService) ListForUser(user *models.User, page, pageSize int) ([]models.Payment, int64, error) {
	var payments []models.Payment
	var total int64

	query := s.db.Model(&models.Payment{})

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

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&payments).Error
	return payments, total, err
}

// MarkOverduePending 将到期未付的pending记录置为overdue，返回影响行数
// 由定时任务调用
func (s *PaymentService) MarkOverduePending(now time.Time) (int64, error) {
	result := s.db.Model(&models.Payment{}).
		Where("status = ? AND due_date IS NOT NULL AND due_date < ?", models.PaymentStatusPending, now).
		Update("status", models.PaymentStatusOverdue)
	return result.RowsAffected, result.Error
}
