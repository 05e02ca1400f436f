package services

import (
	"errors"
	"renthub/internal/database"
	"renthub/internal/models"
	"time"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService() *UserService {
	return &UserService{
		db: database.GetDB(),
	}
}

// NewUserServiceWithDB 注入数据库实例（测试用）
func NewUserServiceWithDB(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register 注册用户（只允许租客/房东自助注册，管理员通过种子数据创建）
func (s *UserService) Register(email, password, fullName, role string) (*models.User, error) {
	if role != models.RoleTenant && role != models.RoleLandlord {
		return nil, errors.New("角色只能是 tenant 或 landlord")
	}

	// 检查邮箱是否重复
	var count int64
	s.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil, gorm.ErrDuplicatedKey
	}

	user := &models.User{
		Email:    email,
		FullName: fullName,
		Role:     role,
		Status:   models.UserStatusActive,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}

	err := s.db.Create(user).Error
	return user, err
}

// GetByID 根据ID获取用户
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	return &user, err
}

// GetByEmail 根据邮箱获取用户
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	return &user, err
}

// UpdateProfile 更新个人资料（姓名/电话/头像）
func (s *UserService) UpdateProfile(id uint, fullName string, phone, avatar *string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}

	if fullName != "" {
		user.FullName = fullName
	}
	if phone != nil {
		user.Phone = phone
	}
	if avatar != nil {
		user.Avatar = avatar
	}

	err := s.db.Save(&user).Error
	return &user, err
}

// UpdateLastLogin 更新最后登录时间
func (s *UserService) UpdateLastLogin(id uint) error {
	now := time.Now()
	return s.db.Model(&models.User{}).Where("id = ?", id).Update("last_login_at", &now).Error
}
