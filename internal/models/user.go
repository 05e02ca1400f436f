package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User 用户模型（对应个人资料，角色决定仪表盘视图与操作权限）
type User struct {
	BaseModel
	Email        string     `json:"email" gorm:"unique;not null;size:100;index"`
	PasswordHash string     `json:"-" gorm:"not null;size:255"`
	FullName     string     `json:"full_name" gorm:"not null;size:100"`
	Phone        *string    `json:"phone" gorm:"size:20"`
	Avatar       *string    `json:"avatar" gorm:"size:255"`
	Role         string     `json:"role" gorm:"not null;size:20;index"`
	Status       string     `json:"status" gorm:"default:'active';size:20"`
	LastLoginAt  *time.Time `json:"last_login_at"`
}

// TableName 表名
func (u *User) TableName() string {
	return "users"
}

// 用户角色常量
const (
	RoleAdmin    = "admin"
	RoleLandlord = "landlord"
	RoleTenant   = "tenant"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// ValidRoles 可注册角色（admin只能通过种子数据创建）
var ValidRoles = []string{RoleAdmin, RoleLandlord, RoleTenant}

// SetPassword 设置密码 - 数据操作方法
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword 验证密码 - 数据操作方法
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// IsAdmin 是否平台管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsLandlord 是否房东
func (u *User) IsLandlord() bool {
	return u.Role == RoleLandlord
}
