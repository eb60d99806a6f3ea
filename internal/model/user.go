package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// User 平台用户模型
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 账号信息
	Username string `json:"username" gorm:"uniqueIndex;not null" binding:"required"`
	Email    string `json:"email" gorm:"uniqueIndex;not null" binding:"required"`
	Password string `json:"-" gorm:"not null"`

	// 个人资料
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	ProfileImage  string `json:"profile_image"`
	WalletAddress string `json:"wallet_address"`

	// 角色与状态
	Role       Role `json:"role" gorm:"default:'investor'"`
	IsApproved bool `json:"is_approved" gorm:"default:false"` // 创建者需要管理员审核
	IsBanned   bool `json:"is_banned" gorm:"default:false"`

	// 模拟资产
	Balance      decimal.Decimal `json:"balance" gorm:"type:decimal(20,2);default:0"`
	RewardPoints int             `json:"reward_points" gorm:"default:0"`
}

// TableName 自定义表名
func (User) TableName() string {
	return "users"
}

// Role 用户角色
type Role string

const (
	RoleInvestor Role = "investor" // 投资人
	RoleCreator  Role = "creator"  // 项目创建者
	RoleAdmin    Role = "admin"    // 管理员
)

// Valid 校验角色是否为合法取值
func (r Role) Valid() bool {
	switch r {
	case RoleInvestor, RoleCreator, RoleAdmin:
		return true
	}
	return false
}

// Public 返回可以对外暴露的用户信息（不含密码）
func (u *User) Public() map[string]interface{} {
	return map[string]interface{}{
		"id":             u.ID,
		"username":       u.Username,
		"email":          u.Email,
		"role":           u.Role,
		"first_name":     u.FirstName,
		"last_name":      u.LastName,
		"is_approved":    u.IsApproved,
		"wallet_address": u.WalletAddress,
		"balance":        u.Balance,
		"reward_points":  u.RewardPoints,
	}
}
