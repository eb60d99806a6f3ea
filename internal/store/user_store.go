package store

import (
	"errors"
	"time"

	"github.com/Aditya282007/Crowd-Chain/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUser 按 ID 查询用户，不存在时返回 (nil, nil)
func (s *Store) GetUser(id string) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername 按用户名查询用户
func (s *Store) GetUserByUsername(username string) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail 按邮箱查询用户
func (s *Store) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser 创建用户，填充 ID
func (s *Store) CreateUser(user *model.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	return s.db.Create(user).Error
}

// UpdateUser 按字段更新用户并刷新更新时间，返回更新后的用户
func (s *Store) UpdateUser(id string, updates map[string]interface{}) (*model.User, error) {
	updates["updated_at"] = time.Now()
	result := s.db.Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return s.GetUser(id)
}

// GetUsersByRole 按角色查询用户列表
func (s *Store) GetUsersByRole(role model.Role) ([]model.User, error) {
	var users []model.User
	if err := s.db.Where("role = ?", role).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// BanUser 封禁用户
func (s *Store) BanUser(id string) error {
	_, err := s.UpdateUser(id, map[string]interface{}{"is_banned": true})
	return err
}
