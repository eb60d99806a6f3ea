package store

import (
	"errors"
	"time"

	"github.com/Aditya282007/Crowd-Chain/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateSession 创建会话
func (s *Store) CreateSession(userID, token string, expiresAt time.Time) (*model.Session, error) {
	session := &model.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	if err := s.db.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// GetSessionByToken 按 token 查询会话，过期会话惰性删除并视为不存在
func (s *Store) GetSessionByToken(token string) (*model.Session, error) {
	var session model.Session
	if err := s.db.First(&session, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if session.Expired() {
		s.db.Delete(&model.Session{}, "token = ?", token)
		return nil, nil
	}
	return &session, nil
}

// DeleteSession 删除会话（登出）
func (s *Store) DeleteSession(token string) error {
	return s.db.Delete(&model.Session{}, "token = ?", token).Error
}

// PurgeExpiredSessions 批量清理过期会话，返回清理数量
func (s *Store) PurgeExpiredSessions() (int64, error) {
	result := s.db.Delete(&model.Session{}, "expires_at <= ?", time.Now())
	return result.RowsAffected, result.Error
}
