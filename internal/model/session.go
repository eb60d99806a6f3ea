package model

import (
	"time"
)

// Session 登录会话
//
// 过期的会话在读取时惰性清理，登出时显式删除。
type Session struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"created_at"`

	UserID    string    `json:"user_id" gorm:"index;not null"`
	Token     string    `json:"token" gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
}

// TableName 自定义表名
func (Session) TableName() string {
	return "sessions"
}

// Expired 会话是否已过期
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
