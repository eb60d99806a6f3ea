package model

import (
	"time"
)

// WalletConnection 钱包连接记录（仅追加的连接日志）
type WalletConnection struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	UserID      string    `json:"user_id" gorm:"index;not null"`
	WalletType  string    `json:"wallet_type" gorm:"not null"` // metamask, rainbow 等
	Address     string    `json:"address" gorm:"not null"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	ConnectedAt time.Time `json:"connected_at" gorm:"autoCreateTime"`
}

// TableName 自定义表名
func (WalletConnection) TableName() string {
	return "wallet_connections"
}
