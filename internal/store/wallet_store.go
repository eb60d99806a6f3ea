package store

import (
	"github.com/Aditya282007/Crowd-Chain/internal/model"
	"github.com/google/uuid"
)

// CreateWalletConnection 追加一条钱包连接记录
func (s *Store) CreateWalletConnection(userID, walletType, address string) (*model.WalletConnection, error) {
	connection := &model.WalletConnection{
		ID:         uuid.NewString(),
		UserID:     userID,
		WalletType: walletType,
		Address:    address,
		IsActive:   true,
	}
	if err := s.db.Create(connection).Error; err != nil {
		return nil, err
	}
	return connection, nil
}

// GetWalletsByUser 查询用户的钱包连接记录
func (s *Store) GetWalletsByUser(userID string) ([]model.WalletConnection, error) {
	var connections []model.WalletConnection
	if err := s.db.Where("user_id = ?", userID).
		Order("connected_at desc").Find(&connections).Error; err != nil {
		return nil, err
	}
	return connections, nil
}
