package store

import (
	"errors"

	"github.com/Aditya282007/Crowd-Chain/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTransaction 按 ID 查询交易，不存在时返回 (nil, nil)
func (s *Store) GetTransaction(id string) (*model.Transaction, error) {
	var tx model.Transaction
	if err := s.db.First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tx, nil
}

// CreateTransaction 创建交易记录，填充 ID
func (s *Store) CreateTransaction(tx *model.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	return s.db.Create(tx).Error
}

// UpdateTransactionStatus 更新交易状态
func (s *Store) UpdateTransactionStatus(id string, status model.TransactionStatus) error {
	return s.db.Model(&model.Transaction{}).Where("id = ?", id).
		Update("status", status).Error
}

// GetTransactionsByUser 查询用户的所有交易
func (s *Store) GetTransactionsByUser(userID string) ([]model.Transaction, error) {
	var txs []model.Transaction
	if err := s.db.Where("investor_id = ?", userID).
		Order("created_at desc").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// GetTransactionsByProject 查询项目的所有交易
func (s *Store) GetTransactionsByProject(projectID string) ([]model.Transaction, error) {
	var txs []model.Transaction
	if err := s.db.Where("project_id = ?", projectID).
		Order("created_at desc").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// CountCompletedByProject 统计项目已完成的投资笔数
func (s *Store) CountCompletedByProject(projectID string) (int64, error) {
	var count int64
	err := s.db.Model(&model.Transaction{}).
		Where("project_id = ? AND status = ?", projectID, model.TransactionStatusCompleted).
		Count(&count).Error
	return count, err
}
