package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction 投资交易记录
//
// 交易创建时即带上模拟链上信息（交易哈希、区块号、gas），
// 这些字段仅用于展示，创建后不再变更。
type Transaction struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"created_at"`

	InvestorID string          `json:"investor_id" gorm:"index;not null"`
	ProjectID  string          `json:"project_id" gorm:"index;not null"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`

	Status TransactionStatus `json:"status" gorm:"default:'pending'"`
	Type   TransactionType   `json:"type" gorm:"default:'investment'"`

	// 模拟区块链信息
	TxHash      string          `json:"tx_hash" gorm:"uniqueIndex"`
	BlockNumber int64           `json:"block_number"`
	GasUsed     decimal.Decimal `json:"gas_used" gorm:"type:decimal(20,6)"`
}

// TableName 自定义表名
func (Transaction) TableName() string {
	return "transactions"
}

// TransactionStatus 交易状态
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"   // 待确认
	TransactionStatusCompleted TransactionStatus = "completed" // 已完成
	TransactionStatusFailed    TransactionStatus = "failed"    // 失败
)

// TransactionType 交易类型
type TransactionType string

const (
	TransactionTypeInvestment TransactionType = "investment" // 投资
	TransactionTypeWithdrawal TransactionType = "withdrawal" // 提现
	TransactionTypeReward     TransactionType = "reward"     // 奖励
)
