package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Project 众筹项目模型
type Project struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	CreatorID       string `json:"creator_id" gorm:"index;not null"`
	Title           string `json:"title" gorm:"not null" binding:"required"`
	Description     string `json:"description" gorm:"type:text;not null" binding:"required"`
	FullDescription string `json:"full_description" gorm:"type:text"`
	Category        string `json:"category" gorm:"not null" binding:"required"`
	ImageURL        string `json:"image_url"`

	// 众筹信息（目标金额创建后不可变更）
	GoalAmount    decimal.Decimal `json:"goal_amount" gorm:"type:decimal(20,2);not null"`
	CurrentAmount decimal.Decimal `json:"current_amount" gorm:"type:decimal(20,2);default:0"`

	// 审核与状态
	IsApproved bool `json:"is_approved" gorm:"default:false"`
	IsActive   bool `json:"is_active" gorm:"default:true"`

	// 时间信息
	EndDate time.Time `json:"end_date" gorm:"not null"`

	// 里程碑（JSON 序列化存储）
	Milestones MilestoneList `json:"milestones" gorm:"type:text"`
}

// TableName 自定义表名
func (Project) TableName() string {
	return "projects"
}

// Remaining 剩余可投金额
func (p *Project) Remaining() decimal.Decimal {
	return p.GoalAmount.Sub(p.CurrentAmount)
}

// Milestone 项目里程碑
type Milestone struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Status      string          `json:"status"` // pending, in_progress, completed
}

// MilestoneList 里程碑列表，按 JSON 文本落库
type MilestoneList []Milestone

// Value 实现 driver.Valuer
func (m MilestoneList) Value() (driver.Value, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan 实现 sql.Scanner
func (m *MilestoneList) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return fmt.Errorf("unsupported milestone column type %T", value)
}
