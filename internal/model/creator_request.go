package model

import (
	"time"
)

// CreatorRequest 创建者资格申请
type CreatorRequest struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"created_at"`

	UserID string `json:"user_id" gorm:"index;not null"`

	// 业务资料（均为可选的自由文本）
	BusinessName        string `json:"business_name"`
	BusinessDescription string `json:"business_description" gorm:"type:text"`
	Website             string `json:"website"`
	Experience          string `json:"experience" gorm:"type:text"`

	// 审核信息
	Status     RequestStatus `json:"status" gorm:"default:'pending'"`
	AdminNote  string        `json:"admin_note"`
	ReviewedBy string        `json:"reviewed_by"`
	ReviewedAt *time.Time    `json:"reviewed_at"`
}

// TableName 自定义表名
func (CreatorRequest) TableName() string {
	return "creator_requests"
}

// RequestStatus 申请状态
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"  // 待审核
	RequestStatusApproved RequestStatus = "approved" // 已通过
	RequestStatusRejected RequestStatus = "rejected" // 已拒绝
)
