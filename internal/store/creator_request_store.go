package store

import (
	"errors"
	"time"

	"github.com/Aditya282007/Crowd-Chain/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCreatorRequest 按 ID 查询创建者申请，不存在时返回 (nil, nil)
func (s *Store) GetCreatorRequest(id string) (*model.CreatorRequest, error) {
	var request model.CreatorRequest
	if err := s.db.First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// CreateCreatorRequest 创建申请，填充 ID
func (s *Store) CreateCreatorRequest(request *model.CreatorRequest) error {
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	return s.db.Create(request).Error
}

// ReviewCreatorRequest 写入审核结论，首次审核时记录审核时间
func (s *Store) ReviewCreatorRequest(id string, status model.RequestStatus, note, reviewerID string) (*model.CreatorRequest, error) {
	request, err := s.GetCreatorRequest(id)
	if err != nil || request == nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":      status,
		"admin_note":  note,
		"reviewed_by": reviewerID,
	}
	if request.ReviewedAt == nil {
		now := time.Now()
		updates["reviewed_at"] = &now
	}

	if err := s.db.Model(&model.CreatorRequest{}).Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetCreatorRequest(id)
}

// GetCreatorRequestsByStatus 按状态查询申请列表
func (s *Store) GetCreatorRequestsByStatus(status model.RequestStatus) ([]model.CreatorRequest, error) {
	var requests []model.CreatorRequest
	if err := s.db.Where("status = ?", status).
		Order("created_at desc").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
