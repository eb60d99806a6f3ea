package store

import (
	"errors"
	"time"

	"github.com/Aditya282007/Crowd-Chain/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetProject 按 ID 查询项目，不存在时返回 (nil, nil)
func (s *Store) GetProject(id string) (*model.Project, error) {
	var project model.Project
	if err := s.db.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

// CreateProject 创建项目，填充 ID
func (s *Store) CreateProject(project *model.Project) error {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	return s.db.Create(project).Error
}

// UpdateProject 按字段更新项目并刷新更新时间，返回更新后的项目
func (s *Store) UpdateProject(id string, updates map[string]interface{}) (*model.Project, error) {
	updates["updated_at"] = time.Now()
	result := s.db.Model(&model.Project{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return s.GetProject(id)
}

// GetProjects 查询所有项目
func (s *Store) GetProjects() ([]model.Project, error) {
	var projects []model.Project
	if err := s.db.Order("created_at desc").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// GetApprovedProjects 查询公开可见的项目（已审核且未下架）
func (s *Store) GetApprovedProjects() ([]model.Project, error) {
	var projects []model.Project
	if err := s.db.Where("is_approved = ? AND is_active = ?", true, true).
		Order("created_at desc").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// GetPendingProjects 查询待审核项目
func (s *Store) GetPendingProjects() ([]model.Project, error) {
	var projects []model.Project
	if err := s.db.Where("is_approved = ?", false).
		Order("created_at desc").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProjectsByCreator 按创建者查询项目列表
func (s *Store) GetProjectsByCreator(creatorID string) ([]model.Project, error) {
	var projects []model.Project
	if err := s.db.Where("creator_id = ?", creatorID).
		Order("created_at desc").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}
