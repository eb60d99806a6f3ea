package task

import (
	"time"

	"github.com/Aditya282007/Crowd-Chain/internal/config"
	"github.com/Aditya282007/Crowd-Chain/internal/logger"
	"github.com/Aditya282007/Crowd-Chain/internal/model"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// ProjectFinishJob 项目到期下架任务
//
// 众筹截止时间已过的项目不再接受投资，从公开列表中移除。
type ProjectFinishJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewProjectFinishJob 创建项目到期任务
func NewProjectFinishJob(db *gorm.DB, cfg *config.Config) *ProjectFinishJob {
	return &ProjectFinishJob{
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *ProjectFinishJob) GetName() string {
	return "project_finish_updater"
}

// GetSchedule 获取调度配置
func (j *ProjectFinishJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *ProjectFinishJob) Execute() {
	now := time.Now()

	var projects []model.Project
	err := j.db.Where("is_active = ? AND end_date <= ?", true, now).Find(&projects).Error
	if err != nil {
		logger.Error("Failed to fetch projects for finishing: %v", err)
		return
	}

	finishedCount := 0
	for _, project := range projects {
		reached := project.CurrentAmount.GreaterThanOrEqual(project.GoalAmount)
		if reached {
			logger.Info("Project %s reached goal: %s/%s", project.ID,
				project.CurrentAmount.StringFixed(2), project.GoalAmount.StringFixed(2))
		} else {
			logger.Info("Project %s ended below goal: %s/%s", project.ID,
				project.CurrentAmount.StringFixed(2), project.GoalAmount.StringFixed(2))
		}

		updates := map[string]interface{}{
			"is_active":  false,
			"updated_at": now,
		}
		if err := j.db.Model(&model.Project{}).Where("id = ?", project.ID).
			Updates(updates).Error; err != nil {
			logger.Error("Failed to finish project %s: %v", project.ID, err)
			continue
		}
		finishedCount++
	}

	if finishedCount > 0 {
		logger.Info("Project finish task completed. Finished %d projects", finishedCount)
	}
}
