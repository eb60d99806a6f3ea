package task

import (
	"time"

	"github.com/Aditya282007/Crowd-Chain/internal/config"
	"github.com/Aditya282007/Crowd-Chain/internal/logger"
	"github.com/Aditya282007/Crowd-Chain/internal/store"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// SessionPurgeJob 过期会话清理任务
//
// 过期会话在读取路径上已惰性删除，这里兜底清理
// 那些过期后再也没有被访问过的会话。
type SessionPurgeJob struct {
	store  *store.Store
	config *config.Config
}

// NewSessionPurgeJob 创建会话清理任务
func NewSessionPurgeJob(db *gorm.DB, cfg *config.Config) *SessionPurgeJob {
	return &SessionPurgeJob{
		store:  store.New(db),
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *SessionPurgeJob) GetName() string {
	return "session_purger"
}

// GetSchedule 获取调度配置
func (j *SessionPurgeJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *SessionPurgeJob) Execute() {
	purged, err := j.store.PurgeExpiredSessions()
	if err != nil {
		logger.Error("Failed to purge expired sessions: %v", err)
		return
	}
	if purged > 0 {
		logger.Info("Purged %d expired sessions", purged)
	}
}
