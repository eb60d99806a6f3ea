package logic

import (
	"sync"
	"testing"
	"time"

	"github.com/Aditya282007/Crowd-Chain/internal/database"
	"github.com/Aditya282007/Crowd-Chain/internal/model"
	"github.com/Aditya282007/Crowd-Chain/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// eventRecorder 替代真实 WebSocket 中心，记录广播的事件
type eventRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

type recordedEvent struct {
	Type string
	Data interface{}
}

func (r *eventRecorder) Publish(eventType string, data interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{Type: eventType, Data: data})
}

// Types 按发布顺序返回事件类型
func (r *eventRecorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, 0, len(r.events))
	for _, e := range r.events {
		types = append(types, e.Type)
	}
	return types
}

func (r *eventRecorder) Has(eventType string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.Type == eventType {
			return true
		}
	}
	return false
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role model.Role, balance string) *model.User {
	t.Helper()
	suffix := uuid.NewString()[:8]
	user := &model.User{
		Username:   "user_" + suffix,
		Email:      suffix + "@test.local",
		Password:   "$2a$10$notarealhash",
		Role:       role,
		IsApproved: true,
		Balance:    decimal.RequireFromString(balance),
	}
	require.NoError(t, store.New(db).CreateUser(user))
	return user
}

func seedProject(t *testing.T, db *gorm.DB, creatorID, goal, current string, approved bool) *model.Project {
	t.Helper()
	project := &model.Project{
		CreatorID:     creatorID,
		Title:         "Solar Farm",
		Description:   "Community solar farm",
		Category:      "energy",
		GoalAmount:    decimal.RequireFromString(goal),
		CurrentAmount: decimal.RequireFromString(current),
		IsApproved:    approved,
		IsActive:      true,
		EndDate:       time.Now().Add(30 * 24 * time.Hour),
	}
	require.NoError(t, store.New(db).CreateProject(project))
	return project
}
