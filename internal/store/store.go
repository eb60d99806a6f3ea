// Package store 实体存储层
//
// 所有实体由 Store 独占管理，其他组件只持有实体 ID，
// 修改前必须重新读取当前状态。
package store

import (
	"gorm.io/gorm"
)

// Store 实体存储
type Store struct {
	db *gorm.DB
}

// New 创建实体存储
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB 返回底层数据库句柄（事务性写入时使用）
func (s *Store) DB() *gorm.DB {
	return s.db
}
