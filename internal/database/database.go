package database

import (
	"fmt"

	"github.com/Aditya282007/Crowd-Chain/internal/chain"
	"github.com/Aditya282007/Crowd-Chain/internal/config"
	"github.com/Aditya282007/Crowd-Chain/internal/logger"
	"github.com/Aditya282007/Crowd-Chain/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate 自动迁移全部实体表
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Transaction{},
		&model.CreatorRequest{},
		&model.Session{},
		&model.WalletConnection{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// SeedAdmin 初始化默认管理员账号（已存在时跳过）
func SeedAdmin(db *gorm.DB, cfg config.SeedConfig) error {
	var count int64
	if err := db.Model(&model.User{}).Where("email = ?", cfg.AdminEmail).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := model.User{
		ID:            uuid.NewString(),
		Username:      cfg.AdminUsername,
		Email:         cfg.AdminEmail,
		Password:      string(hash),
		Role:          model.RoleAdmin,
		FirstName:     "System",
		LastName:      "Administrator",
		WalletAddress: chain.NewAddress(),
		Balance:       decimal.RequireFromString("10000.00"),
		RewardPoints:  50000,
		IsApproved:    true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	logger.Info("Default admin user created: %s", cfg.AdminEmail)
	return nil
}
