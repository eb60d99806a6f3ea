package main

import (
	"github.com/Aditya282007/Crowd-Chain/internal/config"
	"github.com/Aditya282007/Crowd-Chain/internal/database"
	"github.com/Aditya282007/Crowd-Chain/internal/logger"
	"github.com/Aditya282007/Crowd-Chain/internal/logic"
	"github.com/Aditya282007/Crowd-Chain/internal/router"
	"github.com/Aditya282007/Crowd-Chain/internal/task"
	"github.com/Aditya282007/Crowd-Chain/internal/ws"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	logger.Init(cfg.Log.Level, cfg.Log.Output, cfg.Log.File)
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database: %v", err)
	}
	if err := database.SeedAdmin(db, cfg.Seed); err != nil {
		logger.Fatal("Failed to seed admin account: %v", err)
	}

	// 通知中心
	hub := ws.NewHub()
	defer hub.Close()

	// 投资结算
	investLogic, err := logic.NewInvestLogic(db, hub, cfg.Invest.ConfirmDelay(), cfg.Invest.WorkerPoolSize)
	if err != nil {
		logger.Fatal("Failed to initialize invest worker pool: %v", err)
	}
	defer investLogic.Stop()

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, hub, investLogic, cfg)

	// 启动定时任务
	manager := task.Start(db, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
