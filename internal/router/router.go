package router

import (
	"net/http"

	"github.com/Aditya282007/Crowd-Chain/internal/auth"
	"github.com/Aditya282007/Crowd-Chain/internal/config"
	"github.com/Aditya282007/Crowd-Chain/internal/handler"
	"github.com/Aditya282007/Crowd-Chain/internal/logic"
	"github.com/Aditya282007/Crowd-Chain/internal/model"
	"github.com/Aditya282007/Crowd-Chain/internal/store"
	"github.com/Aditya282007/Crowd-Chain/internal/ws"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup 组装路由与中间件
func Setup(db *gorm.DB, hub *ws.Hub, investLogic *logic.InvestLogic, cfg *config.Config) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"service":     "crowdchain",
			"subscribers": hub.SubscriberCount(),
		})
	})

	// WebSocket 通知通道
	r.GET("/ws", hub.HandleWebSocket)

	verifier := auth.NewVerifier(store.New(db), cfg.Auth.JWTSecret)
	authed := verifier.Authenticate()

	authHandler := handler.NewAuthHandler(db, hub, cfg.Auth)
	projectHandler := handler.NewProjectHandler(logic.NewProjectLogic(db, hub), investLogic)
	reviewLogic := logic.NewReviewLogic(db, hub)
	userLogic := logic.NewUserLogic(db, hub)
	userHandler := handler.NewUserHandler(reviewLogic, userLogic)
	adminHandler := handler.NewAdminHandler(reviewLogic, userLogic)

	v1 := r.Group("/api/v1")
	{
		// 认证相关路由
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authed, authHandler.Logout)
			authGroup.GET("/me", authed, authHandler.Me)
		}

		// 项目相关路由
		projects := v1.Group("/projects")
		{
			projects.GET("", projectHandler.GetProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.POST("", authed, auth.RequireRole(model.RoleCreator), projectHandler.CreateProject)
			projects.POST("/:id/invest", authed, auth.RequireRole(model.RoleInvestor), projectHandler.Invest)
		}

		// 用户侧路由
		v1.GET("/dashboard", authed, authHandler.Dashboard)
		v1.POST("/creator-requests", authed, auth.RequireRole(model.RoleInvestor), userHandler.SubmitCreatorRequest)
		v1.POST("/wallet/connect", authed, userHandler.ConnectWallet)

		// 管理员路由
		admin := v1.Group("/admin", authed, auth.RequireRole(model.RoleAdmin))
		{
			admin.GET("/creator-requests", adminHandler.GetCreatorRequests)
			admin.POST("/creator-requests/:id/approve", adminHandler.ApproveCreatorRequest)
			admin.POST("/creator-requests/:id/reject", adminHandler.RejectCreatorRequest)
			admin.GET("/projects/pending", adminHandler.GetPendingProjects)
			admin.POST("/projects/:id/approve", adminHandler.ApproveProject)
			admin.POST("/projects/:id/reject", adminHandler.RejectProject)
			admin.GET("/users", adminHandler.GetUsers)
			admin.POST("/users/:id/ban", adminHandler.BanUser)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
