package handler

import (
	"net/http"

	"github.com/Aditya282007/Crowd-Chain/internal/auth"
	"github.com/Aditya282007/Crowd-Chain/internal/config"
	"github.com/Aditya282007/Crowd-Chain/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHandler 注册登录处理器
type AuthHandler struct {
	authLogic *logic.AuthLogic
	userLogic *logic.UserLogic
}

// NewAuthHandler 创建注册登录处理器
func NewAuthHandler(db *gorm.DB, hub logic.Broadcaster, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		authLogic: logic.NewAuthLogic(db, hub, cfg),
		userLogic: logic.NewUserLogic(db, hub),
	}
}

// Signup 注册
func (h *AuthHandler) Signup(c *gin.Context) {
	var input logic.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的注册数据")
		return
	}

	user, token, err := h.authLogic.Signup(input)
	if err != nil {
		FailResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "注册成功", gin.H{
		"user":  user.Public(),
		"token": token,
	})
}

// Login 登录
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的登录数据")
		return
	}

	user, token, err := h.authLogic.Login(input.Email, input.Password)
	if err != nil {
		FailResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "登录成功", gin.H{
		"user":  user.Public(),
		"token": token,
	})
}

// Logout 登出
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := auth.TokenFrom(c); token != "" {
		if err := h.authLogic.Logout(token); err != nil {
			FailResponse(c, err)
			return
		}
	}
	SuccessResponse(c, http.StatusOK, "已登出", nil)
}

// Me 当前登录用户
func (h *AuthHandler) Me(c *gin.Context) {
	identity := auth.IdentityFrom(c)
	dashboard, err := h.userLogic.Dashboard(identity.ID)
	if err != nil {
		FailResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取用户信息成功", dashboard["user"])
}

// Dashboard 用户工作台
func (h *AuthHandler) Dashboard(c *gin.Context) {
	identity := auth.IdentityFrom(c)
	data, err := h.userLogic.Dashboard(identity.ID)
	if err != nil {
		FailResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取工作台数据成功", data)
}
