package handler

import (
	"net/http"

	"github.com/Aditya282007/Crowd-Chain/internal/auth"
	"github.com/Aditya282007/Crowd-Chain/internal/logic"
	"github.com/gin-gonic/gin"
)

// AdminHandler 管理员处理器：创建者申请与项目的审核、用户管理
type AdminHandler struct {
	reviewLogic *logic.ReviewLogic
	userLogic   *logic.UserLogic
}

// NewAdminHandler 创建管理员处理器
func NewAdminHandler(reviewLogic *logic.ReviewLogic, userLogic *logic.UserLogic) *AdminHandler {
	return &AdminHandler{
		reviewLogic: reviewLogic,
		userLogic:   userLogic,
	}
}

type reviewInput struct {
	AdminNote string `json:"admin_note"`
}

// GetCreatorRequests 待审核的创建者申请列表
func (h *AdminHandler) GetCreatorRequests(c *gin.Context) {
	requests, err := h.reviewLogic.PendingCreatorRequests()
	if err != nil {
		FailResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取创建者申请成功", gin.H{"requests": requests})
}

// ApproveCreatorRequest 通过创建者申请
func (h *AdminHandler) ApproveCreatorRequest(c *gin.Context) {
	var input reviewInput
	_ = c.ShouldBindJSON(&input)

	identity := auth.IdentityFrom(c)
	request, err := h.reviewLogic.ApproveCreatorRequest(c.Param("id"), input.AdminNote, identity.ID)
	if err != nil {
		FailResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "创建者申请已通过", gin.H{"request": request})
}

// RejectCreatorRequest 拒绝创建者申请
func (h *AdminHandler) RejectCreatorRequest(c *gin.Context) {
	var input reviewInput
	_ = c.ShouldBindJSON(&input)

	identity := auth.IdentityFrom(c)
	request, err := h.reviewLogic.RejectCreatorRequest(c.Param("id"), input.AdminNote, identity.ID)
	if err != nil {
		FailResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "创建者申请已拒绝", gin.H{"request": request})
}

// GetPendingProjects 待审核项目列表
func (h *AdminHandler) GetPendingProjects(c *gin.Context) {
	projects, err := h.reviewLogic.PendingProjects()
	if err != nil {
		FailResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取待审核项目成功", gin.H{"projects": projects})
}

// ApproveProject 通过项目审核
func (h *AdminHandler) ApproveProject(c *gin.Context) {
	identity := auth.IdentityFrom(c)
	project, err := h.reviewLogic.ApproveProject(c.Param("id"), identity.ID)
	if err != nil {
		FailResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "项目审核已通过", gin.H{"project": project})
}

// RejectProject 拒绝项目（下架）
func (h *AdminHandler) RejectProject(c *gin.Context) {
	identity := auth.IdentityFrom(c)
	project, err := h.reviewLogic.RejectProject(c.Param("id"), identity.ID)
	if err != nil {
		FailResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "项目已拒绝", gin.H{"project": project})
}

// GetUsers 按角色分组的用户列表
func (h *AdminHandler) GetUsers(c *gin.Context) {
	users, err := h.userLogic.ListByRoles()
	if err != nil {
		FailResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取用户列表成功", gin.H{"users": users})
}

// BanUser 封禁用户
func (h *AdminHandler) BanUser(c *gin.Context) {
	identity := auth.IdentityFrom(c)
	if err := h.userLogic.BanUser(c.Param("id"), identity.ID); err != nil {
		FailResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "用户已封禁", nil)
}
