package handler

import (
	"net/http"

	"github.com/Aditya282007/Crowd-Chain/internal/auth"
	"github.com/Aditya282007/Crowd-Chain/internal/logic"
	"github.com/gin-gonic/gin"
)

// ProjectHandler 项目处理器
type ProjectHandler struct {
	projectLogic *logic.ProjectLogic
	investLogic  *logic.InvestLogic
}

// NewProjectHandler 创建项目处理器
func NewProjectHandler(projectLogic *logic.ProjectLogic, investLogic *logic.InvestLogic) *ProjectHandler {
	return &ProjectHandler{
		projectLogic: projectLogic,
		investLogic:  investLogic,
	}
}

// CreateProject 创建项目（仅已审核的创建者）
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var input logic.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目数据")
		return
	}

	identity := auth.IdentityFrom(c)
	project, err := h.projectLogic.CreateProject(identity.ID, input)
	if err != nil {
		FailResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "项目创建成功", gin.H{"project": project})
}

// GetProjects 公开项目列表
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	projects, err := h.projectLogic.ListPublic()
	if err != nil {
		FailResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取项目列表成功", gin.H{"projects": projects})
}

// GetProject 项目详情
func (h *ProjectHandler) GetProject(c *gin.Context) {
	detail, err := h.projectLogic.GetDetail(c.Param("id"))
	if err != nil {
		FailResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取项目详情成功", detail)
}

// Invest 投资项目
//
// 校验通过后立即返回 pending 状态的交易回执，
// 结算在模拟确认延迟后异步完成。
func (h *ProjectHandler) Invest(c *gin.Context) {
	var input struct {
		Amount string `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的投资数据")
		return
	}

	identity := auth.IdentityFrom(c)
	tx, err := h.investLogic.Invest(identity.ID, c.Param("id"), input.Amount)
	if err != nil {
		FailResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "投资已受理", gin.H{
		"transaction": tx,
		"receipt": gin.H{
			"tx_hash":      tx.TxHash,
			"block_number": tx.BlockNumber,
			"gas_used":     tx.GasUsed,
			"timestamp":    tx.CreatedAt,
		},
	})
}
