package handler

import (
	"net/http"

	"github.com/Aditya282007/Crowd-Chain/internal/auth"
	"github.com/Aditya282007/Crowd-Chain/internal/logic"
	"github.com/gin-gonic/gin"
)

// UserHandler 用户侧操作：创建者申请、钱包绑定
type UserHandler struct {
	reviewLogic *logic.ReviewLogic
	userLogic   *logic.UserLogic
}

// NewUserHandler 创建用户处理器
func NewUserHandler(reviewLogic *logic.ReviewLogic, userLogic *logic.UserLogic) *UserHandler {
	return &UserHandler{
		reviewLogic: reviewLogic,
		userLogic:   userLogic,
	}
}

// SubmitCreatorRequest 投资人提交创建者资格申请
func (h *UserHandler) SubmitCreatorRequest(c *gin.Context) {
	var input logic.CreatorRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的申请数据")
		return
	}

	identity := auth.IdentityFrom(c)
	request, err := h.reviewLogic.SubmitCreatorRequest(identity.ID, input)
	if err != nil {
		FailResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "申请已提交", gin.H{"request": request})
}

// ConnectWallet 绑定模拟钱包
func (h *UserHandler) ConnectWallet(c *gin.Context) {
	var input struct {
		WalletType string `json:"wallet_type"`
	}
	_ = c.ShouldBindJSON(&input)
	if input.WalletType == "" {
		input.WalletType = "metamask"
	}

	identity := auth.IdentityFrom(c)
	connection, err := h.userLogic.ConnectWallet(identity.ID, input.WalletType)
	if err != nil {
		FailResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "钱包连接成功", gin.H{"connection": connection})
}
