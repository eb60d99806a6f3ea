package handler

import (
	"errors"
	"net/http"

	"github.com/Aditya282007/Crowd-Chain/internal/errs"
	"github.com/Aditya282007/Crowd-Chain/internal/logger"
	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Kind    errs.Kind   `json:"kind,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
	})
}

// FailResponse 业务错误响应，携带稳定错误码；内部错误不对外暴露细节
func FailResponse(c *gin.Context, err error) {
	var e *errs.Error
	if !errors.As(err, &e) {
		logger.Error("Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: "服务器内部错误",
			Kind:    errs.KindInternal,
		})
		return
	}

	resp := Response{
		Success: false,
		Message: e.Message,
		Kind:    e.Kind,
	}
	// 超出剩余目标时把精确剩余值带给调用方，便于重试
	if e.Kind == errs.KindExceedsRemaining {
		resp.Data = gin.H{"remaining": e.Remaining.StringFixed(2)}
	}
	c.JSON(errs.HTTPStatus(err), resp)
}
