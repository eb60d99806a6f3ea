package errs

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// Kind 稳定的机器可读错误码
type Kind string

const (
	KindNotFound            Kind = "NOT_FOUND"
	KindUnauthenticated     Kind = "UNAUTHENTICATED"
	KindForbidden           Kind = "FORBIDDEN"
	KindInvalidAmount       Kind = "INVALID_AMOUNT"
	KindGoalReached         Kind = "GOAL_ALREADY_REACHED"
	KindExceedsRemaining    Kind = "EXCEEDS_REMAINING_GOAL"
	KindInsufficientBalance Kind = "INSUFFICIENT_BALANCE"
	KindValidationFailed    Kind = "VALIDATION_FAILED"
	KindSettlementFailed    Kind = "SETTLEMENT_FAILED"
	KindInternal            Kind = "INTERNAL"
)

// Error 业务错误，携带错误码和用户可读信息
type Error struct {
	Kind      Kind            `json:"kind"`
	Message   string          `json:"message"`
	Remaining decimal.Decimal `json:"remaining"` // 仅 EXCEEDS_REMAINING_GOAL 时有意义
	cause     error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap 支持 errors.Is / errors.As
func (e *Error) Unwrap() error {
	return e.cause
}

// New 创建业务错误
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap 包装底层错误
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// NotFound 未找到
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// Unauthenticated 未认证
func Unauthenticated(message string) *Error {
	return New(KindUnauthenticated, message)
}

// Forbidden 无权限
func Forbidden(message string) *Error {
	return New(KindForbidden, message)
}

// ExceedsRemaining 超出剩余目标金额，携带精确的剩余值供调用方重试
func ExceedsRemaining(remaining decimal.Decimal) *Error {
	return &Error{
		Kind:      KindExceedsRemaining,
		Message:   fmt.Sprintf("投资金额超出剩余目标金额，最多可投 %s", remaining.StringFixed(2)),
		Remaining: remaining,
	}
}

// KindOf 提取错误码，非业务错误归为 INTERNAL
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus 错误码到 HTTP 状态码的映射
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindInvalidAmount, KindGoalReached, KindExceedsRemaining,
		KindInsufficientBalance, KindValidationFailed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
