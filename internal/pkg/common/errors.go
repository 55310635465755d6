package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// ValidationError 表示驗證錯誤
type ValidationError struct {
	message string
}

// Error 實現 error 介面
func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError 創建新的驗證錯誤
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// IsValidationError 檢查是否為驗證錯誤
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// ErrNotFound 目標資料不存在或不屬於該使用者
var ErrNotFound = errors.New("record not found")

// UpstreamError LLM 端點回傳非成功狀態碼
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("LLM API 調用失敗: %d - %s", e.StatusCode, e.Body)
}

// UpstreamFormatError LLM 端點回傳 200，但信封格式無法辨識
type UpstreamFormatError struct {
	Body string
}

func (e *UpstreamFormatError) Error() string {
	return fmt.Sprintf("LLM API 返回格式錯誤: %s", e.Body)
}

// ParseError 模型回覆不是合法的食譜資料
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("解析食譜數據失敗: %s: %v", e.Reason, e.Err)
	}
	return "解析食譜數據失敗: " + e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// PersistenceError 寫入食譜資料時失敗，整筆交易已回滾
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("保存食譜失敗 (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// StatusOf 將錯誤對應到 HTTP 狀態碼
func StatusOf(err error) int {
	var (
		custom      *CustomError
		upstream    *UpstreamError
		format      *UpstreamFormatError
		parse       *ParseError
		persistence *PersistenceError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &upstream), errors.As(err, &format), errors.As(err, &parse):
		return http.StatusBadGateway
	case errors.As(err, &persistence):
		return http.StatusInternalServerError
	case errors.As(err, &custom):
		return custom.Status
	default:
		return http.StatusInternalServerError
	}
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest = "INVALID_REQUEST" // 400
	ErrCodeUnauthorized   = "UNAUTHORIZED"    // 401

	// 服務器錯誤 (5xx)
	ErrCodeInternalError = "INTERNAL_ERROR" // 500
)

// 預定義錯誤
var (
	ErrInvalidRequest = NewError(ErrCodeInvalidRequest, "無效的請求", http.StatusBadRequest, nil)
	ErrUnauthorized   = NewError(ErrCodeUnauthorized, "未授權的訪問", http.StatusUnauthorized, nil)
	ErrInternalError  = NewError(ErrCodeInternalError, "服務器內部錯誤", http.StatusInternalServerError, nil)

	// 業務錯誤
	ErrCacheMiss = NewError("CACHE_MISS", "快取未命中", http.StatusNotFound, nil)
)
