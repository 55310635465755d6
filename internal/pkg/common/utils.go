package common

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// APIResponse 統一響應格式
type APIResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// GenerateUUID 生成 UUID，作為請求 ID
func GenerateUUID() string {
	return uuid.New().String()
}

// Success 寫入成功響應
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

// Fail 寫入錯誤響應
func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, APIResponse{
		Code:    status,
		Message: message,
	})
}

// FailWithError 依錯誤類型決定狀態碼，訊息帶上原始錯誤內容
func FailWithError(c *gin.Context, prefix string, err error) {
	_ = c.Error(err)
	Fail(c, StatusOf(err), prefix+err.Error())
}

// ParseIDParam 讀取路徑中的正整數 ID，不合法時直接回應 400
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		Fail(c, http.StatusBadRequest, "無效的 "+name)
		return 0, false
	}
	return uint(id), true
}
