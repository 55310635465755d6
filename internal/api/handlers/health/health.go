package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"recipe-generator-backend/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Model     string                 `json:"model"`
	Database  string                 `json:"database"`
	Cache     map[string]interface{} `json:"cache"`
	Runtime   map[string]interface{} `json:"runtime"`
}

// StatsProvider 提供快取統計
type StatsProvider interface {
	CacheStats() map[string]interface{}
}

// Handler 健康檢查
type Handler struct {
	db      *gorm.DB
	cache   StatsProvider
	version string
	model   string
}

// NewHandler 創建健康檢查處理器
func NewHandler(db *gorm.DB, cache StatsProvider, version, model string) *Handler {
	return &Handler{db: db, cache: cache, version: version, model: model}
}

func (h *Handler) pingDB(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	status := http.StatusOK
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.version,
		Model:     h.model,
		Database:  "up",
		Cache:     h.cache.CacheStats(),
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	if err := h.pingDB(c.Request.Context()); err != nil {
		common.LogError("Database ping failed", zap.Error(err))
		response.Status = "degraded"
		response.Database = "down"
		status = http.StatusServiceUnavailable
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("status", response.Status),
	)

	c.JSON(status, response)
}

// ReadinessCheck 資料庫可連線才算就緒
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if err := h.pingDB(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
