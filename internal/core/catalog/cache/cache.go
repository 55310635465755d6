package cache

import (
	"context"
	"fmt"

	"recipe-generator-backend/internal/infrastructure/config"
	"recipe-generator-backend/internal/pkg/common"
)

// Cache 食材目錄讀取快取。值為序列化後的位元組，鍵由呼叫端決定
type Cache interface {
	// Get 未命中時返回 common.ErrCacheMiss
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Invalidate 清除所有目錄相關的鍵
	Invalidate(ctx context.Context) error
	GetStats() map[string]interface{}
	Close() error
}

// New 依設定建立快取；driver 為 none 時返回不保存任何資料的實作
func New(cfg config.CacheConfig) (Cache, error) {
	switch cfg.Driver {
	case "memory":
		return NewManager(cfg), nil
	case "redis":
		return NewService(cfg)
	case "none", "":
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("unsupported cache driver %q", cfg.Driver)
	}
}

// Noop 停用快取
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, error) { return nil, common.ErrCacheMiss }
func (Noop) Set(context.Context, string, []byte) error   { return nil }
func (Noop) Invalidate(context.Context) error            { return nil }
func (Noop) GetStats() map[string]interface{}            { return map[string]interface{}{"driver": "none"} }
func (Noop) Close() error                                { return nil }
