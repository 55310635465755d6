package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"recipe-generator-backend/internal/core/catalog/cache"
	"recipe-generator-backend/internal/models"
	"recipe-generator-backend/internal/pkg/common"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	listKey = "ingredients:all"

	// 清除快取不受請求期限影響
	invalidateTimeout = 3 * time.Second
)

func ingredientKey(id uint) string {
	return fmt.Sprintf("ingredient:%d", id)
}

// Service 食材目錄服務
type Service struct {
	db    *gorm.DB
	cache cache.Cache

	// epoch 每次 Invalidate 遞增；查詢期間 epoch 變動的結果不寫回快取
	epoch atomic.Uint64
}

// NewService 創建目錄服務，c 為 nil 時不使用快取
func NewService(db *gorm.DB, c cache.Cache) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &Service{db: db, cache: c}
}

// ListIngredients 列出全部目錄項目
func (s *Service) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	var list []models.Ingredient
	if s.readCache(ctx, listKey, &list) {
		return list, nil
	}

	epoch := s.epoch.Load()
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("查詢食材失敗: %w", err)
	}

	s.writeCache(ctx, epoch, listKey, list)
	return list, nil
}

// GetIngredient 依 id 取得目錄項目
func (s *Service) GetIngredient(ctx context.Context, id uint) (*models.Ingredient, error) {
	var ing models.Ingredient
	if s.readCache(ctx, ingredientKey(id), &ing) {
		return &ing, nil
	}

	epoch := s.epoch.Load()
	err := s.db.WithContext(ctx).First(&ing, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查詢食材失敗: %w", err)
	}

	s.writeCache(ctx, epoch, ingredientKey(id), ing)
	return &ing, nil
}

// FindByIDs 批次取得目錄項目，結果以 id 為鍵
func (s *Service) FindByIDs(ctx context.Context, db *gorm.DB, ids []uint) (map[uint]models.Ingredient, error) {
	result := make(map[uint]models.Ingredient, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	if db == nil {
		db = s.db
	}

	var list []models.Ingredient
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	for _, ing := range list {
		result[ing.ID] = ing
	}
	return result, nil
}

// Lookup 唯讀的精確、模糊查詢，不會新增項目
func (s *Service) Lookup(ctx context.Context, name string) (*models.Ingredient, MatchTier, error) {
	return lookup(ctx, s.db, name)
}

// ResolveOrCreate 在 tx 上解析或新增目錄項目，tx 為 nil 時使用服務自身的連線。
// created 為 true 時，呼叫端應在交易提交後呼叫 Invalidate。
func (s *Service) ResolveOrCreate(ctx context.Context, tx *gorm.DB, name string) (ing *models.Ingredient, created bool, err error) {
	if tx == nil {
		tx = s.db
		defer func() {
			if created {
				s.Invalidate(ctx)
			}
		}()
	}
	return resolveOrCreate(ctx, tx, name)
}

// Invalidate 清除目錄快取，失敗只記錄。
// 使用脫離請求取消的 context，請求已逾時也會完成清除。
// epoch 只在本行程內有效，多個實例共用 redis 時，其他實例的舊資料最多保留一個 TTL。
func (s *Service) Invalidate(ctx context.Context) {
	s.epoch.Add(1)
	s.clearCache(ctx)
}

func (s *Service) clearCache(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), invalidateTimeout)
	defer cancel()
	if err := s.cache.Invalidate(ctx); err != nil {
		common.LogWarn("清除食材快取失敗", zap.Error(err))
	}
}

// CacheStats 快取統計
func (s *Service) CacheStats() map[string]interface{} {
	return s.cache.GetStats()
}

func (s *Service) readCache(ctx context.Context, key string, v interface{}) bool {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, common.ErrCacheMiss) {
			common.LogWarn("讀取食材快取失敗", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := common.ParseJSONBytes(data, v); err != nil {
		common.LogWarn("食材快取內容無法解析", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// writeCache 只寫回查詢開始後未被作廢的結果；
// 寫入後若 epoch 已變動，代表 Invalidate 可能先一步清除，再清一次
func (s *Service) writeCache(ctx context.Context, epoch uint64, key string, v interface{}) {
	if s.epoch.Load() != epoch {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data); err != nil {
		common.LogWarn("寫入食材快取失敗", zap.String("key", key), zap.Error(err))
		return
	}
	if s.epoch.Load() != epoch {
		s.clearCache(ctx)
	}
}
