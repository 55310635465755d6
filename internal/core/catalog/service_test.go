package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"recipe-generator-backend/internal/core/catalog/cache"
	"recipe-generator-backend/internal/infrastructure/config"
	"recipe-generator-backend/internal/infrastructure/database"
	"recipe-generator-backend/internal/models"
	"recipe-generator-backend/internal/pkg/common"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T, names ...string) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	for _, name := range names {
		require.NoError(t, db.Create(&models.Ingredient{Name: name, Category: models.CategoryVegetable, CommonUnit: "個"}).Error)
	}
	return db
}

func countIngredients(t *testing.T, db *gorm.DB) int64 {
	var n int64
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&n).Error)
	return n
}

func TestResolveOrCreate(t *testing.T) {
	tests := []struct {
		name        string
		catalog     []string
		query       string
		wantName    string
		wantCreated bool
	}{
		{
			name:     "exact match",
			catalog:  []string{"garlic"},
			query:    "garlic",
			wantName: "garlic",
		},
		{
			name:     "exact beats shorter fuzzy candidate",
			catalog:  []string{"蒜", "大蒜"},
			query:    "大蒜",
			wantName: "大蒜",
		},
		{
			name:     "query contains catalog name",
			catalog:  []string{"糖"},
			query:    "白糖",
			wantName: "糖",
		},
		{
			name:     "catalog name contains query",
			catalog:  []string{"紅蘿蔔絲"},
			query:    "蘿蔔",
			wantName: "紅蘿蔔絲",
		},
		{
			name:     "shortest fuzzy candidate wins",
			catalog:  []string{"醃大蒜", "蒜"},
			query:    "大蒜",
			wantName: "蒜",
		},
		{
			name:     "surrounding spaces are trimmed",
			catalog:  []string{"番茄"},
			query:    "  番茄 ",
			wantName: "番茄",
		},
		{
			name:        "no match creates entry",
			catalog:     []string{"雞蛋"},
			query:       "牛肉",
			wantName:    "牛肉",
			wantCreated: true,
		},
		{
			name:     "catalog name with wildcards is matched literally",
			catalog:  []string{"50%_糖"},
			query:    "低50%_糖漿",
			wantName: "50%_糖",
		},
		{
			name:     "catalog name with backslash",
			catalog:  []string{`醬油\老抽`},
			query:    `特級醬油\老抽`,
			wantName: `醬油\老抽`,
		},
		{
			name:        "catalog wildcard does not match other names",
			catalog:     []string{"a_c"},
			query:       "abc",
			wantName:    "abc",
			wantCreated: true,
		},
		{
			name:        "like wildcards are literal",
			catalog:     []string{"米"},
			query:       "%",
			wantName:    "%",
			wantCreated: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupDB(t, tt.catalog...)
			svc := NewService(db, nil)
			before := countIngredients(t, db)

			ing, created, err := svc.ResolveOrCreate(context.Background(), nil, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, ing.Name)
			assert.Equal(t, tt.wantCreated, created)

			after := countIngredients(t, db)
			if tt.wantCreated {
				assert.Equal(t, before+1, after)
				assert.Equal(t, models.CategoryOther, ing.Category)
				assert.Equal(t, DefaultCommonUnit, ing.CommonUnit)
				assert.Equal(t, 0, ing.Calories)
				assert.NotZero(t, ing.ID)
			} else {
				assert.Equal(t, before, after)
			}
		})
	}
}

func TestResolveOrCreate_TieBreakByID(t *testing.T) {
	db := setupDB(t, "蔥花", "青蔥")
	svc := NewService(db, nil)

	ing, _, err := svc.ResolveOrCreate(context.Background(), nil, "蔥")
	require.NoError(t, err)
	assert.Equal(t, "蔥花", ing.Name)
}

func TestResolveOrCreate_BlankName(t *testing.T) {
	db := setupDB(t, "鹽")
	svc := NewService(db, nil)

	_, _, err := svc.ResolveOrCreate(context.Background(), nil, "   ")
	assert.True(t, common.IsValidationError(err))
	assert.Equal(t, int64(1), countIngredients(t, db))
}

func TestLookup(t *testing.T) {
	db := setupDB(t, "糖", "雞蛋")
	svc := NewService(db, nil)
	ctx := context.Background()

	ing, tier, err := svc.Lookup(ctx, "雞蛋")
	require.NoError(t, err)
	assert.Equal(t, MatchExact, tier)
	assert.Equal(t, "雞蛋", ing.Name)

	ing, tier, err = svc.Lookup(ctx, "冰糖")
	require.NoError(t, err)
	assert.Equal(t, MatchFuzzy, tier)
	assert.Equal(t, "糖", ing.Name)

	ing, tier, err = svc.Lookup(ctx, "豆腐")
	require.NoError(t, err)
	assert.Equal(t, MatchNone, tier)
	assert.Nil(t, ing)
	assert.Equal(t, int64(2), countIngredients(t, db))
}

func TestGetIngredient(t *testing.T) {
	db := setupDB(t, "洋蔥")
	svc := NewService(db, nil)

	ing, err := svc.GetIngredient(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "洋蔥", ing.Name)

	_, err = svc.GetIngredient(context.Background(), 99)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestListIngredients_CacheInvalidatedOnCreate(t *testing.T) {
	db := setupDB(t, "洋蔥")
	mgr := cache.NewManager(config.CacheConfig{Driver: "memory", MaxSize: 10, TTL: time.Minute})
	defer mgr.Close()
	svc := NewService(db, mgr)
	ctx := context.Background()

	list, err := svc.ListIngredients(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	// 直接寫入資料庫，快取仍返回舊結果
	require.NoError(t, db.Create(&models.Ingredient{Name: "蒜", Category: models.CategorySeasoning}).Error)
	list, err = svc.ListIngredients(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, created, err := svc.ResolveOrCreate(ctx, nil, "牛肉")
	require.NoError(t, err)
	require.True(t, created)

	list, err = svc.ListIngredients(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestListIngredients_InvalidatedDuringQueryIsNotCached(t *testing.T) {
	db := setupDB(t, "洋蔥")
	mgr := cache.NewManager(config.CacheConfig{Driver: "memory", MaxSize: 10, TTL: time.Minute})
	defer mgr.Close()
	svc := NewService(db, mgr)
	ctx := context.Background()

	// 查詢完成後、寫回快取前，另一筆生成提交新食材並清除快取
	fired := false
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:commit_during_read", func(tx *gorm.DB) {
		if fired || tx.Statement.Table != "ingredients" {
			return
		}
		fired = true
		require.NoError(t, db.Create(&models.Ingredient{Name: "蒜", Category: models.CategorySeasoning}).Error)
		svc.Invalidate(ctx)
	}))

	list, err := svc.ListIngredients(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	require.True(t, fired)

	_, err = mgr.Get(ctx, listKey)
	assert.True(t, errors.Is(err, common.ErrCacheMiss))

	list, err = svc.ListIngredients(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestInvalidate_IgnoresCanceledRequestContext(t *testing.T) {
	mr := miniredis.RunT(t)
	rc, err := cache.NewService(config.CacheConfig{Driver: "redis", RedisAddr: mr.Addr(), TTL: time.Minute})
	require.NoError(t, err)
	defer rc.Close()

	db := setupDB(t, "洋蔥")
	svc := NewService(db, rc)

	_, err = svc.ListIngredients(context.Background())
	require.NoError(t, err)
	require.Len(t, mr.Keys(), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Invalidate(ctx)
	assert.Empty(t, mr.Keys())
}

func TestFindByIDs(t *testing.T) {
	db := setupDB(t, "a", "b", "c")
	svc := NewService(db, nil)

	found, err := svc.FindByIDs(context.Background(), nil, []uint{1, 3, 42})
	require.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Equal(t, "a", found[1].Name)
	assert.Equal(t, "c", found[3].Name)
}
