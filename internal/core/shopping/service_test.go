package shopping

import (
	"context"
	"errors"
	"testing"

	"recipe-generator-backend/internal/core/catalog"
	"recipe-generator-backend/internal/infrastructure/database"
	"recipe-generator-backend/internal/models"
	"recipe-generator-backend/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	for _, name := range []string{"番茄", "雞蛋"} {
		require.NoError(t, db.Create(&models.Ingredient{Name: name, Category: models.CategoryVegetable}).Error)
	}
	return NewService(db, catalog.NewService(db, nil)), db
}

func TestAddItem_MergesUnpurchased(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	first, err := svc.AddItem(ctx, 1, 1, "200g", "挑紅一點的")
	require.NoError(t, err)
	assert.Equal(t, "200g", first.Quantity)
	require.NotNil(t, first.Ingredient)
	assert.Equal(t, "番茄", first.Ingredient.Name)

	second, err := svc.AddItem(ctx, 1, 1, "300g", "做湯用")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "500g", second.Quantity)
	assert.Equal(t, "挑紅一點的; 做湯用", second.Note)

	third, err := svc.AddItem(ctx, 1, 1, "1個", "")
	require.NoError(t, err)
	assert.Equal(t, "500g, 1個", third.Quantity)
	assert.Equal(t, "挑紅一點的; 做湯用", third.Note)

	var n int64
	require.NoError(t, db.Model(&models.ShoppingListItem{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestAddItem_PurchasedIsNotMergeTarget(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	first, err := svc.AddItem(ctx, 1, 2, "2個", "")
	require.NoError(t, err)
	ok, err := svc.SetPurchased(ctx, 1, first.ID, true)
	require.NoError(t, err)
	require.True(t, ok)

	second, err := svc.AddItem(ctx, 1, 2, "3個", "")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "3個", second.Quantity)
}

func TestAddItem_SeparateUsers(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	a, err := svc.AddItem(ctx, 1, 1, "1個", "")
	require.NoError(t, err)
	b, err := svc.AddItem(ctx, 2, 1, "1個", "")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestAddItem_UnknownIngredient(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.AddItem(context.Background(), 1, 99, "1個", "")
	assert.True(t, errors.Is(err, common.ErrNotFound))

	_, err = svc.AddItem(context.Background(), 1, 0, "1個", "")
	assert.True(t, common.IsValidationError(err))
}

func TestListItems_Ordering(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	tomato, err := svc.AddItem(ctx, 1, 1, "1個", "")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, 1, 2, "2個", "")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, 2, 1, "5個", "")
	require.NoError(t, err)

	_, err = svc.SetPurchased(ctx, 1, tomato.ID, true)
	require.NoError(t, err)

	items, err := svc.ListItems(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.False(t, items[0].IsPurchased)
	assert.Equal(t, "雞蛋", items[0].Ingredient.Name)
	assert.True(t, items[1].IsPurchased)
	assert.Equal(t, "番茄", items[1].Ingredient.Name)
}

func TestItemOwnership(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, 1, 1, "1個", "")
	require.NoError(t, err)

	ok, err := svc.SetPurchased(ctx, 2, item.ID, true)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.DeleteItem(ctx, 2, item.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.DeleteItem(ctx, 1, item.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.DeleteItem(ctx, 1, item.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, 1, "1個", "")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, 1, 2, "1個", "")
	require.NoError(t, err)

	ok, err := svc.Clear(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	items, err := svc.ListItems(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, items)

	ok, err = svc.Clear(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}
