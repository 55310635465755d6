package favorite

import (
	"context"
	"errors"
	"testing"

	"recipe-generator-backend/internal/core/catalog"
	"recipe-generator-backend/internal/core/recipe"
	"recipe-generator-backend/internal/infrastructure/database"
	"recipe-generator-backend/internal/models"
	"recipe-generator-backend/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, *recipe.Service, *gorm.DB) {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	recipes := recipe.NewService(db, nil, catalog.NewService(db, nil))
	return NewService(db, recipes), recipes, db
}

func seedRecipe(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	ing := models.Ingredient{Name: name + "食材", Category: models.CategoryOther}
	require.NoError(t, db.Create(&ing).Error)
	r := models.Recipe{Name: name, CuisineType: models.CuisineChinese, DifficultyLevel: models.DifficultyEasy, Servings: 2}
	require.NoError(t, db.Create(&r).Error)
	require.NoError(t, db.Create(&models.RecipeIngredient{RecipeID: r.ID, IngredientID: ing.ID, Quantity: "1份", IsRequired: true}).Error)
	require.NoError(t, db.Create(&models.RecipeStep{RecipeID: r.ID, StepNumber: 2, Description: "第二步"}).Error)
	require.NoError(t, db.Create(&models.RecipeStep{RecipeID: r.ID, StepNumber: 1, Description: "第一步"}).Error)
	return r.ID
}

func TestAdd_Idempotent(t *testing.T) {
	svc, _, db := setupService(t)
	ctx := context.Background()
	id := seedRecipe(t, db, "麻婆豆腐")

	first, err := svc.Add(ctx, 1, id)
	require.NoError(t, err)
	second, err := svc.Add(ctx, 1, id)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	ok, err := svc.IsFavorited(ctx, 1, id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsFavorited(ctx, 2, id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAdd_UnknownRecipe(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.Add(context.Background(), 1, 404)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestList_HydratesRecipes(t *testing.T) {
	svc, recipes, db := setupService(t)
	ctx := context.Background()
	first := seedRecipe(t, db, "宮保雞丁")
	second := seedRecipe(t, db, "回鍋肉")

	_, err := svc.Add(ctx, 1, first)
	require.NoError(t, err)
	_, err = svc.Add(ctx, 1, second)
	require.NoError(t, err)

	deleted, err := recipes.DeleteRecipe(ctx, first)
	require.NoError(t, err)
	require.True(t, deleted)

	favs, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, favs, 2)

	assert.Equal(t, second, favs[0].RecipeID)
	require.NotNil(t, favs[0].Recipe)
	assert.Equal(t, "回鍋肉", favs[0].Recipe.Name)
	require.Len(t, favs[0].Recipe.Steps, 2)
	assert.Equal(t, "第一步", favs[0].Recipe.Steps[0].Description)
	require.Len(t, favs[0].Recipe.Ingredients, 1)
	assert.Equal(t, "回鍋肉食材", favs[0].Recipe.Ingredients[0].Name)

	assert.Equal(t, first, favs[1].RecipeID)
	assert.Nil(t, favs[1].Recipe)
}

func TestRemove(t *testing.T) {
	svc, _, db := setupService(t)
	ctx := context.Background()
	id := seedRecipe(t, db, "炒青菜")

	_, err := svc.Add(ctx, 1, id)
	require.NoError(t, err)

	ok, err := svc.Remove(ctx, 1, id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Remove(ctx, 1, id)
	require.NoError(t, err)
	assert.False(t, ok)
}
