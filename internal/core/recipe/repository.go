package recipe

import (
	"context"
	"errors"

	"recipe-generator-backend/internal/core/catalog"
	"recipe-generator-backend/internal/models"
	"recipe-generator-backend/internal/pkg/common"

	"gorm.io/gorm"
)

// loadRecipe 讀取食譜聚合：步驟依編號遞增，食材依寫入順序並回投到目錄名稱
func loadRecipe(ctx context.Context, db *gorm.DB, cat *catalog.Service, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := db.WithContext(ctx).First(&recipe, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).
		Where("recipe_id = ?", id).
		Order("step_number ASC").
		Find(&recipe.Steps).Error; err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).
		Where("recipe_id = ?", id).
		Order("id ASC").
		Find(&recipe.RecipeIngredients).Error; err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(recipe.RecipeIngredients))
	for _, link := range recipe.RecipeIngredients {
		ids = append(ids, link.IngredientID)
	}
	entries, err := cat.FindByIDs(ctx, db, ids)
	if err != nil {
		return nil, err
	}

	recipe.Ingredients = make([]models.IngredientView, 0, len(recipe.RecipeIngredients))
	for _, link := range recipe.RecipeIngredients {
		recipe.Ingredients = append(recipe.Ingredients, models.IngredientView{
			IngredientID: link.IngredientID,
			Name:         entries[link.IngredientID].Name,
			Quantity:     link.Quantity,
			IsRequired:   link.IsRequired,
		})
	}

	return &recipe, nil
}

// deleteRecipe 在同一交易內刪除步驟、食材關聯與食譜
func deleteRecipe(ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	deleted := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeStep{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Recipe{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}
