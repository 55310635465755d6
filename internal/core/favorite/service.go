package favorite

import (
	"context"
	"errors"
	"fmt"

	"recipe-generator-backend/internal/models"
	"recipe-generator-backend/internal/pkg/common"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RecipeLoader 讀取完整食譜
type RecipeLoader interface {
	GetRecipe(ctx context.Context, id uint) (*models.Recipe, error)
}

// Service 收藏服務
type Service struct {
	db      *gorm.DB
	recipes RecipeLoader
}

// NewService 創建收藏服務
func NewService(db *gorm.DB, recipes RecipeLoader) *Service {
	return &Service{db: db, recipes: recipes}
}

// Add 收藏食譜，重複收藏返回既有紀錄
func (s *Service) Add(ctx context.Context, userID, recipeID uint) (*models.Favorite, error) {
	var exists int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&exists).Error; err != nil {
		return nil, fmt.Errorf("查詢食譜失敗: %w", err)
	}
	if exists == 0 {
		return nil, common.ErrNotFound
	}

	var fav models.Favorite
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&fav).Error
	if err == nil {
		return &fav, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("查詢收藏失敗: %w", err)
	}

	fav = models.Favorite{UserID: userID, RecipeID: recipeID}
	if err := s.db.WithContext(ctx).Create(&fav).Error; err != nil {
		return nil, fmt.Errorf("收藏失敗: %w", err)
	}

	common.LogInfo("收藏食譜成功", zap.Uint("user_id", userID), zap.Uint("recipe_id", recipeID))
	return &fav, nil
}

// Remove 取消收藏，原本未收藏時返回 false
func (s *Service) Remove(ctx context.Context, userID, recipeID uint) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return false, fmt.Errorf("取消收藏失敗: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// List 新收藏在前；食譜已被刪除時 Recipe 為 nil
func (s *Service) List(ctx context.Context, userID uint) ([]models.Favorite, error) {
	var favs []models.Favorite
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&favs).Error
	if err != nil {
		return nil, fmt.Errorf("查詢收藏失敗: %w", err)
	}

	for i := range favs {
		recipe, err := s.recipes.GetRecipe(ctx, favs[i].RecipeID)
		switch {
		case err == nil:
			favs[i].Recipe = recipe
		case errors.Is(err, common.ErrNotFound):
			favs[i].Recipe = nil
		default:
			return nil, err
		}
	}
	return favs, nil
}

// IsFavorited 是否已收藏
func (s *Service) IsFavorited(ctx context.Context, userID, recipeID uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("查詢收藏失敗: %w", err)
	}
	return n > 0, nil
}
