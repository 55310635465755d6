package combo

import (
	"context"
	"fmt"
	"strings"

	"recipe-generator-backend/internal/models"
	"recipe-generator-backend/internal/pkg/common"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service 常用食材組合
type Service struct {
	db *gorm.DB
}

// NewService 創建組合服務
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func validate(name, ingredients string) error {
	if strings.TrimSpace(name) == "" {
		return common.NewValidationError("組合名稱不能為空")
	}
	if strings.TrimSpace(ingredients) == "" {
		return common.NewValidationError("食材列表不能為空")
	}
	return nil
}

// Save 保存組合
func (s *Service) Save(ctx context.Context, userID uint, name, ingredients string) (*models.IngredientCombo, error) {
	if err := validate(name, ingredients); err != nil {
		return nil, err
	}

	c := &models.IngredientCombo{
		UserID:      userID,
		Name:        strings.TrimSpace(name),
		Ingredients: ingredients,
	}
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, fmt.Errorf("保存食材組合失敗: %w", err)
	}

	common.LogInfo("保存食材組合", zap.Uint("user_id", userID), zap.String("name", c.Name))
	return c, nil
}

// List 新的在前
func (s *Service) List(ctx context.Context, userID uint) ([]models.IngredientCombo, error) {
	var combos []models.IngredientCombo
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&combos).Error
	if err != nil {
		return nil, fmt.Errorf("查詢食材組合失敗: %w", err)
	}
	return combos, nil
}

// Update 更新組合，不存在或不屬於該使用者時返回 false
func (s *Service) Update(ctx context.Context, userID, comboID uint, name, ingredients string) (bool, error) {
	if err := validate(name, ingredients); err != nil {
		return false, err
	}

	res := s.db.WithContext(ctx).
		Model(&models.IngredientCombo{}).
		Where("id = ? AND user_id = ?", comboID, userID).
		Updates(map[string]interface{}{
			"name":        strings.TrimSpace(name),
			"ingredients": ingredients,
		})
	if res.Error != nil {
		return false, fmt.Errorf("更新食材組合失敗: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Delete 刪除組合
func (s *Service) Delete(ctx context.Context, userID, comboID uint) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", comboID, userID).
		Delete(&models.IngredientCombo{})
	if res.Error != nil {
		return false, fmt.Errorf("刪除食材組合失敗: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
