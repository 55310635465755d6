package shopping

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recipe-generator-backend/internal/core/catalog"
	"recipe-generator-backend/internal/models"
	"recipe-generator-backend/internal/pkg/common"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service 購物清單服務。同一使用者、同一食材最多只有一筆未購買項目
type Service struct {
	db      *gorm.DB
	catalog *catalog.Service
}

// NewService 創建購物清單服務
func NewService(db *gorm.DB, cat *catalog.Service) *Service {
	return &Service{db: db, catalog: cat}
}

// AddItem 加入食材；已有未購買的同一食材時合併數量與備註
func (s *Service) AddItem(ctx context.Context, userID, ingredientID uint, quantity, note string) (*models.ShoppingListItem, error) {
	if ingredientID == 0 {
		return nil, common.NewValidationError("食材 ID 不能為空")
	}
	quantity = strings.TrimSpace(quantity)
	note = strings.TrimSpace(note)

	var item models.ShoppingListItem
	merged := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ing models.Ingredient
		if err := tx.First(&ing, ingredientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrNotFound
			}
			return err
		}
		item.Ingredient = &ing

		err := tx.Where("user_id = ? AND ingredient_id = ? AND is_purchased = ?", userID, ingredientID, false).
			Order("id ASC").
			First(&item).Error
		switch {
		case err == nil:
			merged = true
			item.Quantity = MergeQuantity(item.Quantity, quantity)
			if note != "" {
				if item.Note != "" {
					item.Note = item.Note + "; " + note
				} else {
					item.Note = note
				}
			}
			return tx.Save(&item).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.ShoppingListItem{
				UserID:       userID,
				IngredientID: ingredientID,
				Quantity:     quantity,
				Note:         note,
				IsPurchased:  false,
				Ingredient:   item.Ingredient,
			}
			return tx.Create(&item).Error
		default:
			return err
		}
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("加入購物清單失敗: %w", err)
	}

	common.LogInfo("購物清單已更新",
		zap.Uint("user_id", userID),
		zap.Uint("ingredient_id", ingredientID),
		zap.Bool("merged", merged),
		zap.String("quantity", item.Quantity),
	)
	return &item, nil
}

// ListItems 未購買在前，同狀態內新的在前
func (s *Service) ListItems(ctx context.Context, userID uint) ([]models.ShoppingListItem, error) {
	var items []models.ShoppingListItem
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_purchased ASC").
		Order("created_at DESC").
		Order("id DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("查詢購物清單失敗: %w", err)
	}

	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.IngredientID)
	}
	entries, err := s.catalog.FindByIDs(ctx, nil, ids)
	if err != nil {
		return nil, fmt.Errorf("查詢食材失敗: %w", err)
	}
	for i := range items {
		if ing, ok := entries[items[i].IngredientID]; ok {
			ing := ing
			items[i].Ingredient = &ing
		}
	}
	return items, nil
}

// SetPurchased 更新購買狀態，項目不存在或不屬於該使用者時返回 false
func (s *Service) SetPurchased(ctx context.Context, userID, itemID uint, purchased bool) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&models.ShoppingListItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Update("is_purchased", purchased)
	if res.Error != nil {
		return false, fmt.Errorf("更新購買狀態失敗: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteItem 刪除單一項目
func (s *Service) DeleteItem(ctx context.Context, userID, itemID uint) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.ShoppingListItem{})
	if res.Error != nil {
		return false, fmt.Errorf("刪除購物清單項目失敗: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Clear 清空使用者的購物清單，原本就是空的時返回 false
func (s *Service) Clear(ctx context.Context, userID uint) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.ShoppingListItem{})
	if res.Error != nil {
		return false, fmt.Errorf("清空購物清單失敗: %w", res.Error)
	}
	common.LogInfo("購物清單已清空", zap.Uint("user_id", userID), zap.Int64("deleted", res.RowsAffected))
	return res.RowsAffected > 0, nil
}
