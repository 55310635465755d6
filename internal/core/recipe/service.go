package recipe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recipe-generator-backend/internal/core/catalog"
	"recipe-generator-backend/internal/models"
	"recipe-generator-backend/internal/pkg/common"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Completer 文字補全端點
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Service 食譜生成與讀取服務
type Service struct {
	db      *gorm.DB
	llm     Completer
	catalog *catalog.Service
}

// NewService 創建食譜服務
func NewService(db *gorm.DB, llm Completer, cat *catalog.Service) *Service {
	return &Service{
		db:      db,
		llm:     llm,
		catalog: cat,
	}
}

// Generate 生成一份食譜並寫入資料庫。
// 模型呼叫與解析都在交易開始前完成，失敗時不會有任何寫入；
// 食譜、食材關聯、步驟在同一個交易內寫入，任何一筆失敗整份回滾。
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*models.Recipe, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	prompt := BuildPrompt(req)

	reply, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		common.LogError("調用 LLM 失敗", zap.Error(err))
		return nil, err
	}

	draft, err := ParseDraft(reply)
	if err != nil {
		common.LogError("解析食譜回覆失敗",
			zap.Error(err),
			zap.Int("reply_length", len(reply)),
		)
		return nil, err
	}

	recipe := &models.Recipe{
		Name:            draft.Name,
		Description:     draft.Description,
		CuisineType:     req.CuisineType,
		FlavorTypes:     models.JoinFlavors(req.FlavorTypes),
		CookingTime:     req.CookingTime,
		DifficultyLevel: req.DifficultyLevel,
		Servings:        draft.ServingsOrDefault(),
	}

	createdIngredients := 0
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return &common.PersistenceError{Op: "recipe", Err: err}
		}

		for _, item := range draft.Ingredients {
			ing, created, err := s.catalog.ResolveOrCreate(ctx, tx, item.Name)
			if err != nil {
				return &common.PersistenceError{Op: "ingredient", Err: err}
			}
			if created {
				createdIngredients++
			}

			link := &models.RecipeIngredient{
				RecipeID:     recipe.ID,
				IngredientID: ing.ID,
				Quantity:     item.Quantity,
				IsRequired:   item.Required(),
			}
			if err := tx.Create(link).Error; err != nil {
				return &common.PersistenceError{Op: "recipe_ingredient", Err: err}
			}
		}

		for _, item := range draft.Steps {
			step := &models.RecipeStep{
				RecipeID:    recipe.ID,
				StepNumber:  int(item.StepNumber),
				Description: item.Description,
				Duration:    item.Duration.Ptr(),
			}
			if err := tx.Create(step).Error; err != nil {
				return &common.PersistenceError{Op: "recipe_step", Err: err}
			}
		}
		return nil
	})
	if err != nil {
		var pe *common.PersistenceError
		if !errors.As(err, &pe) {
			err = &common.PersistenceError{Op: "commit", Err: err}
		}
		common.LogError("保存食譜失敗，交易已回滾", zap.Error(err))
		return nil, err
	}

	if createdIngredients > 0 {
		s.catalog.Invalidate(ctx)
	}

	saved, err := loadRecipe(ctx, s.db, s.catalog, recipe.ID)
	if err != nil {
		return nil, fmt.Errorf("讀取已保存的食譜失敗: %w", err)
	}

	common.LogInfo("食譜生成完成",
		zap.Uint("recipe_id", saved.ID),
		zap.String("name", saved.Name),
		zap.Int("ingredients", len(saved.Ingredients)),
		zap.Int("steps", len(saved.Steps)),
		zap.Int("new_catalog_entries", createdIngredients),
		zap.Duration("duration", time.Since(start)),
	)
	return saved, nil
}

// GetRecipe 取得完整食譜
func (s *Service) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	return loadRecipe(ctx, s.db, s.catalog, id)
}

// DeleteRecipe 刪除食譜及其關聯，不存在時返回 false
func (s *Service) DeleteRecipe(ctx context.Context, id uint) (bool, error) {
	deleted, err := deleteRecipe(ctx, s.db, id)
	if err != nil {
		return false, fmt.Errorf("刪除食譜失敗: %w", err)
	}
	if deleted {
		common.LogInfo("食譜已刪除", zap.Uint("recipe_id", id))
	}
	return deleted, nil
}
