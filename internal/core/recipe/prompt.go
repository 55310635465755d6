package recipe

import (
	"fmt"
	"strings"

	"recipe-generator-backend/internal/models"
	"recipe-generator-backend/internal/pkg/common"
)

// IngredientInput 使用者手邊的食材
type IngredientInput struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// GenerateRequest 生成食譜的請求
type GenerateRequest struct {
	Ingredients     []IngredientInput      `json:"ingredients"`
	CuisineType     models.CuisineType     `json:"cuisineType"`
	FlavorTypes     []models.FlavorType    `json:"flavorTypes"`
	CookingTime     int                    `json:"cookingTime"`
	DifficultyLevel models.DifficultyLevel `json:"difficultyLevel"`
}

// Validate 檢查請求欄位
func (r *GenerateRequest) Validate() error {
	if len(r.Ingredients) == 0 {
		return common.NewValidationError("食材列表不能為空")
	}
	for i, ing := range r.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return common.NewValidationError(fmt.Sprintf("第 %d 個食材名稱不能為空", i+1))
		}
	}
	if !r.CuisineType.Valid() {
		return common.NewValidationError(fmt.Sprintf("不支援的菜系: %q", r.CuisineType))
	}
	for _, f := range r.FlavorTypes {
		if !f.Valid() {
			return common.NewValidationError(fmt.Sprintf("不支援的口味: %q", f))
		}
	}
	if r.CookingTime <= 0 {
		return common.NewValidationError("烹飪時間必須大於 0")
	}
	if !r.DifficultyLevel.Valid() {
		return common.NewValidationError(fmt.Sprintf("不支援的難度: %q", r.DifficultyLevel))
	}
	return nil
}

const promptTemplate = `請根據以下條件生成一個詳細的食譜：

食材：%s
菜系：%s
口味：%s
烹飪時間：%d分鐘以內
難度：%s

請以JSON格式返回，包含以下字段：
{
  "name": "菜品名稱",
  "description": "菜品描述",
  "servings": 2,
  "ingredients": [
    {"name": "食材名", "quantity": "數量", "isRequired": true}
  ],
  "steps": [
    {"stepNumber": 1, "description": "步驟描述", "duration": 5}
  ]
}
注意：
1. 盡量使用使用者提供的食材
2. 如果需要額外食材，請在ingredients中標註
3. 步驟要詳細清晰
4. 總烹飪時間不超過%d分鐘
`

// BuildPrompt 組出送給模型的指令文字
func BuildPrompt(req GenerateRequest) string {
	items := make([]string, len(req.Ingredients))
	for i, ing := range req.Ingredients {
		items[i] = ing.Name + " " + ing.Quantity
	}

	flavors := "不限"
	if len(req.FlavorTypes) > 0 {
		names := make([]string, len(req.FlavorTypes))
		for i, f := range req.FlavorTypes {
			names[i] = f.DisplayName()
		}
		flavors = strings.Join(names, "、")
	}

	return fmt.Sprintf(promptTemplate,
		strings.Join(items, ", "),
		req.CuisineType.DisplayName(),
		flavors,
		req.CookingTime,
		req.DifficultyLevel.DisplayName(),
		req.CookingTime,
	)
}
