package recipe

import (
	"strings"
	"testing"

	"recipe-generator-backend/internal/models"
	"recipe-generator-backend/internal/pkg/common"

	"github.com/stretchr/testify/assert"
)

func sampleRequest() GenerateRequest {
	return GenerateRequest{
		Ingredients: []IngredientInput{
			{Name: "鸡蛋", Quantity: "2个"},
			{Name: "番茄", Quantity: "1个"},
		},
		CuisineType:     models.CuisineChinese,
		CookingTime:     20,
		DifficultyLevel: models.DifficultyEasy,
	}
}

func TestBuildPrompt(t *testing.T) {
	req := sampleRequest()
	prompt := BuildPrompt(req)

	assert.Contains(t, prompt, "食材：鸡蛋 2个, 番茄 1个")
	assert.Contains(t, prompt, "菜系：中式")
	assert.Contains(t, prompt, "口味：不限")
	assert.Contains(t, prompt, "烹飪時間：20分鐘以內")
	assert.Contains(t, prompt, "難度：簡單")
	assert.Contains(t, prompt, "總烹飪時間不超過20分鐘")

	for _, field := range []string{`"name"`, `"description"`, `"servings"`, `"ingredients"`, `"quantity"`, `"isRequired"`, `"steps"`, `"stepNumber"`, `"duration"`} {
		assert.Contains(t, prompt, field)
	}
}

func TestBuildPrompt_PreservesIngredientOrder(t *testing.T) {
	req := sampleRequest()
	req.Ingredients = []IngredientInput{
		{Name: "洋蔥", Quantity: "半顆"},
		{Name: "牛肉", Quantity: "300g"},
		{Name: "醬油", Quantity: ""},
	}
	prompt := BuildPrompt(req)

	last := -1
	for _, ing := range req.Ingredients {
		idx := strings.Index(prompt, ing.Name+" "+ing.Quantity)
		assert.Greater(t, idx, last, ing.Name)
		last = idx
	}
}

func TestBuildPrompt_Flavors(t *testing.T) {
	req := sampleRequest()
	req.FlavorTypes = []models.FlavorType{models.FlavorSpicy, models.FlavorNumbing}

	assert.Contains(t, BuildPrompt(req), "口味：辣、麻")
}

func TestGenerateRequest_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *GenerateRequest)
		valid  bool
	}{
		{name: "valid", modify: func(r *GenerateRequest) {}, valid: true},
		{name: "no ingredients", modify: func(r *GenerateRequest) { r.Ingredients = nil }},
		{name: "blank ingredient name", modify: func(r *GenerateRequest) { r.Ingredients[1].Name = " " }},
		{name: "unknown cuisine", modify: func(r *GenerateRequest) { r.CuisineType = "MARTIAN" }},
		{name: "unknown flavor", modify: func(r *GenerateRequest) { r.FlavorTypes = []models.FlavorType{"BITTER"} }},
		{name: "zero cooking time", modify: func(r *GenerateRequest) { r.CookingTime = 0 }},
		{name: "missing difficulty", modify: func(r *GenerateRequest) { r.DifficultyLevel = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := sampleRequest()
			tt.modify(&req)
			err := req.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.True(t, common.IsValidationError(err))
		})
	}
}
