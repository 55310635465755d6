package models

import "time"

// Ingredient 食材目錄項目，由多個食譜共用
type Ingredient struct {
	ID         uint               `gorm:"primaryKey" json:"id"`
	Name       string             `gorm:"type:varchar(100);not null;index" json:"name"`
	Category   IngredientCategory `gorm:"type:varchar(20);not null;default:'OTHER'" json:"category"`
	CommonUnit string             `gorm:"type:varchar(20)" json:"commonUnit"`
	Calories   int                `json:"calories"`
	CreatedAt  time.Time          `json:"createTime"`
	UpdatedAt  time.Time          `json:"updateTime"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

// Recipe 食譜聚合根
type Recipe struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Name            string          `gorm:"type:varchar(200);not null" json:"name"`
	Description     string          `gorm:"type:text" json:"description"`
	CuisineType     CuisineType     `gorm:"type:varchar(20)" json:"cuisineType"`
	FlavorTypes     string          `gorm:"type:varchar(200)" json:"flavorTypes"`
	CookingTime     int             `json:"cookingTime"`
	DifficultyLevel DifficultyLevel `gorm:"type:varchar(20)" json:"difficultyLevel"`
	Servings        int             `gorm:"not null;default:2" json:"servings"`
	ImageURL        string          `gorm:"type:varchar(500)" json:"imageUrl,omitempty"`
	CreatedAt       time.Time       `json:"createTime"`
	UpdatedAt       time.Time       `json:"updateTime"`

	RecipeIngredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"recipeIngredients"`
	Steps             []RecipeStep       `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"steps"`

	// 前端使用的扁平食材清單
	Ingredients []IngredientView `gorm:"-" json:"ingredients"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// RecipeIngredient 食譜與目錄食材的關聯
type RecipeIngredient struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	RecipeID     uint   `gorm:"not null;index" json:"recipeId"`
	IngredientID uint   `gorm:"not null;index" json:"ingredientId"`
	Quantity     string `gorm:"type:varchar(50)" json:"quantity"`
	IsRequired   bool   `gorm:"not null" json:"isRequired"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

// RecipeStep 食譜步驟，StepNumber 從 1 起算且在同一食譜內唯一
type RecipeStep struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	RecipeID    uint   `gorm:"not null;uniqueIndex:idx_recipe_step" json:"recipeId"`
	StepNumber  int    `gorm:"not null;uniqueIndex:idx_recipe_step" json:"stepNumber"`
	Description string `gorm:"type:text;not null" json:"description"`
	Duration    *int   `json:"duration,omitempty"`
}

func (RecipeStep) TableName() string {
	return "recipe_steps"
}

// IngredientView 食材關聯回投到目錄後的顯示形式
type IngredientView struct {
	IngredientID uint   `json:"ingredientId"`
	Name         string `json:"name"`
	Quantity     string `json:"quantity"`
	IsRequired   bool   `json:"isRequired"`
}

// ShoppingListItem 購物清單項目
type ShoppingListItem struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	UserID       uint        `gorm:"not null;index:idx_shopping_user_ingredient" json:"userId"`
	IngredientID uint        `gorm:"not null;index:idx_shopping_user_ingredient" json:"ingredientId"`
	Quantity     string      `gorm:"type:varchar(200)" json:"quantity"`
	Note         string      `gorm:"type:varchar(500)" json:"note"`
	IsPurchased  bool        `gorm:"not null;default:false" json:"isPurchased"`
	CreatedAt    time.Time   `json:"createTime"`
	UpdatedAt    time.Time   `json:"updateTime"`
	Ingredient   *Ingredient `gorm:"-" json:"ingredient,omitempty"`
}

func (ShoppingListItem) TableName() string {
	return "shopping_list"
}

// Favorite 使用者收藏的食譜
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorite_user_recipe" json:"userId"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_favorite_user_recipe" json:"recipeId"`
	CreatedAt time.Time `json:"createTime"`
	Recipe    *Recipe   `gorm:"-" json:"recipe"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// IngredientCombo 使用者保存的常用食材組合
type IngredientCombo struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"userId"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Ingredients string    `gorm:"type:text;not null" json:"ingredients"`
	CreatedAt   time.Time `json:"createTime"`
	UpdatedAt   time.Time `json:"updateTime"`
}

func (IngredientCombo) TableName() string {
	return "ingredient_combos"
}
