package models

import "strings"

// CuisineType 菜系
type CuisineType string

const (
	CuisineChinese   CuisineType = "CHINESE"
	CuisineSichuan   CuisineType = "SICHUAN"
	CuisineCantonese CuisineType = "CANTONESE"
	CuisineJapanese  CuisineType = "JAPANESE"
	CuisineKorean    CuisineType = "KOREAN"
	CuisineThai      CuisineType = "THAI"
	CuisineWestern   CuisineType = "WESTERN"
	CuisineItalian   CuisineType = "ITALIAN"
	CuisineOther     CuisineType = "OTHER"
)

// DisplayName 顯示名稱
func (c CuisineType) DisplayName() string {
	switch c {
	case CuisineChinese:
		return "中式"
	case CuisineSichuan:
		return "川菜"
	case CuisineCantonese:
		return "粵菜"
	case CuisineJapanese:
		return "日式"
	case CuisineKorean:
		return "韓式"
	case CuisineThai:
		return "泰式"
	case CuisineWestern:
		return "西式"
	case CuisineItalian:
		return "義式"
	case CuisineOther:
		return "其他"
	default:
		return string(c)
	}
}

// Valid 是否為已知菜系
func (c CuisineType) Valid() bool {
	switch c {
	case CuisineChinese, CuisineSichuan, CuisineCantonese, CuisineJapanese, CuisineKorean,
		CuisineThai, CuisineWestern, CuisineItalian, CuisineOther:
		return true
	}
	return false
}

// FlavorType 口味
type FlavorType string

const (
	FlavorSweet   FlavorType = "SWEET"
	FlavorSour    FlavorType = "SOUR"
	FlavorSpicy   FlavorType = "SPICY"
	FlavorSalty   FlavorType = "SALTY"
	FlavorLight   FlavorType = "LIGHT"
	FlavorUmami   FlavorType = "UMAMI"
	FlavorNumbing FlavorType = "NUMBING"
)

// DisplayName 顯示名稱
func (f FlavorType) DisplayName() string {
	switch f {
	case FlavorSweet:
		return "甜"
	case FlavorSour:
		return "酸"
	case FlavorSpicy:
		return "辣"
	case FlavorSalty:
		return "鹹"
	case FlavorLight:
		return "清淡"
	case FlavorUmami:
		return "鮮"
	case FlavorNumbing:
		return "麻"
	default:
		return string(f)
	}
}

// Valid 是否為已知口味
func (f FlavorType) Valid() bool {
	switch f {
	case FlavorSweet, FlavorSour, FlavorSpicy, FlavorSalty, FlavorLight, FlavorUmami, FlavorNumbing:
		return true
	}
	return false
}

// JoinFlavors 以逗號串接口味名稱，用於資料庫欄位
func JoinFlavors(flavors []FlavorType) string {
	names := make([]string, len(flavors))
	for i, f := range flavors {
		names[i] = string(f)
	}
	return strings.Join(names, ",")
}

// SplitFlavors 還原資料庫中的口味欄位
func SplitFlavors(raw string) []FlavorType {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	flavors := make([]FlavorType, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			flavors = append(flavors, FlavorType(p))
		}
	}
	return flavors
}

// DifficultyLevel 難度
type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "EASY"
	DifficultyMedium DifficultyLevel = "MEDIUM"
	DifficultyHard   DifficultyLevel = "HARD"
)

// DisplayName 顯示名稱
func (d DifficultyLevel) DisplayName() string {
	switch d {
	case DifficultyEasy:
		return "簡單"
	case DifficultyMedium:
		return "中等"
	case DifficultyHard:
		return "困難"
	default:
		return string(d)
	}
}

// Valid 是否為已知難度
func (d DifficultyLevel) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// IngredientCategory 食材分類
type IngredientCategory string

const (
	CategoryVegetable IngredientCategory = "VEGETABLE"
	CategoryMeat      IngredientCategory = "MEAT"
	CategorySeafood   IngredientCategory = "SEAFOOD"
	CategoryEgg       IngredientCategory = "EGG"
	CategoryDairy     IngredientCategory = "DAIRY"
	CategoryGrain     IngredientCategory = "GRAIN"
	CategoryFruit     IngredientCategory = "FRUIT"
	CategorySeasoning IngredientCategory = "SEASONING"
	CategoryOther     IngredientCategory = "OTHER"
)

// DisplayName 顯示名稱
func (c IngredientCategory) DisplayName() string {
	switch c {
	case CategoryVegetable:
		return "蔬菜"
	case CategoryMeat:
		return "肉類"
	case CategorySeafood:
		return "海鮮"
	case CategoryEgg:
		return "蛋類"
	case CategoryDairy:
		return "乳製品"
	case CategoryGrain:
		return "穀物"
	case CategoryFruit:
		return "水果"
	case CategorySeasoning:
		return "調味料"
	case CategoryOther:
		return "其他"
	default:
		return string(c)
	}
}

// Valid 是否為已知分類
func (c IngredientCategory) Valid() bool {
	switch c {
	case CategoryVegetable, CategoryMeat, CategorySeafood, CategoryEgg, CategoryDairy,
		CategoryGrain, CategoryFruit, CategorySeasoning, CategoryOther:
		return true
	}
	return false
}
