package catalog

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"recipe-generator-backend/internal/models"
	"recipe-generator-backend/internal/pkg/common"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MatchTier 解析結果來自哪一層
type MatchTier string

const (
	MatchExact MatchTier = "exact"
	MatchFuzzy MatchTier = "fuzzy"
	MatchNone  MatchTier = "none"
)

// 自動建立的目錄項目預設值
const (
	DefaultCategory   = models.CategoryOther
	DefaultCommonUnit = "適量"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapedNameColumn 反向比對時以目錄名稱作為樣式，名稱中的 \ % _ 需在 SQL 端跳脫
const escapedNameColumn = `REPLACE(REPLACE(REPLACE(name, '\', '\\'), '%', '\%'), '_', '\_')`

// findExact 名稱完全相同（區分大小寫）的項目，id 最小者優先
func findExact(ctx context.Context, db *gorm.DB, name string) (*models.Ingredient, error) {
	var ing models.Ingredient
	err := db.WithContext(ctx).Where("name = ?", name).Order("id ASC").First(&ing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

// findFuzzy 雙向子字串比對：查詢包含候選名稱，或候選名稱包含查詢。
// 候選取名稱字數最短者，同長度取 id 最小者。
func findFuzzy(ctx context.Context, db *gorm.DB, name string) (*models.Ingredient, error) {
	var candidates []models.Ingredient
	err := db.WithContext(ctx).
		Where(`name LIKE ? ESCAPE '\' OR ? LIKE '%' || `+escapedNameColumn+` || '%' ESCAPE '\'`, "%"+likeEscaper.Replace(name)+"%", name).
		Order("id ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	// SQL 的 LIKE 在部分資料庫不區分大小寫，這裡再精確比對一次
	var best *models.Ingredient
	for i := range candidates {
		c := &candidates[i]
		if c.Name == "" || !(strings.Contains(name, c.Name) || strings.Contains(c.Name, name)) {
			continue
		}
		if best == nil || utf8.RuneCountInString(c.Name) < utf8.RuneCountInString(best.Name) {
			best = c
		}
	}
	return best, nil
}

// lookup 先精確再模糊，不寫入
func lookup(ctx context.Context, db *gorm.DB, name string) (*models.Ingredient, MatchTier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, MatchNone, common.NewValidationError("食材名稱不能為空")
	}

	ing, err := findExact(ctx, db, name)
	if err != nil {
		return nil, MatchNone, err
	}
	if ing != nil {
		return ing, MatchExact, nil
	}

	ing, err = findFuzzy(ctx, db, name)
	if err != nil {
		return nil, MatchNone, err
	}
	if ing != nil {
		return ing, MatchFuzzy, nil
	}
	return nil, MatchNone, nil
}

// resolveOrCreate 找不到任何匹配時在 db 上新增目錄項目。
// 兩個並行的交易可能同時為同一個新名稱建立項目，名稱沒有唯一約束，這裡不加鎖。
func resolveOrCreate(ctx context.Context, db *gorm.DB, name string) (*models.Ingredient, bool, error) {
	ing, tier, err := lookup(ctx, db, name)
	if err != nil {
		return nil, false, err
	}
	if ing != nil {
		common.LogDebug("食材已匹配",
			zap.String("query", name),
			zap.String("matched", ing.Name),
			zap.String("tier", string(tier)),
		)
		return ing, false, nil
	}

	created := &models.Ingredient{
		Name:       strings.TrimSpace(name),
		Category:   DefaultCategory,
		CommonUnit: DefaultCommonUnit,
		Calories:   0,
	}
	if err := db.WithContext(ctx).Create(created).Error; err != nil {
		return nil, false, err
	}

	common.LogInfo("新增食材到目錄",
		zap.Uint("ingredient_id", created.ID),
		zap.String("name", created.Name),
	)
	return created, true, nil
}
