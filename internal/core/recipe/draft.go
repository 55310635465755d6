package recipe

import (
	"fmt"
	"strings"

	"recipe-generator-backend/internal/pkg/common"
)

const defaultServings = 2

// Draft 模型回覆解析出的食譜草稿，尚未寫入資料庫
type Draft struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Servings    *common.FlexInt   `json:"servings"`
	Ingredients []DraftIngredient `json:"ingredients"`
	Steps       []DraftStep       `json:"steps"`
}

// DraftIngredient 草稿中的食材
type DraftIngredient struct {
	Name       string `json:"name"`
	Quantity   string `json:"quantity"`
	IsRequired *bool  `json:"isRequired"`
}

// Required isRequired 未提供時視為必要
func (d DraftIngredient) Required() bool {
	return d.IsRequired == nil || *d.IsRequired
}

// DraftStep 草稿中的步驟
type DraftStep struct {
	StepNumber  common.FlexInt  `json:"stepNumber"`
	Description string          `json:"description"`
	Duration    *common.FlexInt `json:"duration"`
}

// ServingsOrDefault 未提供份量時為 2
func (d *Draft) ServingsOrDefault() int {
	if d.Servings == nil {
		return defaultServings
	}
	return int(*d.Servings)
}

// ParseDraft 從模型回覆擷取 JSON 並驗證，任何問題都返回 *common.ParseError
func ParseDraft(reply string) (*Draft, error) {
	text, ok := common.ExtractJSON(reply)
	if !ok {
		common.LogDebug("回覆中找不到 JSON 物件，交由解析器報錯")
	}

	var draft Draft
	if err := common.ParseJSON(text, &draft); err != nil {
		return nil, &common.ParseError{Reason: "回覆不是合法的 JSON", Err: err}
	}

	if err := draft.validate(); err != nil {
		return nil, err
	}
	return &draft, nil
}

// validate 在任何寫入之前確認草稿完整
func (d *Draft) validate() error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return &common.ParseError{Reason: "缺少菜名"}
	}

	if d.Servings != nil && *d.Servings <= 0 {
		return &common.ParseError{Reason: fmt.Sprintf("份量必須大於 0，收到 %d", *d.Servings)}
	}

	for i := range d.Ingredients {
		d.Ingredients[i].Name = strings.TrimSpace(d.Ingredients[i].Name)
		if d.Ingredients[i].Name == "" {
			return &common.ParseError{Reason: fmt.Sprintf("第 %d 個食材缺少名稱", i+1)}
		}
	}

	// 步驟編號必須剛好是 1..n，順序不限
	seen := make(map[int]bool, len(d.Steps))
	for i, step := range d.Steps {
		if strings.TrimSpace(step.Description) == "" {
			return &common.ParseError{Reason: fmt.Sprintf("第 %d 個步驟缺少描述", i+1)}
		}
		if step.Duration != nil && *step.Duration < 0 {
			return &common.ParseError{Reason: fmt.Sprintf("第 %d 個步驟時間不能為負數", i+1)}
		}
		n := int(step.StepNumber)
		if n < 1 || n > len(d.Steps) || seen[n] {
			return &common.ParseError{Reason: fmt.Sprintf("步驟編號 %d 不連續或重複", n)}
		}
		seen[n] = true
	}
	return nil
}
