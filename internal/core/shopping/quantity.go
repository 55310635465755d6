package shopping

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseQuantity 把「200g」「1.5 kg」「0,5kg」拆成數值與單位。
// 空字串返回 (0, "")；非空但沒有數字前綴，或數字部分無法解析時返回錯誤。
func ParseQuantity(text string) (float64, string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, "", nil
	}

	end := 0
	for end < len(text) {
		ch := text[end]
		if (ch >= '0' && ch <= '9') || ch == '.' || ch == ',' {
			end++
			continue
		}
		break
	}

	if end == 0 {
		return 0, "", fmt.Errorf("quantity %q has no numeric part", text)
	}

	numeric := strings.ReplaceAll(text[:end], ",", ".")
	value, err := strconv.ParseFloat(numeric, 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid quantity %q: %w", text, err)
	}

	return value, strings.TrimSpace(text[end:]), nil
}

// MergeQuantity 合併兩個數量。單位相同時相加，否則以「, 」串接原文，不會失敗
func MergeQuantity(existing, incoming string) string {
	if strings.TrimSpace(existing) == "" {
		return incoming
	}
	if strings.TrimSpace(incoming) == "" {
		return existing
	}

	v1, u1, err1 := ParseQuantity(existing)
	v2, u2, err2 := ParseQuantity(incoming)
	if err1 != nil || err2 != nil || u1 != u2 {
		return existing + ", " + incoming
	}

	return formatQuantity(v1+v2) + u1
}

func formatQuantity(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
