package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ParseJSON 解析 JSON 字符串到結構體
func ParseJSON(data string, v interface{}) error {
	return decodeJSON(strings.NewReader(data), v, false)
}

// ParseJSONBytes 解析 JSON 位元組切片到結構體
func ParseJSONBytes(data []byte, v interface{}) error {
	return decodeJSON(bytes.NewReader(data), v, false)
}

func decodeJSON(r io.Reader, v interface{}, disallowUnknown bool) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if disallowUnknown {
		dec.DisallowUnknownFields()
	}

	if err := dec.Decode(v); err != nil {
		return err
	}

	// 確保沒有多餘資料
	for {
		t, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if t != nil {
			return fmt.Errorf("unexpected extra JSON data")
		}
	}
}

// ExtractJSON 擷取文字中第一個 '{' 到最後一個 '}' 之間的內容（含括號）。
// 找不到成對括號時原樣返回且 ok 為 false，交由後續解析報錯。
// 這不是 tokenizer：回覆尾端若有帶大括號的說明文字，擷取結果會是不合法的 JSON。
func ExtractJSON(text string) (jsonText string, ok bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return text, false
	}
	return text[start : end+1], true
}

// FlexInt 接受 JSON 數字或數字字串的整數，限 int32 範圍
type FlexInt int

// UnmarshalJSON 實現 json.Unmarshaler
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %s", string(data))
	}
	// 字串形式的 "NaN"、"Inf" 也能被 ParseFloat 接受
	if math.IsNaN(n) || math.IsInf(n, 0) || n < math.MinInt32 || n > math.MaxInt32 {
		return fmt.Errorf("integer out of range %s", string(data))
	}
	*f = FlexInt(math.Trunc(n))
	return nil
}

// Ptr 返回 FlexInt 的 *int 形式，nil 保持 nil
func (f *FlexInt) Ptr() *int {
	if f == nil {
		return nil
	}
	v := int(*f)
	return &v
}
