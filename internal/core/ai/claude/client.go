package claude

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"recipe-generator-backend/internal/core/ai/provider"
	"recipe-generator-backend/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client 文字補全端點客戶端，一次呼叫只送出一個請求，不做重試
type Client struct {
	config provider.Config
	client *resty.Client
}

// NewClient 創建客戶端，連線、讀寫逾時共用同一個設定值
func NewClient(cfg provider.Config) *Client {
	dialer := &net.Dialer{Timeout: cfg.Timeout}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   cfg.Timeout,
		ResponseHeaderTimeout: cfg.Timeout,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
	}

	client := resty.New().
		SetTransport(transport).
		SetTimeout(cfg.Timeout).
		SetHeader("x-api-key", cfg.APIKey).
		SetHeader("anthropic-version", cfg.APIVersion).
		SetHeader("content-type", "application/json")

	return &Client{
		config: cfg,
		client: client,
	}
}

// Complete 送出提示並從回應信封取出文字
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	req := provider.Request{
		Model:       c.config.Model,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
		Messages: []provider.Message{
			{Role: "user", Content: prompt},
		},
	}

	common.LogDebug("發送 LLM 請求",
		zap.String("model", c.config.Model),
		zap.String("url", c.config.APIURL),
		zap.Int("prompt_length", len(prompt)),
	)

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post(c.config.APIURL)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() && !errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("LLM API 請求逾時: %w: %v", context.DeadlineExceeded, err)
		}
		return "", fmt.Errorf("LLM API 請求失敗: %w", err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return "", &common.UpstreamError{
			StatusCode: resp.StatusCode(),
			Body:       resp.String(),
		}
	}

	return ExtractText(resp.Body())
}

// ExtractText 依序嘗試 content[0].text、response、text 三種信封
func ExtractText(body []byte) (string, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", &common.UpstreamFormatError{Body: string(body)}
	}

	if raw, ok := envelope["content"]; ok {
		var blocks []map[string]json.RawMessage
		if err := json.Unmarshal(raw, &blocks); err == nil && len(blocks) > 0 {
			if text, ok := blocks[0]["text"]; ok {
				return rawText(text), nil
			}
		}
	}

	if raw, ok := envelope["response"]; ok {
		return rawText(raw), nil
	}

	if raw, ok := envelope["text"]; ok {
		return rawText(raw), nil
	}

	return "", &common.UpstreamFormatError{Body: string(body)}
}

// rawText 字串取其值，其他型別保留原始 JSON 文字
func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// GetModel 獲取模型名稱
func (c *Client) GetModel() string {
	return c.config.Model
}

// GetTimeout 獲取請求超時時間
func (c *Client) GetTimeout() time.Duration {
	return c.config.Timeout
}

// Close 關閉閒置連線
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
