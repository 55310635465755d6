package service

import (
	"context"
	"time"

	"recipe-generator-backend/internal/core/ai/provider"
	"recipe-generator-backend/internal/pkg/common"

	"go.uber.org/zap"
)

// Service AI 服務，包裝提供者並記錄每次呼叫
type Service struct {
	provider provider.Provider
}

// NewService 創建 AI 服務
func NewService(p provider.Provider) *Service {
	return &Service{provider: p}
}

// Complete 呼叫提供者取得回覆；失敗原樣回傳，是否重試由呼叫端決定。
// 呼叫不會超過提供者的逾時設定，即使上游 ctx 的期限更長。
func (s *Service) Complete(ctx context.Context, prompt string) (string, error) {
	if timeout := s.provider.GetTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	reply, err := s.provider.Complete(ctx, prompt)
	common.LogAICall(s.provider.GetModel(), time.Since(start), err)
	if err != nil {
		return "", err
	}

	common.LogDebug("LLM 回覆",
		zap.Int("reply_length", len(reply)),
		zap.String("prompt", prompt),
	)
	return reply, nil
}

// Model 當前模型
func (s *Service) Model() string {
	return s.provider.GetModel()
}

// Close 關閉提供者
func (s *Service) Close() error {
	return s.provider.Close()
}
