package claude

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recipe-generator-backend/internal/core/ai/provider"
	"recipe-generator-backend/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string, timeout time.Duration) *Client {
	return NewClient(provider.Config{
		APIURL:      url,
		APIKey:      "test-key",
		APIVersion:  "2023-06-01",
		Model:       "claude-test",
		MaxTokens:   1024,
		Temperature: 0.7,
		Timeout:     timeout,
	})
}

func TestComplete_SendsEnvelope(t *testing.T) {
	var (
		gotHeaders http.Header
		gotBody    provider.Request
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"你好"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 5*time.Second)
	reply, err := client.Complete(context.Background(), "做一道菜")

	require.NoError(t, err)
	assert.Equal(t, "你好", reply)
	assert.Equal(t, "test-key", gotHeaders.Get("x-api-key"))
	assert.Equal(t, "2023-06-01", gotHeaders.Get("anthropic-version"))
	assert.Contains(t, gotHeaders.Get("Content-Type"), "application/json")
	assert.Equal(t, "claude-test", gotBody.Model)
	assert.Equal(t, 1024, gotBody.MaxTokens)
	assert.InDelta(t, 0.7, gotBody.Temperature, 1e-9)
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "user", gotBody.Messages[0].Role)
	assert.Equal(t, "做一道菜", gotBody.Messages[0].Content)
}

func TestComplete_NonSuccessStatus(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 5*time.Second)
	_, err := client.Complete(context.Background(), "prompt")

	var upstream *common.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusTooManyRequests, upstream.StatusCode)
	assert.Contains(t, upstream.Body, "rate limited")
	assert.Equal(t, 1, calls)
	assert.Equal(t, http.StatusBadGateway, common.StatusOf(err))
}

func TestComplete_UnknownEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 5*time.Second)
	_, err := client.Complete(context.Background(), "prompt")

	var format *common.UpstreamFormatError
	require.True(t, errors.As(err, &format))
	assert.Equal(t, `{"choices":[]}`, format.Body)
}

func TestComplete_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL, 100*time.Millisecond)
	_, err := client.Complete(context.Background(), "prompt")

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, http.StatusGatewayTimeout, common.StatusOf(err))
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{
			name: "content array",
			body: `{"content":[{"type":"text","text":"first"},{"text":"second"}],"text":"ignored"}`,
			want: "first",
		},
		{
			name: "top level response",
			body: `{"response":"from response","text":"ignored"}`,
			want: "from response",
		},
		{
			name: "top level text",
			body: `{"text":"from text"}`,
			want: "from text",
		},
		{
			name: "empty content falls through",
			body: `{"content":[],"text":"fallback"}`,
			want: "fallback",
		},
		{
			name: "non string response keeps raw json",
			body: `{"response":{"name":"x"}}`,
			want: `{"name":"x"}`,
		},
		{
			name:    "no known shape",
			body:    `{"output":"x"}`,
			wantErr: true,
		},
		{
			name:    "not json",
			body:    `<html>bad gateway</html>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractText([]byte(tt.body))
			if tt.wantErr {
				var format *common.UpstreamFormatError
				assert.True(t, errors.As(err, &format))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
