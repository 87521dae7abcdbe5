package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docufill/internal/config"
	"docufill/internal/llm"
	"docufill/internal/port"
)

func testConfig() *config.LLMProviderConfig {
	return &config.LLMProviderConfig{
		Provider: "openai",
		APIKey:   "test-key",
	}
}

func TestComplete_Success(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "sure thing"}, "finish_reason": "stop"}]}`))
	}))
	defer server.Close()

	client := NewClientWithEndpoint(testConfig(), server.URL)

	reply, err := client.Complete(context.Background(), port.ChatRequest{
		Messages:    []port.Message{{Role: "user", Content: "hi"}},
		Temperature: 0.3,
		MaxTokens:   800,
	})
	require.NoError(t, err)
	assert.Equal(t, "sure thing", reply)

	assert.Equal(t, "gpt-4o", gotBody["model"])
	// OpenAI deprecated max_tokens in favor of max_completion_tokens
	assert.Equal(t, float64(800), gotBody["max_completion_tokens"])
	assert.NotContains(t, gotBody, "max_tokens")
}

func TestComplete_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "rate limit exceeded"}}`))
	}))
	defer server.Close()

	client := NewClientWithEndpoint(testConfig(), server.URL)

	_, err := client.Complete(context.Background(), port.ChatRequest{
		Messages: []port.Message{{Role: "user", Content: "hi"}},
	})

	var rlErr *llm.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "openai", rlErr.Provider)
	// No Retry-After header, the default backoff applies
	assert.Equal(t, 60*time.Second, rlErr.RetryAfter)
}

func TestComplete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClientWithEndpoint(testConfig(), server.URL)

	_, err := client.Complete(context.Background(), port.ChatRequest{
		Messages: []port.Message{{Role: "user", Content: "hi"}},
	})
	assert.ErrorContains(t, err, "empty response")
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(testConfig())
	assert.Equal(t, "gpt-4o", client.model)
	assert.Equal(t, 60*time.Second, client.client.Timeout)
}
