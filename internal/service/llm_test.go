package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lumi-diary/lumi/backend/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *DeepSeekClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewDeepSeekClient(&config.Config{
		DeepSeekAPIKey: "test-key",
		DeepSeekAPIURL: srv.URL,
		DeepSeekModel:  "deepseek-chat",
		LLMTimeout:     15 * time.Second,
	})
	require.NoError(t, err)
	return client
}

func completionBody(content string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": content}}},
	})
	return string(body)
}

func TestNewDeepSeekClientRequiresKey(t *testing.T) {
	_, err := NewDeepSeekClient(&config.Config{})
	assert.ErrorIs(t, err, ErrLLMUnavailable)
}

func TestDeepSeekComplete(t *testing.T) {
	var got chatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(completionBody("Всё будет хорошо")))
	})

	reply, err := client.Complete(context.Background(), CompletionRequest{
		Messages:    []Message{{Role: RoleUser, Content: "привет"}},
		Temperature: 0.7,
		MaxTokens:   100,
	})
	require.NoError(t, err)
	assert.Equal(t, "Всё будет хорошо", reply)
	assert.Equal(t, "deepseek-chat", got.Model)
	assert.Equal(t, 100, got.MaxTokens)
	assert.Equal(t, 0.7, got.Temperature)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, 15*time.Second, client.Timeout())
}

func TestDeepSeekCompleteErrors(t *testing.T) {
	t.Run("non-200", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"overloaded"}`))
		})
		_, err := client.Complete(context.Background(), CompletionRequest{})
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
		assert.Contains(t, apiErr.Body, "overloaded")
	})

	t.Run("empty choices", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		})
		_, err := client.Complete(context.Background(), CompletionRequest{})
		assert.ErrorIs(t, err, errEmptyCompletion)
	})

	t.Run("cancelled context", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		})
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err := client.Complete(ctx, CompletionRequest{})
		assert.Error(t, err)
	})
}
