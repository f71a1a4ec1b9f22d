package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lumi-diary/lumi/backend/config"
)

// maxErrorBody bounds how much of a failed response is kept in the error.
const maxErrorBody = 512

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// CompletionRequest is the prompt and sampling parameters of one completion.
type CompletionRequest struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Completer produces a single text completion.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// chatRequest represents a request to the DeepSeek API
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Stream      bool      `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// DeepSeekClient talks to an OpenAI-compatible chat completions endpoint.
type DeepSeekClient struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewDeepSeekClient creates a client from configuration. It fails when no API key is set.
func NewDeepSeekClient(cfg *config.Config) (*DeepSeekClient, error) {
	if !cfg.LLMEnabled() {
		return nil, ErrLLMUnavailable
	}
	return &DeepSeekClient{
		apiKey: cfg.DeepSeekAPIKey,
		apiURL: cfg.DeepSeekAPIURL,
		model:  cfg.DeepSeekModel,
		client: &http.Client{Timeout: cfg.LLMTimeout},
	}, nil
}

// Timeout returns the per-request deadline of the client.
func (c *DeepSeekClient) Timeout() time.Duration {
	return c.client.Timeout
}

// Complete sends the conversation and returns the first choice's content.
func (c *DeepSeekClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	jsonData, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", errEmptyCompletion
	}
	return result.Choices[0].Message.Content, nil
}

var errEmptyCompletion = errors.New("no response from API")

// APIError is a non-200 reply from the completion endpoint.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
}
