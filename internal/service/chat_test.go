package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/lumi-diary/lumi/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	reply string
	err   error
	calls []CompletionRequest
}

func (c *stubCompleter) Complete(_ context.Context, req CompletionRequest) (string, error) {
	c.calls = append(c.calls, req)
	return c.reply, c.err
}

type memoryHistory struct {
	mu   sync.Mutex
	msgs map[uuid.UUID][]Message
}

func newMemoryHistory() *memoryHistory {
	return &memoryHistory{msgs: map[uuid.UUID][]Message{}}
}

func (h *memoryHistory) Recent(_ context.Context, userID uuid.UUID) ([]Message, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Message(nil), h.msgs[userID]...), nil
}

func (h *memoryHistory) Append(_ context.Context, userID uuid.UUID, msgs ...Message) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.msgs[userID] = append(h.msgs[userID], msgs...)
	return nil
}

func TestChatReplyWithoutLLM(t *testing.T) {
	svc := NewChatService(nil, stubStats{summary: richSummary()}, nil, NewChatbot(firstChoice()))

	resp, err := svc.Reply(context.Background(), uuid.New(), "Привет")
	require.NoError(t, err)
	assert.Equal(t, types.ChatSourceFallback, resp.Source)
	assert.Equal(t, chatTriggers[0].replies[0], resp.Response)

	_, err = svc.Reply(context.Background(), uuid.New(), "   ")
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestChatReplyUsesLLMAndHistory(t *testing.T) {
	llm := &stubCompleter{reply: "Рада слышать!"}
	history := newMemoryHistory()
	userID := uuid.New()
	svc := NewChatService(llm, stubStats{summary: richSummary()}, history, NewChatbot(firstChoice()))
	ctx := context.Background()

	resp, err := svc.Reply(ctx, userID, "У меня хороший день")
	require.NoError(t, err)
	assert.Equal(t, types.ChatResponse{Response: "Рада слышать!", Source: types.ChatSourceLLM}, *resp)

	require.Len(t, llm.calls, 1)
	first := llm.calls[0]
	require.Len(t, first.Messages, 2)
	assert.Equal(t, RoleSystem, first.Messages[0].Role)
	assert.Contains(t, first.Messages[0].Content, "среднее настроение: 7.5")
	assert.Contains(t, first.Messages[0].Content, "суббота")
	assert.Equal(t, Message{Role: RoleUser, Content: "У меня хороший день"}, first.Messages[1])
	assert.Equal(t, chatTemperature, first.Temperature)

	_, err = svc.Reply(ctx, userID, "А что завтра?")
	require.NoError(t, err)
	second := llm.calls[1]
	require.Len(t, second.Messages, 4)
	assert.Equal(t, RoleAssistant, second.Messages[2].Role)
	assert.Equal(t, "Рада слышать!", second.Messages[2].Content)

	stored, _ := history.Recent(ctx, userID)
	assert.Len(t, stored, 4)
}

func TestChatReplyFallsBackOnLLMError(t *testing.T) {
	llm := &stubCompleter{err: &APIError{StatusCode: 500, Body: "boom"}}
	history := newMemoryHistory()
	userID := uuid.New()
	svc := NewChatService(llm, stubStats{summary: richSummary()}, history, NewChatbot(firstChoice()))

	resp, err := svc.Reply(context.Background(), userID, "привет")
	require.NoError(t, err)
	assert.Equal(t, types.ChatSourceFallback, resp.Source)
	assert.Contains(t, chatTriggers[0].replies, resp.Response)

	stored, _ := history.Recent(context.Background(), userID)
	assert.Empty(t, stored)
}

func TestChatReplySurvivesStatsFailure(t *testing.T) {
	llm := &stubCompleter{reply: "ok"}
	svc := NewChatService(llm, stubStats{err: errors.New("db down")}, nil, nil)

	resp, err := svc.Reply(context.Background(), uuid.New(), "как дела?")
	require.NoError(t, err)
	assert.Equal(t, types.ChatSourceLLM, resp.Source)
	require.Len(t, llm.calls, 1)
	assert.Contains(t, llm.calls[0].Messages[0].Content, "индекс настроения: 15 из 100")
}
