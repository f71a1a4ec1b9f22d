package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lumi-diary/lumi/backend/internal/types"
	"github.com/rs/zerolog/log"
)

const (
	chatTemperature = 0.7
	chatMaxTokens   = 500
)

// ChatService answers through the LLM when one is configured and falls back
// to the keyword chatbot on any failure.
type ChatService struct {
	llm     Completer
	stats   IStatsService
	history ChatHistory
	bot     *Chatbot
}

// NewChatService wires the chat pipeline. llm and history may be nil.
func NewChatService(llm Completer, stats IStatsService, history ChatHistory, bot *Chatbot) *ChatService {
	if bot == nil {
		bot = NewChatbot(nil)
	}
	return &ChatService{llm: llm, stats: stats, history: history, bot: bot}
}

func (s *ChatService) Fallback(message string) *types.ChatResponse {
	return s.bot.Respond(message)
}

func (s *ChatService) Reply(ctx context.Context, userID uuid.UUID, message string) (*types.ChatResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyText
	}
	if s.llm == nil {
		return s.Fallback(message), nil
	}

	logger := log.With().Str("component", "chat").Str("user_id", userID.String()).Logger()

	summary, err := s.stats.Summarize(ctx, userID)
	if err != nil {
		logger.Warn().Err(err).Msg("statistics unavailable, using empty summary")
		summary = types.EmptySummary(statsWindowDays)
		summary.MoodScore = ComputeMoodScore(summary)
	}

	msgs := []Message{{Role: RoleSystem, Content: systemPrompt(summary)}}
	if s.history != nil {
		past, err := s.history.Recent(ctx, userID)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to load chat history")
		}
		msgs = append(msgs, past...)
	}
	userMsg := Message{Role: RoleUser, Content: message}
	msgs = append(msgs, userMsg)

	reply, err := s.llm.Complete(ctx, CompletionRequest{
		Messages:    msgs,
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("llm request failed, using keyword fallback")
		return s.Fallback(message), nil
	}

	if s.history != nil {
		if err := s.history.Append(ctx, userID, userMsg, Message{Role: RoleAssistant, Content: reply}); err != nil {
			logger.Warn().Err(err).Msg("failed to save chat history")
		}
	}
	return &types.ChatResponse{Response: reply, Source: types.ChatSourceLLM}, nil
}

func systemPrompt(s *types.StatsSummary) string {
	var b strings.Builder
	b.WriteString("Ты Lumi, заботливый помощник в дневнике настроения. ")
	b.WriteString("Отвечай по-русски, коротко и тепло, не ставь диагнозов. ")
	b.WriteString("При признаках кризиса советуй обратиться к специалисту.\n\n")
	b.WriteString("Статистика пользователя за последние 30 дней:\n")
	fmt.Fprintf(&b, "- записей: %d, среднее настроение: %.1f из 10\n", s.TotalEntries, s.AvgMood)
	fmt.Fprintf(&b, "- тренд: %s, хороших дней: %d\n", s.Trend, s.GoodDays)
	fmt.Fprintf(&b, "- индекс настроения: %d из 100\n", s.MoodScore)
	if s.BestHour != nil {
		fmt.Fprintf(&b, "- лучшее время дня: %02d:00\n", s.BestHour.Hour)
	}
	if s.BestDay != nil {
		fmt.Fprintf(&b, "- лучший день недели: %s\n", s.BestDay.Name)
	}
	fmt.Fprintf(&b, "- заметки: позитивных %d, негативных %d\n", s.Keywords.Positive, s.Keywords.Negative)
	if len(s.Joys.Recent) > 0 {
		fmt.Fprintf(&b, "- недавние радости: %s\n", strings.Join(s.Joys.Recent, "; "))
	}
	return b.String()
}
