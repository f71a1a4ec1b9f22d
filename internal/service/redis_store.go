package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	revokedTokenPrefix = "auth:revoked"
	chatHistoryPrefix  = "chat:history"
	chatHistoryTTL     = 24 * time.Hour
	// chatHistoryTurns bounds how many messages are kept per user.
	chatHistoryTurns = 10
)

// RedisTokenRevoker stores revoked token ids with a TTL equal to their remaining lifetime.
type RedisTokenRevoker struct {
	redis *redis.Client
}

func NewRedisTokenRevoker(client *redis.Client) *RedisTokenRevoker {
	return &RedisTokenRevoker{redis: client}
}

func (r *RedisTokenRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := r.redis.Set(ctx, revokedKey(tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (r *RedisTokenRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.redis.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func revokedKey(tokenID string) string {
	return fmt.Sprintf("%s:%s", revokedTokenPrefix, tokenID)
}

// ChatHistory keeps the recent conversation of each user.
type ChatHistory interface {
	Recent(ctx context.Context, userID uuid.UUID) ([]Message, error)
	Append(ctx context.Context, userID uuid.UUID, msgs ...Message) error
}

// RedisChatHistory stores messages as a capped JSON list per user.
type RedisChatHistory struct {
	redis *redis.Client
	turns int64
	ttl   time.Duration
}

func NewRedisChatHistory(client *redis.Client) *RedisChatHistory {
	return &RedisChatHistory{redis: client, turns: chatHistoryTurns, ttl: chatHistoryTTL}
}

func (h *RedisChatHistory) Recent(ctx context.Context, userID uuid.UUID) ([]Message, error) {
	raw, err := h.redis.LRange(ctx, historyKey(userID), 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read chat history: %w", err)
	}

	msgs := make([]Message, 0, len(raw))
	for _, item := range raw {
		var m Message
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			continue
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

func (h *RedisChatHistory) Append(ctx context.Context, userID uuid.UUID, msgs ...Message) error {
	if len(msgs) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(msgs))
	for _, m := range msgs {
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("failed to marshal chat message: %w", err)
		}
		values = append(values, data)
	}

	key := historyKey(userID)
	pipe := h.redis.TxPipeline()
	pipe.RPush(ctx, key, values...)
	pipe.LTrim(ctx, key, -h.turns, -1)
	pipe.Expire(ctx, key, h.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save chat history: %w", err)
	}
	return nil
}

func historyKey(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", chatHistoryPrefix, userID)
}
