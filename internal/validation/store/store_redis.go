package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"stellium/internal/validation"
)

const historyKey = "validation:history"

// RedisHistory is a Redis-backed history for deployments where multiple
// instances should share one validation record. LPUSH+LTRIM gives the same
// newest-first capped-list semantics as the in-memory store.
type RedisHistory struct {
	client    *redis.Client
	retention int
}

type RedisOption func(*RedisHistory)

// WithRedisRetention overrides the entry cap.
func WithRedisRetention(n int) RedisOption {
	return func(h *RedisHistory) {
		if n > 0 {
			h.retention = n
		}
	}
}

// NewRedisHistory constructs a Redis-backed validation history.
func NewRedisHistory(client *redis.Client, opts ...RedisOption) *RedisHistory {
	h := &RedisHistory{client: client, retention: DefaultRetention}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *RedisHistory) Append(ctx context.Context, result validation.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal validation result: %w", err)
	}

	pipe := h.client.TxPipeline()
	pipe.LPush(ctx, historyKey, payload)
	pipe.LTrim(ctx, historyKey, 0, int64(h.retention-1))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append validation result: %w", err)
	}
	return nil
}

func (h *RedisHistory) Recent(ctx context.Context, limit int) ([]validation.Result, error) {
	if limit <= 0 || limit > h.retention {
		limit = h.retention
	}
	raw, err := h.client.LRange(ctx, historyKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read validation history: %w", err)
	}

	results := make([]validation.Result, 0, len(raw))
	for _, item := range raw {
		var r validation.Result
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			return nil, fmt.Errorf("decode validation result: %w", err)
		}
		results = append(results, r)
	}
	return results, nil
}

func (h *RedisHistory) Stats(ctx context.Context) (validation.Stats, error) {
	entries, err := h.Recent(ctx, h.retention)
	if err != nil {
		return validation.Stats{}, err
	}

	stats := validation.Stats{Total: len(entries)}
	for _, e := range entries {
		if e.IsValid {
			stats.Passed++
		} else {
			stats.Failed++
			if len(stats.RecentErrors) < recentErrorsLimit && len(e.Errors) > 0 {
				stats.RecentErrors = append(stats.RecentErrors, e.Errors[0])
			}
		}
	}
	if stats.Total > 0 {
		stats.SuccessRate = float64(stats.Passed) / float64(stats.Total) * 100
		stats.LastRecordedAt = entries[0].RecordedAt
	}
	return stats, nil
}
