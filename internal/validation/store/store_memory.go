package store

import (
	"context"
	"sync"

	"stellium/internal/validation"
)

// InMemoryHistory keeps the newest entries first in a capped slice. Appends
// serialize on the mutex; aggregate reads take the read lock.
type InMemoryHistory struct {
	mu        sync.RWMutex
	entries   []validation.Result
	retention int
}

type InMemoryOption func(*InMemoryHistory)

// WithRetention overrides the entry cap.
func WithRetention(n int) InMemoryOption {
	return func(h *InMemoryHistory) {
		if n > 0 {
			h.retention = n
		}
	}
}

// NewInMemoryHistory creates a capped in-memory history store.
func NewInMemoryHistory(opts ...InMemoryOption) *InMemoryHistory {
	h := &InMemoryHistory{retention: DefaultRetention}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *InMemoryHistory) Append(_ context.Context, result validation.Result) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append([]validation.Result{result}, h.entries...)
	if len(h.entries) > h.retention {
		h.entries = h.entries[:h.retention]
	}
	return nil
}

func (h *InMemoryHistory) Recent(_ context.Context, limit int) ([]validation.Result, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if limit <= 0 || limit > len(h.entries) {
		limit = len(h.entries)
	}
	return append([]validation.Result{}, h.entries[:limit]...), nil
}

func (h *InMemoryHistory) Stats(_ context.Context) (validation.Stats, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	stats := validation.Stats{Total: len(h.entries)}
	for _, e := range h.entries {
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
		stats.LastRecordedAt = h.entries[0].RecordedAt
	}
	return stats, nil
}
