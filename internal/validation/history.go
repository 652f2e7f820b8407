package validation

import (
	"context"
	"time"
)

// Stats aggregates historical outcomes for the diagnostics surface. Reads are
// diagnostic, not correctness-critical, so implementations may serve slightly
// stale aggregates.
type Stats struct {
	Total          int       `json:"total"`
	Passed         int       `json:"passed"`
	Failed         int       `json:"failed"`
	SuccessRate    float64   `json:"success_rate"` // 0-100
	LastRecordedAt time.Time `json:"last_recorded_at,omitzero"`
	RecentErrors   []string  `json:"recent_errors,omitempty"`
}

// History is the append-only record of past validation runs. Entries are
// never mutated or deleted, only aged out by the retention cap.
// Interface-driven so in-memory, redis and postgres implementations stay
// swappable without rewiring the validator; see internal/validation/store.
type History interface {
	Append(ctx context.Context, result Result) error
	Recent(ctx context.Context, limit int) ([]Result, error)
	Stats(ctx context.Context) (Stats, error)
}
