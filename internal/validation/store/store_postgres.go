package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"stellium/internal/validation"
)

// PostgresHistory persists validation results in an append-only table for
// deployments that want the audit log to survive restarts. Results are stored
// as JSON documents; the indexed columns exist for aggregate queries only.
//
// Expected schema:
//
//	CREATE TABLE validation_history (
//	    id          UUID PRIMARY KEY,
//	    category    TEXT NOT NULL,
//	    is_valid    BOOLEAN NOT NULL,
//	    recorded_at TIMESTAMPTZ NOT NULL,
//	    payload     JSONB NOT NULL
//	);
type PostgresHistory struct {
	db *sql.DB
}

// NewPostgresHistory creates a Postgres-backed validation history.
func NewPostgresHistory(db *sql.DB) *PostgresHistory {
	return &PostgresHistory{db: db}
}

func (h *PostgresHistory) Append(ctx context.Context, result validation.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal validation result: %w", err)
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO validation_history (id, category, is_valid, recorded_at, payload)
		VALUES ($1, $2, $3, $4, $5)`,
		result.ID, string(result.Category), result.IsValid, result.RecordedAt, payload,
	)
	if err != nil {
		return fmt.Errorf("insert validation result: %w", err)
	}
	return nil
}

func (h *PostgresHistory) Recent(ctx context.Context, limit int) ([]validation.Result, error) {
	if limit <= 0 {
		limit = DefaultRetention
	}
	rows, err := h.db.QueryContext(ctx, `
		SELECT payload FROM validation_history
		ORDER BY recorded_at DESC
		LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query validation history: %w", err)
	}
	defer rows.Close()

	var results []validation.Result
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan validation row: %w", err)
		}
		var r validation.Result
		if err := json.Unmarshal(payload, &r); err != nil {
			return nil, fmt.Errorf("decode validation result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func (h *PostgresHistory) Stats(ctx context.Context) (validation.Stats, error) {
	var stats validation.Stats
	err := h.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_valid),
		       COALESCE(MAX(recorded_at), 'epoch'::timestamptz)
		FROM validation_history`,
	).Scan(&stats.Total, &stats.Passed, &stats.LastRecordedAt)
	if err != nil {
		return validation.Stats{}, fmt.Errorf("aggregate validation history: %w", err)
	}

	stats.Failed = stats.Total - stats.Passed
	if stats.Total > 0 {
		stats.SuccessRate = float64(stats.Passed) / float64(stats.Total) * 100
	}

	recent, err := h.Recent(ctx, 50)
	if err != nil {
		return validation.Stats{}, err
	}
	for _, e := range recent {
		if !e.IsValid && len(stats.RecentErrors) < recentErrorsLimit && len(e.Errors) > 0 {
			stats.RecentErrors = append(stats.RecentErrors, e.Errors[0])
		}
	}
	return stats, nil
}
