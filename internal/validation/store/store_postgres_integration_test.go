//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"stellium/internal/validation"
	"stellium/internal/validation/store"
	"stellium/pkg/testutil/containers"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS validation_history (
    id          UUID PRIMARY KEY,
    category    TEXT NOT NULL,
    is_valid    BOOLEAN NOT NULL,
    recorded_at TIMESTAMPTZ NOT NULL,
    payload     JSONB NOT NULL
)`

type PostgresHistorySuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresHistory
}

func TestPostgresHistorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresHistorySuite))
}

func (s *PostgresHistorySuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	_, err := s.postgres.DB.ExecContext(context.Background(), historySchema)
	s.Require().NoError(err)
	s.store = store.NewPostgresHistory(s.postgres.DB)
}

func (s *PostgresHistorySuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "validation_history"))
}

func pgResult(valid bool, at time.Time) validation.Result {
	r := validation.Result{
		ID:         uuid.NewString(),
		Category:   validation.CategoryAstronomical,
		Status:     validation.StatusPassed,
		IsValid:    valid,
		Accuracy:   97.5,
		Confidence: 95,
		RecordedAt: at,
	}
	if !valid {
		r.Status = validation.StatusFailed
		r.IsValid = false
		r.Errors = []string{"max deviation 6.0 deg exceeds tolerance"}
	}
	return r
}

func (s *PostgresHistorySuite) TestAppendAndRecent() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	older := pgResult(true, now.Add(-time.Minute))
	newer := pgResult(false, now)
	s.Require().NoError(s.store.Append(ctx, older))
	s.Require().NoError(s.store.Append(ctx, newer))

	recent, err := s.store.Recent(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(recent, 2)
	s.Equal(newer.ID, recent[0].ID, "ordered by recorded_at descending")
	s.Equal(older.ID, recent[1].ID)
	s.InDelta(97.5, recent[1].Accuracy, 0.001, "payload survives the round trip")
}

func (s *PostgresHistorySuite) TestStats() {
	ctx := context.Background()
	now := time.Now().UTC()

	s.Require().NoError(s.store.Append(ctx, pgResult(true, now.Add(-2*time.Second))))
	s.Require().NoError(s.store.Append(ctx, pgResult(true, now.Add(-time.Second))))
	s.Require().NoError(s.store.Append(ctx, pgResult(false, now)))

	stats, err := s.store.Stats(ctx)
	s.Require().NoError(err)
	s.Equal(3, stats.Total)
	s.Equal(2, stats.Passed)
	s.Equal(1, stats.Failed)
	s.InDelta(66.67, stats.SuccessRate, 0.01)
	s.Require().NotEmpty(stats.RecentErrors)
	s.Contains(stats.RecentErrors[0], "deviation")
}
