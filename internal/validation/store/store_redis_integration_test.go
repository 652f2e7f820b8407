//go:build integration

package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"stellium/internal/validation"
	"stellium/internal/validation/store"
	"stellium/pkg/testutil/containers"
)

type RedisHistorySuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *store.RedisHistory
}

func TestRedisHistorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisHistorySuite))
}

func (s *RedisHistorySuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = store.NewRedisHistory(s.redis.Client, store.WithRedisRetention(10))
}

func (s *RedisHistorySuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func makeResult(valid bool) validation.Result {
	r := validation.Result{
		ID:         uuid.NewString(),
		Category:   validation.CategoryNumerology,
		Status:     validation.StatusPassed,
		IsValid:    valid,
		Accuracy:   100,
		RecordedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if !valid {
		r.Status = validation.StatusFailed
		r.Accuracy = 0
		r.Errors = []string{"expected 3, got 4"}
	}
	return r
}

func (s *RedisHistorySuite) TestAppendAndRecentRoundTrip() {
	ctx := context.Background()

	first := makeResult(true)
	second := makeResult(false)
	s.Require().NoError(s.store.Append(ctx, first))
	s.Require().NoError(s.store.Append(ctx, second))

	recent, err := s.store.Recent(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(recent, 2)
	s.Equal(second.ID, recent[0].ID, "newest first")
	s.Equal(first.ID, recent[1].ID)
	s.Equal(first.Accuracy, recent[1].Accuracy)
}

func (s *RedisHistorySuite) TestRetentionTrimsOldEntries() {
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		r := makeResult(true)
		r.Data.Input = fmt.Sprintf("case-%d", i)
		s.Require().NoError(s.store.Append(ctx, r))
	}

	recent, err := s.store.Recent(ctx, 100)
	s.Require().NoError(err)
	s.Len(recent, 10, "LTRIM must cap the list")
	s.Equal("case-24", recent[0].Data.Input)
}

func (s *RedisHistorySuite) TestStats() {
	ctx := context.Background()

	s.Require().NoError(s.store.Append(ctx, makeResult(true)))
	s.Require().NoError(s.store.Append(ctx, makeResult(true)))
	s.Require().NoError(s.store.Append(ctx, makeResult(false)))

	stats, err := s.store.Stats(ctx)
	s.Require().NoError(err)
	s.Equal(3, stats.Total)
	s.Equal(2, stats.Passed)
	s.Equal(1, stats.Failed)
	s.InDelta(66.67, stats.SuccessRate, 0.01)
	s.NotEmpty(stats.RecentErrors)
}
