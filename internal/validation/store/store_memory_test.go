package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"stellium/internal/validation"
)

type InMemoryHistorySuite struct {
	suite.Suite
	store *InMemoryHistory
	ctx   context.Context
}

func TestInMemoryHistorySuite(t *testing.T) {
	suite.Run(t, new(InMemoryHistorySuite))
}

func (s *InMemoryHistorySuite) SetupTest() {
	s.store = NewInMemoryHistory()
	s.ctx = context.Background()
}

func result(id string, valid bool) validation.Result {
	r := validation.Result{
		ID:         id,
		Category:   validation.CategoryZodiac,
		Status:     validation.StatusPassed,
		IsValid:    valid,
		Accuracy:   100,
		RecordedAt: time.Now(),
	}
	if !valid {
		r.Status = validation.StatusFailed
		r.Accuracy = 0
		r.Errors = []string{"expected Aries, got Pisces"}
	}
	return r
}

func (s *InMemoryHistorySuite) TestAppendAndRecent() {
	s.Require().NoError(s.store.Append(s.ctx, result("a", true)))
	s.Require().NoError(s.store.Append(s.ctx, result("b", false)))
	s.Require().NoError(s.store.Append(s.ctx, result("c", true)))

	recent, err := s.store.Recent(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(recent, 2)
	s.Equal("c", recent[0].ID, "newest first")
	s.Equal("b", recent[1].ID)

	all, err := s.store.Recent(s.ctx, 0)
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *InMemoryHistorySuite) TestStats() {
	for i := 0; i < 4; i++ {
		s.Require().NoError(s.store.Append(s.ctx, result(fmt.Sprintf("ok-%d", i), true)))
	}
	s.Require().NoError(s.store.Append(s.ctx, result("bad", false)))

	stats, err := s.store.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(5, stats.Total)
	s.Equal(4, stats.Passed)
	s.Equal(1, stats.Failed)
	s.InDelta(80.0, stats.SuccessRate, 0.001)
	s.Require().Len(stats.RecentErrors, 1)
	s.Contains(stats.RecentErrors[0], "expected Aries")
}

func (s *InMemoryHistorySuite) TestStatsEmpty() {
	stats, err := s.store.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, stats.Total)
	s.Zero(stats.SuccessRate)
	s.Empty(stats.RecentErrors)
}

func (s *InMemoryHistorySuite) TestRetentionCap() {
	store := NewInMemoryHistory(WithRetention(10))
	for i := 0; i < 25; i++ {
		s.Require().NoError(store.Append(s.ctx, result(fmt.Sprintf("r-%d", i), true)))
	}

	all, err := store.Recent(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(all, 10, "retention cap must bound memory")
	s.Equal("r-24", all[0].ID, "newest entries survive")
	s.Equal("r-15", all[9].ID, "oldest entries age out")
}

// Concurrent appends must serialize without losing entries.
func (s *InMemoryHistorySuite) TestConcurrentAppends() {
	const writers = 20
	const perWriter = 25

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_ = s.store.Append(s.ctx, result(fmt.Sprintf("w%d-%d", w, i), true))
			}
		}(w)
	}
	wg.Wait()

	stats, err := s.store.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(writers*perWriter, stats.Total)
}
