// Package profile orchestrates the calculation categories into one cosmic
// profile per request.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"stellium/internal/astro"
	"stellium/internal/compatibility"
	"stellium/internal/numerology"
	"stellium/internal/profile/metrics"
	"stellium/internal/zodiac"
)

// Service fans a request out to the calculators. The calculators are pure;
// all concurrency lives here.
type Service struct {
	resolver     *zodiac.Resolver
	engine       *numerology.Engine
	scorer       *compatibility.Scorer
	approximator *astro.Approximator
	logger       *slog.Logger
	metrics      *metrics.Metrics
	now          func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService builds the orchestrator. approximator may be nil when no chart
// calculation is configured; the other calculators are required.
func NewService(
	resolver *zodiac.Resolver,
	engine *numerology.Engine,
	scorer *compatibility.Scorer,
	approximator *astro.Approximator,
	opts ...Option) (*Service, error) {
	if resolver == nil || engine == nil || scorer == nil {
		return nil, fmt.Errorf("resolver, engine and scorer are required")
	}
	s := &Service{
		resolver:     resolver,
		engine:       engine,
		scorer:       scorer,
		approximator: approximator,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Calculate runs zodiac, numerology and the astronomical chart for one
// request. The categories run concurrently and are isolated: a degraded
// chart never blocks or fails the pure calculations. Validation errors fail
// the whole request before any category starts.
func (s *Service) Calculate(ctx context.Context, req CalculateRequest) (CosmicProfile, error) {
	p, err := req.parse()
	if err != nil {
		return CosmicProfile{}, err
	}
	started := s.now()

	var hour *int
	if p.time != nil {
		h := p.time.Hour
		hour = &h
	}

	profile := CosmicProfile{ID: uuid.NewString()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sign, err := s.resolver.Resolve(p.system, p.date, hour)
		if err != nil {
			return err
		}
		profile.Sign = sign
		return nil
	})
	g.Go(func() error {
		numbers, err := s.engine.Calculate(p.name, p.date.AsTime(), p.cipher)
		if err != nil {
			return err
		}
		profile.CoreNumbers = numbers
		return nil
	})
	if s.approximator != nil {
		g.Go(func() error {
			// Approximate degrades instead of erroring on oracle trouble,
			// so this branch only fails on invalid input, which the parse
			// step has already ruled out.
			chart, err := s.approximator.Approximate(ctx, p.birthMoment())
			if err != nil {
				return err
			}
			profile.Chart = &chart
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return CosmicProfile{}, err
	}

	degraded := profile.Chart != nil && profile.Chart.Status == astro.ChartDegraded
	if degraded && s.logger != nil {
		s.logger.WarnContext(ctx, "profile calculated with degraded chart",
			"profile_id", profile.ID,
		)
	}
	s.metrics.RecordProfile(p.system.String(), string(p.cipher), degraded, s.now().Sub(started))
	return profile, nil
}

// Score runs the compatibility scorer over two western signs.
func (s *Service) Score(ctx context.Context, req ScoreRequest) (ScoreResponse, error) {
	if err := req.validate(); err != nil {
		return ScoreResponse{}, err
	}
	result, err := s.scorer.Score(req.FirstSign, req.SecondSign, compatibility.AnalysisType(req.AnalysisType))
	if err != nil {
		return ScoreResponse{}, err
	}
	s.metrics.RecordCompatibility(string(result.AnalysisType))
	return ScoreResponse{Result: result}, nil
}
