package validation

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"stellium/internal/astro"
	"stellium/internal/numerology"
	"stellium/internal/zodiac"
	"stellium/pkg/domain"
	dErrors "stellium/pkg/domain-errors"
	platformstrings "stellium/pkg/platform/strings"
)

// Subjects are the production calculators under validation. The battery runs
// them against the reference rules; it never trusts their tables.
type Subjects struct {
	Resolver     *zodiac.Resolver
	Engine       *numerology.Engine
	Approximator *astro.Approximator
}

type zodiacCase struct {
	system zodiac.System
	date   domain.Date
}

type lifePathCase struct {
	date domain.Date
}

// The fixed battery. Boundary dates are the interesting ones: sign starts,
// sign ends, the Capricorn year wrap, and the 11/11 life path trap.
var (
	zodiacBattery = []zodiacCase{
		{zodiac.SystemWestern, domain.Date{Year: 1990, Month: 3, Day: 21}},
		{zodiac.SystemWestern, domain.Date{Year: 1990, Month: 3, Day: 20}},
		{zodiac.SystemWestern, domain.Date{Year: 1990, Month: 6, Day: 21}},
		{zodiac.SystemWestern, domain.Date{Year: 1990, Month: 12, Day: 22}},
		{zodiac.SystemWestern, domain.Date{Year: 1991, Month: 1, Day: 19}},
		{zodiac.SystemWestern, domain.Date{Year: 1991, Month: 1, Day: 20}},
		{zodiac.SystemVedic, domain.Date{Year: 1990, Month: 3, Day: 21}},
		{zodiac.SystemSriLankan, domain.Date{Year: 1990, Month: 7, Day: 23}},
		{zodiac.SystemChinese, domain.Date{Year: 1990, Month: 6, Day: 15}},
		{zodiac.SystemChinese, domain.Date{Year: 2000, Month: 1, Day: 1}},
	}

	lifePathBattery = []lifePathCase{
		{domain.Date{Year: 1990, Month: 1, Day: 1}},
		{domain.Date{Year: 1990, Month: 11, Day: 11}},
		{domain.Date{Year: 2000, Month: 2, Day: 29}},
		{domain.Date{Year: 1975, Month: 12, Day: 31}},
	}

	reductionBattery = []int{0, 7, 10, 11, 22, 29, 33, 1992, 2012}

	astronomicalBattery = []astro.BirthMoment{
		{Date: domain.Date{Year: 1990, Month: 3, Day: 21}},
		{Date: domain.Date{Year: 2000, Month: 1, Day: 1}, Time: &astro.TimeOfDay{Hour: 12}},
	}
)

// RunComprehensive executes the fixed battery across all categories,
// records every case to history and aggregates a diagnostics report.
// Categories run concurrently; a failing case is a recorded result, not an
// error, so one bad category never hides the others.
func (v *Validator) RunComprehensive(ctx context.Context, subjects Subjects) (Report, error) {
	if subjects.Resolver == nil || subjects.Engine == nil {
		return Report{}, dErrors.New(dErrors.CodeInvalidInput, "battery requires resolver and engine subjects")
	}

	started := v.now()
	var (
		mu      sync.Mutex
		results []Result
	)
	collect := func(r Result, err error) error {
		if err != nil {
			return err
		}
		mu.Lock()
		results = append(results, r)
		mu.Unlock()
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for _, tc := range zodiacBattery {
			sign, err := subjects.Resolver.Resolve(tc.system, tc.date, nil)
			if err != nil {
				return err
			}
			if err := collect(v.ValidateZodiac(ctx, tc.system.String(), tc.date, sign.Name)); err != nil {
				return err
			}
		}
		return nil
	})

	g.Go(func() error {
		for _, tc := range lifePathBattery {
			numbers, err := subjects.Engine.Calculate("Reference Subject", tc.date.AsTime(), numerology.CipherPythagorean)
			if err != nil {
				return err
			}
			if err := collect(v.ValidateLifePath(ctx, tc.date, numbers.LifePath)); err != nil {
				return err
			}
		}
		for _, n := range reductionBattery {
			if err := collect(v.ValidateReduction(ctx, n, numerology.Reduce(n))); err != nil {
				return err
			}
		}
		return nil
	})

	if subjects.Approximator != nil && v.oracle != nil {
		g.Go(func() error {
			for _, moment := range astronomicalBattery {
				chart, err := subjects.Approximator.Approximate(ctx, moment)
				if err != nil {
					return err
				}
				if chart.Status == astro.ChartDegraded {
					r := v.newResult(CategoryAstronomical)
					r.Data.Input = moment.Date.String()
					v.fail(&r, "astronomical service unavailable")
					if err := v.record(ctx, &r); err != nil {
						return err
					}
					if err := collect(r, nil); err != nil {
						return err
					}
					continue
				}
				if err := collect(v.ValidateAstronomical(ctx, moment, chart.Positions)); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	sortResults(results)
	report := Report{
		RunID:           uuid.NewString(),
		OverallAccuracy: MeanAccuracy(results),
		TestResults:     results,
		Recommendations: Recommendations(results),
		StartedAt:       started,
		FinishedAt:      v.now(),
	}
	v.metrics.ObserveBatteryLatency(report.FinishedAt.Sub(report.StartedAt))
	return report, nil
}

// MeanAccuracy averages the accuracy over a result set. Zero for an empty
// set.
func MeanAccuracy(results []Result) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		sum += r.Accuracy
	}
	return sum / float64(len(results))
}

// Recommendations derives free-text advice from the aggregated deviations
// plus the per-case suggestions, deduplicated.
func Recommendations(results []Result) []string {
	var (
		maxDev      float64
		devSum      float64
		devCount    int
		failures    int
		suggestions []string
	)
	for _, r := range results {
		if !r.IsValid {
			failures++
		}
		suggestions = append(suggestions, r.Suggestions...)
		if r.Category != CategoryAstronomical {
			continue
		}
		if r.Data.Deviation > maxDev {
			maxDev = r.Data.Deviation
		}
		devSum += r.Data.Deviation
		devCount++
	}

	var out []string
	if maxDev > maxDeviationTolerance {
		out = append(out, fmt.Sprintf("max deviation %.2f deg: consider switching to a higher-fidelity ephemeris oracle", maxDev))
	}
	if devCount > 0 {
		if avg := devSum / float64(devCount); avg > avgDeviationWarning {
			out = append(out, fmt.Sprintf("average deviation %.2f deg: review degree rounding in the approximator", avg))
		}
	}
	if failures > 0 {
		out = append(out, fmt.Sprintf("%d of %d battery cases failed: inspect recent history entries", failures, len(results)))
	}
	out = append(out, suggestions...)
	if len(out) == 0 {
		out = append(out, "all calculation categories within tolerance")
	}
	return platformstrings.DedupeAndTrim(out)
}
