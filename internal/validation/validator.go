package validation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"stellium/internal/astro"
	"stellium/internal/validation/metrics"
	"stellium/pkg/domain"
	dErrors "stellium/pkg/domain-errors"
)

// Deviation tolerances for astronomical comparisons, in degrees.
const (
	maxDeviationTolerance = 5.0
	avgDeviationWarning   = 2.0
)

// Validator re-derives expected results from the reference rules, measures
// deviation and records every outcome to the history store. One Validate call
// is one one-shot run: pending -> running -> passed|failed, no retries.
type Validator struct {
	history History
	oracle  astro.Oracle
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(*Validator)

func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		v.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(v *Validator) {
		v.metrics = m
	}
}

// WithClock overrides the timestamp source in tests.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		v.now = now
	}
}

// NewValidator builds a validator. history is required; oracle may be nil
// when astronomical validation is not configured.
func NewValidator(history History, oracle astro.Oracle, opts ...Option) (*Validator, error) {
	if history == nil {
		return nil, fmt.Errorf("history store is required")
	}
	v := &Validator{
		history: history,
		oracle:  oracle,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// ValidateZodiac compares a resolved sign name against the reference
// boundary table. Accuracy is binary: string equality or nothing.
func (v *Validator) ValidateZodiac(ctx context.Context, system string, date domain.Date, actualSign string) (Result, error) {
	if err := date.Validate(); err != nil {
		return Result{}, dErrors.Wrap(err, dErrors.CodeValidation, "invalid date")
	}

	var expected string
	switch system {
	case "western":
		expected = expectedWesternSign(date)
	case "vedic":
		expected = expectedVedicSign(date)
	case "sri_lankan":
		expected = expectedSriLankanSign(date)
	case "chinese":
		expected = expectedChineseSign(date.Year)
	default:
		return Result{}, dErrors.Newf(dErrors.CodeInvalidInput, "unknown sign system: %q", system)
	}

	result := v.newResult(CategoryZodiac)
	result.Data = ResultData{
		Input:    fmt.Sprintf("%s %s", system, date),
		Output:   actualSign,
		Expected: expected,
	}
	if actualSign == expected {
		v.pass(&result, 100)
	} else {
		v.fail(&result, fmt.Sprintf("expected %s, got %s", expected, actualSign))
		result.Suggestions = append(result.Suggestions, "review the sign boundary table for inclusive start/end days")
	}
	err := v.record(ctx, &result)
	return result, err
}

// ValidateLifePath compares a life path number against the reference
// sum-then-reduce rule. Binary accuracy.
func (v *Validator) ValidateLifePath(ctx context.Context, date domain.Date, actual int) (Result, error) {
	if err := date.Validate(); err != nil {
		return Result{}, dErrors.Wrap(err, dErrors.CodeValidation, "invalid date")
	}

	expected := expectedLifePath(date)
	result := v.newResult(CategoryNumerology)
	result.Data = ResultData{
		Input:    date.String(),
		Output:   fmt.Sprintf("%d", actual),
		Expected: fmt.Sprintf("%d", expected),
	}
	if actual == expected {
		v.pass(&result, 100)
	} else {
		v.fail(&result, fmt.Sprintf("expected life path %d, got %d", expected, actual))
		result.Suggestions = append(result.Suggestions, "sum raw day+month+year before reducing; do not pre-reduce components")
	}
	err := v.record(ctx, &result)
	return result, err
}

// ValidateReduction checks the digit reducer against the reference rule.
func (v *Validator) ValidateReduction(ctx context.Context, input, actual int) (Result, error) {
	expected := referenceReduce(input)
	result := v.newResult(CategoryNumerology)
	result.Data = ResultData{
		Input:    fmt.Sprintf("%d", input),
		Output:   fmt.Sprintf("%d", actual),
		Expected: fmt.Sprintf("%d", expected),
	}
	if actual == expected {
		v.pass(&result, 100)
	} else {
		v.fail(&result, fmt.Sprintf("expected reduce(%d)=%d, got %d", input, expected, actual))
	}
	err := v.record(ctx, &result)
	return result, err
}

// ValidateAstronomical compares calculated planetary positions against the
// reference oracle using per-body Euclidean distance in degree space.
// Accuracy degrades linearly with average deviation; the run fails when any
// body deviates by the tolerance or more, or when the oracle is unreachable.
func (v *Validator) ValidateAstronomical(ctx context.Context, moment astro.BirthMoment, actual astro.Positions) (Result, error) {
	if err := moment.Validate(); err != nil {
		return Result{}, err
	}

	result := v.newResult(CategoryAstronomical)
	result.Data.Input = moment.Date.String()

	if v.oracle == nil {
		return Result{}, dErrors.New(dErrors.CodeInvalidInput, "no reference oracle configured")
	}

	reference, err := v.oracle.PlanetaryPositions(ctx, moment)
	if err != nil {
		v.fail(&result, "reference oracle service unavailable")
		result.Warnings = append(result.Warnings, "validation could not compare against the astronomical reference")
		recErr := v.record(ctx, &result)
		return result, recErr
	}

	maxDev, avgDev, compared := comparePositions(actual, reference)
	result.Data.Deviation = maxDev
	if compared == 0 {
		v.fail(&result, "no common bodies between calculated and reference positions")
		recErr := v.record(ctx, &result)
		return result, recErr
	}

	accuracy := math.Max(0, 100-avgDev)
	if maxDev < maxDeviationTolerance {
		v.pass(&result, accuracy)
	} else {
		result.Status = StatusFailed
		result.IsValid = false
		result.Accuracy = accuracy
		result.Confidence = confidenceFor(accuracy)
		result.Errors = append(result.Errors, fmt.Sprintf("max deviation %.2f deg exceeds %.1f deg tolerance", maxDev, maxDeviationTolerance))
	}
	result.Suggestions = append(result.Suggestions, suggestionsForDeviation(maxDev, avgDev)...)
	recErr := v.record(ctx, &result)
	return result, recErr
}

// comparePositions measures degree-space Euclidean distance per common body.
func comparePositions(actual, reference astro.Positions) (maxDev, avgDev float64, compared int) {
	var sum float64
	for name, ref := range reference {
		act, ok := actual[name]
		if !ok {
			continue
		}
		dLon := angularDelta(act.LongitudeDeg, ref.LongitudeDeg)
		dLat := act.LatitudeDeg - ref.LatitudeDeg
		dev := math.Sqrt(dLon*dLon + dLat*dLat)
		sum += dev
		if dev > maxDev {
			maxDev = dev
		}
		compared++
	}
	if compared > 0 {
		avgDev = sum / float64(compared)
	}
	return maxDev, avgDev, compared
}

// angularDelta is the shortest signed distance between two longitudes.
func angularDelta(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d > 180 {
		d -= 360
	}
	if d < -180 {
		d += 360
	}
	return d
}

// confidenceFor is the three-tier confidence function of accuracy.
func confidenceFor(accuracy float64) float64 {
	switch {
	case accuracy > 90:
		return 95
	case accuracy > 70:
		return 80
	default:
		return 50
	}
}

func suggestionsForDeviation(maxDev, avgDev float64) []string {
	var out []string
	if maxDev > maxDeviationTolerance {
		out = append(out, "consider switching to a higher-fidelity ephemeris oracle")
	}
	if avgDev > avgDeviationWarning {
		out = append(out, "review degree rounding and normalization in the approximator")
	}
	return out
}

func (v *Validator) newResult(category Category) Result {
	return Result{
		ID:       uuid.NewString(),
		Category: category,
		Status:   StatusRunning,
	}
}

func (v *Validator) pass(r *Result, accuracy float64) {
	r.Status = StatusPassed
	r.IsValid = true
	r.Accuracy = accuracy
	r.Confidence = confidenceFor(accuracy)
}

func (v *Validator) fail(r *Result, msg string) {
	r.Status = StatusFailed
	r.IsValid = false
	r.Accuracy = 0
	r.Confidence = confidenceFor(0)
	r.Errors = append(r.Errors, msg)
}

// record appends the outcome to history before returning it. A pass and a
// fail are recorded alike; only a store error surfaces.
func (v *Validator) record(ctx context.Context, result *Result) error {
	result.RecordedAt = v.now()
	v.metrics.RecordOutcome(result.Category.String(), string(result.Status), result.Accuracy)
	if err := v.history.Append(ctx, *result); err != nil {
		if v.logger != nil {
			v.logger.ErrorContext(ctx, "failed to record validation result",
				"category", result.Category.String(),
				"error", err.Error(),
			)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record validation result")
	}
	return nil
}

// Sort order for battery results: category then case input, so reports stay
// stable across runs.
func sortResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Category != results[j].Category {
			return results[i].Category < results[j].Category
		}
		return results[i].Data.Input < results[j].Data.Input
	})
}
