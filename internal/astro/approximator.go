package astro

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	dErrors "stellium/pkg/domain-errors"
)

const defaultOracleTimeout = 5 * time.Second

// Approximator owns the input validation and degree plumbing around the
// external ephemeris oracle. The orbital mechanics live behind the Oracle
// interface; this side maps longitudes back to signs and degrades gracefully
// when the oracle is down.
type Approximator struct {
	oracle  Oracle
	logger  *slog.Logger
	timeout time.Duration
	breaker *circuitBreaker
}

type Option func(*Approximator)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Approximator) {
		a.logger = logger
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(a *Approximator) {
		a.timeout = timeout
	}
}

func NewApproximator(oracle Oracle, opts ...Option) *Approximator {
	a := &Approximator{
		oracle:  oracle,
		timeout: defaultOracleTimeout,
		breaker: newCircuitBreaker(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Approximate validates the moment, queries the oracle with a bounded
// timeout and derives the sun/moon/rising signs from the returned
// longitudes. Oracle failure yields a degraded chart, not an error; only
// invalid input errors out.
func (a *Approximator) Approximate(ctx context.Context, moment BirthMoment) (Chart, error) {
	if err := moment.Validate(); err != nil {
		return Chart{}, err
	}

	if a.breaker.IsOpen() {
		return Chart{Status: ChartDegraded}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	positions, err := a.oracle.PlanetaryPositions(ctx, moment)
	if err != nil {
		a.breaker.RecordFailure()
		if a.logger != nil {
			a.logger.WarnContext(ctx, "astronomical oracle unavailable, degrading chart",
				"error", err.Error(),
			)
		}
		return Chart{Status: ChartDegraded}, nil
	}
	a.breaker.RecordSuccess()

	chart := Chart{Status: ChartOK, Positions: normalize(positions)}
	if sun, ok := chart.Positions["sun"]; ok {
		chart.SunSign = SignForLongitude(sun.LongitudeDeg)
	}
	if moon, ok := chart.Positions["moon"]; ok {
		chart.MoonSign = SignForLongitude(moon.LongitudeDeg)
	}
	// The ascendant needs the birth time; without it the rising sign stays
	// empty rather than guessed.
	if moment.Time != nil {
		chart.RisingSign = risingSign(chart.Positions, *moment.Time)
	}
	return chart, nil
}

// RequireTime returns an error when the caller asked for a rising sign
// without providing the birth time.
func RequireTime(moment BirthMoment) error {
	if moment.Time == nil {
		return dErrors.New(dErrors.CodeValidation, "birth time required for rising sign")
	}
	return nil
}

func normalize(in Positions) Positions {
	out := make(Positions, len(in))
	for name, p := range in {
		out[name] = BodyPosition{
			LongitudeDeg: wrap360(p.LongitudeDeg),
			LatitudeDeg:  p.LatitudeDeg,
		}
	}
	return out
}

// wrap360 normalizes a longitude into [0,360).
func wrap360(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// SignForLongitude maps an ecliptic longitude to its western sign over
// 30-degree bands, 0° = start of Aries.
func SignForLongitude(longitudeDeg float64) string {
	idx := int(wrap360(longitudeDeg) / 30)
	if idx > 11 {
		idx = 11
	}
	return longitudeSigns[idx]
}

// longitudeSigns is ordered from 0° Aries, unlike the calendar boundary
// table which starts its year wrap at Capricorn.
var longitudeSigns = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// risingSign offsets the sun's longitude by the hour angle: the ascendant
// advances roughly one sign every two hours from sunrise (06:00).
func risingSign(positions Positions, t TimeOfDay) string {
	sun, ok := positions["sun"]
	if !ok {
		return ""
	}
	hoursFromSunrise := float64(t.Hour) + float64(t.Minute)/60 - 6
	offset := hoursFromSunrise * 15 // 360° / 24h
	return SignForLongitude(sun.LongitudeDeg + offset)
}

// circuitBreaker tracks consecutive oracle failures so a stalled oracle does
// not keep burning a timeout per request:
// - open after failureThreshold consecutive failures; while open, degrade
//   immediately.
// - close again after successThreshold consecutive successful probes.
type circuitBreaker struct {
	mu               sync.Mutex
	open             bool
	failureCount     int
	successCount     int
	failureThreshold int
	successThreshold int
	openedAt         time.Time
	retryAfter       time.Duration
}

func newCircuitBreaker() *circuitBreaker {
	return &circuitBreaker{
		failureThreshold: 5,
		successThreshold: 2,
		retryAfter:       30 * time.Second,
	}
}

func (c *circuitBreaker) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.open && time.Since(c.openedAt) >= c.retryAfter {
		// Half-open: let the next request probe the oracle.
		return false
	}
	return c.open
}

func (c *circuitBreaker) RecordFailure() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failureCount++
	c.successCount = 0
	if !c.open && c.failureCount >= c.failureThreshold {
		c.open = true
		c.openedAt = time.Now()
	} else if c.open {
		c.openedAt = time.Now()
	}
}

func (c *circuitBreaker) RecordSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.open {
		c.successCount++
		if c.successCount >= c.successThreshold {
			c.open = false
			c.failureCount = 0
			c.successCount = 0
		}
		return
	}
	c.failureCount = 0
}
