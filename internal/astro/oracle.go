package astro

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"stellium/pkg/platform/sentinel"
)

// Oracle is the seam to an external ephemeris service. Implementations must
// honor ctx cancellation; callers bound every request with a timeout.
type Oracle interface {
	PlanetaryPositions(ctx context.Context, moment BirthMoment) (Positions, error)
}

// HTTPOracle queries a remote ephemeris endpoint. Transport failures are
// wrapped in sentinel.ErrUnavailable so the approximator can degrade instead
// of propagating raw errors.
type HTTPOracle struct {
	baseURL string
	client  *http.Client
}

// NewHTTPOracle builds an oracle client with a bounded per-request timeout.
func NewHTTPOracle(baseURL string, timeout time.Duration) *HTTPOracle {
	return &HTTPOracle{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type oracleResponse struct {
	Bodies map[string]struct {
		Longitude float64 `json:"longitude"`
		Latitude  float64 `json:"latitude"`
	} `json:"bodies"`
}

func (o *HTTPOracle) PlanetaryPositions(ctx context.Context, moment BirthMoment) (Positions, error) {
	q := url.Values{}
	q.Set("date", moment.Date.String())
	if moment.Time != nil {
		q.Set("time", fmt.Sprintf("%02d:%02d", moment.Time.Hour, moment.Time.Minute))
	}
	if moment.Location != nil {
		q.Set("lat", fmt.Sprintf("%.4f", moment.Location.Latitude))
		q.Set("lon", fmt.Sprintf("%.4f", moment.Location.Longitude))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/positions?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build oracle request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: oracle request failed: %v", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: oracle returned status %d", sentinel.ErrUnavailable, resp.StatusCode)
	}

	var decoded oracleResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: decode oracle response: %v", sentinel.ErrUnavailable, err)
	}

	positions := make(Positions, len(decoded.Bodies))
	for name, b := range decoded.Bodies {
		positions[name] = BodyPosition{LongitudeDeg: b.Longitude, LatitudeDeg: b.Latitude}
	}
	return positions, nil
}

// MockOracle produces deterministic positions from the birth moment and a
// configurable latency to mimic real-world calls. Used in tests and when no
// oracle URL is configured.
type MockOracle struct {
	Latency time.Duration
}

func (m MockOracle) PlanetaryPositions(ctx context.Context, moment BirthMoment) (Positions, error) {
	if m.Latency > 0 {
		select {
		case <-time.After(m.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	// A crude mean-motion model: good enough to exercise the degree
	// plumbing, never good enough for real charts.
	daysSinceEpoch := daysSince2000(moment.Date.Year, moment.Date.Month, moment.Date.Day)
	positions := Positions{
		"sun":     {LongitudeDeg: wrap360(280.46 + 0.9856474*daysSinceEpoch)},
		"moon":    {LongitudeDeg: wrap360(218.316 + 13.176396*daysSinceEpoch), LatitudeDeg: 2.1},
		"mercury": {LongitudeDeg: wrap360(252.25 + 4.092335*daysSinceEpoch), LatitudeDeg: 1.2},
		"venus":   {LongitudeDeg: wrap360(181.98 + 1.602130*daysSinceEpoch), LatitudeDeg: 0.8},
		"mars":    {LongitudeDeg: wrap360(355.43 + 0.524033*daysSinceEpoch), LatitudeDeg: 0.4},
		"jupiter": {LongitudeDeg: wrap360(34.35 + 0.083056*daysSinceEpoch), LatitudeDeg: 0.2},
		"saturn":  {LongitudeDeg: wrap360(50.08 + 0.033371*daysSinceEpoch), LatitudeDeg: 0.9},
	}
	return positions, nil
}

func daysSince2000(year, month, day int) float64 {
	t := time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)
	epoch := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	return t.Sub(epoch).Hours() / 24
}
