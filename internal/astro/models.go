package astro

import (
	"stellium/pkg/domain"
	dErrors "stellium/pkg/domain-errors"
)

// TimeOfDay is an optional birth time. Minutes matter for the rising sign.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Location is an optional birth place with an IANA timezone identifier.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone,omitempty"`
}

// BirthMoment is the immutable input to every astronomical calculation.
// Construct-and-validate once; read-only afterwards.
type BirthMoment struct {
	Date     domain.Date `json:"date"`
	Time     *TimeOfDay  `json:"time,omitempty"`
	Location *Location   `json:"location,omitempty"`
}

// Validate checks the calendar date plus the optional time and coordinate
// ranges.
func (m BirthMoment) Validate() error {
	if err := m.Date.Validate(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "invalid birth date")
	}
	if m.Time != nil {
		if m.Time.Hour < 0 || m.Time.Hour > 23 {
			return dErrors.Newf(dErrors.CodeValidation, "hour %d out of range [0,23]", m.Time.Hour)
		}
		if m.Time.Minute < 0 || m.Time.Minute > 59 {
			return dErrors.Newf(dErrors.CodeValidation, "minute %d out of range [0,59]", m.Time.Minute)
		}
	}
	if m.Location != nil {
		if m.Location.Latitude < -90 || m.Location.Latitude > 90 {
			return dErrors.Newf(dErrors.CodeValidation, "latitude %.4f out of range [-90,90]", m.Location.Latitude)
		}
		if m.Location.Longitude < -180 || m.Location.Longitude > 180 {
			return dErrors.Newf(dErrors.CodeValidation, "longitude %.4f out of range [-180,180]", m.Location.Longitude)
		}
	}
	return nil
}

// BodyPosition is an ecliptic position in degrees.
type BodyPosition struct {
	LongitudeDeg float64 `json:"longitude_deg"`
	LatitudeDeg  float64 `json:"latitude_deg"`
}

// Positions maps body names ("sun", "moon", "mercury", ...) to positions.
type Positions map[string]BodyPosition

// ChartStatus reports whether the oracle answered or the chart degraded.
type ChartStatus string

const (
	ChartOK       ChartStatus = "ok"
	ChartDegraded ChartStatus = "degraded"
)

// Chart is the approximator output. When Status is degraded, Positions and
// the derived signs are empty and the caller should treat astronomical data
// as unavailable rather than wrong.
type Chart struct {
	Status     ChartStatus `json:"status"`
	Positions  Positions   `json:"positions,omitempty"`
	SunSign    string      `json:"sun_sign,omitempty"`
	MoonSign   string      `json:"moon_sign,omitempty"`
	RisingSign string      `json:"rising_sign,omitempty"`
}
