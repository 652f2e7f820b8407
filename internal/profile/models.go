package profile

import (
	"fmt"

	"stellium/internal/astro"
	"stellium/internal/compatibility"
	"stellium/internal/numerology"
	"stellium/internal/zodiac"
	"stellium/pkg/domain"
	dErrors "stellium/pkg/domain-errors"
)

// CalculateRequest is the inbound payload for a full profile calculation.
// Date is "YYYY-MM-DD"; time is optional "HH:MM"; coordinates are optional
// and only matter for the astronomical chart.
type CalculateRequest struct {
	FullName  string   `json:"full_name"`
	BirthDate string   `json:"birth_date"`
	BirthTime string   `json:"birth_time,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Timezone  string   `json:"timezone,omitempty"`

	SignSystem string `json:"sign_system"`
	Cipher     string `json:"cipher"`
}

// parsed is the validated form of a CalculateRequest.
type parsed struct {
	name   string
	date   domain.Date
	time   *astro.TimeOfDay
	loc    *astro.Location
	system zodiac.System
	cipher numerology.Cipher
}

// parse validates required fields per calculation category before any
// dispatch. Defaults: western signs, pythagorean cipher.
func (r CalculateRequest) parse() (parsed, error) {
	if r.FullName == "" {
		return parsed{}, dErrors.New(dErrors.CodeValidation, "full_name is required")
	}
	if r.BirthDate == "" {
		return parsed{}, dErrors.New(dErrors.CodeValidation, "birth_date is required")
	}
	date, err := domain.ParseDate(r.BirthDate)
	if err != nil {
		return parsed{}, dErrors.Wrap(err, dErrors.CodeValidation, "invalid birth_date")
	}

	p := parsed{
		name:   r.FullName,
		date:   date,
		system: zodiac.SystemWestern,
		cipher: numerology.CipherPythagorean,
	}

	if r.SignSystem != "" {
		p.system, err = zodiac.ParseSystem(r.SignSystem)
		if err != nil {
			return parsed{}, err
		}
	}
	if r.Cipher != "" {
		p.cipher, err = numerology.ParseCipher(r.Cipher)
		if err != nil {
			return parsed{}, err
		}
	}

	if r.BirthTime != "" {
		var hour, minute int
		if _, err := fmt.Sscanf(r.BirthTime, "%d:%d", &hour, &minute); err != nil {
			return parsed{}, dErrors.Newf(dErrors.CodeValidation, "invalid birth_time: %q", r.BirthTime)
		}
		if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
			return parsed{}, dErrors.Newf(dErrors.CodeValidation, "birth_time out of range: %q", r.BirthTime)
		}
		p.time = &astro.TimeOfDay{Hour: hour, Minute: minute}
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		return parsed{}, dErrors.New(dErrors.CodeValidation, "latitude and longitude must be provided together")
	}
	if r.Latitude != nil {
		p.loc = &astro.Location{Latitude: *r.Latitude, Longitude: *r.Longitude, Timezone: r.Timezone}
	}

	return p, nil
}

func (p parsed) birthMoment() astro.BirthMoment {
	return astro.BirthMoment{
		Date:     p.date,
		Time:     p.time,
		Location: p.loc,
	}
}

// CosmicProfile aggregates every calculation category for one person.
// Chart may carry a degraded status; the other categories are never blocked
// by an astronomical failure.
type CosmicProfile struct {
	ID          string                 `json:"id"`
	Sign        zodiac.Sign            `json:"sign"`
	CoreNumbers numerology.CoreNumbers `json:"core_numbers"`
	Chart       *astro.Chart           `json:"chart,omitempty"`
}

// ScoreRequest is the inbound payload for a compatibility score.
type ScoreRequest struct {
	FirstSign    string `json:"first_sign"`
	SecondSign   string `json:"second_sign"`
	AnalysisType string `json:"analysis_type,omitempty"`
}

func (r ScoreRequest) validate() error {
	if r.FirstSign == "" || r.SecondSign == "" {
		return dErrors.New(dErrors.CodeValidation, "first_sign and second_sign are required")
	}
	return nil
}

// ScoreResponse wraps the scorer result for the HTTP surface.
type ScoreResponse struct {
	compatibility.Result
}
