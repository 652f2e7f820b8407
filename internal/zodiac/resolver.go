package zodiac

import (
	"stellium/pkg/domain"
	dErrors "stellium/pkg/domain-errors"
)

// Sign is a resolved sign plus its derived attributes. WesternEquivalent keys
// the attribute tables for the date-based systems; it is empty for the
// Chinese cycle, which has no element/modality mapping here.
type Sign struct {
	System            System   `json:"system"`
	Name              string   `json:"name"`
	WesternEquivalent string   `json:"western_equivalent,omitempty"`
	Element           Element  `json:"element,omitempty"`
	Modality          Modality `json:"modality,omitempty"`
	RulingBody        string   `json:"ruling_body,omitempty"`
}

// Resolver maps birth dates to signs. Stateless and safe for concurrent use.
type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns the sign for date under the given system. hour is optional
// (nil when the birth time is unknown) and only consulted by the Sri Lankan
// system, whose almanac counts the solar transition from sunrise: on a sign's
// first boundary day, a birth before 06:00 belongs to the outgoing sign.
func (r *Resolver) Resolve(system System, date domain.Date, hour *int) (Sign, error) {
	if !system.IsValid() {
		return Sign{}, dErrors.Newf(dErrors.CodeInvalidInput, "unknown sign system: %q", system)
	}
	if err := date.Validate(); err != nil {
		return Sign{}, dErrors.Wrap(err, dErrors.CodeValidation, "invalid birth date")
	}
	if hour != nil && (*hour < 0 || *hour > 23) {
		return Sign{}, dErrors.Newf(dErrors.CodeValidation, "birth hour %d out of range [0,23]", *hour)
	}

	if system == SystemChinese {
		return chineseSign(date.Year), nil
	}

	idx := boundaryIndex(date.Month, date.Day)
	if system == SystemSriLankan && hour != nil && *hour < 6 {
		if b := tropicalBoundaries[idx]; date.Month == b.startMonth && date.Day == b.startDay {
			idx = (idx + 11) % 12
		}
	}
	return tropicalSign(system, idx), nil
}

// boundaryIndex scans the boundary table. Both ends are inclusive and every
// row spans at most two months, so one disjunction covers the wrap-around
// Capricorn row too. The constant fallback keeps the resolver total even if
// the table ever drifted out of full-year coverage.
func boundaryIndex(month, day int) int {
	for i, b := range tropicalBoundaries {
		if (month == b.startMonth && day >= b.startDay) || (month == b.endMonth && day <= b.endDay) {
			return i
		}
	}
	return fallbackIndex
}

func tropicalSign(system System, idx int) Sign {
	western := tropicalBoundaries[idx].sign
	name := western
	switch system {
	case SystemVedic:
		name = vedicNames[idx]
	case SystemSriLankan:
		name = sriLankanNames[idx]
	}
	return Sign{
		System:            system,
		Name:              name,
		WesternEquivalent: western,
		Element:           elements[western],
		Modality:          modalities[western],
		RulingBody:        rulingBodies[western],
	}
}

func chineseSign(year int) Sign {
	idx := (year - chineseEpochYear) % 12
	if idx < 0 {
		idx += 12
	}
	return Sign{
		System: SystemChinese,
		Name:   chineseAnimals[idx],
	}
}
