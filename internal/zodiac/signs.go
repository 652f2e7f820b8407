package zodiac

import (
	dErrors "stellium/pkg/domain-errors"
)

// System selects one of the four supported sign systems.
type System string

const (
	SystemWestern   System = "western"
	SystemVedic     System = "vedic"
	SystemChinese   System = "chinese"
	SystemSriLankan System = "sri_lankan"
)

// ParseSystem validates and returns a System.
func ParseSystem(s string) (System, error) {
	sys := System(s)
	if !sys.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown sign system: %q", s)
	}
	return sys, nil
}

// IsValid checks if the system is one of the supported enum values.
func (s System) IsValid() bool {
	switch s {
	case SystemWestern, SystemVedic, SystemChinese, SystemSriLankan:
		return true
	}
	return false
}

// String returns the string representation.
func (s System) String() string {
	return string(s)
}

// Element, Modality and ruling body are derived attributes of a resolved
// western-equivalent sign. Every sign has exactly one of each.
type Element string

const (
	ElementFire  Element = "Fire"
	ElementEarth Element = "Earth"
	ElementAir   Element = "Air"
	ElementWater Element = "Water"
)

type Modality string

const (
	ModalityCardinal Modality = "Cardinal"
	ModalityFixed    Modality = "Fixed"
	ModalityMutable  Modality = "Mutable"
)

// boundary is one row of the tropical boundary table. Both ends are
// inclusive; Capricorn is the single row that wraps the year end.
type boundary struct {
	sign       string
	startMonth int
	startDay   int
	endMonth   int
	endDay     int
}

// tropicalBoundaries is the shared month/day table for the western, vedic and
// Sri Lankan systems; only the displayed names differ between those systems.
var tropicalBoundaries = [12]boundary{
	{"Aries", 3, 21, 4, 19},
	{"Taurus", 4, 20, 5, 20},
	{"Gemini", 5, 21, 6, 20},
	{"Cancer", 6, 21, 7, 22},
	{"Leo", 7, 23, 8, 22},
	{"Virgo", 8, 23, 9, 22},
	{"Libra", 9, 23, 10, 22},
	{"Scorpio", 10, 23, 11, 21},
	{"Sagittarius", 11, 22, 12, 21},
	{"Capricorn", 12, 22, 1, 19},
	{"Aquarius", 1, 20, 2, 18},
	{"Pisces", 2, 19, 3, 20},
}

// fallbackIndex points at Capricorn. The boundary table covers every valid
// calendar date, so the fallback is unreachable for validated input, but the
// resolver must still return a constant rather than fail.
const fallbackIndex = 9

// vedicNames maps tropical table positions to sidereal display names.
var vedicNames = [12]string{
	"Mesha", "Vrishabha", "Mithuna", "Karka", "Simha", "Kanya",
	"Tula", "Vrischika", "Dhanu", "Makara", "Kumbha", "Meena",
}

// sriLankanNames carries the Sinhala transliterations of the vedic names.
var sriLankanNames = [12]string{
	"Mesha", "Vrushabha", "Mithuna", "Kataka", "Sinha", "Kanya",
	"Thula", "Vrushchika", "Dhanu", "Makara", "Kumbha", "Meena",
}

// chineseAnimals is the fixed 12-year cycle, anchored at chineseEpochYear.
var chineseAnimals = [12]string{
	"Rat", "Ox", "Tiger", "Rabbit", "Dragon", "Snake",
	"Horse", "Goat", "Monkey", "Rooster", "Dog", "Pig",
}

// chineseEpochYear was a Rat year.
const chineseEpochYear = 1900

var elements = map[string]Element{
	"Aries": ElementFire, "Leo": ElementFire, "Sagittarius": ElementFire,
	"Taurus": ElementEarth, "Virgo": ElementEarth, "Capricorn": ElementEarth,
	"Gemini": ElementAir, "Libra": ElementAir, "Aquarius": ElementAir,
	"Cancer": ElementWater, "Scorpio": ElementWater, "Pisces": ElementWater,
}

var modalities = map[string]Modality{
	"Aries": ModalityCardinal, "Cancer": ModalityCardinal, "Libra": ModalityCardinal, "Capricorn": ModalityCardinal,
	"Taurus": ModalityFixed, "Leo": ModalityFixed, "Scorpio": ModalityFixed, "Aquarius": ModalityFixed,
	"Gemini": ModalityMutable, "Virgo": ModalityMutable, "Sagittarius": ModalityMutable, "Pisces": ModalityMutable,
}

var rulingBodies = map[string]string{
	"Aries": "Mars", "Taurus": "Venus", "Gemini": "Mercury", "Cancer": "Moon",
	"Leo": "Sun", "Virgo": "Mercury", "Libra": "Venus", "Scorpio": "Pluto",
	"Sagittarius": "Jupiter", "Capricorn": "Saturn", "Aquarius": "Uranus", "Pisces": "Neptune",
}

// ElementOf returns the element for a western sign name.
func ElementOf(westernSign string) Element {
	return elements[westernSign]
}

// ModalityOf returns the modality for a western sign name.
func ModalityOf(westernSign string) Modality {
	return modalities[westernSign]
}

// RulingBodyOf returns the ruling body for a western sign name.
func RulingBodyOf(westernSign string) string {
	return rulingBodies[westernSign]
}

// WesternSigns lists the twelve western sign names in boundary-table order.
func WesternSigns() []string {
	out := make([]string, len(tropicalBoundaries))
	for i, b := range tropicalBoundaries {
		out[i] = b.sign
	}
	return out
}

// IsWesternSign reports whether name is one of the twelve western signs.
func IsWesternSign(name string) bool {
	_, ok := elements[name]
	return ok
}
