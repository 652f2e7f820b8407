package validation

import (
	"time"

	dErrors "stellium/pkg/domain-errors"
)

// Category identifies which calculation family a validation run covers.
type Category string

const (
	CategoryZodiac       Category = "zodiac"
	CategoryNumerology   Category = "numerology"
	CategoryAstronomical Category = "astronomical"
)

// ParseCategory validates and returns a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown validation category: %q", s)
	}
	return c, nil
}

// IsValid checks if the category is one of the supported enum values.
func (c Category) IsValid() bool {
	switch c {
	case CategoryZodiac, CategoryNumerology, CategoryAstronomical:
		return true
	}
	return false
}

// String returns the string representation.
func (c Category) String() string {
	return string(c)
}

// RunStatus tracks the one-shot lifecycle of a validation run:
// pending -> running -> passed | failed. No retries.
type RunStatus string

const (
	StatusPending RunStatus = "pending"
	StatusRunning RunStatus = "running"
	StatusPassed  RunStatus = "passed"
	StatusFailed  RunStatus = "failed"
)

// ResultData carries the raw comparison material for diagnostics.
type ResultData struct {
	Input     string  `json:"input,omitempty"`
	Output    string  `json:"output,omitempty"`
	Expected  string  `json:"expected,omitempty"`
	Deviation float64 `json:"deviation,omitempty"`
}

// Result is one validation outcome. Immutable once produced; appended to the
// history store and never mutated or deleted afterwards.
type Result struct {
	ID          string     `json:"id"`
	Category    Category   `json:"category"`
	Status      RunStatus  `json:"status"`
	IsValid     bool       `json:"is_valid"`
	Accuracy    float64    `json:"accuracy"`   // 0-100
	Confidence  float64    `json:"confidence"` // 0-100
	Errors      []string   `json:"errors,omitempty"`
	Warnings    []string   `json:"warnings,omitempty"`
	Suggestions []string   `json:"suggestions,omitempty"`
	Data        ResultData `json:"data"`
	RecordedAt  time.Time  `json:"recorded_at"`
}

// Report is the aggregate produced by a comprehensive run and served on the
// diagnostics surface.
type Report struct {
	RunID           string    `json:"run_id"`
	OverallAccuracy float64   `json:"overall_accuracy"`
	TestResults     []Result  `json:"test_results"`
	Recommendations []string  `json:"recommendations"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
}
