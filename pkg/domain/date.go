// Package domain holds shared domain primitives that enforce validity at
// construction time.
package domain

import (
	"fmt"
	"time"
)

// Date is a proleptic Gregorian calendar date. Construct via NewDate or
// ParseDate so month/day invariants hold everywhere downstream.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

var daysInMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// NewDate validates month and day (including leap years) and returns a Date.
func NewDate(year, month, day int) (Date, error) {
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("month %d out of range [1,12]", month)
	}
	max := daysInMonth[month]
	if month == 2 && isLeapYear(year) {
		max = 29
	}
	if day < 1 || day > max {
		return Date{}, fmt.Errorf("day %d invalid for %d-%02d", day, year, month)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// ParseDate parses "YYYY-MM-DD".
func ParseDate(s string) (Date, error) {
	var year, month, day int
	if _, err := fmt.Sscanf(s, "%d-%d-%d", &year, &month, &day); err != nil {
		return Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return NewDate(year, month, day)
}

// MustDate panics on invalid input; intended for fixed tables and tests.
func MustDate(year, month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// Validate re-checks the invariants; useful after JSON decoding, which
// bypasses NewDate.
func (d Date) Validate() error {
	_, err := NewDate(d.Year, d.Month, d.Day)
	return err
}

// AsTime converts to a UTC midnight time.Time. Validate first; time.Date
// silently normalizes out-of-range components.
func (d Date) AsTime() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
