package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDate(t *testing.T) {
	tests := []struct {
		name    string
		y, m, d int
		wantErr bool
	}{
		{"valid", 1990, 3, 21, false},
		{"leap day", 2000, 2, 29, false},
		{"non-leap feb 29", 1990, 2, 29, true},
		{"century non-leap", 1900, 2, 29, true},
		{"day 32", 1990, 1, 32, true},
		{"day zero", 1990, 1, 0, true},
		{"month 13", 1990, 13, 1, true},
		{"april 31", 1990, 4, 31, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDate(tt.y, tt.m, tt.d)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("1990-03-21")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 1990, Month: 3, Day: 21}, d)
	assert.Equal(t, "1990-03-21", d.String())

	_, err = ParseDate("1990-02-30")
	assert.Error(t, err)
	_, err = ParseDate("not a date")
	assert.Error(t, err)
}

func TestAsTime(t *testing.T) {
	d := MustDate(1990, 11, 11)
	tm := d.AsTime()
	assert.Equal(t, 1990, tm.Year())
	assert.Equal(t, 11, int(tm.Month()))
	assert.Equal(t, 11, tm.Day())
}
