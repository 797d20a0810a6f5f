package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextOccurrence_Daily(t *testing.T) {
	next, err := NextOccurrence(NewDate(2025, time.March, 14), Daily)
	require.NoError(t, err)
	assert.Equal(t, NewDate(2025, time.March, 15), next)
}

func TestNextOccurrence_Weekly(t *testing.T) {
	next, err := NextOccurrence(NewDate(2025, time.March, 14), Weekly)
	require.NoError(t, err)
	assert.Equal(t, NewDate(2025, time.March, 21), next)
}

func TestNextOccurrence_MonthlyClamp(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{"jan 31 clamps to feb 28", NewDate(2025, time.January, 31), NewDate(2025, time.February, 28)},
		{"jan 31 leap year clamps to feb 29", NewDate(2024, time.January, 31), NewDate(2024, time.February, 29)},
		{"mid-month stays put", NewDate(2025, time.April, 15), NewDate(2025, time.May, 15)},
		{"31st into 30-day month", NewDate(2025, time.March, 31), NewDate(2025, time.April, 30)},
		{"dec rolls into next year", NewDate(2025, time.December, 10), NewDate(2026, time.January, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := NextOccurrence(tt.from, Monthly)
			require.NoError(t, err)
			assert.Equal(t, tt.want, next)
		})
	}
}

// A clamped monthly series carries forward from the clamped day; it does
// not snap back to the original anchor's day-of-month.
func TestNextOccurrence_MonthlyClampCarriesForward(t *testing.T) {
	d := NewDate(2025, time.January, 31)
	var err error
	d, err = NextOccurrence(d, Monthly)
	require.NoError(t, err)
	assert.Equal(t, NewDate(2025, time.February, 28), d)

	d, err = NextOccurrence(d, Monthly)
	require.NoError(t, err)
	assert.Equal(t, NewDate(2025, time.March, 28), d)
}

func TestNextOccurrence_YearlyLeapClamp(t *testing.T) {
	next, err := NextOccurrence(NewDate(2024, time.February, 29), Yearly)
	require.NoError(t, err)
	assert.Equal(t, NewDate(2025, time.February, 28), next)

	next, err = NextOccurrence(NewDate(2025, time.June, 1), Yearly)
	require.NoError(t, err)
	assert.Equal(t, NewDate(2026, time.June, 1), next)
}

func TestNextOccurrence_InvalidFrequency(t *testing.T) {
	_, err := NextOccurrence(NewDate(2025, time.January, 1), Frequency("FORTNIGHTLY"))
	assert.ErrorIs(t, err, ErrInvalidFrequency)
}

func TestNextOccurrence_TruncatesTimeOfDay(t *testing.T) {
	noon := time.Date(2025, time.May, 2, 12, 30, 0, 0, time.UTC)
	next, err := NextOccurrence(noon, Daily)
	require.NoError(t, err)
	assert.Equal(t, NewDate(2025, time.May, 3), next)
}
