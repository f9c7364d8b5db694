package timeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		key  string
		want time.Duration
	}{
		{"w3 h4 s20", "", 3*week + 4*time.Hour + 20*time.Second},
		{"w3 h4 s20", "min", 3*week + 4*time.Hour + 20*time.Second},
		{"3w 4h 20s", "seconds", 3*week + 4*time.Hour + 20*time.Second},
		{"1h30m", "", time.Hour + 30*time.Minute},
		{"1H30M", "", time.Hour + 30*time.Minute},
		{"2days,3hrs", "", 2*day + 3*time.Hour},
		{"1.5h", "", 90 * time.Minute},
		{"-2d", "", -2 * day},
		{"1,2,3", "H", time.Hour + 2*time.Minute + 3*time.Second},
		{"1,2,3", "hours", time.Hour + 2*time.Minute + 3*time.Second},
		{"1 2 3", "delta-hours", time.Hour + 2*time.Minute + 3*time.Second},
		{"1 2 3", "delta_hours", time.Hour + 2*time.Minute + 3*time.Second},
		{"-20 0 -4", "weeks", -20*week - 4*time.Hour},
		{"5", "", 5 * day},
		{"1 2 3 4 5", "w", week + 2*day + 3*time.Hour + 4*time.Minute + 5*time.Second},
		{".5", "minutes", 30 * time.Second},
		{"1, 2", "m", time.Minute + 2*time.Second},
		{"15000w -100000d", "", 15000*week - 100000*day},
	}
	for _, tt := range tests {
		got, err := ParseDuration(tt.in, tt.key)
		require.NoError(t, err, "%q key %q", tt.in, tt.key)
		assert.Equal(t, tt.want, got, "%q key %q", tt.in, tt.key)
	}
}

func TestParseDurationErrors(t *testing.T) {
	tests := []struct {
		in   string
		key  string
		want error
	}{
		{"20h 0s 4", "", ErrMixedForms},
		{"20h 10 4", "weeks", ErrMixedForms},
		{"", "", ErrEmpty},
		{" , ", "", ErrEmpty},
		{"3x", "", ErrUnknownUnit},
		{"x3", "", ErrUnknownUnit},
		{"1h 2h", "", ErrDuplicateUnit},
		{"1hour2hours", "", ErrDuplicateUnit},
		{"1 2 3", "minutes", ErrTooManyValues},
		{"1 2 3 4 5 6", "", ErrTooManyValues},
		{"1.2.3", "", ErrBadNumber},
		{"h", "", ErrBadNumber},
		{"99999999999999999999", "", ErrBadNumber},
		{"15000w 100000d", "", ErrBadNumber},
		{"-15000w -100000d", "", ErrBadNumber},
		{"15000 100000", "weeks", ErrBadNumber},
	}
	for _, tt := range tests {
		_, err := ParseDuration(tt.in, tt.key)
		var perr *ParseError
		require.ErrorAs(t, err, &perr, tt.in)
		assert.Equal(t, KindDuration, perr.Kind, tt.in)
		assert.ErrorIs(t, err, tt.want, tt.in)
	}
}

func TestResolveDurationKey(t *testing.T) {
	tests := []struct {
		key  string
		want DurationField
	}{
		{"", DurationDays},
		{"weeks", DurationWeeks},
		{"W", DurationWeeks},
		{"d", DurationDays},
		{"H", DurationHours},
		{"hrs", DurationHours},
		{"min", DurationMinutes},
		{"mi", DurationMinutes},
		{"secs", DurationSeconds},
		{"se", DurationSeconds},
		{"delta-hours", DurationHours},
		{"timeout_sec", DurationSeconds},
		{"a-b-minutes", DurationMinutes},
	}
	for _, tt := range tests {
		got, err := ResolveDurationKey(tt.key)
		require.NoError(t, err, tt.key)
		assert.Equal(t, tt.want, got, tt.key)
	}

	for _, key := range []string{"x", "delta-x", "hoursx", "daily"} {
		_, err := ResolveDurationKey(key)
		var cerr *ConfigError
		require.ErrorAs(t, err, &cerr, key)
		assert.Equal(t, key, cerr.Value)
	}
}

func TestDurationFieldString(t *testing.T) {
	assert.Equal(t, "hours", DurationHours.String())
	assert.Equal(t, time.Minute, DurationMinutes.Unit())
	assert.Equal(t, "unknown", DurationField(9).String())
}
