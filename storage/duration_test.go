package storage

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktimer/errs"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		literal string
		want    int64
	}{
		{"45h30m", 45*3600 + 30*60},
		{"5m", 300},
		{"90s", 90},
		{"0s", 0},
		{"1d", 86400},
		{"1d2h3m4s", 86400 + 2*3600 + 3*60 + 4},
		{"2d30s", 2*86400 + 30},
		{"007m", 420},
		{"100h", 360000},
	}

	for _, tt := range tests {
		t.Run(tt.literal, func(t *testing.T) {
			got, err := ParseDuration(tt.literal)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDurationRejects(t *testing.T) {
	tests := []struct {
		name    string
		literal string
	}{
		{"empty", ""},
		{"unknown unit", "5x"},
		{"no unit", "45"},
		{"trailing digits", "1h30"},
		{"out of order", "30m1h"},
		{"repeated", "1h2h"},
		{"seconds before days", "5s1d"},
		{"negative", "-5m"},
		{"plus sign", "+5m"},
		{"separator", "1h 30m"},
		{"unit only", "h"},
		{"fraction", "1.5h"},
		{"uppercase", "1H"},
		{"magnitude overflow", "99999999999999999999s"},
		{"total overflow", strconv.FormatInt(math.MaxInt64/86400+1, 10) + "d"},
		{"sum overflow", strconv.FormatInt(math.MaxInt64/3600, 10) + "h" + "59m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDuration(tt.literal)
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrInvalidDurationLiteral)
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0:00:00"},
		{59, "0:00:59"},
		{3661, "1:01:01"},
		{163800, "45:30:00"},
		{165002, "45:50:02"},
		{360000, "100:00:00"},
		{-5, "0:00:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.seconds), "seconds=%d", tt.seconds)
	}
}

func TestFormatLiteralRoundTrip(t *testing.T) {
	assert.Equal(t, "0s", FormatLiteral(0))
	assert.Equal(t, "1m30s", FormatLiteral(90))
	assert.Equal(t, "1d21h30m", FormatLiteral(163800))

	for _, seconds := range []int64{0, 1, 59, 60, 3599, 3600, 86399, 86400, 163800, 1234567, math.MaxInt64} {
		got, err := ParseDuration(FormatLiteral(seconds))
		require.NoError(t, err, "literal %q", FormatLiteral(seconds))
		assert.Equal(t, seconds, got)
	}
}
