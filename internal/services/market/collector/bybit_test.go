package collector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConvertIntervalToBybit(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  string
		shouldErr bool
	}{
		{name: "1 minute", input: "1m", expected: "1"},
		{name: "5 minutes", input: "5m", expected: "5"},
		{name: "15 minutes", input: "15m", expected: "15"},
		{name: "1 hour", input: "1h", expected: "60"},
		{name: "4 hours", input: "4h", expected: "240"},
		{name: "1 day", input: "1d", expected: "D"},
		{name: "1 week", input: "1w", expected: "W"},
		{name: "invalid interval - empty", input: "", shouldErr: true},
		{name: "invalid interval - no unit", input: "1", shouldErr: true},
		{name: "invalid interval - unsupported unit", input: "1x", shouldErr: true},
		{name: "invalid interval - no number", input: "mm", shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := convertIntervalToBybit(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	ts, err := parseTimestamp("1672531200000")
	assert.NoError(t, err)
	assert.Equal(t, time.Unix(1672531200, 0).UTC(), ts.UTC())

	_, err = parseTimestamp("")
	assert.Error(t, err)

	_, err = parseTimestamp("abc")
	assert.Error(t, err)
}

func TestIntervalDuration(t *testing.T) {
	d, err := intervalDuration("1h")
	assert.NoError(t, err)
	assert.Equal(t, time.Hour, d)

	d, err = intervalDuration("15m")
	assert.NoError(t, err)
	assert.Equal(t, 15*time.Minute, d)

	_, err = intervalDuration("1x")
	assert.Error(t, err)
}
