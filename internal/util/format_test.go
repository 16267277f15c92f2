package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected string
	}{
		{"zero", 0, "0"},
		{"hundreds", 999, "999"},
		{"exactly 1000", 1000, "1.0K"},
		{"thousands", 8500, "8.5K"},
		{"chart cap", 20000, "20.0K"},
		{"just below a million", 999999, "1000.0K"},
		{"millions", 2500000, "2.5M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatNumber(tt.input))
		})
	}
}

func TestFormatStopwatch(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Duration
		expected string
	}{
		{"zero", 0, "00:00:00"},
		{"seconds", 42 * time.Second, "00:00:42"},
		{"sub-second is dropped", 1999 * time.Millisecond, "00:00:01"},
		{"minutes and seconds", 12*time.Minute + 5*time.Second, "00:12:05"},
		{"hours", 3*time.Hour + 4*time.Minute + 5*time.Second, "03:04:05"},
		{"more than a day", 26 * time.Hour, "26:00:00"},
		{"negative", -time.Minute, "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatStopwatch(tt.input))
		})
	}
}
