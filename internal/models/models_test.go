package models

import (
	"testing"
	"time"
)

func TestMeasurement_Throughput(t *testing.T) {
	tests := []struct {
		name     string
		bytes    int64
		elapsed  time.Duration
		expected Throughput
	}{
		{
			name:     "ten kilobytes over two seconds",
			bytes:    10240,
			elapsed:  2 * time.Second,
			expected: 5,
		},
		{
			name:     "under one kilobyte truncates to zero",
			bytes:    1000,
			elapsed:  500 * time.Millisecond,
			expected: 0,
		},
		{
			name:     "empty body",
			bytes:    0,
			elapsed:  3 * time.Second,
			expected: 0,
		},
		{
			name:     "rounds up",
			bytes:    10 * 1024,
			elapsed:  3 * time.Second,
			expected: 4,
		},
		{
			name:     "partial kilobyte dropped before dividing",
			bytes:    3*1024 + 1023,
			elapsed:  time.Second,
			expected: 3,
		},
		{
			name:     "zero elapsed clamps to minimum",
			bytes:    2048,
			elapsed:  0,
			expected: 2_000_000_000,
		},
		{
			name:     "empty body with zero elapsed",
			bytes:    0,
			elapsed:  0,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Measurement{Bytes: tt.bytes, Elapsed: tt.elapsed}
			if got := m.Throughput(); got != tt.expected {
				t.Errorf("expected %d kb/s, got %d", tt.expected, got)
			}
		})
	}
}

func TestMeasurement_Kilobytes(t *testing.T) {
	m := Measurement{Bytes: 2047}
	if got := m.Kilobytes(); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
}
