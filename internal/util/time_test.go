package util

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		expected string
	}{
		{
			name:     "ISO format with milliseconds",
			input:    "2023-01-15T14:30:45.123Z",
			expected: "2023-01-15T14:30:45.123Z",
		},
		{
			name:     "without milliseconds",
			input:    "2023-01-15T14:30:45Z",
			expected: "2023-01-15T14:30:45Z",
		},
		{
			name:     "RFC3339 with offset",
			input:    "2023-01-15T14:30:45-08:00",
			expected: "2023-01-15T22:30:45Z",
		},
		{
			name:     "milliseconds with offset",
			input:    "2023-01-15T14:30:45.123-08:00",
			expected: "2023-01-15T22:30:45.123Z",
		},
		{
			name:     "RFC3339Nano",
			input:    "2023-01-15T14:30:45.123456789Z",
			expected: "2023-01-15T14:30:45.123456789Z",
		},
		{
			name:     "surrounding whitespace",
			input:    "  2023-01-15T14:30:45Z\n",
			expected: "2023-01-15T14:30:45Z",
		},
		{
			name:    "invalid format",
			input:   "not-a-date",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseTimestamp(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseTimestamp() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("ParseTimestamp() unexpected error: %v", err)
				return
			}

			expected, _ := time.Parse(time.RFC3339Nano, tt.expected)
			if !result.Equal(expected) {
				t.Errorf("ParseTimestamp() = %v, want %v", result.UTC(), expected.UTC())
			}
		})
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		at       time.Time
		expected string
	}{
		{time.Time{}, ""},
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-49 * time.Hour), "2d ago"},
	}

	for _, tt := range tests {
		if got := RelativeTime(tt.at, now); got != tt.expected {
			t.Errorf("RelativeTime(%v) = %q, want %q", tt.at, got, tt.expected)
		}
	}
}

func BenchmarkParseTimestamp(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := ParseTimestamp("2023-01-15T14:30:45.123Z"); err != nil {
			b.Fatal(err)
		}
	}
}
