package main

import (
	"regexp"
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{
			name:     "milliseconds",
			duration: 500 * time.Millisecond,
			want:     "500ms",
		},
		{
			name:     "seconds",
			duration: 5 * time.Second,
			want:     "5.00s",
		},
		{
			name:     "minutes",
			duration: 2*time.Minute + 30*time.Second,
			want:     "2m 30s",
		},
		{
			name:     "hours",
			duration: 1*time.Hour + 15*time.Minute,
			want:     "1h 15m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatDuration(tt.duration)
			if got != tt.want {
				t.Errorf("formatDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatRate(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		duration time.Duration
		want     string
	}{
		{
			name:     "simple rate",
			count:    100,
			duration: 10 * time.Second,
			want:     "10.00/s",
		},
		{
			name:     "zero duration",
			count:    100,
			duration: 0,
			want:     "N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatRate(tt.count, tt.duration)
			if got != tt.want {
				t.Errorf("formatRate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPercentageString(t *testing.T) {
	tests := []struct {
		name  string
		part  int
		total int
		want  string
	}{
		{
			name:  "half",
			part:  50,
			total: 100,
			want:  "50.00%",
		},
		{
			name:  "zero total",
			part:  10,
			total: 0,
			want:  "0.00%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := percentageString(tt.part, tt.total)
			if got != tt.want {
				t.Errorf("percentageString() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPercentile(t *testing.T) {
	latencies := []time.Duration{
		5 * time.Millisecond,
		1 * time.Millisecond,
		3 * time.Millisecond,
		2 * time.Millisecond,
		4 * time.Millisecond,
	}

	if got := percentile(latencies, 50); got != 3*time.Millisecond {
		t.Errorf("percentile(50) = %v, want 3ms", got)
	}
	if got := percentile(latencies, 100); got != 5*time.Millisecond {
		t.Errorf("percentile(100) = %v, want 5ms", got)
	}
	if got := percentile(nil, 50); got != 0 {
		t.Errorf("percentile(empty) = %v, want 0", got)
	}
}

func TestSyntheticRecord(t *testing.T) {
	txHashPattern := regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		record := syntheticRecord(i)

		if !txHashPattern.MatchString(record.TransactionHash) {
			t.Fatalf("malformed transaction hash: %s", record.TransactionHash)
		}
		if seen[record.TransactionHash] {
			t.Fatalf("duplicate transaction hash generated: %s", record.TransactionHash)
		}
		seen[record.TransactionHash] = true

		if _, err := time.Parse(time.RFC3339, record.Timestamp); err != nil {
			t.Fatalf("malformed timestamp: %s", record.Timestamp)
		}
	}
}
