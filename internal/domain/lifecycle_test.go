package domain

import (
	"testing"
	"time"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestComputeStatus(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		startTime *time.Time
		deadline  time.Time
		current   Status
		want      Status
	}{
		{
			name:      "no start time yields ongoing",
			startTime: nil,
			deadline:  now.Add(time.Hour),
			want:      StatusOngoing,
		},
		{
			name:      "future start time yields upcoming",
			startTime: timePtr(now.Add(2 * time.Hour)),
			deadline:  now.Add(3 * time.Hour),
			want:      StatusUpcoming,
		},
		{
			name:      "started and before deadline yields ongoing",
			startTime: timePtr(now.Add(-time.Hour)),
			deadline:  now.Add(time.Hour),
			want:      StatusOngoing,
		},
		{
			name:      "start exactly now yields ongoing",
			startTime: timePtr(now),
			deadline:  now.Add(time.Hour),
			want:      StatusOngoing,
		},
		{
			name:      "past deadline yields failed",
			startTime: timePtr(now.Add(-2 * time.Hour)),
			deadline:  now.Add(-time.Hour),
			want:      StatusFailed,
		},
		{
			name:      "deadline exactly now yields failed",
			startTime: nil,
			deadline:  now,
			want:      StatusFailed,
		},
		{
			name:      "past deadline without start time yields failed",
			startTime: nil,
			deadline:  now.Add(-time.Minute),
			want:      StatusFailed,
		},
		{
			name:      "successful is sticky past deadline",
			startTime: timePtr(now.Add(-2 * time.Hour)),
			deadline:  now.Add(-time.Hour),
			current:   StatusSuccessful,
			want:      StatusSuccessful,
		},
		{
			name:      "successful is sticky before deadline",
			startTime: nil,
			deadline:  now.Add(time.Hour),
			current:   StatusSuccessful,
			want:      StatusSuccessful,
		},
		{
			name:      "failed recomputes to failed past deadline",
			startTime: nil,
			deadline:  now.Add(-time.Hour),
			current:   StatusFailed,
			want:      StatusFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStatus(tt.startTime, tt.deadline, now, tt.current)
			if got != tt.want {
				t.Errorf("ComputeStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}

// TestComputeStatusProgression walks a single task through its lifecycle:
// created before its start time, recomputed after the start has passed,
// then recomputed after the deadline has passed.
func TestComputeStatusProgression(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	start := created.Add(2 * time.Hour)
	deadline := created.Add(3 * time.Hour)

	status := ComputeStatus(&start, deadline, created, "")
	if status != StatusUpcoming {
		t.Fatalf("at creation: got %s, want %s", status, StatusUpcoming)
	}

	afterStart := created.Add(2*time.Hour + time.Minute)
	status = ComputeStatus(&start, deadline, afterStart, status)
	if status != StatusOngoing {
		t.Fatalf("after start: got %s, want %s", status, StatusOngoing)
	}

	afterDeadline := created.Add(3*time.Hour + time.Minute)
	status = ComputeStatus(&start, deadline, afterDeadline, status)
	if status != StatusFailed {
		t.Fatalf("after deadline: got %s, want %s", status, StatusFailed)
	}
}

func TestComputeStatusIsDeterministic(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	start := now.Add(time.Hour)
	deadline := now.Add(2 * time.Hour)

	first := ComputeStatus(&start, deadline, now, StatusOngoing)
	for i := 0; i < 10; i++ {
		if got := ComputeStatus(&start, deadline, now, StatusOngoing); got != first {
			t.Fatalf("ComputeStatus() not deterministic: got %s, want %s", got, first)
		}
	}
}

func TestParseInstant(t *testing.T) {
	t.Parallel()

	got, err := ParseInstant("2025-06-01T12:00:00Z")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	want := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseInstant() = %v, want %v", got, want)
	}

	// Offsets resolve to absolute instants.
	got, err = ParseInstant("2025-06-01T14:00:00+02:00")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("ParseInstant() = %v, want %v", got, want)
	}

	for _, bad := range []string{"", "tomorrow", "2025-06-01", "06/01/2025 12:00"} {
		if _, err := ParseInstant(bad); err == nil {
			t.Errorf("ParseInstant(%q) expected error, got nil", bad)
		}
	}
}
