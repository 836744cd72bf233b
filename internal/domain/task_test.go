package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	deadline := now.Add(time.Hour)

	task, err := NewTask(userID, "Submit report", nil, nil, deadline, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if task.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, task.UserID)
	}

	if task.Status != StatusOngoing {
		t.Errorf("Expected status %s, got %s", StatusOngoing, task.Status)
	}

	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}

	// With a future start time the initial status is Upcoming.
	start := now.Add(2 * time.Hour)
	task, err = NewTask(userID, "Plan sprint", nil, &start, now.Add(3*time.Hour), now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Status != StatusUpcoming {
		t.Errorf("Expected status %s, got %s", StatusUpcoming, task.Status)
	}

	// Test invalid userID
	_, err = NewTask(uuid.Nil, "Submit report", nil, nil, deadline, now)
	if !errors.Is(err, ErrEmptyTaskUserID) {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskUserID, err)
	}

	// Test empty title
	_, err = NewTask(userID, "", nil, nil, deadline, now)
	if !errors.Is(err, ErrEmptyTaskTitle) {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskTitle, err)
	}

	// Test missing deadline
	_, err = NewTask(userID, "Submit report", nil, nil, time.Time{}, now)
	if !errors.Is(err, ErrEmptyDeadline) {
		t.Errorf("Expected error %v, got %v", ErrEmptyDeadline, err)
	}
}

func TestTaskSetStatus(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	task, err := NewTask(uuid.New(), "Submit report", nil, nil, now.Add(time.Hour), now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	before := task.UpdatedAt
	if err := task.SetStatus(StatusSuccessful); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Status != StatusSuccessful {
		t.Errorf("Expected status %s, got %s", StatusSuccessful, task.Status)
	}
	if !task.UpdatedAt.After(before) && !task.UpdatedAt.Equal(before) {
		t.Error("Expected UpdatedAt to be bumped")
	}

	if err := task.SetStatus("Done"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("Expected error %v, got %v", ErrInvalidStatus, err)
	}
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"Upcoming", "Ongoing", "Failed", "Successful"} {
		status, err := ParseStatus(valid)
		if err != nil {
			t.Errorf("ParseStatus(%q) unexpected error: %v", valid, err)
		}
		if string(status) != valid {
			t.Errorf("ParseStatus(%q) = %s", valid, status)
		}
	}

	for _, invalid := range []string{"", "done", "FAILED", "Ongoing Task"} {
		if _, err := ParseStatus(invalid); !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("ParseStatus(%q) expected %v, got %v", invalid, ErrInvalidStatus, err)
		}
	}
}
