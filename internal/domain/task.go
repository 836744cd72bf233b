package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a task.
type Status string

// Possible task status values.
const (
	StatusUpcoming   Status = "Upcoming"
	StatusOngoing    Status = "Ongoing"
	StatusFailed     Status = "Failed"
	StatusSuccessful Status = "Successful"
)

// Common validation errors for Task
var (
	ErrEmptyTaskID     = errors.New("task ID cannot be empty")
	ErrEmptyTaskUserID = errors.New("task user ID cannot be empty")
	ErrEmptyTaskTitle  = errors.New("task title cannot be empty")
	ErrEmptyDeadline   = errors.New("task deadline cannot be empty")
)

// Task represents a single to-do item owned by a user. Its status is
// derived from start_time, deadline and the current time; see ComputeStatus.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"start_time"`
	Deadline    time.Time  `json:"deadline"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a new Task owned by the given user. It generates a new
// UUID for the task ID, computes the initial status from the timestamps
// and now, and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewTask(
	userID uuid.UUID,
	title string,
	description *string,
	startTime *time.Time,
	deadline time.Time,
	now time.Time,
) (*Task, error) {
	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		StartTime:   startTime,
		Deadline:    deadline,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
	task.Status = ComputeStatus(startTime, deadline, now, task.Status)

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.UserID == uuid.Nil {
		return ErrEmptyTaskUserID
	}

	if t.Title == "" {
		return ErrEmptyTaskTitle
	}

	if t.Deadline.IsZero() {
		return ErrEmptyDeadline
	}

	if !isValidStatus(t.Status) {
		return ErrInvalidStatus
	}

	return nil
}

// SetStatus sets the task's status directly, bypassing the automatic
// lifecycle rules, and bumps the UpdatedAt timestamp. This is the explicit
// user override path (mark complete/incomplete).
// Returns an error if the new status is invalid.
func (t *Task) SetStatus(status Status) error {
	if !isValidStatus(status) {
		return ErrInvalidStatus
	}

	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// ParseStatus converts a string into a Status.
// Returns ErrInvalidStatus for values outside the four-member enum.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !isValidStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// isValidStatus checks if the given status is one of the enum values.
func isValidStatus(status Status) bool {
	switch status {
	case StatusUpcoming, StatusOngoing, StatusFailed, StatusSuccessful:
		return true
	default:
		return false
	}
}
