package domain

import (
	"fmt"
	"time"
)

// ComputeStatus is the single source of truth for a task's
// timestamp-derived status. It is pure and deterministic for fixed inputs.
//
// Rules, in order of precedence:
//  1. A Successful status was set by the user and is sticky; it is never
//     overridden automatically.
//  2. Once the deadline has passed, the task is Failed.
//  3. A task without a start time is considered already running: Ongoing.
//  4. A task whose start time lies in the future is Upcoming.
//  5. Otherwise the task has started and not yet reached its deadline:
//     Ongoing.
//
// Callers invoke it at task creation, on updates that change start_time or
// deadline without an explicit status, and from the deadline sweeper.
func ComputeStatus(startTime *time.Time, deadline, now time.Time, current Status) Status {
	if current == StatusSuccessful {
		return StatusSuccessful
	}

	if !now.Before(deadline) {
		return StatusFailed
	}

	if startTime == nil {
		return StatusOngoing
	}

	if startTime.After(now) {
		return StatusUpcoming
	}

	return StatusOngoing
}

// ParseInstant parses an RFC 3339 timestamp into an absolute UTC instant.
// Returns an error wrapping ErrInvalidTimestamp if the value is not a
// parseable instant.
func ParseInstant(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
	}
	return t.UTC(), nil
}
