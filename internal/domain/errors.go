// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidTimestamp is returned when a timestamp cannot be parsed
	// as an absolute RFC 3339 instant.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrInvalidStatus is returned when a task status is outside the
	// four-member enum.
	ErrInvalidStatus = errors.New("invalid task status")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
