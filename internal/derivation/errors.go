package derivation

import (
	"errors"
	"fmt"
)

// Common errors returned by the derivation package
var (
	// ErrDerivationFailed is returned when a task cannot be derived from
	// free text, whether the external capability failed or its output
	// could not be normalized. No partial task is ever persisted.
	ErrDerivationFailed = errors.New("failed to derive task from text")

	// ErrInvalidResponse is returned when the language model output is
	// malformed or violates the draft contract (e.g. missing deadline).
	ErrInvalidResponse = fmt.Errorf("%w: invalid response from language model", ErrDerivationFailed)

	// ErrEmptyText is returned when the free-text input is empty.
	ErrEmptyText = errors.New("input text cannot be empty")

	// ErrInvalidConfig is returned when the deriver configuration is invalid
	ErrInvalidConfig = errors.New("invalid deriver configuration")
)
