// Package derivation converts free-text input into structured task
// drafts. The Deriver boundary keeps the application core independent of
// which external language model produces the raw draft; the normalization
// rules in this package hold regardless of the capability behind it.
package derivation

import (
	"context"
	"time"

	"github.com/nkhandel/taskpilot-api/internal/domain"
)

// TaskDraft is an unsaved candidate task produced by derivation. Its
// Status is always recomputed by the lifecycle rules before persistence;
// any status asserted by the external capability is advisory only.
type TaskDraft struct {
	Title       string
	Description *string
	StartTime   *time.Time
	Deadline    time.Time
	Status      domain.Status
}

// Deriver defines the interface for deriving a task draft from free text.
type Deriver interface {
	// DeriveTask converts the given free-text input into a normalized
	// TaskDraft, resolving relative time expressions against now.
	// It makes a single synchronous attempt; any capability failure or
	// malformed output is reported as ErrDerivationFailed.
	DeriveTask(ctx context.Context, text string, now time.Time) (*TaskDraft, error)
}
