package mocks

import (
	"context"
	"time"

	"github.com/nkhandel/taskpilot-api/internal/derivation"
)

// MockDeriver implements derivation.Deriver for testing
type MockDeriver struct {
	// DeriveTaskFn allows test cases to mock the DeriveTask behavior
	DeriveTaskFn func(ctx context.Context, text string, now time.Time) (*derivation.TaskDraft, error)

	// Default values used when functions aren't explicitly defined
	Draft *derivation.TaskDraft
	Err   error
}

// Ensure MockDeriver implements the derivation.Deriver interface
var _ derivation.Deriver = (*MockDeriver)(nil)

// DeriveTask implements the derivation.Deriver interface
func (m *MockDeriver) DeriveTask(
	ctx context.Context,
	text string,
	now time.Time,
) (*derivation.TaskDraft, error) {
	if m.DeriveTaskFn != nil {
		return m.DeriveTaskFn(ctx, text, now)
	}

	return m.Draft, m.Err
}
