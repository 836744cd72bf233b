package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/nkhandel/taskpilot-api/internal/domain"
	"github.com/nkhandel/taskpilot-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// CreateFn allows test cases to mock the Create behavior
	CreateFn func(ctx context.Context, task *domain.Task) error

	// GetByIDFn allows test cases to mock the GetByID behavior
	GetByIDFn func(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// ListFn allows test cases to mock the List behavior
	ListFn func(ctx context.Context, userID uuid.UUID, status *domain.Status) ([]*domain.Task, error)

	// UpdateFn allows test cases to mock the Update behavior
	UpdateFn func(ctx context.Context, userID, taskID uuid.UUID, update store.TaskUpdate) (*domain.Task, error)

	// UpdateStatusFn allows test cases to mock the UpdateStatus behavior
	UpdateStatusFn func(ctx context.Context, userID, taskID uuid.UUID, status domain.Status) (*domain.Task, error)

	// DeleteFn allows test cases to mock the Delete behavior
	DeleteFn func(ctx context.Context, userID, taskID uuid.UUID) error

	// MarkOverdueFn allows test cases to mock the MarkOverdue behavior
	MarkOverdueFn func(ctx context.Context, now time.Time) (int64, error)

	// Default values used when functions aren't explicitly defined
	Task    *domain.Task
	Tasks   []*domain.Task
	Overdue int64
	Err     error
}

// Ensure MockTaskStore implements the store.TaskStore interface
var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements the store.TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	return m.Err
}

// GetByID implements the store.TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, userID, taskID)
	}

	return m.Task, m.Err
}

// List implements the store.TaskStore interface
func (m *MockTaskStore) List(
	ctx context.Context,
	userID uuid.UUID,
	status *domain.Status,
) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID, status)
	}

	return m.Tasks, m.Err
}

// Update implements the store.TaskStore interface
func (m *MockTaskStore) Update(
	ctx context.Context,
	userID, taskID uuid.UUID,
	update store.TaskUpdate,
) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, userID, taskID, update)
	}

	return m.Task, m.Err
}

// UpdateStatus implements the store.TaskStore interface
func (m *MockTaskStore) UpdateStatus(
	ctx context.Context,
	userID, taskID uuid.UUID,
	status domain.Status,
) (*domain.Task, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, userID, taskID, status)
	}

	return m.Task, m.Err
}

// Delete implements the store.TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID, taskID)
	}

	return m.Err
}

// MarkOverdue implements the store.TaskStore interface
func (m *MockTaskStore) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	if m.MarkOverdueFn != nil {
		return m.MarkOverdueFn(ctx, now)
	}

	return m.Overdue, m.Err
}

// WithTx implements the store.TaskStore interface.
// The mock ignores the transaction and returns itself.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}
