package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/nkhandel/taskpilot-api/internal/domain"
	"github.com/nkhandel/taskpilot-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// CreateFn allows test cases to mock the Create behavior
	CreateFn func(ctx context.Context, user *domain.User) error

	// GetByIDFn allows test cases to mock the GetByID behavior
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsernameFn allows test cases to mock the GetByUsername behavior
	GetByUsernameFn func(ctx context.Context, username string) (*domain.User, error)

	// Default values used when functions aren't explicitly defined
	User *domain.User
	Err  error
}

// Ensure MockUserStore implements the store.UserStore interface
var _ store.UserStore = (*MockUserStore)(nil)

// Create implements the store.UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	return m.Err
}

// GetByID implements the store.UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	return m.User, m.Err
}

// GetByUsername implements the store.UserStore interface
func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}

	return m.User, m.Err
}

// WithTx implements the store.UserStore interface.
// The mock ignores the transaction and returns itself.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
