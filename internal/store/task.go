package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/nkhandel/taskpilot-api/internal/domain"
)

// TaskUpdate describes a partial update of a task's fields.
// Nil fields are left unchanged.
type TaskUpdate struct {
	Title       *string
	Description *string
	StartTime   *time.Time
	Deadline    *time.Time
	Status      *domain.Status
}

// Empty reports whether the update would change no fields.
func (u TaskUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.StartTime == nil &&
		u.Deadline == nil && u.Status == nil
}

// TaskStore defines the interface for task data persistence.
// Every read and write is scoped by the owning user: a task belonging to
// another user behaves exactly like a missing task (ErrTaskNotFound).
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID, scoped to the owner.
	// Returns ErrTaskNotFound if the task does not exist or is not owned
	// by userID.
	GetByID(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// List returns all tasks owned by userID ordered by ascending
	// deadline, optionally filtered by exact status match.
	List(ctx context.Context, userID uuid.UUID, status *domain.Status) ([]*domain.Task, error)

	// Update applies a partial field update to a task, scoped to the
	// owner, and bumps updated_at. Returns the updated task.
	// Returns ErrTaskNotFound if the task does not exist or is not owned
	// by userID.
	Update(ctx context.Context, userID, taskID uuid.UUID, update TaskUpdate) (*domain.Task, error)

	// UpdateStatus sets only the task's status and bumps updated_at,
	// scoped to the owner. Returns the updated task.
	// Returns ErrTaskNotFound if the task does not exist or is not owned
	// by userID.
	UpdateStatus(ctx context.Context, userID, taskID uuid.UUID, status domain.Status) (*domain.Task, error)

	// Delete removes a task from the store, scoped to the owner.
	// Returns ErrTaskNotFound if the task does not exist or is not owned
	// by userID. This operation is permanent.
	Delete(ctx context.Context, userID, taskID uuid.UUID) error

	// MarkOverdue transitions every Upcoming or Ongoing task whose
	// deadline lies strictly before now to Failed, bumping updated_at.
	// It returns the number of tasks transitioned. Running it twice with
	// the same now is observably identical to running it once.
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) TaskStore
}
