package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/nkhandel/taskpilot-api/internal/domain"
)

// Common request/response structures

// Task creation modes accepted by the create endpoint.
const (
	// TaskTypeSimple derives the task from free-form text via the
	// configured language model.
	TaskTypeSimple = "simple"

	// TaskTypeCustom creates the task from explicitly supplied fields.
	TaskTypeCustom = "custom"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// UserResponse defines the public representation of a user.
// The password hash never leaves the server.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// User is the registered user. Only populated on registration.
	User *UserResponse `json:"user,omitempty"`

	// Token is the JWT bearer token used for API authorization.
	Token string `json:"token"`
}

// CreateTaskRequest defines the payload for the task creation endpoint.
// Type selects the creation mode: "simple" carries free text for
// derivation, "custom" carries explicit task fields.
type CreateTaskRequest struct {
	Type string `json:"type" validate:"required,oneof=simple custom"`

	// Text is the free-form description used in simple mode.
	Text string `json:"text,omitempty"`

	// Explicit fields used in custom mode. StartTime and Deadline are
	// RFC 3339 instants; StartTime may be omitted.
	Title       string  `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	StartTime   string  `json:"start_time,omitempty"`
	Deadline    string  `json:"deadline,omitempty"`
}

// UpdateTaskRequest defines the payload for the partial task update
// endpoint. Nil fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	StartTime   *string `json:"start_time,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// Empty reports whether the update carries no fields at all.
func (r UpdateTaskRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.StartTime == nil &&
		r.Deadline == nil && r.Status == nil
}

// UpdateStatusRequest defines the payload for the status-only update
// endpoint.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// TaskResponse represents the response data for a task.
type TaskResponse struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"user_id"`
	Title       string        `json:"title"`
	Description *string       `json:"description"`
	StartTime   *time.Time    `json:"start_time"`
	Deadline    time.Time     `json:"deadline"`
	Status      domain.Status `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TaskListResponse wraps a collection of tasks.
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

// MessageResponse carries a simple confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewUserResponse converts a domain user to its API representation.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
}

// NewTaskResponse converts a domain task to its API representation.
func NewTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		StartTime:   task.StartTime,
		Deadline:    task.Deadline,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// NewTaskListResponse converts a slice of domain tasks to its API
// representation. An empty slice marshals as an empty array, not null.
func NewTaskListResponse(tasks []*domain.Task) TaskListResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, NewTaskResponse(task))
	}
	return TaskListResponse{Tasks: out}
}
