package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nkhandel/taskpilot-api/internal/api/shared"
	"github.com/nkhandel/taskpilot-api/internal/derivation"
	"github.com/nkhandel/taskpilot-api/internal/domain"
	"github.com/nkhandel/taskpilot-api/internal/platform/logger"
	"github.com/nkhandel/taskpilot-api/internal/store"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskStore store.TaskStore
	deriver   derivation.Deriver
	validator *validator.Validate
	logger    *slog.Logger

	// timeFunc returns the current time. Injectable for testing.
	timeFunc func() time.Time
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(
	taskStore store.TaskStore,
	deriver derivation.Deriver,
	logger *slog.Logger,
) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskStore: taskStore,
		deriver:   deriver,
		validator: validator.New(),
		logger:    logger.With(slog.String("component", "task_handler")),
		timeFunc:  time.Now,
	}
}

// Create handles POST /api/tasks requests. The payload's type field selects
// the creation mode: "custom" takes explicit fields, "simple" derives the
// task from free text via the language model.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	now := h.timeFunc()

	var task *domain.Task
	var err error
	switch req.Type {
	case TaskTypeCustom:
		task, err = h.buildCustomTask(userID, req, now)
	case TaskTypeSimple:
		task, err = h.deriveSimpleTask(r, userID, req.Text, now)
	}
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		log.Error("failed to create task", "error", err, "user_id", userID)
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	log.Info("task created",
		"task_id", task.ID,
		"user_id", userID,
		"type", req.Type,
		"status", task.Status)

	shared.RespondWithJSON(w, r, http.StatusCreated, NewTaskResponse(task))
}

// buildCustomTask constructs a task from explicitly supplied fields.
func (h *TaskHandler) buildCustomTask(
	userID uuid.UUID,
	req CreateTaskRequest,
	now time.Time,
) (*domain.Task, error) {
	if req.Title == "" {
		return nil, domain.ErrEmptyTaskTitle
	}
	if req.Deadline == "" {
		return nil, domain.ErrEmptyDeadline
	}

	deadline, err := domain.ParseInstant(req.Deadline)
	if err != nil {
		return nil, err
	}

	var startTime *time.Time
	if req.StartTime != "" {
		parsed, err := domain.ParseInstant(req.StartTime)
		if err != nil {
			return nil, err
		}
		startTime = &parsed
	}

	return domain.NewTask(userID, req.Title, req.Description, startTime, deadline, now)
}

// deriveSimpleTask asks the deriver to turn free text into a task draft and
// builds a domain task from it.
func (h *TaskHandler) deriveSimpleTask(
	r *http.Request,
	userID uuid.UUID,
	text string,
	now time.Time,
) (*domain.Task, error) {
	if text == "" {
		return nil, derivation.ErrEmptyText
	}

	draft, err := h.deriver.DeriveTask(r.Context(), text, now)
	if err != nil {
		return nil, err
	}

	return domain.NewTask(userID, draft.Title, draft.Description, draft.StartTime, draft.Deadline, now)
}

// List handles GET /api/tasks requests, returning the authenticated user's
// tasks ordered by ascending deadline, optionally filtered by status.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	var statusFilter *domain.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		statusFilter = &status
	}

	tasks, err := h.taskStore.List(r.Context(), userID, statusFilter)
	if err != nil {
		log.Error("failed to list tasks", "error", err, "user_id", userID)
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskListResponse(tasks))
}

// Get handles GET /api/tasks/{id} requests.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), userID, taskID)
	if err != nil {
		if !errors.Is(err, store.ErrTaskNotFound) {
			log.Error("failed to get task", "error", err, "task_id", taskID)
		}
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// Update handles PUT /api/tasks/{id} requests, applying a partial update.
//
// An explicit status in the payload wins; otherwise, when start_time or
// deadline change, the status is recomputed from the merged timestamps.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Empty() {
		shared.RespondWithError(w, r, http.StatusBadRequest, "No fields to update")
		return
	}

	update, err := h.buildTaskUpdate(r, userID, taskID, req)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskStore.Update(r.Context(), userID, taskID, *update)
	if err != nil {
		if !errors.Is(err, store.ErrTaskNotFound) {
			log.Error("failed to update task", "error", err, "task_id", taskID)
		}
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("task updated", "task_id", taskID, "user_id", userID, "status", task.Status)

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// buildTaskUpdate converts the request payload into a store update,
// resolving the task's status against its current timestamps.
func (h *TaskHandler) buildTaskUpdate(
	r *http.Request,
	userID, taskID uuid.UUID,
	req UpdateTaskRequest,
) (*store.TaskUpdate, error) {
	update := &store.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
	}

	if req.Title != nil && *req.Title == "" {
		return nil, domain.ErrEmptyTaskTitle
	}

	if req.StartTime != nil {
		parsed, err := domain.ParseInstant(*req.StartTime)
		if err != nil {
			return nil, err
		}
		update.StartTime = &parsed
	}

	if req.Deadline != nil {
		parsed, err := domain.ParseInstant(*req.Deadline)
		if err != nil {
			return nil, err
		}
		update.Deadline = &parsed
	}

	if req.Status != nil {
		status, err := domain.ParseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		update.Status = &status
		return update, nil
	}

	// No explicit status. When the timestamps change, the stored status
	// may no longer follow from them, so recompute it against the merged
	// task state.
	if update.StartTime == nil && update.Deadline == nil {
		return update, nil
	}

	existing, err := h.taskStore.GetByID(r.Context(), userID, taskID)
	if err != nil {
		return nil, err
	}

	startTime := existing.StartTime
	if update.StartTime != nil {
		startTime = update.StartTime
	}
	deadline := existing.Deadline
	if update.Deadline != nil {
		deadline = *update.Deadline
	}

	status := domain.ComputeStatus(startTime, deadline, h.timeFunc(), existing.Status)
	update.Status = &status

	return update, nil
}

// UpdateStatus handles PATCH /api/tasks/{id}/status requests, the explicit
// status override path (mark complete/incomplete).
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskStore.UpdateStatus(r.Context(), userID, taskID, status)
	if err != nil {
		if !errors.Is(err, store.ErrTaskNotFound) {
			log.Error("failed to update task status", "error", err, "task_id", taskID)
		}
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("task status updated", "task_id", taskID, "user_id", userID, "status", status)

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// Delete handles DELETE /api/tasks/{id} requests.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.taskStore.Delete(r.Context(), userID, taskID); err != nil {
		if !errors.Is(err, store.ErrTaskNotFound) {
			log.Error("failed to delete task", "error", err, "task_id", taskID)
		}
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("task deleted", "task_id", taskID, "user_id", userID)

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Task deleted successfully"})
}
