package service

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/tasktrail/tasktrail-api/internal/domain"
	"github.com/tasktrail/tasktrail-api/internal/platform/logger"
	"github.com/tasktrail/tasktrail-api/internal/store"
)

// TaskUpdate describes a partial update to a task. A nil field means
// "leave unchanged"; a non-nil field overwrites the corresponding attribute.
// This keeps "absent from payload" distinct from "set to empty string".
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
}

// TaskService provides task-related operations. It is the single entry point
// enforcing business rules on top of the task store; transports must never
// bypass it.
type TaskService interface {
	// CreateTask creates a new task with status "created" and returns the
	// fully populated task including its generated ID and timestamps.
	CreateTask(ctx context.Context, title, description string) (*domain.Task, error)

	// ListTasks returns tasks in stable insertion order, skipping skip
	// records and returning at most limit records. Values are passed through
	// to the store unclamped; callers supply non-negative values.
	ListTasks(ctx context.Context, skip, limit int) ([]*domain.Task, error)

	// GetTask retrieves a task by its ID.
	// Returns store.ErrTaskNotFound (wrapped) when the task does not exist.
	GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// UpdateTask applies the supplied fields to the task and returns the
	// updated task with a refreshed UpdatedAt. Absent fields are untouched;
	// an update with no fields still succeeds.
	// Returns store.ErrTaskNotFound (wrapped) when the task does not exist.
	UpdateTask(ctx context.Context, id uuid.UUID, update TaskUpdate) (*domain.Task, error)

	// DeleteTask permanently removes the task.
	// Returns store.ErrTaskNotFound (wrapped) when the task does not exist;
	// deleting the same ID twice fails the second time.
	DeleteTask(ctx context.Context, id uuid.UUID) error
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskStore store.TaskStore
	db        *sql.DB
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if the task store dependency is nil. The db handle is
// used to run read-merge-write updates inside a transaction; a nil db (as
// with in-memory stores) runs them directly against the store.
func NewTaskService(taskStore store.TaskStore, db *sql.DB, logger *slog.Logger) (TaskService, error) {
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore: taskStore,
		db:        db,
		logger:    logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	title, description string,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// The transport validates the payload, but the service does not assume
	// it has been reached through a validating caller.
	if strings.TrimSpace(title) == "" {
		return nil, domain.NewValidationError("title", "cannot be empty", domain.ErrValidation)
	}
	if strings.TrimSpace(description) == "" {
		return nil, domain.NewValidationError("description", "cannot be empty", domain.ErrValidation)
	}

	task, err := domain.NewTask(title, description)
	if err != nil {
		log.Warn("task construction failed", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("status", string(task.Status)))
	return task, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context, skip, limit int) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.taskStore.List(ctx, skip, limit)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.Int("skip", skip),
			slog.Int("limit", limit))
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}

	return tasks, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, NewTaskServiceError("get_task", "task not found", store.ErrTaskNotFound)
		}
		log.Error("failed to retrieve task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}

	return task, nil
}

// UpdateTask implements TaskService.UpdateTask
// It looks up the task, merges the supplied fields, and commits the result.
// No write is performed when the task does not exist or the merged record
// fails validation. When a db handle is available the lookup and write run
// in a single transaction so concurrent updates cannot interleave.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id uuid.UUID,
	update TaskUpdate,
) (*domain.Task, error) {
	if s.db == nil {
		return s.updateTaskWith(ctx, s.taskStore, id, update)
	}

	var updated *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		task, err := s.updateTaskWith(ctx, s.taskStore.WithTx(tx), id, update)
		if err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// updateTaskWith performs the read-merge-write update against the given
// store, which may be transaction-scoped.
func (s *taskServiceImpl) updateTaskWith(
	ctx context.Context,
	taskStore store.TaskStore,
	id uuid.UUID,
	update TaskUpdate,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := taskStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found during update", slog.String("task_id", id.String()))
			return nil, NewTaskServiceError("update_task", "task not found", store.ErrTaskNotFound)
		}
		log.Error("failed to retrieve task for update",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, NewTaskServiceError("update_task", "failed to retrieve task", err)
	}

	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Status != nil {
		task.Status = *update.Status
	}

	if err := task.Validate(); err != nil {
		log.Warn("merged task failed validation",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	if err := taskStore.Update(ctx, task); err != nil {
		if store.IsNotFoundError(err) {
			// The task vanished between the lookup and the write.
			log.Debug("task disappeared during update", slog.String("task_id", id.String()))
			return nil, NewTaskServiceError("update_task", "task not found", store.ErrTaskNotFound)
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, NewTaskServiceError("update_task", "failed to save task", err)
	}

	log.Debug("task updated",
		slog.String("task_id", id.String()),
		slog.String("status", string(task.Status)))
	return task, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.taskStore.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found during delete", slog.String("task_id", id.String()))
			return NewTaskServiceError("delete_task", "task not found", store.ErrTaskNotFound)
		}
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	log.Debug("task deleted", slog.String("task_id", id.String()))
	return nil
}
