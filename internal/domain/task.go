package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

// Possible task status values. Transitions are unrestricted: any status may
// move to any other status via an update.
const (
	TaskStatusCreated    TaskStatus = "created"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// MaxTaskTitleLength is the maximum number of characters allowed in a task title.
const MaxTaskTitleLength = 200

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskTitleEmpty is returned when a task's title is empty after trimming.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrTaskTitleTooLong is returned when a task's title exceeds MaxTaskTitleLength.
	ErrTaskTitleTooLong = errors.New("task title exceeds maximum length")

	// ErrTaskDescriptionEmpty is returned when a task's description is empty after trimming.
	ErrTaskDescriptionEmpty = errors.New("task description cannot be empty")

	// ErrInvalidTaskStatus is returned when a task status is not one of the defined values.
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// Task represents a unit of work tracked by the service.
// A task carries a title, a free-form description, and a lifecycle status.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a new Task with the given title and description.
// It generates a new UUID for the task ID, sets the status to created,
// and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewTask(title, description string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      TaskStatusCreated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if strings.TrimSpace(t.Title) == "" {
		return ErrTaskTitleEmpty
	}

	if len(t.Title) > MaxTaskTitleLength {
		return ErrTaskTitleTooLong
	}

	if strings.TrimSpace(t.Description) == "" {
		return ErrTaskDescriptionEmpty
	}

	if !IsValidTaskStatus(t.Status) {
		return ErrInvalidTaskStatus
	}

	return nil
}

// UpdateStatus sets the task's status and refreshes the UpdatedAt timestamp.
// Returns an error if the new status is not a defined value.
func (t *Task) UpdateStatus(status TaskStatus) error {
	if !IsValidTaskStatus(status) {
		return ErrInvalidTaskStatus
	}

	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// IsValidTaskStatus checks if the given status is a valid TaskStatus.
func IsValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusCreated, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}
