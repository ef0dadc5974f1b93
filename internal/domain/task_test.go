package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	t.Parallel()
	title := "Write release notes"
	description := "Summarize the changes shipped this sprint."

	task, err := NewTask(title, description)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if task.Title != title {
		t.Errorf("Expected title %s, got %s", title, task.Title)
	}

	if task.Description != description {
		t.Errorf("Expected description %s, got %s", description, task.Description)
	}

	if task.Status != TaskStatusCreated {
		t.Errorf("Expected status %s, got %s", TaskStatusCreated, task.Status)
	}

	if task.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if task.UpdatedAt.IsZero() {
		t.Error("Expected non-zero UpdatedAt time")
	}

	if task.UpdatedAt.Before(task.CreatedAt) {
		t.Error("Expected UpdatedAt to not precede CreatedAt")
	}

	// Test empty title
	_, err = NewTask("", description)
	if err != ErrTaskTitleEmpty {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleEmpty, err)
	}

	// Test whitespace-only title
	_, err = NewTask("   ", description)
	if err != ErrTaskTitleEmpty {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleEmpty, err)
	}

	// Test empty description
	_, err = NewTask(title, "")
	if err != ErrTaskDescriptionEmpty {
		t.Errorf("Expected error %v, got %v", ErrTaskDescriptionEmpty, err)
	}

	// Test overlong title
	_, err = NewTask(strings.Repeat("x", MaxTaskTitleLength+1), description)
	if err != ErrTaskTitleTooLong {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleTooLong, err)
	}
}

func TestTaskIDUniqueness(t *testing.T) {
	t.Parallel()
	seen := make(map[uuid.UUID]bool)

	for i := 0; i < 100; i++ {
		task, err := NewTask("title", "description")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if seen[task.ID] {
			t.Fatalf("Duplicate task ID generated: %s", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestTaskValidate(t *testing.T) {
	t.Parallel()
	validTask := Task{
		ID:          uuid.New(),
		Title:       "Test task",
		Description: "Test description",
		Status:      TaskStatusCreated,
	}

	// Test valid task
	if err := validTask.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Test invalid ID
	invalidTask := validTask
	invalidTask.ID = uuid.Nil
	if err := invalidTask.Validate(); err != ErrTaskIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrTaskIDEmpty, err)
	}

	// Test empty title
	invalidTask = validTask
	invalidTask.Title = ""
	if err := invalidTask.Validate(); err != ErrTaskTitleEmpty {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleEmpty, err)
	}

	// Test empty description
	invalidTask = validTask
	invalidTask.Description = " "
	if err := invalidTask.Validate(); err != ErrTaskDescriptionEmpty {
		t.Errorf("Expected error %v, got %v", ErrTaskDescriptionEmpty, err)
	}

	// Test invalid status
	invalidTask = validTask
	invalidTask.Status = "archived"
	if err := invalidTask.Validate(); err != ErrInvalidTaskStatus {
		t.Errorf("Expected error %v, got %v", ErrInvalidTaskStatus, err)
	}
}

func TestTaskUpdateStatus(t *testing.T) {
	t.Parallel()
	task, err := NewTask("Test task", "Test description")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	before := task.UpdatedAt

	if err := task.UpdateStatus(TaskStatusInProgress); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if task.Status != TaskStatusInProgress {
		t.Errorf("Expected status %s, got %s", TaskStatusInProgress, task.Status)
	}
	if task.UpdatedAt.Before(before) {
		t.Error("Expected UpdatedAt to be refreshed")
	}

	// Transitions are unrestricted: completed may move back to created.
	if err := task.UpdateStatus(TaskStatusCompleted); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if err := task.UpdateStatus(TaskStatusCreated); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	if err := task.UpdateStatus("done"); err != ErrInvalidTaskStatus {
		t.Errorf("Expected error %v, got %v", ErrInvalidTaskStatus, err)
	}
}

func TestIsValidTaskStatus(t *testing.T) {
	t.Parallel()
	tests := []struct {
		status   TaskStatus
		expected bool
	}{
		{TaskStatusCreated, true},
		{TaskStatusInProgress, true},
		{TaskStatusCompleted, true},
		{"", false},
		{"done", false},
		{"CREATED", false},
	}

	for _, tt := range tests {
		if got := IsValidTaskStatus(tt.status); got != tt.expected {
			t.Errorf("IsValidTaskStatus(%q) = %v, expected %v", tt.status, got, tt.expected)
		}
	}
}
