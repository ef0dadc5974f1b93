package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tasktrail/tasktrail-api/internal/domain"
	"github.com/tasktrail/tasktrail-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
// By default it behaves as an in-memory store preserving insertion order;
// individual methods can be overridden through the function fields, and
// blanket errors can be injected to simulate storage failures.
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, task *domain.Task) error
	ListFn    func(ctx context.Context, offset, limit int) ([]*domain.Task, error)
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	UpdateFn  func(ctx context.Context, task *domain.Task) error
	DeleteFn  func(ctx context.Context, id uuid.UUID) error

	// Errors for default implementation
	CreateError error
	ListError   error
	GetError    error
	UpdateError error
	DeleteError error

	mu    sync.RWMutex
	tasks map[uuid.UUID]*domain.Task
	order []uuid.UUID
}

// NewMockTaskStore creates a new mock store with initialized defaults.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		tasks: make(map[uuid.UUID]*domain.Task),
	}
}

// Ensure MockTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements the TaskStore interface.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	if m.CreateError != nil {
		return m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.tasks[task.ID]; exists {
		return store.ErrDuplicate
	}

	m.tasks[task.ID] = copyTask(task)
	m.order = append(m.order, task.ID)
	return nil
}

// List implements the TaskStore interface.
func (m *MockTaskStore) List(ctx context.Context, offset, limit int) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, offset, limit)
	}
	if m.ListError != nil {
		return nil, m.ListError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 || offset >= len(m.order) {
		return []*domain.Task{}, nil
	}
	if offset < 0 {
		offset = 0
	}

	end := offset + limit
	if end > len(m.order) {
		end = len(m.order)
	}

	tasks := make([]*domain.Task, 0, end-offset)
	for _, id := range m.order[offset:end] {
		tasks = append(tasks, copyTask(m.tasks[id]))
	}
	return tasks, nil
}

// GetByID implements the TaskStore interface.
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.GetError != nil {
		return nil, m.GetError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	task, exists := m.tasks[id]
	if !exists {
		return nil, store.ErrTaskNotFound
	}
	return copyTask(task), nil
}

// Update implements the TaskStore interface.
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	if m.UpdateError != nil {
		return m.UpdateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.tasks[task.ID]; !exists {
		return store.ErrTaskNotFound
	}

	task.UpdatedAt = time.Now().UTC()
	m.tasks[task.ID] = copyTask(task)
	return nil
}

// Delete implements the TaskStore interface.
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if m.DeleteError != nil {
		return m.DeleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.tasks[id]; !exists {
		return store.ErrTaskNotFound
	}

	delete(m.tasks, id)
	for i, orderedID := range m.order {
		if orderedID == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// WithTx implements the TaskStore interface.
// The mock has no transaction semantics; it returns itself.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}

// Len reports the number of stored tasks.
func (m *MockTaskStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tasks)
}

// copyTask returns a copy so callers cannot mutate stored state in place.
func copyTask(task *domain.Task) *domain.Task {
	if task == nil {
		return nil
	}
	copied := *task
	return &copied
}
