package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/tasktrail/tasktrail-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Implementations provide durable CRUD access keyed by task ID and perform
// no business validation beyond referential existence.
type TaskStore interface {
	// Create saves a new task to the store.
	// The task must be valid according to domain validation rules.
	// Storage-connectivity failures are returned as infrastructure errors,
	// distinct from the not-found sentinels.
	Create(ctx context.Context, task *domain.Task) error

	// List returns tasks in stable insertion order (created_at, id),
	// skipping offset records and returning at most limit records.
	// A limit of zero or less yields an empty slice; an offset beyond the
	// collection size yields an empty slice.
	List(ctx context.Context, offset, limit int) ([]*domain.Task, error)

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist. Absence is a
	// normal outcome and is never conflated with connectivity failures.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update persists an already-mutated task back to the store,
	// refreshing its UpdatedAt timestamp.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete permanently removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller,
	// typically through RunInTransaction.
	WithTx(tx *sql.Tx) TaskStore
}
