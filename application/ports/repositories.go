package ports

import (
	"context"

	"todo-backend/domain/todo"
)

// TodoRepository defines the interface for todo persistence.
// This is a port in hexagonal architecture - the use cases don't know about the implementation.
type TodoRepository interface {
	// FindAll returns every stored todo. The slice is empty, never nil, when there are none.
	FindAll(ctx context.Context) ([]*todo.Todo, error)

	// FindByID returns the todo with the given id, or nil with no error when it is absent
	FindByID(ctx context.Context, id string) (*todo.Todo, error)

	// Save writes the complete record, replacing any record with the same id
	Save(ctx context.Context, t *todo.Todo) (*todo.Todo, error)

	// Delete removes the record. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error

	// Exists reports whether a record with the given id is stored
	Exists(ctx context.Context, id string) (bool, error)
}

// HealthChecker is implemented by repositories that can probe their backing store
type HealthChecker interface {
	Ping(ctx context.Context) error
}
