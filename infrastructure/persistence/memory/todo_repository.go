// Package memory provides an in-process TodoRepository used for local runs
// and tests.
package memory

import (
	"context"
	"sync"

	"todo-backend/domain/todo"
)

// TodoRepository keeps todos in a map. Entities are copied on the way in and
// out so callers cannot change stored state without calling Save.
type TodoRepository struct {
	mu    sync.RWMutex
	todos map[string]*todo.Todo
}

// NewTodoRepository creates an empty repository
func NewTodoRepository() *TodoRepository {
	return &TodoRepository{
		todos: make(map[string]*todo.Todo),
	}
}

func (r *TodoRepository) FindAll(ctx context.Context) ([]*todo.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*todo.Todo, 0, len(r.todos))
	for _, t := range r.todos {
		result = append(result, t.Clone())
	}
	return result, nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id string) (*todo.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.todos[id]
	if !ok {
		return nil, nil
	}
	return t.Clone(), nil
}

func (r *TodoRepository) Save(ctx context.Context, t *todo.Todo) (*todo.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.todos[t.ID()] = t.Clone()
	r.mu.Unlock()

	return t, nil
}

func (r *TodoRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.todos, id)
	r.mu.Unlock()

	return nil
}

func (r *TodoRepository) Exists(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.todos[id]
	return ok, nil
}

// Ping always succeeds
func (r *TodoRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Len returns the number of stored todos
func (r *TodoRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.todos)
}
