package usecases

import (
	"context"

	"todo-backend/application/ports"
	"todo-backend/domain/todo"
)

// GetAllTodos lists every stored todo
type GetAllTodos struct {
	repo ports.TodoRepository
}

// NewGetAllTodos creates the use case
func NewGetAllTodos(repo ports.TodoRepository) *GetAllTodos {
	return &GetAllTodos{repo: repo}
}

// Execute returns the repository's listing unchanged
func (uc *GetAllTodos) Execute(ctx context.Context) ([]*todo.Todo, error) {
	return uc.repo.FindAll(ctx)
}

// GetTodoByID fetches a single todo
type GetTodoByID struct {
	repo ports.TodoRepository
}

// NewGetTodoByID creates the use case
func NewGetTodoByID(repo ports.TodoRepository) *GetTodoByID {
	return &GetTodoByID{repo: repo}
}

// Execute returns nil with no error when the todo does not exist
func (uc *GetTodoByID) Execute(ctx context.Context, id string) (*todo.Todo, error) {
	return uc.repo.FindByID(ctx, id)
}
