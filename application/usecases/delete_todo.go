package usecases

import (
	"context"

	"go.uber.org/zap"

	"todo-backend/application/ports"
)

// DeleteTodo removes a todo if it exists
type DeleteTodo struct {
	repo   ports.TodoRepository
	logger *zap.Logger
}

// NewDeleteTodo creates the use case
func NewDeleteTodo(repo ports.TodoRepository, opts ...Option) *DeleteTodo {
	o := buildOptions(opts)
	return &DeleteTodo{
		repo:   repo,
		logger: o.logger.Named("delete_todo"),
	}
}

// Execute reports whether a todo was deleted. Delete is not called when the
// todo does not exist.
func (uc *DeleteTodo) Execute(ctx context.Context, id string) (bool, error) {
	exists, err := uc.repo.Exists(ctx, id)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return false, err
	}

	uc.logger.Debug("Todo deleted", zap.String("id", id))
	return true, nil
}
