package usecases

import (
	"context"

	"go.uber.org/zap"

	"todo-backend/application/ports"
	"todo-backend/domain/todo"
	"todo-backend/pkg/optional"
	"todo-backend/pkg/utils"
)

// UpdateTodoInput is a partial update. Unset fields are left unchanged.
// Description distinguishes "not supplied" from "supplied as null", which
// clears the stored description.
type UpdateTodoInput struct {
	ID          string
	Title       optional.Field[string]
	Description optional.Field[*string]
	Completed   optional.Field[bool]
}

// UpdateTodo applies a partial update to an existing todo
type UpdateTodo struct {
	repo   ports.TodoRepository
	clock  utils.Clock
	logger *zap.Logger
}

// NewUpdateTodo creates the use case
func NewUpdateTodo(repo ports.TodoRepository, opts ...Option) *UpdateTodo {
	o := buildOptions(opts)
	return &UpdateTodo{
		repo:   repo,
		clock:  o.clock,
		logger: o.logger.Named("update_todo"),
	}
}

// Execute loads the todo, applies title, description and completed in that
// order and saves the result. It returns nil with no error when the todo does
// not exist. An invalid title aborts the update before any write.
func (uc *UpdateTodo) Execute(ctx context.Context, input UpdateTodoInput) (*todo.Todo, error) {
	t, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}

	now := uc.clock.Now()

	if title, ok := input.Title.Get(); ok {
		if err := t.UpdateTitle(title, now); err != nil {
			return nil, err
		}
	}

	if description, ok := input.Description.Get(); ok {
		t.UpdateDescription(description, now)
	}

	if completed, ok := input.Completed.Get(); ok {
		if completed {
			t.MarkCompleted(now)
		} else {
			t.MarkIncomplete(now)
		}
	}

	saved, err := uc.repo.Save(ctx, t)
	if err != nil {
		return nil, err
	}

	uc.logger.Debug("Todo updated", zap.String("id", saved.ID()))
	return saved, nil
}
