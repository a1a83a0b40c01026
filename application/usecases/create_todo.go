package usecases

import (
	"context"

	"go.uber.org/zap"

	"todo-backend/application/ports"
	"todo-backend/domain/todo"
	"todo-backend/pkg/utils"
)

// CreateTodoInput carries the fields a client may set on a new todo
type CreateTodoInput struct {
	Title       string
	Description *string
}

// CreateTodo assigns an id and timestamps to a new todo and stores it
type CreateTodo struct {
	repo   ports.TodoRepository
	clock  utils.Clock
	nextID IDGenerator
	logger *zap.Logger
}

// NewCreateTodo creates the use case
func NewCreateTodo(repo ports.TodoRepository, opts ...Option) *CreateTodo {
	o := buildOptions(opts)
	return &CreateTodo{
		repo:   repo,
		clock:  o.clock,
		nextID: o.nextID,
		logger: o.logger.Named("create_todo"),
	}
}

// Execute validates the input, builds the entity and saves it. A validation
// error is returned before anything is written.
func (uc *CreateTodo) Execute(ctx context.Context, input CreateTodoInput) (*todo.Todo, error) {
	now := uc.clock.Now()

	t, err := todo.New(uc.nextID(), input.Title, input.Description, false, now, now)
	if err != nil {
		return nil, err
	}

	saved, err := uc.repo.Save(ctx, t)
	if err != nil {
		return nil, err
	}

	uc.logger.Debug("Todo created", zap.String("id", saved.ID()))
	return saved, nil
}
