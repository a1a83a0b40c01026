// Package mocks contains testify mocks for the application ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"todo-backend/domain/todo"
)

// MockTodoRepository is a mock implementation of ports.TodoRepository
type MockTodoRepository struct {
	mock.Mock
}

func (m *MockTodoRepository) FindAll(ctx context.Context) ([]*todo.Todo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*todo.Todo), args.Error(1)
}

func (m *MockTodoRepository) FindByID(ctx context.Context, id string) (*todo.Todo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*todo.Todo), args.Error(1)
}

// Save returns the saved entity when no return value is configured for it
func (m *MockTodoRepository) Save(ctx context.Context, t *todo.Todo) (*todo.Todo, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		if args.Error(1) != nil {
			return nil, args.Error(1)
		}
		return t, nil
	}
	return args.Get(0).(*todo.Todo), args.Error(1)
}

func (m *MockTodoRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTodoRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
