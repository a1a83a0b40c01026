// Package todotest provides fixtures for tests that need Todo values.
package todotest

import (
	"time"

	"todo-backend/domain/todo"

	"github.com/google/uuid"
)

// BaseTime is the default creation time used by the builder.
var BaseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// TodoBuilder helps create test todos with default values
type TodoBuilder struct {
	id          string
	title       string
	description *string
	completed   bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewTodoBuilder() *TodoBuilder {
	return &TodoBuilder{
		id:        uuid.NewString(),
		title:     "Buy milk",
		createdAt: BaseTime,
		updatedAt: BaseTime,
	}
}

func (b *TodoBuilder) WithID(id string) *TodoBuilder {
	b.id = id
	return b
}

func (b *TodoBuilder) WithTitle(title string) *TodoBuilder {
	b.title = title
	return b
}

func (b *TodoBuilder) WithDescription(description string) *TodoBuilder {
	b.description = &description
	return b
}

func (b *TodoBuilder) WithCompleted(completed bool) *TodoBuilder {
	b.completed = completed
	return b
}

func (b *TodoBuilder) WithTimestamps(createdAt, updatedAt time.Time) *TodoBuilder {
	b.createdAt = createdAt
	b.updatedAt = updatedAt
	return b
}

func (b *TodoBuilder) Build() (*todo.Todo, error) {
	return todo.New(b.id, b.title, b.description, b.completed, b.createdAt, b.updatedAt)
}

// MustBuild builds the todo and panics on invalid builder state
func (b *TodoBuilder) MustBuild() *todo.Todo {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

// StrPtr returns a pointer to s
func StrPtr(s string) *string {
	return &s
}
