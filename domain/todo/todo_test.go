package todo_test

import (
	"strings"
	"testing"
	"time"

	"todo-backend/domain/todo"
	"todo-backend/domain/todo/todotest"
	pkgerrors "todo-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	now := todotest.BaseTime

	tests := []struct {
		name      string
		title     string
		wantTitle string
		wantErr   bool
	}{
		{name: "simple title", title: "Buy milk", wantTitle: "Buy milk"},
		{name: "surrounding whitespace is trimmed", title: "  Buy milk \n", wantTitle: "Buy milk"},
		{name: "exactly 200 characters", title: strings.Repeat("a", 200), wantTitle: strings.Repeat("a", 200)},
		{name: "200 multibyte characters", title: strings.Repeat("買", 200), wantTitle: strings.Repeat("買", 200)},
		{name: "200 characters plus padding", title: "  " + strings.Repeat("a", 200) + "  ", wantTitle: strings.Repeat("a", 200)},
		{name: "empty", title: "", wantErr: true},
		{name: "whitespace only", title: "   ", wantErr: true},
		{name: "201 characters", title: strings.Repeat("a", 201), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := todo.New("id-1", tt.title, nil, false, now, now)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, pkgerrors.IsValidation(err))
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, got.Title())
			assert.Equal(t, "id-1", got.ID())
			assert.False(t, got.Completed())
			assert.Nil(t, got.Description())
			assert.Equal(t, got.CreatedAt(), got.UpdatedAt())
		})
	}
}

func TestNew_Invariants(t *testing.T) {
	now := todotest.BaseTime

	t.Run("empty id is rejected", func(t *testing.T) {
		_, err := todo.New(" ", "title", nil, false, now, now)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("updated before created is rejected", func(t *testing.T) {
		_, err := todo.New("id", "title", nil, false, now, now.Add(-time.Second))
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("timestamps are normalized to UTC", func(t *testing.T) {
		tokyo := time.FixedZone("JST", 9*60*60)
		local := time.Date(2024, 1, 1, 21, 0, 0, 0, tokyo)

		got, err := todo.New("id", "title", nil, false, local, local)
		require.NoError(t, err)
		assert.Equal(t, time.UTC, got.CreatedAt().Location())
		assert.True(t, got.CreatedAt().Equal(now))
	})

	t.Run("description is copied", func(t *testing.T) {
		desc := "two bottles"
		got, err := todo.New("id", "title", &desc, false, now, now)
		require.NoError(t, err)

		desc = "changed"
		assert.Equal(t, "two bottles", *got.Description())

		*got.Description() = "mutated"
		assert.Equal(t, "two bottles", *got.Description())
	})
}

func TestTodo_Mutations(t *testing.T) {
	later := todotest.BaseTime.Add(time.Minute)

	t.Run("MarkCompleted and MarkIncomplete", func(t *testing.T) {
		item := todotest.NewTodoBuilder().MustBuild()

		item.MarkCompleted(later)
		assert.True(t, item.Completed())
		assert.Equal(t, later, item.UpdatedAt())

		item.MarkIncomplete(later.Add(time.Minute))
		assert.False(t, item.Completed())
		assert.Equal(t, later.Add(time.Minute), item.UpdatedAt())
	})

	t.Run("UpdateTitle success", func(t *testing.T) {
		item := todotest.NewTodoBuilder().MustBuild()

		require.NoError(t, item.UpdateTitle("  Buy bread ", later))
		assert.Equal(t, "Buy bread", item.Title())
		assert.Equal(t, later, item.UpdatedAt())
		assert.Equal(t, todotest.BaseTime, item.CreatedAt())
	})

	t.Run("UpdateTitle failure leaves the todo untouched", func(t *testing.T) {
		item := todotest.NewTodoBuilder().MustBuild()

		err := item.UpdateTitle("   ", later)
		assert.True(t, pkgerrors.IsValidation(err))
		assert.Equal(t, "Buy milk", item.Title())
		assert.Equal(t, todotest.BaseTime, item.UpdatedAt())

		err = item.UpdateTitle(strings.Repeat("x", 201), later)
		assert.True(t, pkgerrors.IsValidation(err))
		assert.Equal(t, "Buy milk", item.Title())
	})

	t.Run("UpdateDescription sets and clears", func(t *testing.T) {
		item := todotest.NewTodoBuilder().MustBuild()

		item.UpdateDescription(todotest.StrPtr("two bottles"), later)
		require.NotNil(t, item.Description())
		assert.Equal(t, "two bottles", *item.Description())

		item.UpdateDescription(nil, later.Add(time.Second))
		assert.Nil(t, item.Description())
		assert.Equal(t, later.Add(time.Second), item.UpdatedAt())
	})

	t.Run("updated_at always advances", func(t *testing.T) {
		item := todotest.NewTodoBuilder().MustBuild()

		item.MarkCompleted(todotest.BaseTime)
		assert.True(t, item.UpdatedAt().After(todotest.BaseTime))

		previous := item.UpdatedAt()
		item.MarkIncomplete(todotest.BaseTime.Add(-time.Hour))
		assert.True(t, item.UpdatedAt().After(previous))
		assert.False(t, item.UpdatedAt().Before(item.CreatedAt()))
	})
}

func TestTodo_Clone(t *testing.T) {
	original := todotest.NewTodoBuilder().WithDescription("two bottles").MustBuild()

	c := original.Clone()
	require.NotSame(t, original, c)
	assert.Equal(t, original, c)

	c.MarkCompleted(todotest.BaseTime.Add(time.Minute))
	c.UpdateDescription(nil, todotest.BaseTime.Add(time.Minute))

	assert.False(t, original.Completed())
	require.NotNil(t, original.Description())
	assert.Equal(t, "two bottles", *original.Description())
	assert.Equal(t, todotest.BaseTime, original.UpdatedAt())
}
