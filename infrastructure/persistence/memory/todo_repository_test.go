package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-backend/domain/todo/todotest"
)

func TestTodoRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewTodoRepository()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	item := todotest.NewTodoBuilder().WithID("a").WithDescription("two bottles").MustBuild()
	saved, err := repo.Save(ctx, item)
	require.NoError(t, err)
	assert.Same(t, item, saved)

	got, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, item, got)

	exists, err := repo.Exists(ctx, "a")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Delete(ctx, "a"))
	require.NoError(t, repo.Delete(ctx, "a"))

	got, err = repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)

	exists, err = repo.Exists(ctx, "a")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTodoRepository_StoredStateIsIsolated(t *testing.T) {
	ctx := context.Background()
	repo := NewTodoRepository()

	item := todotest.NewTodoBuilder().WithID("a").MustBuild()
	_, err := repo.Save(ctx, item)
	require.NoError(t, err)

	item.MarkCompleted(todotest.BaseTime)

	got, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.False(t, got.Completed())
}

func TestTodoRepository_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	repo := NewTodoRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			item := todotest.NewTodoBuilder().WithID(fmt.Sprintf("id-%d", i)).MustBuild()
			_, err := repo.Save(ctx, item)
			assert.NoError(t, err)
			_, err = repo.FindAll(ctx)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, repo.Len())
}

func TestTodoRepository_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTodoRepository().FindAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
