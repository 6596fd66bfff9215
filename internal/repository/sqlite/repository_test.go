package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"task-tracker/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestCreateTask(t *testing.T) {
	repo := setupTestRepo(t)
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	task := &Task{Title: "Write report", Description: "Q3", Status: "pending"}
	require.NoError(t, repo.CreateTask(context.Background(), task))

	assert.Greater(t, task.ID, int64(0))
	assert.Equal(t, fixed, task.CreatedAt)
	assert.Equal(t, fixed, task.UpdatedAt)

	got, err := repo.GetTask(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, got)
}

func TestCreateTask_AssignsIncreasingIDs(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	first := &Task{Title: "first"}
	second := &Task{Title: "second"}
	require.NoError(t, repo.CreateTask(ctx, first))
	require.NoError(t, repo.CreateTask(ctx, second))

	assert.Equal(t, first.ID+1, second.ID)
}

func TestCreateTask_IDsNotReusedAfterDelete(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	first := &Task{Title: "first"}
	require.NoError(t, repo.CreateTask(ctx, first))
	require.NoError(t, repo.DeleteTask(ctx, first.ID))

	second := &Task{Title: "second"}
	require.NoError(t, repo.CreateTask(ctx, second))
	assert.NotEqual(t, first.ID, second.ID)
}

func TestGetTask_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	got, err := repo.GetTask(context.Background(), 999)
	assert.Nil(t, got)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, "task not found", errors.UserMessage(err))
}

func TestListTasks(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	empty, err := repo.ListTasks(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, title := range []string{"b", "a", "c"} {
		require.NoError(t, repo.CreateTask(ctx, &Task{Title: title, Status: "pending"}))
	}

	tasks, err := repo.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "b", tasks[0].Title)
	assert.Equal(t, "a", tasks[1].Title)
	assert.Equal(t, "c", tasks[2].Title)
}

func TestUpdateTaskStatus(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	repo.now = func() time.Time { return created }
	task := &Task{Title: "Write report", Description: "Q3", Status: "pending"}
	require.NoError(t, repo.CreateTask(ctx, task))

	repo.now = func() time.Time { return updated }
	require.NoError(t, repo.UpdateTaskStatus(ctx, task.ID, "done"))

	got, err := repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "done", got.Status)
	assert.Equal(t, "Write report", got.Title)
	assert.Equal(t, "Q3", got.Description)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, updated, got.UpdatedAt)
}

func TestUpdateTaskStatus_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	err := repo.UpdateTaskStatus(context.Background(), 42, "done")
	assert.True(t, errors.IsNotFound(err))
}

func TestDeleteTask(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	task := &Task{Title: "to delete"}
	require.NoError(t, repo.CreateTask(ctx, task))
	require.NoError(t, repo.DeleteTask(ctx, task.ID))

	_, err := repo.GetTask(ctx, task.ID)
	assert.True(t, errors.IsNotFound(err))

	err = repo.DeleteTask(ctx, task.ID)
	assert.True(t, errors.IsNotFound(err), "second delete should report not found")
}

func TestRepository_FilePersistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tasks.db")
	ctx := context.Background()

	repo, err := New(dbPath)
	require.NoError(t, err)
	task := &Task{Title: "survives restart", Status: "pending"}
	require.NoError(t, repo.CreateTask(ctx, task))
	require.NoError(t, repo.Close())

	reopened, err := NewWithOptions(dbPath, Options{QueryTimeout: time.Second, WriteTimeout: time.Second})
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "survives restart", got.Title)
}

func TestRepository_CanceledContext(t *testing.T) {
	repo := setupTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.CreateTask(ctx, &Task{Title: "never stored"})
	require.Error(t, err)
	assert.False(t, errors.IsNotFound(err))
}
