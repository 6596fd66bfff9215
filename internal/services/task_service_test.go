package services

import (
	"context"
	stderrors "errors"
	"testing"

	"task-tracker/internal/domain"
	"task-tracker/internal/errors"
	"task-tracker/internal/repository/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func setupTaskService(t *testing.T, opts Options) (TaskService, *sqlite.SQLiteRepository) {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return NewTaskService(repo, opts), repo
}

func seedTask(t *testing.T, service TaskService, title, description, status string) *domain.Task {
	t.Helper()
	task, err := service.CreateTask(context.Background(), CreateTaskInput{
		Title:       strPtr(title),
		Description: strPtr(description),
		Status:      strPtr(status),
	})
	require.NoError(t, err)
	return task
}

func assertErrorKind(t *testing.T, err error, kind errors.Kind) {
	t.Helper()
	require.Error(t, err)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, kind, appErr.Kind, "got %v", err)
}

func TestTaskService_CreateTask(t *testing.T) {
	tests := []struct {
		name           string
		input          CreateTaskInput
		expected       domain.Task
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name: "should create task with all fields",
			input: CreateTaskInput{
				Title:       strPtr("Write report"),
				Description: strPtr("Q3"),
				Status:      strPtr("pending"),
			},
			expected: domain.Task{Title: "Write report", Description: "Q3", Status: "pending"},
		},
		{
			name:     "should create task with only a title",
			input:    CreateTaskInput{Title: strPtr("T")},
			expected: domain.Task{Title: "T"},
		},
		{
			name: "should keep title whitespace as given",
			input: CreateTaskInput{
				Title:  strPtr("  padded  "),
				Status: strPtr(""),
			},
			expected: domain.Task{Title: "  padded  "},
		},
		{
			name:  "should return validation error for absent title",
			input: CreateTaskInput{Description: strPtr("no title")},
			errorAssertion: func(t *testing.T, err error) {
				assertErrorKind(t, err, errors.KindValidation)
				assert.Equal(t, "title is required", errors.UserMessage(err))
			},
		},
		{
			name:  "should return validation error for empty title",
			input: CreateTaskInput{Title: strPtr("")},
			errorAssertion: func(t *testing.T, err error) {
				assertErrorKind(t, err, errors.KindValidation)
			},
		},
		{
			name:  "should return validation error for whitespace-only title",
			input: CreateTaskInput{Title: strPtr(" \t ")},
			errorAssertion: func(t *testing.T, err error) {
				assertErrorKind(t, err, errors.KindValidation)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			service, repo := setupTaskService(t, Options{})
			ctx := context.Background()

			// Act
			result, err := service.CreateTask(ctx, tt.input)

			// Assert
			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				assert.Nil(t, result)

				stored, listErr := repo.ListTasks(ctx)
				require.NoError(t, listErr)
				assert.Empty(t, stored, "a rejected task must not be persisted")
				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Greater(t, result.ID, int64(0))
			tt.expected.ID = result.ID
			assert.Equal(t, tt.expected, *result)

			fetched, err := service.GetTask(ctx, result.ID)
			require.NoError(t, err)
			assert.Equal(t, *result, *fetched, "id must be stable on subsequent reads")
		})
	}
}

func TestTaskService_ListTasks(t *testing.T) {
	t.Run("should return empty slice when no tasks exist", func(t *testing.T) {
		service, _ := setupTaskService(t, Options{})

		tasks, err := service.ListTasks(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	t.Run("should return not found in strict mode when empty", func(t *testing.T) {
		service, _ := setupTaskService(t, Options{StrictList: true})

		tasks, err := service.ListTasks(context.Background())

		assert.Nil(t, tasks)
		assertErrorKind(t, err, errors.KindNotFound)
		assert.Equal(t, "no tasks found", errors.UserMessage(err))
	})

	t.Run("should return all tasks in creation order", func(t *testing.T) {
		for _, strict := range []bool{false, true} {
			service, _ := setupTaskService(t, Options{StrictList: strict})
			first := seedTask(t, service, "first", "", "pending")
			second := seedTask(t, service, "second", "d", "done")

			tasks, err := service.ListTasks(context.Background())

			require.NoError(t, err)
			require.Len(t, tasks, 2)
			assert.Equal(t, first, tasks[0])
			assert.Equal(t, second, tasks[1])
		}
	})
}

func TestTaskService_GetTask(t *testing.T) {
	service, _ := setupTaskService(t, Options{})
	ctx := context.Background()
	created := seedTask(t, service, "Write report", "Q3", "pending")

	tests := []struct {
		name    string
		id      int64
		wantErr bool
	}{
		{"should return existing task", created.ID, false},
		{"should return not found for unknown id", 999, true},
		{"should return not found for zero id", 0, true},
		{"should return not found for negative id", -5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := service.GetTask(ctx, tt.id)

			if tt.wantErr {
				assertErrorKind(t, err, errors.KindNotFound)
				assert.Equal(t, "task not found", errors.UserMessage(err))
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, created, result)
		})
	}
}

func TestTaskService_UpdateTaskStatus(t *testing.T) {
	tests := []struct {
		name           string
		useExisting    bool
		status         *string
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:        "should change only the status",
			useExisting: true,
			status:      strPtr("done"),
		},
		{
			name:        "should accept free-form status",
			useExisting: true,
			status:      strPtr("blocked on review"),
		},
		{
			name:        "should reject absent status",
			useExisting: true,
			status:      nil,
			errorAssertion: func(t *testing.T, err error) {
				assertErrorKind(t, err, errors.KindValidation)
				assert.Equal(t, "status must not be blank", errors.UserMessage(err))
			},
		},
		{
			name:        "should reject blank status",
			useExisting: true,
			status:      strPtr("   "),
			errorAssertion: func(t *testing.T, err error) {
				assertErrorKind(t, err, errors.KindValidation)
			},
		},
		{
			name:   "should return not found for unknown task",
			status: strPtr("done"),
			errorAssertion: func(t *testing.T, err error) {
				assertErrorKind(t, err, errors.KindNotFound)
			},
		},
		{
			name:   "should validate before looking up the task",
			status: strPtr(""),
			errorAssertion: func(t *testing.T, err error) {
				assertErrorKind(t, err, errors.KindValidation)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			service, _ := setupTaskService(t, Options{})
			ctx := context.Background()
			original := seedTask(t, service, "Write report", "Q3", "pending")
			id := int64(999)
			if tt.useExisting {
				id = original.ID
			}

			// Act
			result, err := service.UpdateTaskStatus(ctx, id, tt.status)

			// Assert
			stored, getErr := service.GetTask(ctx, original.ID)
			require.NoError(t, getErr)

			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				assert.Nil(t, result)
				assert.Equal(t, original, stored, "stored task must be unmodified")
				return
			}

			require.NoError(t, err)
			expected := original.WithStatus(*tt.status)
			assert.Equal(t, expected, *result)
			assert.Equal(t, expected, *stored)
		})
	}
}

func TestTaskService_DeleteTask(t *testing.T) {
	service, _ := setupTaskService(t, Options{})
	ctx := context.Background()
	keep := seedTask(t, service, "keep", "", "pending")
	doomed := seedTask(t, service, "doomed", "", "pending")

	require.NoError(t, service.DeleteTask(ctx, doomed.ID))

	_, err := service.GetTask(ctx, doomed.ID)
	assertErrorKind(t, err, errors.KindNotFound)

	err = service.DeleteTask(ctx, doomed.ID)
	assertErrorKind(t, err, errors.KindNotFound)

	err = service.DeleteTask(ctx, 12345)
	assertErrorKind(t, err, errors.KindNotFound)

	remaining, err := service.ListTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*domain.Task{keep}, remaining)
}

func TestTaskService_WorkedExample(t *testing.T) {
	service, _ := setupTaskService(t, Options{})
	ctx := context.Background()

	created, err := service.CreateTask(ctx, CreateTaskInput{
		Title:       strPtr("Write report"),
		Description: strPtr("Q3"),
		Status:      strPtr("pending"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.Task{ID: 1, Title: "Write report", Description: "Q3", Status: "pending"}, *created)

	updated, err := service.UpdateTaskStatus(ctx, 1, strPtr("done"))
	require.NoError(t, err)
	assert.Equal(t, domain.Task{ID: 1, Title: "Write report", Description: "Q3", Status: "done"}, *updated)

	require.NoError(t, service.DeleteTask(ctx, 1))
	_, err = service.GetTask(ctx, 1)
	assertErrorKind(t, err, errors.KindNotFound)
}

// racingRepository simulates a task vanishing between lookup and write.
type racingRepository struct {
	sqlite.Repository
}

func (r *racingRepository) UpdateTaskStatus(ctx context.Context, id int64, status string) error {
	if err := r.Repository.DeleteTask(ctx, id); err != nil {
		return err
	}
	return r.Repository.UpdateTaskStatus(ctx, id, status)
}

func (r *racingRepository) DeleteTask(ctx context.Context, id int64) error {
	if err := r.Repository.DeleteTask(ctx, id); err != nil {
		return err
	}
	return r.Repository.DeleteTask(ctx, id)
}

func TestTaskService_ConcurrentRemoval(t *testing.T) {
	inner, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { inner.Close() })
	service := NewTaskService(&racingRepository{Repository: inner}, Options{})
	ctx := context.Background()

	first := seedTask(t, service, "first", "", "pending")
	_, err = service.UpdateTaskStatus(ctx, first.ID, strPtr("done"))
	assertErrorKind(t, err, errors.KindNotFound)

	second := seedTask(t, service, "second", "", "pending")
	err = service.DeleteTask(ctx, second.ID)
	assertErrorKind(t, err, errors.KindNotFound)
}

// failingRepository returns a database error from every call.
type failingRepository struct{}

var errDiskFull = stderrors.New("disk full")

func (failingRepository) CreateTask(context.Context, *sqlite.Task) error {
	return errors.NewDatabaseError("insert task", errDiskFull)
}
func (failingRepository) GetTask(context.Context, int64) (*sqlite.Task, error) {
	return nil, errors.NewDatabaseError("get task", errDiskFull)
}
func (failingRepository) ListTasks(context.Context) ([]*sqlite.Task, error) {
	return nil, errors.NewDatabaseError("list tasks", errDiskFull)
}
func (failingRepository) UpdateTaskStatus(context.Context, int64, string) error {
	return errors.NewDatabaseError("update task", errDiskFull)
}
func (failingRepository) DeleteTask(context.Context, int64) error {
	return errors.NewDatabaseError("delete task", errDiskFull)
}
func (failingRepository) Close() error { return nil }

func TestTaskService_PropagatesRepositoryFailures(t *testing.T) {
	service := NewTaskService(failingRepository{}, Options{})
	ctx := context.Background()

	_, err := service.CreateTask(ctx, CreateTaskInput{Title: strPtr("x")})
	assertErrorKind(t, err, errors.KindDatabase)
	assert.ErrorIs(t, err, errDiskFull)

	_, err = service.ListTasks(ctx)
	assertErrorKind(t, err, errors.KindDatabase)

	_, err = service.GetTask(ctx, 1)
	assertErrorKind(t, err, errors.KindDatabase)

	_, err = service.UpdateTaskStatus(ctx, 1, strPtr("done"))
	assertErrorKind(t, err, errors.KindDatabase)

	err = service.DeleteTask(ctx, 1)
	assertErrorKind(t, err, errors.KindDatabase)
}

// brokenRepository fails with unclassified errors, as a misbehaving driver would.
type brokenRepository struct{ failingRepository }

var errDriver = stderrors.New("driver: bad connection")

func (brokenRepository) CreateTask(context.Context, *sqlite.Task) error { return errDriver }
func (brokenRepository) GetTask(context.Context, int64) (*sqlite.Task, error) {
	return nil, errDriver
}
func (brokenRepository) ListTasks(context.Context) ([]*sqlite.Task, error) { return nil, errDriver }

func TestTaskService_WrapsUnclassifiedFailuresAsInternal(t *testing.T) {
	service := NewTaskService(brokenRepository{}, Options{})
	ctx := context.Background()

	_, err := service.CreateTask(ctx, CreateTaskInput{Title: strPtr("x")})
	assertErrorKind(t, err, errors.KindInternal)
	assert.ErrorIs(t, err, errDriver)
	assert.Equal(t, "An unexpected error occurred. Please try again.", errors.UserMessage(err))

	_, err = service.ListTasks(ctx)
	assertErrorKind(t, err, errors.KindInternal)

	_, err = service.GetTask(ctx, 1)
	assertErrorKind(t, err, errors.KindInternal)

	err = service.DeleteTask(ctx, 1)
	assertErrorKind(t, err, errors.KindInternal)
}
