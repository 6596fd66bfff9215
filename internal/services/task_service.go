package services

import (
	"context"
	"fmt"
	"log/slog"

	"task-tracker/internal/domain"
	"task-tracker/internal/errors"
	"task-tracker/internal/repository/sqlite"
	"task-tracker/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo          sqlite.Repository
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
	strictList    bool
	logger        *slog.Logger
}

// NewTaskService creates a new TaskService backed by repo
func NewTaskService(repo sqlite.Repository, opts Options) TaskService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &taskServiceImpl{
		repo:          repo,
		mapper:        domain.NewMapper(),
		taskValidator: validation.NewTaskValidator(),
		strictList:    opts.StrictList,
		logger:        logger,
	}
}

// CreateTask validates the payload and persists a new task
func (t *taskServiceImpl) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTitle(input.Title); err != nil {
		return nil, validation.ToAppError(err)
	}

	task := domain.NewTask(*input.Title, deref(input.Description), deref(input.Status))
	dbTask := t.mapper.Task.ToDatabase(task)
	if err := t.repo.CreateTask(ctx, &dbTask); err != nil {
		return nil, classify("create task", err)
	}

	created := t.mapper.Task.FromDatabase(dbTask)
	t.logger.DebugContext(ctx, "task created", slog.Int64("id", created.ID))
	return &created, nil
}

// ListTasks returns every stored task
func (t *taskServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	dbTasks, err := t.repo.ListTasks(ctx)
	if err != nil {
		return nil, classify("list tasks", err)
	}

	if len(dbTasks) == 0 && t.strictList {
		return nil, &errors.AppError{Kind: errors.KindNotFound, Message: "no tasks found", Op: "list tasks"}
	}

	return t.mapper.Task.FromDatabaseSlice(dbTasks), nil
}

// GetTask retrieves a task by its ID
func (t *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	dbTask, err := t.repo.GetTask(ctx, id)
	if err != nil {
		return nil, classify(fmt.Sprintf("get task %d", id), err)
	}

	task := t.mapper.Task.FromDatabase(*dbTask)
	return &task, nil
}

// UpdateTaskStatus replaces the status of an existing task and leaves every other field alone
func (t *taskServiceImpl) UpdateTaskStatus(ctx context.Context, id int64, status *string) (*domain.Task, error) {
	if err := t.taskValidator.ValidateStatus(status); err != nil {
		return nil, validation.ToAppError(err)
	}

	task, err := t.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	// The repository update is conditional, so a task deleted since the
	// lookup above still surfaces as not found.
	if err := t.repo.UpdateTaskStatus(ctx, id, *status); err != nil {
		return nil, classify(fmt.Sprintf("update task %d status", id), err)
	}

	updated := task.WithStatus(*status)
	t.logger.DebugContext(ctx, "task status updated",
		slog.Int64("id", id),
		slog.String("from", task.Status),
		slog.String("to", updated.Status),
	)
	return &updated, nil
}

// DeleteTask removes an existing task
func (t *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	if _, err := t.GetTask(ctx, id); err != nil {
		return err
	}

	if err := t.repo.DeleteTask(ctx, id); err != nil {
		return classify(fmt.Sprintf("delete task %d", id), err)
	}

	t.logger.DebugContext(ctx, "task deleted", slog.Int64("id", id))
	return nil
}

// classify annotates a classified repository error with op and wraps any
// other failure as an internal error.
func classify(op string, err error) error {
	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("%s: %w", op, err)
	}
	return errors.NewInternalError(op, err)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
