package services

import (
	"context"
	"log/slog"

	"task-tracker/internal/domain"
)

// CreateTaskInput carries a creation payload.
// Nil fields were absent from the request.
type CreateTaskInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// UpdateStatusInput carries a status update payload.
type UpdateStatusInput struct {
	Status *string `json:"status"`
}

// TaskService handles validation and persistence of tasks
type TaskService interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	ListTasks(ctx context.Context) ([]*domain.Task, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	UpdateTaskStatus(ctx context.Context, id int64, status *string) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// Options tune TaskService behaviour.
type Options struct {
	// StrictList reports an empty task collection as a not found error
	// instead of an empty result.
	StrictList bool

	Logger *slog.Logger
}
