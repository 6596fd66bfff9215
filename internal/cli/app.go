package cli

import (
	"context"

	"task-tracker/internal/services"
)

// Command represents a CLI command handler
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// App bundles what the task commands need to run
type App struct {
	tasks   services.TaskService
	printer *Printer
	errors  *ErrorHandler
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(tasks services.TaskService, printer *Printer) *App {
	return &App{
		tasks:   tasks,
		printer: printer,
		errors:  NewErrorHandler(),
	}
}
