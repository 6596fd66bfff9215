package cli

import (
	"context"
	"strings"

	"task-tracker/internal/services"
	"task-tracker/internal/validation"
)

var taskValidator = validation.NewTaskValidator()

// CreateCommand handles the create command
type CreateCommand struct {
	app         *App
	description *string
	status      *string
}

// NewCreateCommand creates a new create command handler.
// Nil description or status means the flag was not given.
func NewCreateCommand(app *App, description, status *string) *CreateCommand {
	return &CreateCommand{app: app, description: description, status: status}
}

// Execute creates a task whose title is the joined arguments
func (c *CreateCommand) Execute(ctx context.Context, args []string) error {
	title := strings.Join(args, " ")
	task, err := c.app.tasks.CreateTask(ctx, services.CreateTaskInput{
		Title:       &title,
		Description: c.description,
		Status:      c.status,
	})
	if err != nil {
		return c.app.errors.Handle("create task", err)
	}
	return c.app.printer.Task(task)
}

// ListCommand handles the list command
type ListCommand struct {
	app *App
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute prints every task
func (c *ListCommand) Execute(ctx context.Context, _ []string) error {
	tasks, err := c.app.tasks.ListTasks(ctx)
	if err != nil {
		return c.app.errors.Handle("list tasks", err)
	}
	return c.app.printer.Tasks(tasks)
}

// GetCommand handles the get command
type GetCommand struct {
	app *App
}

// NewGetCommand creates a new get command handler
func NewGetCommand(app *App) *GetCommand {
	return &GetCommand{app: app}
}

// Execute prints the task named by args[0]
func (c *GetCommand) Execute(ctx context.Context, args []string) error {
	id, err := taskValidator.ParseTaskID(args[0])
	if err != nil {
		return c.app.errors.Handle("get task", err)
	}

	task, err := c.app.tasks.GetTask(ctx, id)
	if err != nil {
		return c.app.errors.Handle("get task", err)
	}
	return c.app.printer.Task(task)
}

// StatusCommand handles the status command
type StatusCommand struct {
	app *App
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{app: app}
}

// Execute sets the status of task args[0] to the remaining arguments
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	id, err := taskValidator.ParseTaskID(args[0])
	if err != nil {
		return c.app.errors.Handle("update task status", err)
	}

	status := strings.Join(args[1:], " ")
	task, err := c.app.tasks.UpdateTaskStatus(ctx, id, &status)
	if err != nil {
		return c.app.errors.Handle("update task status", err)
	}
	return c.app.printer.Task(task)
}

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute deletes the task named by args[0]
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	id, err := taskValidator.ParseTaskID(args[0])
	if err != nil {
		return c.app.errors.Handle("delete task", err)
	}

	if err := c.app.tasks.DeleteTask(ctx, id); err != nil {
		return c.app.errors.Handle("delete task", err)
	}
	return c.app.printer.Message("Deleted task %d", id)
}
