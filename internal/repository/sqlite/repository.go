package sqlite

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"task-tracker/internal/errors"
	"task-tracker/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// entityTask names the resource in not found errors.
const entityTask = "task"

// Repository defines the persistence capabilities the task service relies on.
// Update and delete are conditional on the row existing and report a not found
// error when it has vanished.
type Repository interface {
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id int64) (*Task, error)
	ListTasks(ctx context.Context) ([]*Task, error)
	UpdateTaskStatus(ctx context.Context, id int64, status string) error
	DeleteTask(ctx context.Context, id int64) error

	Close() error
}

// Options bounds how long individual statements may run.
type Options struct {
	QueryTimeout time.Duration
	WriteTimeout time.Duration
}

// DefaultOptions returns the timeouts used when no configuration is supplied.
func DefaultOptions() Options {
	return Options{
		QueryTimeout: 10 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
	now  func() time.Time
}

// New creates a new SQLite repository instance with default options
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, DefaultOptions())
}

// NewWithOptions opens (or creates) the database at dbPath and applies pending migrations.
// The caller is responsible for calling Close.
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// One connection serializes writers and keeps ":memory:" databases alive.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, opts: opts, now: time.Now}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateTask inserts task and sets its ID and timestamps
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) error {
	ctx, cancel := withTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	now := r.now().UTC().Truncate(time.Second)
	query := `
	INSERT INTO tasks (title, description, status, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		task.Title, task.Description, task.Status,
		FormatTimeForDB(now), FormatTimeForDB(now))
	if err != nil {
		return err
	}

	task.ID = id
	task.CreatedAt = now
	task.UpdatedAt = now
	return nil
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (*Task, error) {
	ctx, cancel := withTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	query := `
	SELECT id, title, description, status, created_at, updated_at
	FROM tasks
	WHERE id = ?`

	return QuerySingle(ctx, r.db, query, ScanTask, entityTask, strconv.FormatInt(id, 10), id)
}

// ListTasks retrieves all tasks in insertion order
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]*Task, error) {
	ctx, cancel := withTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	query := `
	SELECT id, title, description, status, created_at, updated_at
	FROM tasks
	ORDER BY id ASC`

	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks")
}

// UpdateTaskStatus sets the status of an existing task
func (r *SQLiteRepository) UpdateTaskStatus(ctx context.Context, id int64, status string) error {
	ctx, cancel := withTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	query := `UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?`
	now := r.now().UTC().Truncate(time.Second)
	return ExecuteWithRowsAffected(ctx, r.db, query, entityTask, strconv.FormatInt(id, 10), status, FormatTimeForDB(now), id)
}

// DeleteTask deletes a task by ID
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int64) error {
	ctx, cancel := withTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	query := `DELETE FROM tasks WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, entityTask, strconv.FormatInt(id, 10), id)
}
