package sqlite

import "time"

// Task is a row of the tasks table.
type Task struct {
	ID          int64
	Title       string
	Description string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
