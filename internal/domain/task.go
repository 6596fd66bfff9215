package domain

// Task represents a task in the domain model.
// This is a pure domain model without database-specific concerns.
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// NewTask creates a new, unsaved Task.
func NewTask(title, description, status string) Task {
	return Task{
		Title:       title,
		Description: description,
		Status:      status,
	}
}

// WithStatus returns a copy of the task with only the status replaced.
func (t Task) WithStatus(status string) Task {
	t.Status = status
	return t
}
