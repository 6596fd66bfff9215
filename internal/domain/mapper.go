package domain

import (
	"task-tracker/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task.
// Timestamps are owned by the repository and left zero.
func (m *TaskMapper) ToDatabase(domainTask Task) sqlite.Task {
	return sqlite.Task{
		ID:          domainTask.ID,
		Title:       domainTask.Title,
		Description: domainTask.Description,
		Status:      domainTask.Status,
	}
}

// FromDatabase converts a database Task to a domain Task.
func (m *TaskMapper) FromDatabase(dbTask sqlite.Task) Task {
	return Task{
		ID:          dbTask.ID,
		Title:       dbTask.Title,
		Description: dbTask.Description,
		Status:      dbTask.Status,
	}
}

// FromDatabaseSlice converts database Tasks to domain Task pointers.
// The result is never nil.
func (m *TaskMapper) FromDatabaseSlice(dbTasks []*sqlite.Task) []*Task {
	domainTasks := make([]*Task, 0, len(dbTasks))
	for _, dbTask := range dbTasks {
		task := m.FromDatabase(*dbTask)
		domainTasks = append(domainTasks, &task)
	}
	return domainTasks
}

// Mapper provides access to all domain mappers.
type Mapper struct {
	Task *TaskMapper
}

// NewMapper creates a new Mapper instance with all mappers initialized.
func NewMapper() *Mapper {
	return &Mapper{
		Task: NewTaskMapper(),
	}
}
