package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	task := NewTask("Write report", "Q3", "pending")

	assert.Equal(t, Task{Title: "Write report", Description: "Q3", Status: "pending"}, task)
}

func TestTask_WithStatus(t *testing.T) {
	original := Task{ID: 1, Title: "Write report", Description: "Q3", Status: "pending"}

	updated := original.WithStatus("done")

	assert.Equal(t, Task{ID: 1, Title: "Write report", Description: "Q3", Status: "done"}, updated)
	assert.Equal(t, "pending", original.Status, "receiver must not be modified")
}

func TestTask_JSON(t *testing.T) {
	task := Task{ID: 1, Title: "Write report", Description: "Q3", Status: "pending"}

	data, err := json.Marshal(task)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"title":"Write report","description":"Q3","status":"pending"}`, string(data))
}
