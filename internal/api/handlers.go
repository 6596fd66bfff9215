// Package api exposes the task service over HTTP.
package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"task-tracker/internal/errors"
	"task-tracker/internal/services"
	"task-tracker/internal/validation"
)

// Handlers bundles all REST API handler dependencies.
type Handlers struct {
	Tasks   services.TaskService
	Logger  *slog.Logger
	Version string
}

var taskValidator = validation.NewTaskValidator()

// RegisterRoutes registers all API routes on the given mux.
func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/tasks", h.createTask)
	mux.HandleFunc("GET /api/tasks", h.listTasks)
	mux.HandleFunc("GET /api/tasks/{id}", h.getTask)
	mux.HandleFunc("PUT /api/tasks/{id}", h.updateTaskStatus)
	mux.HandleFunc("DELETE /api/tasks/{id}", h.deleteTask)

	mux.HandleFunc("GET /healthz", h.health)

	// Method-less patterns lose to the ones above, so they only see
	// unsupported methods. "/" catches every other path.
	mux.HandleFunc("/api/tasks", methodNotAllowed("GET, POST"))
	mux.HandleFunc("/api/tasks/{id}", methodNotAllowed("GET, PUT, DELETE"))
	mux.HandleFunc("/healthz", methodNotAllowed("GET"))
	mux.HandleFunc("/", notFound)
}

func (h *Handlers) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}

// taskID parses the {id} path segment.
func taskID(r *http.Request) (int64, error) {
	id, err := taskValidator.ParseTaskID(r.PathValue("id"))
	if err != nil {
		return 0, validation.ToAppError(err)
	}
	return id, nil
}

// maxBodyBytes bounds every request body.
const maxBodyBytes = 1 << 20

// decode reads exactly one JSON value from the request body into v.
// Oversized bodies and trailing data are rejected.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errors.NewValidationError("invalid request body", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.NewValidationError("invalid request body", err)
	}
	return nil
}

// --- Task handlers ---

func (h *Handlers) createTask(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTaskInput
	if err := decode(w, r, &input); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	task, err := h.Tasks.CreateTask(r.Context(), input)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *Handlers) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Tasks.ListTasks(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *Handlers) getTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	task, err := h.Tasks.GetTask(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *Handlers) updateTaskStatus(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	var input services.UpdateStatusInput
	if err := decode(w, r, &input); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	task, err := h.Tasks.UpdateTaskStatus(r.Context(), id, input.Status)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *Handlers) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	if err := h.Tasks.DeleteTask(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Health ---

func (h *Handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.Version,
	})
}
