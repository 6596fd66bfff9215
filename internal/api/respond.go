package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"task-tracker/internal/errors"
	"task-tracker/internal/logging"
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Message string `json:"message"`
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Message: msg})
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError translates a service error into a response. Server-side
// failures are logged and their details never sent to the client.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.ShouldLog(err) {
		logging.FromContext(r.Context(), h.logger()).ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("kind", errors.KindOf(err).String()),
			slog.Any("error", err),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeError(w, statusFor(err), errors.UserMessage(err))
}

// methodNotAllowed answers requests to a known path with an unsupported method.
func methodNotAllowed(allow string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Allow", allow)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "not found")
}
