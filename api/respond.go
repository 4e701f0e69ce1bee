// Package api provides the uniform response envelope used by every endpoint
// and helpers for writing it. Success and failure responses share one shape,
// so clients never have to guess whether a body is wrapped.
package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/Anse-dev/todo-list-app/apperror"
)

// Envelope is the response wrapper for the whole API surface:
// {statusCode, data, message, error}. Error is null on success and carries the
// failure detail otherwise.
type Envelope struct {
	StatusCode int     `json:"statusCode" example:"200"`
	Data       any     `json:"data"`
	Message    string  `json:"message" example:"Task found"`
	Error      *string `json:"error"`
}

// WriteSuccess writes data wrapped in the envelope with the given status and
// human-readable message.
func WriteSuccess(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, Envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
	})
}

// WriteError resolves err through the apperror taxonomy and writes the
// corresponding envelope. Errors that are not AppErrors become 500s; their
// underlying text is kept in the error field.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}

	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, appErr)
	}

	detail := appErr.Error()
	writeJSON(w, status, Envelope{
		StatusCode: status,
		Message:    appErr.Message,
		Error:      &detail,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Headers are already out; the most we can do is log.
		log.Printf("failed to encode response: %v", err)
	}
}
