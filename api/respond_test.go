package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Anse-dev/todo-list-app/apperror"
)

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding envelope: %v body=%s", err, w.Body.String())
	}
	return env
}

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, http.StatusCreated, map[string]string{"name": "Ana"}, "User created")

	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type=%q", ct)
	}

	env := decodeEnvelope(t, w)
	if env.StatusCode != http.StatusCreated {
		t.Errorf("statusCode=%d", env.StatusCode)
	}
	if env.Message != "User created" {
		t.Errorf("message=%q", env.Message)
	}
	if env.Error != nil {
		t.Errorf("error should be null on success, got %q", *env.Error)
	}
	if env.Data == nil {
		t.Error("data should be present")
	}
}

func TestWriteError_AppError(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/tasks/bad", nil)
	WriteError(w, r, apperror.NewValidationError("Invalid task ID", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.StatusCode != http.StatusBadRequest {
		t.Errorf("statusCode=%d", env.StatusCode)
	}
	if env.Message != "Invalid task ID" {
		t.Errorf("message=%q", env.Message)
	}
	if env.Error == nil || *env.Error != "Invalid task ID" {
		t.Errorf("error=%v", env.Error)
	}
}

func TestWriteError_PlainErrorBecomes500(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	WriteError(w, r, errors.New("something broke"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.Message != "an unexpected error occurred" {
		t.Errorf("message=%q", env.Message)
	}
	if env.Error == nil || *env.Error != "an unexpected error occurred: something broke" {
		t.Errorf("error=%v", env.Error)
	}
}

func TestWriteError_KeepsUnderlyingDetail(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	WriteError(w, r, apperror.NewDatabaseError("Error fetching users", errors.New("server selection timeout")))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.Error == nil || *env.Error != "Error fetching users: server selection timeout" {
		t.Errorf("error=%v", env.Error)
	}
}
