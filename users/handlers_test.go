package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Anse-dev/todo-list-app/api"
	"github.com/Anse-dev/todo-list-app/models"
)

func newTestRouter(store Store) chi.Router {
	r := chi.NewRouter()
	NewHandlers(NewService(store)).RegisterRoutes(r)
	return r
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) api.Envelope {
	t.Helper()
	var env api.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding envelope: %v body=%s", err, w.Body.String())
	}
	return env
}

func TestHandleList_EmptyCollection(t *testing.T) {
	store := &fakeStore{
		findAll: func(ctx context.Context) ([]models.User, error) {
			return []models.User{}, nil
		},
	}
	r := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.Message != "No users found" {
		t.Errorf("message=%q", env.Message)
	}
}

func TestHandleCreate_Success(t *testing.T) {
	store := noUserStore()
	r := newTestRouter(store)

	body := `{"name":"Ana","email":"ana@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.Message != "User created" {
		t.Errorf("message=%q", env.Message)
	}
	// The password must never appear in a response.
	if strings.Contains(w.Body.String(), "secret123") || strings.Contains(w.Body.String(), `"password"`) {
		t.Fatalf("password leaked into response: %s", w.Body.String())
	}
}

func TestHandleCreate_InvalidBody(t *testing.T) {
	r := newTestRouter(&fakeStore{})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestHandleGet_InvalidIDBeforeStore(t *testing.T) {
	// No function fields set: any store call would panic.
	r := newTestRouter(&fakeStore{})

	req := httptest.NewRequest(http.MethodGet, "/not-a-hex-id", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.Message != "Invalid user ID" {
		t.Errorf("message=%q", env.Message)
	}
}

func TestHandleGet_NotFound(t *testing.T) {
	store := &fakeStore{
		findByID: func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
			return nil, mongo.ErrNoDocuments
		},
	}
	r := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/"+primitive.NewObjectID().Hex(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestHandleUpdate_EmptyBodyRejected(t *testing.T) {
	r := newTestRouter(&fakeStore{})

	req := httptest.NewRequest(http.MethodPatch, "/"+primitive.NewObjectID().Hex(), strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.Message != "No fields provided for update" {
		t.Errorf("message=%q", env.Message)
	}
}

func TestHandleUpdate_UnknownField(t *testing.T) {
	r := newTestRouter(&fakeStore{})

	req := httptest.NewRequest(http.MethodPatch, "/"+primitive.NewObjectID().Hex(),
		strings.NewReader(`{"nickname":"A"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestHandleUpdate_MergesFields(t *testing.T) {
	var gotFields bson.M
	id := primitive.NewObjectID()
	store := &fakeStore{
		updateByID: func(ctx context.Context, gotID primitive.ObjectID, fields bson.M) (*models.User, error) {
			if gotID != id {
				t.Fatalf("id=%s, want %s", gotID.Hex(), id.Hex())
			}
			gotFields = fields
			return &models.User{ID: id, Name: "Renamed", Email: "ana@example.com"}, nil
		},
	}
	r := newTestRouter(store)

	req := httptest.NewRequest(http.MethodPatch, "/"+id.Hex(), strings.NewReader(`{"name":"Renamed"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if len(gotFields) != 1 || gotFields["name"] != "Renamed" {
		t.Fatalf("fields=%v, want only the supplied field", gotFields)
	}
}

func TestHandleDelete_Success(t *testing.T) {
	store := &fakeStore{
		deleteByID: func(ctx context.Context, id primitive.ObjectID) (bool, error) {
			return true, nil
		},
	}
	r := newTestRouter(store)

	req := httptest.NewRequest(http.MethodDelete, "/"+primitive.NewObjectID().Hex(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.Message != "User deleted" {
		t.Errorf("message=%q", env.Message)
	}
}

func TestHandleDelete_Missing(t *testing.T) {
	store := &fakeStore{
		deleteByID: func(ctx context.Context, id primitive.ObjectID) (bool, error) {
			return false, nil
		},
	}
	r := newTestRouter(store)

	req := httptest.NewRequest(http.MethodDelete, "/"+primitive.NewObjectID().Hex(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}
