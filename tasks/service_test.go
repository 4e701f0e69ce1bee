package tasks

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Anse-dev/todo-list-app/apperror"
	"github.com/Anse-dev/todo-list-app/models"
)

type fakeStore struct {
	findAll    func(ctx context.Context) ([]models.PopulatedTask, error)
	findByID   func(ctx context.Context, id primitive.ObjectID) (*models.PopulatedTask, error)
	findOne    func(ctx context.Context, filter bson.M) (*models.Task, error)
	insert     func(ctx context.Context, doc *models.Task) error
	updateByID func(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.PopulatedTask, error)
	deleteByID func(ctx context.Context, id primitive.ObjectID) (bool, error)
}

func (f *fakeStore) FindAll(ctx context.Context) ([]models.PopulatedTask, error) {
	return f.findAll(ctx)
}

func (f *fakeStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.PopulatedTask, error) {
	return f.findByID(ctx, id)
}

func (f *fakeStore) FindOne(ctx context.Context, filter bson.M) (*models.Task, error) {
	return f.findOne(ctx, filter)
}

func (f *fakeStore) Insert(ctx context.Context, doc *models.Task) error {
	return f.insert(ctx, doc)
}

func (f *fakeStore) UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.PopulatedTask, error) {
	return f.updateByID(ctx, id, fields)
}

func (f *fakeStore) DeleteByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return f.deleteByID(ctx, id)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(&fakeStore{})
	userID := primitive.NewObjectID().Hex()

	cases := []struct {
		name string
		req  CreateTaskRequest
	}{
		{"missing title", CreateTaskRequest{User: userID}},
		{"missing user", CreateTaskRequest{Title: "Write report"}},
		{"malformed user", CreateTaskRequest{Title: "Write report", User: "not-hex"}},
		{"bad status", CreateTaskRequest{Title: "Write report", User: userID, Status: "done"}},
		{"bad priority", CreateTaskRequest{Title: "Write report", User: userID, Priority: "urgent"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.req)
			if !apperror.IsValidationError(err) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestCreate_Defaults(t *testing.T) {
	var inserted *models.Task
	store := &fakeStore{
		insert: func(ctx context.Context, doc *models.Task) error {
			inserted = doc
			return nil
		},
	}
	svc := NewService(store)

	task, err := svc.Create(context.Background(), CreateTaskRequest{
		Title: "Write report",
		User:  primitive.NewObjectID().Hex(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if inserted == nil {
		t.Fatal("task should have been inserted")
	}
	if task.Status != models.StatusPending {
		t.Errorf("Status=%q, want pending default", task.Status)
	}
	if task.Priority != models.PriorityMedium {
		t.Errorf("Priority=%q, want medium default", task.Priority)
	}
	if task.List != nil {
		t.Error("list should stay unset when omitted")
	}
	if task.ID.IsZero() {
		t.Error("id should be assigned before insert")
	}
	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Error("timestamps should be assigned")
	}
}

func TestCreate_WithList(t *testing.T) {
	store := &fakeStore{
		insert: func(ctx context.Context, doc *models.Task) error { return nil },
	}
	svc := NewService(store)

	listID := primitive.NewObjectID().Hex()
	task, err := svc.Create(context.Background(), CreateTaskRequest{
		Title: "Write report",
		User:  primitive.NewObjectID().Hex(),
		List:  &listID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.List == nil || task.List.Hex() != listID {
		t.Fatalf("List=%v, want %s", task.List, listID)
	}

	bad := "not-hex"
	_, err = svc.Create(context.Background(), CreateTaskRequest{
		Title: "Write report",
		User:  primitive.NewObjectID().Hex(),
		List:  &bad,
	})
	if !apperror.IsValidationError(err) {
		t.Fatalf("expected ValidationError for malformed list id, got %v", err)
	}
}

func TestUpdate_FieldNormalization(t *testing.T) {
	var gotFields bson.M
	store := &fakeStore{
		updateByID: func(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.PopulatedTask, error) {
			gotFields = fields
			return &models.PopulatedTask{ID: id}, nil
		},
	}
	svc := NewService(store)
	userID := primitive.NewObjectID()

	_, err := svc.Update(context.Background(), primitive.NewObjectID(), map[string]any{
		"title":   "Renamed",
		"status":  "completed",
		"dueDate": "2026-09-01T12:00:00Z",
		"user":    userID.Hex(),
		"list":    nil,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if gotFields["title"] != "Renamed" {
		t.Errorf("title=%v", gotFields["title"])
	}
	if gotFields["status"] != "completed" {
		t.Errorf("status=%v", gotFields["status"])
	}
	due, ok := gotFields["dueDate"].(time.Time)
	if !ok || !due.Equal(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("dueDate=%v", gotFields["dueDate"])
	}
	if gotFields["user"] != userID {
		t.Errorf("user=%v, want parsed ObjectID", gotFields["user"])
	}
	if v, present := gotFields["list"]; !present || v != nil {
		t.Errorf("list=%v, want explicit null to detach", v)
	}
}

func TestUpdate_RejectsBadValues(t *testing.T) {
	svc := NewService(&fakeStore{})
	id := primitive.NewObjectID()

	cases := []struct {
		name   string
		fields map[string]any
	}{
		{"unknown field", map[string]any{"color": "red"}},
		{"bad status", map[string]any{"status": "done"}},
		{"bad priority", map[string]any{"priority": "urgent"}},
		{"bad dueDate", map[string]any{"dueDate": "tomorrow"}},
		{"numeric title", map[string]any{"title": 7}},
		{"malformed user id", map[string]any{"user": "zzz"}},
		{"null user", map[string]any{"user": nil}},
		{"malformed list id", map[string]any{"list": "zzz"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), id, tc.fields)
			if !apperror.IsValidationError(err) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestUpdate_NotFound(t *testing.T) {
	store := &fakeStore{
		updateByID: func(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.PopulatedTask, error) {
			return nil, mongo.ErrNoDocuments
		},
	}
	svc := NewService(store)

	_, err := svc.Update(context.Background(), primitive.NewObjectID(), map[string]any{"title": "x"})
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	store := &fakeStore{
		findByID: func(ctx context.Context, id primitive.ObjectID) (*models.PopulatedTask, error) {
			return nil, mongo.ErrNoDocuments
		},
	}
	svc := NewService(store)

	_, err := svc.Get(context.Background(), primitive.NewObjectID())
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestDelete_Missing(t *testing.T) {
	store := &fakeStore{
		deleteByID: func(ctx context.Context, id primitive.ObjectID) (bool, error) {
			return false, nil
		},
	}
	svc := NewService(store)

	err := svc.Delete(context.Background(), primitive.NewObjectID())
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
