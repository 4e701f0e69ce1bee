package comments

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Anse-dev/todo-list-app/apperror"
	"github.com/Anse-dev/todo-list-app/models"
)

type fakeStore struct {
	findAll    func(ctx context.Context) ([]models.PopulatedComment, error)
	findByID   func(ctx context.Context, id primitive.ObjectID) (*models.PopulatedComment, error)
	findOne    func(ctx context.Context, filter bson.M) (*models.Comment, error)
	insert     func(ctx context.Context, doc *models.Comment) error
	updateByID func(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.PopulatedComment, error)
	deleteByID func(ctx context.Context, id primitive.ObjectID) (bool, error)
}

func (f *fakeStore) FindAll(ctx context.Context) ([]models.PopulatedComment, error) {
	return f.findAll(ctx)
}

func (f *fakeStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.PopulatedComment, error) {
	return f.findByID(ctx, id)
}

func (f *fakeStore) FindOne(ctx context.Context, filter bson.M) (*models.Comment, error) {
	return f.findOne(ctx, filter)
}

func (f *fakeStore) Insert(ctx context.Context, doc *models.Comment) error {
	return f.insert(ctx, doc)
}

func (f *fakeStore) UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.PopulatedComment, error) {
	return f.updateByID(ctx, id, fields)
}

func (f *fakeStore) DeleteByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return f.deleteByID(ctx, id)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(&fakeStore{})
	userID := primitive.NewObjectID().Hex()
	taskID := primitive.NewObjectID().Hex()

	cases := []struct {
		name string
		req  CreateCommentRequest
	}{
		{"missing content", CreateCommentRequest{User: userID, Task: taskID}},
		{"malformed user", CreateCommentRequest{Content: "LGTM", User: "zzz", Task: taskID}},
		{"malformed task", CreateCommentRequest{Content: "LGTM", User: userID, Task: "zzz"}},
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

func TestCreate_ParsesReferences(t *testing.T) {
	var inserted *models.Comment
	store := &fakeStore{
		insert: func(ctx context.Context, doc *models.Comment) error {
			inserted = doc
			return nil
		},
	}
	svc := NewService(store)

	userID := primitive.NewObjectID()
	taskID := primitive.NewObjectID()
	comment, err := svc.Create(context.Background(), CreateCommentRequest{
		Content: "Looks good to me",
		User:    userID.Hex(),
		Task:    taskID.Hex(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if inserted == nil {
		t.Fatal("comment should have been inserted")
	}
	if comment.User != userID || comment.Task != taskID {
		t.Fatalf("references not parsed: user=%s task=%s", comment.User.Hex(), comment.Task.Hex())
	}
}

func TestUpdate_ReferenceFieldsMustBeIDs(t *testing.T) {
	svc := NewService(&fakeStore{})
	id := primitive.NewObjectID()

	_, err := svc.Update(context.Background(), id, map[string]any{"task": "not-hex"})
	if !apperror.IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	_, err = svc.Update(context.Background(), id, map[string]any{"reactions": 3})
	if !apperror.IsValidationError(err) {
		t.Fatalf("expected ValidationError for unknown field, got %v", err)
	}
}

func TestUpdate_ContentOnly(t *testing.T) {
	var gotFields bson.M
	store := &fakeStore{
		updateByID: func(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.PopulatedComment, error) {
			gotFields = fields
			return &models.PopulatedComment{ID: id, Content: "Edited"}, nil
		},
	}
	svc := NewService(store)

	_, err := svc.Update(context.Background(), primitive.NewObjectID(), map[string]any{"content": "Edited"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(gotFields) != 1 || gotFields["content"] != "Edited" {
		t.Fatalf("fields=%v", gotFields)
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

func TestGet_NotFound(t *testing.T) {
	store := &fakeStore{
		findByID: func(ctx context.Context, id primitive.ObjectID) (*models.PopulatedComment, error) {
			return nil, mongo.ErrNoDocuments
		},
	}
	svc := NewService(store)

	_, err := svc.Get(context.Background(), primitive.NewObjectID())
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
