package users

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/Anse-dev/todo-list-app/apperror"
	"github.com/Anse-dev/todo-list-app/models"
)

// fakeStore implements Store with function fields so each test supplies only
// the calls it expects; an unexpected call panics on the nil field.
type fakeStore struct {
	findAll    func(ctx context.Context) ([]models.User, error)
	findByID   func(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	findOne    func(ctx context.Context, filter bson.M) (*models.User, error)
	insert     func(ctx context.Context, doc *models.User) error
	updateByID func(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error)
	deleteByID func(ctx context.Context, id primitive.ObjectID) (bool, error)
}

func (f *fakeStore) FindAll(ctx context.Context) ([]models.User, error) {
	return f.findAll(ctx)
}

func (f *fakeStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return f.findByID(ctx, id)
}

func (f *fakeStore) FindOne(ctx context.Context, filter bson.M) (*models.User, error) {
	return f.findOne(ctx, filter)
}

func (f *fakeStore) Insert(ctx context.Context, doc *models.User) error {
	return f.insert(ctx, doc)
}

func (f *fakeStore) UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error) {
	return f.updateByID(ctx, id, fields)
}

func (f *fakeStore) DeleteByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return f.deleteByID(ctx, id)
}

// noUserStore is the common empty-collection baseline.
func noUserStore() *fakeStore {
	return &fakeStore{
		findOne: func(ctx context.Context, filter bson.M) (*models.User, error) {
			return nil, mongo.ErrNoDocuments
		},
		insert: func(ctx context.Context, doc *models.User) error {
			return nil
		},
	}
}

func TestCreate_RequiredFields(t *testing.T) {
	svc := NewService(noUserStore())

	cases := []struct {
		name string
		req  CreateUserRequest
	}{
		{"missing name", CreateUserRequest{Email: "a@b.com", Password: "pw"}},
		{"missing email", CreateUserRequest{Name: "Ana", Password: "pw"}},
		{"missing password", CreateUserRequest{Name: "Ana", Email: "a@b.com"}},
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

func TestCreate_AssignsDefaultsAndHashes(t *testing.T) {
	var inserted *models.User
	store := noUserStore()
	store.insert = func(ctx context.Context, doc *models.User) error {
		inserted = doc
		return nil
	}
	svc := NewService(store)

	user, err := svc.Create(context.Background(), CreateUserRequest{
		Name:     "Ana",
		Email:    "Ana@Example.COM",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if inserted == nil {
		t.Fatal("user should have been inserted")
	}
	if user.ID.IsZero() {
		t.Error("id should be assigned before insert")
	}
	if user.Email != "ana@example.com" {
		t.Errorf("Email=%q, want lowercased", user.Email)
	}
	if user.Role != DefaultRole {
		t.Errorf("Role=%q, want %q", user.Role, DefaultRole)
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("timestamps should be assigned")
	}
	if user.CreatedAt != user.UpdatedAt {
		t.Error("createdAt and updatedAt should match on insert")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")); err != nil {
		t.Errorf("stored password should be a bcrypt hash: %v", err)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	existing := &models.User{ID: primitive.NewObjectID(), Email: "ana@example.com"}
	store := noUserStore()
	store.findOne = func(ctx context.Context, filter bson.M) (*models.User, error) {
		return existing, nil
	}
	svc := NewService(store)

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret123",
	})
	if !apperror.IsConflict(err) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	store := &fakeStore{
		findByID: func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
			return nil, mongo.ErrNoDocuments
		},
	}
	svc := NewService(store)

	_, err := svc.Get(context.Background(), primitive.NewObjectID())
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestUpdate_UnknownFieldRejectedBeforeStore(t *testing.T) {
	storeTouched := false
	store := &fakeStore{
		updateByID: func(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error) {
			storeTouched = true
			return nil, nil
		},
	}
	svc := NewService(store)

	_, err := svc.Update(context.Background(), primitive.NewObjectID(), map[string]any{"nickname": "A"})
	if !apperror.IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if storeTouched {
		t.Fatal("store must not be touched for an unknown field")
	}
}

func TestUpdate_NonStringValueRejected(t *testing.T) {
	svc := NewService(&fakeStore{})

	_, err := svc.Update(context.Background(), primitive.NewObjectID(), map[string]any{"name": 42})
	if !apperror.IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUpdate_RehashesPasswordAndLowercasesEmail(t *testing.T) {
	var gotFields bson.M
	updated := &models.User{ID: primitive.NewObjectID(), Name: "Ana"}
	store := &fakeStore{
		updateByID: func(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error) {
			gotFields = fields
			return updated, nil
		},
	}
	svc := NewService(store)

	_, err := svc.Update(context.Background(), updated.ID, map[string]any{
		"password": "newsecret",
		"email":    "Ana@Example.com",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if gotFields["email"] != "ana@example.com" {
		t.Errorf("email=%v, want lowercased", gotFields["email"])
	}
	hashed, _ := gotFields["password"].(string)
	if hashed == "newsecret" {
		t.Fatal("password must not be stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte("newsecret")); err != nil {
		t.Errorf("stored password should be a bcrypt hash: %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	store := &fakeStore{
		updateByID: func(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error) {
			return nil, mongo.ErrNoDocuments
		},
	}
	svc := NewService(store)

	_, err := svc.Update(context.Background(), primitive.NewObjectID(), map[string]any{"name": "Ana"})
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestDelete_SecondDeleteIsNotFound(t *testing.T) {
	gone := false
	store := &fakeStore{
		deleteByID: func(ctx context.Context, id primitive.ObjectID) (bool, error) {
			if gone {
				return false, nil
			}
			gone = true
			return true, nil
		},
	}
	svc := NewService(store)
	id := primitive.NewObjectID()

	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	err := svc.Delete(context.Background(), id)
	if !apperror.IsNotFound(err) {
		t.Fatalf("second delete should be NotFound, got %v", err)
	}
}

func TestVerifyPassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing: %v", err)
	}
	user := &models.User{Password: string(hashed)}

	if !VerifyPassword(user, "secret123") {
		t.Error("correct password should verify")
	}
	if VerifyPassword(user, "wrong") {
		t.Error("wrong password must not verify")
	}
}
