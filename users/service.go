// Package users implements the user resource: account CRUD plus the lookups
// the auth package needs for login.
package users

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/Anse-dev/todo-list-app/apperror"
	"github.com/Anse-dev/todo-list-app/models"
	"github.com/Anse-dev/todo-list-app/repo"
)

// DefaultRole is assigned when a created user does not name one.
const DefaultRole = "user"

// allowedUpdateFields is the fixed allow-list for partial updates; anything
// else in a PATCH body is rejected before the store is touched.
var allowedUpdateFields = map[string]bool{
	"name":     true,
	"email":    true,
	"password": true,
	"role":     true,
}

// Store is the user repository. Users declare no references, so the stored and
// expanded forms coincide.
type Store = repo.Store[models.User, models.User]

// NewStore binds the user repository to the users collection.
func NewStore(db *mongo.Database) Store {
	return repo.NewCollection[models.User, models.User](db, models.CollectionUsers, nil)
}

// Service contains the user business logic.
type Service struct {
	store Store
}

// NewService creates a user Service on top of the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]models.User, error) {
	users, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("Error fetching users", err)
	}
	return users, nil
}

// Create validates the request, hashes the password, and persists the user.
func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, apperror.NewValidationError("name, email, and password are required", nil)
	}

	email := strings.ToLower(req.Email)
	if _, err := s.store.FindOne(ctx, bson.M{"email": email}); err == nil {
		return nil, apperror.NewConflictError("email already exists", nil)
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NewDatabaseError("Error creating user", err)
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = DefaultRole
	}

	user := &models.User{
		ID:       primitive.NewObjectID(),
		Name:     req.Name,
		Email:    email,
		Password: hashed,
		Role:     role,
	}
	now := models.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := s.store.Insert(ctx, user); err != nil {
		return nil, apperror.NewDatabaseError("Error creating user", err)
	}
	return user, nil
}

// Get returns a single user by id.
func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError("User not found", nil)
		}
		return nil, apperror.NewDatabaseError("Error fetching user", err)
	}
	return user, nil
}

// GetByEmail returns a user by email address; used by the auth service.
func (s *Service) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.store.FindOne(ctx, bson.M{"email": strings.ToLower(email)})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError("User not found", nil)
		}
		return nil, apperror.NewDatabaseError("Error fetching user", err)
	}
	return user, nil
}

// Update merges the supplied fields into the user. Unknown fields are
// rejected, passwords are re-hashed, and unset fields are left untouched.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*models.User, error) {
	set := bson.M{}
	for name, value := range fields {
		if !allowedUpdateFields[name] {
			return nil, apperror.NewValidationError("unknown field \""+name+"\"", nil)
		}
		str, ok := value.(string)
		if !ok {
			return nil, apperror.NewValidationError("field \""+name+"\" must be a string", nil)
		}
		switch name {
		case "password":
			hashed, err := hashPassword(str)
			if err != nil {
				return nil, err
			}
			set[name] = hashed
		case "email":
			set[name] = strings.ToLower(str)
		default:
			set[name] = str
		}
	}

	updated, err := s.store.UpdateByID(ctx, id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError("User not found", nil)
		}
		return nil, apperror.NewDatabaseError("Error updating user", err)
	}
	return updated, nil
}

// Delete removes the user. Deleting never cascades: tasks and lists keep their
// now-dangling references and populate them as null.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return apperror.NewDatabaseError("Error deleting user", err)
	}
	if !deleted {
		return apperror.NewNotFoundError("User not found", nil)
	}
	return nil
}

// VerifyPassword compares a candidate password against the stored hash.
func VerifyPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperror.NewInternalError("failed to hash password", err)
	}
	return string(hashed), nil
}
