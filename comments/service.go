// Package comments implements the comment resource: remarks attached to tasks.
package comments

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Anse-dev/todo-list-app/apperror"
	"github.com/Anse-dev/todo-list-app/models"
	"github.com/Anse-dev/todo-list-app/repo"
)

var allowedUpdateFields = map[string]bool{
	"content": true,
	"user":    true,
	"task":    true,
}

// Store is the comment repository.
type Store = repo.Store[models.Comment, models.PopulatedComment]

// NewStore binds the comment repository to the comments collection.
func NewStore(db *mongo.Database) Store {
	return repo.NewCollection[models.Comment, models.PopulatedComment](db, models.CollectionComments, []repo.Ref{
		{Field: "user", From: models.CollectionUsers, Single: true},
		{Field: "task", From: models.CollectionTasks, Single: true},
	})
}

// Service contains the comment business logic.
type Service struct {
	store Store
}

// NewService creates a comment Service on top of the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns all comments with user and task expanded.
func (s *Service) List(ctx context.Context) ([]models.PopulatedComment, error) {
	comments, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("Error fetching comments", err)
	}
	return comments, nil
}

// Create validates the request and persists the comment.
func (s *Service) Create(ctx context.Context, req CreateCommentRequest) (*models.Comment, error) {
	if req.Content == "" {
		return nil, apperror.NewValidationError("content is required", nil)
	}
	if !repo.IsValidID(req.User) {
		return nil, apperror.NewValidationError("user must be a valid ID", nil)
	}
	if !repo.IsValidID(req.Task) {
		return nil, apperror.NewValidationError("task must be a valid ID", nil)
	}

	comment := &models.Comment{
		ID:      primitive.NewObjectID(),
		Content: req.Content,
		User:    repo.ParseID(req.User),
		Task:    repo.ParseID(req.Task),
	}
	now := models.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	if err := s.store.Insert(ctx, comment); err != nil {
		return nil, apperror.NewDatabaseError("Error creating comment", err)
	}
	return comment, nil
}

// Get returns a single comment with references expanded.
func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*models.PopulatedComment, error) {
	comment, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError("Comment not found", nil)
		}
		return nil, apperror.NewDatabaseError("Error fetching comment", err)
	}
	return comment, nil
}

// Update merges the supplied fields into the comment.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*models.PopulatedComment, error) {
	set := bson.M{}
	for name, value := range fields {
		if !allowedUpdateFields[name] {
			return nil, apperror.NewValidationError("unknown field \""+name+"\"", nil)
		}
		str, ok := value.(string)
		if !ok {
			return nil, apperror.NewValidationError("field \""+name+"\" must be a string", nil)
		}
		if name == "content" {
			set[name] = str
			continue
		}
		if !repo.IsValidID(str) {
			return nil, apperror.NewValidationError("field \""+name+"\" must be a valid ID", nil)
		}
		set[name] = repo.ParseID(str)
	}

	updated, err := s.store.UpdateByID(ctx, id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError("Comment not found", nil)
		}
		return nil, apperror.NewDatabaseError("Error updating comment", err)
	}
	return updated, nil
}

// Delete removes the comment.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return apperror.NewDatabaseError("Error deleting comment", err)
	}
	if !deleted {
		return apperror.NewNotFoundError("Comment not found", nil)
	}
	return nil
}
