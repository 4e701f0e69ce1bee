// Package tasklists implements the task-list resource. Lists reference their
// owning user and the tasks they contain; both are expanded on reads.
package tasklists

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
	"name":        true,
	"description": true,
	"user":        true,
	"tasks":       true,
}

// Store is the task-list repository.
type Store = repo.Store[models.TaskList, models.PopulatedTaskList]

// NewStore binds the task-list repository to the tasklists collection with its
// reference expansions.
func NewStore(db *mongo.Database) Store {
	return repo.NewCollection[models.TaskList, models.PopulatedTaskList](db, models.CollectionTaskLists, []repo.Ref{
		{Field: "user", From: models.CollectionUsers, Single: true},
		{Field: "tasks", From: models.CollectionTasks},
	})
}

// Service contains the task-list business logic.
type Service struct {
	store Store
}

// NewService creates a task-list Service on top of the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns all task lists with user and tasks expanded.
func (s *Service) List(ctx context.Context) ([]models.PopulatedTaskList, error) {
	lists, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("Error fetching tasklists", err)
	}
	return lists, nil
}

// Create validates the request and persists the task list.
func (s *Service) Create(ctx context.Context, req CreateTaskListRequest) (*models.TaskList, error) {
	if req.Name == "" {
		return nil, apperror.NewValidationError("name is required", nil)
	}
	if !repo.IsValidID(req.User) {
		return nil, apperror.NewValidationError("user must be a valid ID", nil)
	}
	taskIDs, err := parseIDSlice(req.Tasks, "tasks")
	if err != nil {
		return nil, err
	}

	list := &models.TaskList{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Description: req.Description,
		User:        repo.ParseID(req.User),
		Tasks:       taskIDs,
	}
	now := models.Now()
	list.CreatedAt = now
	list.UpdatedAt = now

	if err := s.store.Insert(ctx, list); err != nil {
		return nil, apperror.NewDatabaseError("Error creating tasklist", err)
	}
	return list, nil
}

// Get returns a single task list with references expanded.
func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*models.PopulatedTaskList, error) {
	list, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError("Tasklist not found", nil)
		}
		return nil, apperror.NewDatabaseError("Error fetching tasklist", err)
	}
	return list, nil
}

// Update merges the supplied fields into the task list.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*models.PopulatedTaskList, error) {
	set := bson.M{}
	for name, value := range fields {
		if !allowedUpdateFields[name] {
			return nil, apperror.NewValidationError("unknown field \""+name+"\"", nil)
		}
		switch name {
		case "name", "description":
			str, ok := value.(string)
			if !ok {
				return nil, apperror.NewValidationError("field \""+name+"\" must be a string", nil)
			}
			set[name] = str
		case "user":
			str, ok := value.(string)
			if !ok || !repo.IsValidID(str) {
				return nil, apperror.NewValidationError("field \"user\" must be a valid ID", nil)
			}
			set[name] = repo.ParseID(str)
		case "tasks":
			ids, err := parseIDValues(value)
			if err != nil {
				return nil, err
			}
			set[name] = ids
		}
	}

	updated, err := s.store.UpdateByID(ctx, id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError("Tasklist not found", nil)
		}
		return nil, apperror.NewDatabaseError("Error updating tasklist", err)
	}
	return updated, nil
}

// Delete removes the task list. Its tasks are untouched; they simply stop
// resolving the list on population.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return apperror.NewDatabaseError("Error deleting tasklist", err)
	}
	if !deleted {
		return apperror.NewNotFoundError("Tasklist not found", nil)
	}
	return nil
}

func parseIDSlice(values []string, field string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(values))
	for _, v := range values {
		if !repo.IsValidID(v) {
			return nil, apperror.NewValidationError("field \""+field+"\" must contain valid IDs", nil)
		}
		ids = append(ids, repo.ParseID(v))
	}
	return ids, nil
}

// parseIDValues handles the PATCH form of an id array, which decodes from JSON
// as []any.
func parseIDValues(value any) ([]primitive.ObjectID, error) {
	raw, ok := value.([]any)
	if !ok {
		return nil, apperror.NewValidationError("field \"tasks\" must be an array of IDs", nil)
	}
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		str, ok := v.(string)
		if !ok || !repo.IsValidID(str) {
			return nil, apperror.NewValidationError("field \"tasks\" must contain valid IDs", nil)
		}
		ids = append(ids, repo.ParseID(str))
	}
	return ids, nil
}
