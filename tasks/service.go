// Package tasks implements the task resource. Tasks reference their owning
// user and, optionally, the task list they belong to; both are expanded on
// reads.
package tasks

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Anse-dev/todo-list-app/apperror"
	"github.com/Anse-dev/todo-list-app/models"
	"github.com/Anse-dev/todo-list-app/repo"
)

var allowedUpdateFields = map[string]bool{
	"title":       true,
	"description": true,
	"status":      true,
	"dueDate":     true,
	"priority":    true,
	"user":        true,
	"list":        true,
}

// Store is the task repository.
type Store = repo.Store[models.Task, models.PopulatedTask]

// NewStore binds the task repository to the tasks collection with its
// reference expansions.
func NewStore(db *mongo.Database) Store {
	return repo.NewCollection[models.Task, models.PopulatedTask](db, models.CollectionTasks, []repo.Ref{
		{Field: "user", From: models.CollectionUsers, Single: true},
		{Field: "list", From: models.CollectionTaskLists, Single: true},
	})
}

// Service contains the task business logic.
type Service struct {
	store Store
}

// NewService creates a task Service on top of the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns all tasks with user and list expanded.
func (s *Service) List(ctx context.Context) ([]models.PopulatedTask, error) {
	tasks, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("Error fetching tasks", err)
	}
	return tasks, nil
}

// Create validates the request and persists the task. Status and priority
// default to pending and medium when omitted.
func (s *Service) Create(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	if req.Title == "" {
		return nil, apperror.NewValidationError("title is required", nil)
	}
	if !repo.IsValidID(req.User) {
		return nil, apperror.NewValidationError("user must be a valid ID", nil)
	}

	status := req.Status
	if status == "" {
		status = models.StatusPending
	}
	if !status.IsValid() {
		return nil, apperror.NewValidationError("invalid status \""+string(status)+"\"", nil)
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.IsValid() {
		return nil, apperror.NewValidationError("invalid priority \""+string(priority)+"\"", nil)
	}

	task := &models.Task{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		DueDate:     req.DueDate,
		Priority:    priority,
		User:        repo.ParseID(req.User),
	}
	if req.List != nil {
		if !repo.IsValidID(*req.List) {
			return nil, apperror.NewValidationError("list must be a valid ID", nil)
		}
		listID := repo.ParseID(*req.List)
		task.List = &listID
	}
	now := models.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := s.store.Insert(ctx, task); err != nil {
		return nil, apperror.NewDatabaseError("Error creating task", err)
	}
	return task, nil
}

// Get returns a single task with references expanded.
func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*models.PopulatedTask, error) {
	task, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError("Task not found", nil)
		}
		return nil, apperror.NewDatabaseError("Error fetching task", err)
	}
	return task, nil
}

// Update merges the supplied fields into the task, validating each against
// the allow-list and its expected shape.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*models.PopulatedTask, error) {
	set := bson.M{}
	for name, value := range fields {
		if !allowedUpdateFields[name] {
			return nil, apperror.NewValidationError("unknown field \""+name+"\"", nil)
		}
		normalized, err := normalizeField(name, value)
		if err != nil {
			return nil, err
		}
		set[name] = normalized
	}

	updated, err := s.store.UpdateByID(ctx, id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError("Task not found", nil)
		}
		return nil, apperror.NewDatabaseError("Error updating task", err)
	}
	return updated, nil
}

// Delete removes the task. Comments and attachments referencing it are left in
// place with dangling references.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return apperror.NewDatabaseError("Error deleting task", err)
	}
	if !deleted {
		return apperror.NewNotFoundError("Task not found", nil)
	}
	return nil
}

// normalizeField converts a raw PATCH value into its stored form.
func normalizeField(name string, value any) (any, error) {
	switch name {
	case "title", "description":
		str, ok := value.(string)
		if !ok {
			return nil, apperror.NewValidationError("field \""+name+"\" must be a string", nil)
		}
		return str, nil
	case "status":
		str, _ := value.(string)
		if !models.TaskStatus(str).IsValid() {
			return nil, apperror.NewValidationError("invalid status \""+str+"\"", nil)
		}
		return str, nil
	case "priority":
		str, _ := value.(string)
		if !models.TaskPriority(str).IsValid() {
			return nil, apperror.NewValidationError("invalid priority \""+str+"\"", nil)
		}
		return str, nil
	case "dueDate":
		// null clears the due date.
		if value == nil {
			return nil, nil
		}
		str, ok := value.(string)
		if !ok {
			return nil, apperror.NewValidationError("field \"dueDate\" must be an RFC 3339 timestamp or null", nil)
		}
		t, err := time.Parse(time.RFC3339, str)
		if err != nil {
			return nil, apperror.NewValidationError("field \"dueDate\" must be an RFC 3339 timestamp or null", err)
		}
		return t, nil
	case "user":
		str, ok := value.(string)
		if !ok || !repo.IsValidID(str) {
			return nil, apperror.NewValidationError("field \"user\" must be a valid ID", nil)
		}
		return repo.ParseID(str), nil
	case "list":
		// null detaches the task from its list.
		if value == nil {
			return nil, nil
		}
		str, ok := value.(string)
		if !ok || !repo.IsValidID(str) {
			return nil, apperror.NewValidationError("field \"list\" must be a valid ID or null", nil)
		}
		return repo.ParseID(str), nil
	}
	return nil, apperror.NewValidationError("unknown field \""+name+"\"", nil)
}
