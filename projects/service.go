// Package projects implements the project resource: groups of task lists
// under an owning user. Project routes are the authenticated part of the API
// surface; the gates themselves live in the auth package and are composed in
// main.
package projects

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
	"taskLists":   true,
}

// Store is the project repository.
type Store = repo.Store[models.Project, models.PopulatedProject]

// NewStore binds the project repository to the projects collection.
func NewStore(db *mongo.Database) Store {
	return repo.NewCollection[models.Project, models.PopulatedProject](db, models.CollectionProjects, []repo.Ref{
		{Field: "user", From: models.CollectionUsers, Single: true},
		{Field: "taskLists", From: models.CollectionTaskLists},
	})
}

// Service contains the project business logic.
type Service struct {
	store Store
}

// NewService creates a project Service on top of the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns all projects with user and task lists expanded.
func (s *Service) List(ctx context.Context) ([]models.PopulatedProject, error) {
	projects, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("Error fetching projects", err)
	}
	return projects, nil
}

// Create validates the request and persists the project.
func (s *Service) Create(ctx context.Context, req CreateProjectRequest) (*models.Project, error) {
	if req.Name == "" {
		return nil, apperror.NewValidationError("name is required", nil)
	}
	if !repo.IsValidID(req.User) {
		return nil, apperror.NewValidationError("user must be a valid ID", nil)
	}
	listIDs := make([]primitive.ObjectID, 0, len(req.TaskLists))
	for _, v := range req.TaskLists {
		if !repo.IsValidID(v) {
			return nil, apperror.NewValidationError("field \"taskLists\" must contain valid IDs", nil)
		}
		listIDs = append(listIDs, repo.ParseID(v))
	}

	project := &models.Project{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Description: req.Description,
		User:        repo.ParseID(req.User),
		TaskLists:   listIDs,
	}
	now := models.Now()
	project.CreatedAt = now
	project.UpdatedAt = now

	if err := s.store.Insert(ctx, project); err != nil {
		return nil, apperror.NewDatabaseError("Error creating project", err)
	}
	return project, nil
}

// Get returns a single project with references expanded.
func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*models.PopulatedProject, error) {
	project, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError("Project not found", nil)
		}
		return nil, apperror.NewDatabaseError("Error fetching project", err)
	}
	return project, nil
}

// Update merges the supplied fields into the project.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*models.PopulatedProject, error) {
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
		case "taskLists":
			raw, ok := value.([]any)
			if !ok {
				return nil, apperror.NewValidationError("field \"taskLists\" must be an array of IDs", nil)
			}
			ids := make([]primitive.ObjectID, 0, len(raw))
			for _, v := range raw {
				str, ok := v.(string)
				if !ok || !repo.IsValidID(str) {
					return nil, apperror.NewValidationError("field \"taskLists\" must contain valid IDs", nil)
				}
				ids = append(ids, repo.ParseID(str))
			}
			set[name] = ids
		}
	}

	updated, err := s.store.UpdateByID(ctx, id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError("Project not found", nil)
		}
		return nil, apperror.NewDatabaseError("Error updating project", err)
	}
	return updated, nil
}

// Delete removes the project; its task lists are untouched.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return apperror.NewDatabaseError("Error deleting project", err)
	}
	if !deleted {
		return apperror.NewNotFoundError("Project not found", nil)
	}
	return nil
}
