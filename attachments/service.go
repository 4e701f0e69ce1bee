// Package attachments implements the attachment resource: file metadata
// linked to tasks.
package attachments

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
	"fileName":   true,
	"filePath":   true,
	"fileType":   true,
	"task":       true,
	"uploadedBy": true,
}

// refFields marks the allow-listed fields holding identifiers.
var refFields = map[string]bool{
	"task":       true,
	"uploadedBy": true,
}

// Store is the attachment repository.
type Store = repo.Store[models.Attachment, models.PopulatedAttachment]

// NewStore binds the attachment repository to the attachments collection.
func NewStore(db *mongo.Database) Store {
	return repo.NewCollection[models.Attachment, models.PopulatedAttachment](db, models.CollectionAttachments, []repo.Ref{
		{Field: "task", From: models.CollectionTasks, Single: true},
		{Field: "uploadedBy", From: models.CollectionUsers, Single: true},
	})
}

// Service contains the attachment business logic.
type Service struct {
	store Store
}

// NewService creates an attachment Service on top of the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns all attachments with task and uploader expanded.
func (s *Service) List(ctx context.Context) ([]models.PopulatedAttachment, error) {
	attachments, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("Error fetching attachments", err)
	}
	return attachments, nil
}

// Create validates the request and persists the attachment.
func (s *Service) Create(ctx context.Context, req CreateAttachmentRequest) (*models.Attachment, error) {
	if req.FileName == "" || req.FilePath == "" || req.FileType == "" {
		return nil, apperror.NewValidationError("fileName, filePath, and fileType are required", nil)
	}
	if !repo.IsValidID(req.Task) {
		return nil, apperror.NewValidationError("task must be a valid ID", nil)
	}
	if !repo.IsValidID(req.UploadedBy) {
		return nil, apperror.NewValidationError("uploadedBy must be a valid ID", nil)
	}

	attachment := &models.Attachment{
		ID:         primitive.NewObjectID(),
		FileName:   req.FileName,
		FilePath:   req.FilePath,
		FileType:   req.FileType,
		Task:       repo.ParseID(req.Task),
		UploadedBy: repo.ParseID(req.UploadedBy),
	}
	now := models.Now()
	attachment.CreatedAt = now
	attachment.UpdatedAt = now

	if err := s.store.Insert(ctx, attachment); err != nil {
		return nil, apperror.NewDatabaseError("Error creating attachment", err)
	}
	return attachment, nil
}

// Get returns a single attachment with references expanded.
func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*models.PopulatedAttachment, error) {
	attachment, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError("Attachment not found", nil)
		}
		return nil, apperror.NewDatabaseError("Error fetching attachment", err)
	}
	return attachment, nil
}

// Update merges the supplied fields into the attachment.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*models.PopulatedAttachment, error) {
	set := bson.M{}
	for name, value := range fields {
		if !allowedUpdateFields[name] {
			return nil, apperror.NewValidationError("unknown field \""+name+"\"", nil)
		}
		str, ok := value.(string)
		if !ok {
			return nil, apperror.NewValidationError("field \""+name+"\" must be a string", nil)
		}
		if refFields[name] {
			if !repo.IsValidID(str) {
				return nil, apperror.NewValidationError("field \""+name+"\" must be a valid ID", nil)
			}
			set[name] = repo.ParseID(str)
			continue
		}
		set[name] = str
	}

	updated, err := s.store.UpdateByID(ctx, id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError("Attachment not found", nil)
		}
		return nil, apperror.NewDatabaseError("Error updating attachment", err)
	}
	return updated, nil
}

// Delete removes the attachment record; the underlying file is not touched.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return apperror.NewDatabaseError("Error deleting attachment", err)
	}
	if !deleted {
		return apperror.NewNotFoundError("Attachment not found", nil)
	}
	return nil
}
