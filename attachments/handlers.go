package attachments

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Anse-dev/todo-list-app/api"
	"github.com/Anse-dev/todo-list-app/apperror"
	"github.com/Anse-dev/todo-list-app/repo"
)

// Handlers exposes the attachment CRUD endpoints.
type Handlers struct {
	service *Service
}

// NewHandlers creates attachment Handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts the attachment routes on the given router.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleList())
	r.Post("/", h.HandleCreate())
	r.Get("/{id}", h.HandleGet())
	r.Patch("/{id}", h.HandleUpdate())
	r.Delete("/{id}", h.HandleDelete())
}

// HandleList godoc
// @Summary List attachments
// @Tags attachments
// @Produce json
// @Success 200 {object} api.Envelope
// @Failure 500 {object} api.Envelope
// @Router /api/attachments [get]
func (h *Handlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := h.service.List(r.Context())
		if err != nil {
			api.WriteError(w, r, err)
			return
		}
		message := "All attachments"
		if len(list) == 0 {
			message = "No attachments found"
		}
		api.WriteSuccess(w, http.StatusOK, list, message)
	}
}

// HandleCreate godoc
// @Summary Create an attachment
// @Tags attachments
// @Accept json
// @Produce json
// @Param attachment body CreateAttachmentRequest true "Attachment to create"
// @Success 201 {object} api.Envelope
// @Failure 400 {object} api.Envelope
// @Failure 500 {object} api.Envelope
// @Router /api/attachments [post]
func (h *Handlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAttachmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		attachment, err := h.service.Create(r.Context(), req)
		if err != nil {
			api.WriteError(w, r, err)
			return
		}
		api.WriteSuccess(w, http.StatusCreated, attachment, "Attachment created")
	}
}

// HandleGet godoc
// @Summary Get an attachment by id
// @Tags attachments
// @Produce json
// @Param id path string true "Attachment ID"
// @Success 200 {object} api.Envelope
// @Failure 400 {object} api.Envelope
// @Failure 404 {object} api.Envelope
// @Failure 500 {object} api.Envelope
// @Router /api/attachments/{id} [get]
func (h *Handlers) HandleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !repo.IsValidID(id) {
			api.WriteError(w, r, apperror.NewValidationError("Invalid attachment ID", nil))
			return
		}

		attachment, err := h.service.Get(r.Context(), repo.ParseID(id))
		if err != nil {
			api.WriteError(w, r, err)
			return
		}
		api.WriteSuccess(w, http.StatusOK, attachment, "Attachment found")
	}
}

// HandleUpdate godoc
// @Summary Partially update an attachment
// @Tags attachments
// @Accept json
// @Produce json
// @Param id path string true "Attachment ID"
// @Param fields body object true "Fields to update"
// @Success 200 {object} api.Envelope
// @Failure 400 {object} api.Envelope
// @Failure 404 {object} api.Envelope
// @Failure 500 {object} api.Envelope
// @Router /api/attachments/{id} [patch]
func (h *Handlers) HandleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !repo.IsValidID(id) {
			api.WriteError(w, r, apperror.NewValidationError("Invalid attachment ID", nil))
			return
		}

		var fields map[string]any
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			api.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()
		if len(fields) == 0 {
			api.WriteError(w, r, apperror.NewValidationError("No fields provided for update", nil))
			return
		}

		attachment, err := h.service.Update(r.Context(), repo.ParseID(id), fields)
		if err != nil {
			api.WriteError(w, r, err)
			return
		}
		api.WriteSuccess(w, http.StatusOK, attachment, "Attachment updated")
	}
}

// HandleDelete godoc
// @Summary Delete an attachment
// @Tags attachments
// @Produce json
// @Param id path string true "Attachment ID"
// @Success 200 {object} api.Envelope
// @Failure 400 {object} api.Envelope
// @Failure 404 {object} api.Envelope
// @Failure 500 {object} api.Envelope
// @Router /api/attachments/{id} [delete]
func (h *Handlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !repo.IsValidID(id) {
			api.WriteError(w, r, apperror.NewValidationError("Invalid attachment ID", nil))
			return
		}

		if err := h.service.Delete(r.Context(), repo.ParseID(id)); err != nil {
			api.WriteError(w, r, err)
			return
		}
		api.WriteSuccess(w, http.StatusOK, nil, "Attachment deleted")
	}
}
