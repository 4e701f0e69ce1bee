package projects

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Anse-dev/todo-list-app/api"
	"github.com/Anse-dev/todo-list-app/apperror"
	"github.com/Anse-dev/todo-list-app/repo"
)

// Handlers exposes the project CRUD endpoints.
type Handlers struct {
	service *Service
}

// NewHandlers creates project Handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleList godoc
// @Summary List projects
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} api.Envelope
// @Failure 401 {object} api.Envelope
// @Failure 403 {object} api.Envelope
// @Failure 500 {object} api.Envelope
// @Router /api/projects [get]
func (h *Handlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := h.service.List(r.Context())
		if err != nil {
			api.WriteError(w, r, err)
			return
		}
		message := "All projects"
		if len(list) == 0 {
			message = "No projects found"
		}
		api.WriteSuccess(w, http.StatusOK, list, message)
	}
}

// HandleCreate godoc
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param project body CreateProjectRequest true "Project to create"
// @Success 201 {object} api.Envelope
// @Failure 400 {object} api.Envelope
// @Failure 401 {object} api.Envelope
// @Failure 403 {object} api.Envelope
// @Failure 500 {object} api.Envelope
// @Router /api/projects [post]
func (h *Handlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		project, err := h.service.Create(r.Context(), req)
		if err != nil {
			api.WriteError(w, r, err)
			return
		}
		api.WriteSuccess(w, http.StatusCreated, project, "Project created")
	}
}

// HandleGet godoc
// @Summary Get a project by id
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} api.Envelope
// @Failure 400 {object} api.Envelope
// @Failure 401 {object} api.Envelope
// @Failure 404 {object} api.Envelope
// @Failure 500 {object} api.Envelope
// @Router /api/projects/{id} [get]
func (h *Handlers) HandleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !repo.IsValidID(id) {
			api.WriteError(w, r, apperror.NewValidationError("Invalid project ID", nil))
			return
		}

		project, err := h.service.Get(r.Context(), repo.ParseID(id))
		if err != nil {
			api.WriteError(w, r, err)
			return
		}
		api.WriteSuccess(w, http.StatusOK, project, "Project found")
	}
}

// HandleUpdate godoc
// @Summary Partially update a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param fields body object true "Fields to update"
// @Success 200 {object} api.Envelope
// @Failure 400 {object} api.Envelope
// @Failure 401 {object} api.Envelope
// @Failure 403 {object} api.Envelope
// @Failure 404 {object} api.Envelope
// @Failure 500 {object} api.Envelope
// @Router /api/projects/{id} [patch]
func (h *Handlers) HandleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !repo.IsValidID(id) {
			api.WriteError(w, r, apperror.NewValidationError("Invalid project ID", nil))
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

		project, err := h.service.Update(r.Context(), repo.ParseID(id), fields)
		if err != nil {
			api.WriteError(w, r, err)
			return
		}
		api.WriteSuccess(w, http.StatusOK, project, "Project updated")
	}
}

// HandleDelete godoc
// @Summary Delete a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} api.Envelope
// @Failure 400 {object} api.Envelope
// @Failure 401 {object} api.Envelope
// @Failure 403 {object} api.Envelope
// @Failure 404 {object} api.Envelope
// @Failure 500 {object} api.Envelope
// @Router /api/projects/{id} [delete]
func (h *Handlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !repo.IsValidID(id) {
			api.WriteError(w, r, apperror.NewValidationError("Invalid project ID", nil))
			return
		}

		if err := h.service.Delete(r.Context(), repo.ParseID(id)); err != nil {
			api.WriteError(w, r, err)
			return
		}
		api.WriteSuccess(w, http.StatusOK, nil, "Project deleted")
	}
}
