package tasklists

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Anse-dev/todo-list-app/api"
	"github.com/Anse-dev/todo-list-app/apperror"
	"github.com/Anse-dev/todo-list-app/repo"
)

// Handlers exposes the task-list CRUD endpoints.
type Handlers struct {
	service *Service
}

// NewHandlers creates task-list Handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts the task-list routes on the given router.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleList())
	r.Post("/", h.HandleCreate())
	r.Get("/{id}", h.HandleGet())
	r.Patch("/{id}", h.HandleUpdate())
	r.Delete("/{id}", h.HandleDelete())
}

// HandleList godoc
// @Summary List task lists
// @Tags tasklists
// @Produce json
// @Success 200 {object} api.Envelope
// @Failure 500 {object} api.Envelope
// @Router /api/tasklists [get]
func (h *Handlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := h.service.List(r.Context())
		if err != nil {
			api.WriteError(w, r, err)
			return
		}
		message := "All tasklists"
		if len(list) == 0 {
			message = "No tasklists found"
		}
		api.WriteSuccess(w, http.StatusOK, list, message)
	}
}

// HandleCreate godoc
// @Summary Create a task list
// @Tags tasklists
// @Accept json
// @Produce json
// @Param tasklist body CreateTaskListRequest true "Task list to create"
// @Success 201 {object} api.Envelope
// @Failure 400 {object} api.Envelope
// @Failure 500 {object} api.Envelope
// @Router /api/tasklists [post]
func (h *Handlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateTaskListRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		list, err := h.service.Create(r.Context(), req)
		if err != nil {
			api.WriteError(w, r, err)
			return
		}
		api.WriteSuccess(w, http.StatusCreated, list, "Tasklist created")
	}
}

// HandleGet godoc
// @Summary Get a task list by id
// @Tags tasklists
// @Produce json
// @Param id path string true "Tasklist ID"
// @Success 200 {object} api.Envelope
// @Failure 400 {object} api.Envelope
// @Failure 404 {object} api.Envelope
// @Failure 500 {object} api.Envelope
// @Router /api/tasklists/{id} [get]
func (h *Handlers) HandleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !repo.IsValidID(id) {
			api.WriteError(w, r, apperror.NewValidationError("Invalid tasklist ID", nil))
			return
		}

		list, err := h.service.Get(r.Context(), repo.ParseID(id))
		if err != nil {
			api.WriteError(w, r, err)
			return
		}
		api.WriteSuccess(w, http.StatusOK, list, "Tasklist found")
	}
}

// HandleUpdate godoc
// @Summary Partially update a task list
// @Tags tasklists
// @Accept json
// @Produce json
// @Param id path string true "Tasklist ID"
// @Param fields body object true "Fields to update"
// @Success 200 {object} api.Envelope
// @Failure 400 {object} api.Envelope
// @Failure 404 {object} api.Envelope
// @Failure 500 {object} api.Envelope
// @Router /api/tasklists/{id} [patch]
func (h *Handlers) HandleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !repo.IsValidID(id) {
			api.WriteError(w, r, apperror.NewValidationError("Invalid tasklist ID", nil))
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

		list, err := h.service.Update(r.Context(), repo.ParseID(id), fields)
		if err != nil {
			api.WriteError(w, r, err)
			return
		}
		api.WriteSuccess(w, http.StatusOK, list, "Tasklist updated")
	}
}

// HandleDelete godoc
// @Summary Delete a task list
// @Tags tasklists
// @Produce json
// @Param id path string true "Tasklist ID"
// @Success 200 {object} api.Envelope
// @Failure 400 {object} api.Envelope
// @Failure 404 {object} api.Envelope
// @Failure 500 {object} api.Envelope
// @Router /api/tasklists/{id} [delete]
func (h *Handlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !repo.IsValidID(id) {
			api.WriteError(w, r, apperror.NewValidationError("Invalid tasklist ID", nil))
			return
		}

		if err := h.service.Delete(r.Context(), repo.ParseID(id)); err != nil {
			api.WriteError(w, r, err)
			return
		}
		api.WriteSuccess(w, http.StatusOK, nil, "Tasklist deleted")
	}
}
