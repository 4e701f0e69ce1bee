package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Anse-dev/todo-list-app/api"
	"github.com/Anse-dev/todo-list-app/apperror"
)

// Handlers exposes the token endpoints.
type Handlers struct {
	service *Service
}

// NewHandlers creates auth Handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts the auth routes on the given router.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.HandleRegister())
	r.Post("/login", h.HandleLogin())
	r.Post("/refresh", h.HandleRefreshToken())
}

// HandleRegister godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration details"
// @Success 201 {object} api.Envelope
// @Failure 400 {object} api.Envelope
// @Failure 409 {object} api.Envelope
// @Failure 500 {object} api.Envelope
// @Router /api/auth/register [post]
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		user, err := h.service.Register(r.Context(), req)
		if err != nil {
			api.WriteError(w, r, err)
			return
		}
		api.WriteSuccess(w, http.StatusCreated, user, "User registered")
	}
}

// HandleLogin godoc
// @Summary Log in and receive a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} api.Envelope
// @Failure 400 {object} api.Envelope
// @Failure 401 {object} api.Envelope
// @Failure 500 {object} api.Envelope
// @Router /api/auth/login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if req.Email == "" || req.Password == "" {
			api.WriteError(w, r, apperror.NewValidationError("email and password are required", nil))
			return
		}

		tokens, err := h.service.Login(r.Context(), req)
		if err != nil {
			api.WriteError(w, r, err)
			return
		}
		api.WriteSuccess(w, http.StatusOK, tokens, "Login successful")
	}
}

// HandleRefreshToken godoc
// @Summary Exchange a refresh token for a new access token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RefreshTokenRequest true "Refresh token"
// @Success 200 {object} api.Envelope
// @Failure 400 {object} api.Envelope
// @Failure 403 {object} api.Envelope
// @Failure 500 {object} api.Envelope
// @Router /api/auth/refresh [post]
func (h *Handlers) HandleRefreshToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RefreshTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if req.RefreshToken == "" {
			api.WriteError(w, r, apperror.NewValidationError("refresh_token is required", nil))
			return
		}

		tokens, err := h.service.RefreshToken(req.RefreshToken)
		if err != nil {
			api.WriteError(w, r, err)
			return
		}
		api.WriteSuccess(w, http.StatusOK, tokens, "Token refreshed")
	}
}
