package handlers

import (
	"net/http"

	"github.com/isdelr/course-api-be/internal/auth"
	"github.com/isdelr/course-api-be/internal/services"
	"github.com/rs/zerolog/log"
)

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// GetMe returns the authenticated user. The password hash is never serialized.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		log.Error().Msg("Could not retrieve user from context")
		RespondError(w, r, auth.ErrMissingCredentials)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Create handles new user registration.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	user, err := h.service.CreateUser(r.Context(), req.input())
	if err != nil {
		RespondError(w, r, err)
		return
	}

	log.Info().Str("user_id", user.ID).Msg("User registered")
	w.Header().Set("Location", "/")
	w.WriteHeader(http.StatusCreated)
}
