package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/isdelr/course-api-be/internal/models"
	"github.com/rs/zerolog/hlog"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Message string `json:"message"`
}

// RespondError is the single place where errors become HTTP responses.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := classify(err)
	if status == http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
	} else {
		hlog.FromRequest(r).Debug().Err(err).Int("status", status).Msg("Request rejected")
	}
	writeJSON(w, status, ErrorResponse{Message: message})
}

func classify(err error) (int, string) {
	var verr *models.ValidationError
	switch {
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized, "Login failed"
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Message
	case errors.Is(err, models.ErrDuplicateEmail):
		return http.StatusBadRequest, models.ErrDuplicateEmail.Error()
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
