package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/course-api-be/internal/auth"
	"github.com/isdelr/course-api-be/internal/models"
	"github.com/isdelr/course-api-be/internal/services"
)

type contextKey string

const courseKey = contextKey("course")

// CourseFromContext returns the course loaded by CourseCtx, or nil.
func CourseFromContext(ctx context.Context) *models.Course {
	course, _ := ctx.Value(courseKey).(*models.Course)
	return course
}

// CourseHandler handles HTTP requests for the course catalog.
type CourseHandler struct {
	service services.CourseServiceProvider
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(service services.CourseServiceProvider) *CourseHandler {
	return &CourseHandler{service: service}
}

// CourseCtx loads the course named by the {id} URL parameter, with its owner,
// before any other middleware on the route runs.
func (h *CourseHandler) CourseCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		course, err := h.service.GetCourseByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			RespondError(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), courseKey, course)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetAll lists every course.
func (h *CourseHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.GetAllCourses(r.Context())
	if err != nil {
		RespondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

// Get returns the course loaded by CourseCtx.
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CourseFromContext(r.Context()))
}

// Create adds a course owned by the caller unless the body names another user.
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCourseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	course, err := h.service.CreateCourse(r.Context(), auth.UserFromContext(r.Context()), req.input())
	if err != nil {
		RespondError(w, r, err)
		return
	}

	w.Header().Set("Location", "/"+course.ID)
	w.WriteHeader(http.StatusCreated)
}

// Update applies the fields present in the body to the loaded course.
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateCourseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	course := CourseFromContext(r.Context())
	if err := h.service.UpdateCourse(r.Context(), auth.UserFromContext(r.Context()), course, req.update()); err != nil {
		RespondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes the loaded course.
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	course := CourseFromContext(r.Context())
	if err := h.service.DeleteCourse(r.Context(), auth.UserFromContext(r.Context()), course); err != nil {
		RespondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
