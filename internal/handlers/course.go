package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mastergurukulam/apiserver/internal/services"
	"github.com/mastergurukulam/apiserver/types"
)

// CourseHandler provides HTTP handlers for courses.
type CourseHandler struct {
	courseService *services.CourseService
}

func NewCourseHandler(courseService *services.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// CourseRouter registers course routes. Reads are public; mutations are
// open to all back-office roles.
func CourseRouter(r chi.Router, courseService *services.CourseService, requireAuth func(http.Handler) http.Handler) {
	handler := NewCourseHandler(courseService)
	manage := RequireRole(types.RoleSuperAdmin, types.RoleAdmin, types.RoleModerator)

	r.Get("/", handler.List)
	r.With(requireAuth, manage).Post("/", handler.Create)
	r.Route("/{courseID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.With(requireAuth, manage).Put("/", handler.Update)
		r.With(requireAuth, manage).Delete("/", handler.Delete)
	})
}

// CourseListResponse is the paginated list payload.
type CourseListResponse struct {
	Items []types.Course `json:"items"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Total int            `json:"total"`
}

type CourseUpsertRequest struct {
	Title       string `json:"title"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

func (req *CourseUpsertRequest) validate() error {
	req.Title = strings.TrimSpace(req.Title)
	req.Duration = strings.TrimSpace(req.Duration)
	req.Description = strings.TrimSpace(req.Description)
	if req.Title == "" || req.Duration == "" || req.Description == "" {
		return errRequired("title, duration, and description")
	}
	return nil
}

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, total, err := h.courseService.List(r.Context(), offset, limit)
	if err != nil {
		writeServiceError(w, err, "failed to list courses")
		return
	}

	writeJSON(w, http.StatusOK, CourseListResponse{Items: items, Page: page, Limit: limit, Total: total})
}

func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "courseID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	course, err := h.courseService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to fetch course")
		return
	}

	writeJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CourseUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.courseService.Create(r.Context(), types.Course{
		Title:       req.Title,
		Duration:    req.Duration,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, err, "failed to create course")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "courseID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req CourseUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.courseService.Update(r.Context(), types.Course{
		ID:          id,
		Title:       req.Title,
		Duration:    req.Duration,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, err, "failed to update course")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "courseID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.courseService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "failed to delete course")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
