package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mastergurukulam/apiserver/internal/services"
	"github.com/mastergurukulam/apiserver/types"
)

// TestimonialHandler provides HTTP handlers for testimonials.
type TestimonialHandler struct {
	testimonialService *services.TestimonialService
}

func NewTestimonialHandler(testimonialService *services.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{testimonialService: testimonialService}
}

// TestimonialRouter registers testimonial routes.
func TestimonialRouter(r chi.Router, testimonialService *services.TestimonialService, requireAuth func(http.Handler) http.Handler) {
	handler := NewTestimonialHandler(testimonialService)
	manage := RequireRole(types.RoleSuperAdmin, types.RoleAdmin, types.RoleModerator)

	r.Get("/", handler.List)
	r.With(requireAuth, manage).Post("/", handler.Create)
	r.Route("/{testimonialID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.With(requireAuth, manage).Put("/", handler.Update)
		r.With(requireAuth, manage).Delete("/", handler.Delete)
	})
}

type TestimonialListResponse struct {
	Items []types.Testimonial `json:"items"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
	Total int                 `json:"total"`
}

type TestimonialUpsertRequest struct {
	Name     string `json:"name"`
	Course   string `json:"course"`
	Feedback string `json:"feedback"`
	Image    string `json:"image"`
}

func (req *TestimonialUpsertRequest) validate() error {
	req.Name = strings.TrimSpace(req.Name)
	req.Course = strings.TrimSpace(req.Course)
	req.Feedback = strings.TrimSpace(req.Feedback)
	req.Image = strings.TrimSpace(req.Image)
	if req.Name == "" || req.Course == "" || req.Feedback == "" {
		return errRequired("name, course, and feedback")
	}
	return nil
}

func (h *TestimonialHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, total, err := h.testimonialService.List(r.Context(), offset, limit)
	if err != nil {
		writeServiceError(w, err, "failed to list testimonials")
		return
	}

	writeJSON(w, http.StatusOK, TestimonialListResponse{Items: items, Page: page, Limit: limit, Total: total})
}

func (h *TestimonialHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "testimonialID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	testimonial, err := h.testimonialService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to fetch testimonial")
		return
	}

	writeJSON(w, http.StatusOK, testimonial)
}

func (h *TestimonialHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TestimonialUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.testimonialService.Create(r.Context(), types.Testimonial{
		Name:     req.Name,
		Course:   req.Course,
		Feedback: req.Feedback,
		Image:    req.Image,
	})
	if err != nil {
		writeServiceError(w, err, "failed to create testimonial")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *TestimonialHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "testimonialID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req TestimonialUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.testimonialService.Update(r.Context(), types.Testimonial{
		ID:       id,
		Name:     req.Name,
		Course:   req.Course,
		Feedback: req.Feedback,
		Image:    req.Image,
	})
	if err != nil {
		writeServiceError(w, err, "failed to update testimonial")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *TestimonialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "testimonialID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.testimonialService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "failed to delete testimonial")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
