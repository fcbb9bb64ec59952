package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mastergurukulam/apiserver/internal/services"
	"github.com/mastergurukulam/apiserver/types"
)

// FacultyHandler provides HTTP handlers for faculty profiles.
type FacultyHandler struct {
	facultyService *services.FacultyService
}

func NewFacultyHandler(facultyService *services.FacultyService) *FacultyHandler {
	return &FacultyHandler{facultyService: facultyService}
}

// FacultyRouter registers faculty routes.
func FacultyRouter(r chi.Router, facultyService *services.FacultyService, requireAuth func(http.Handler) http.Handler) {
	handler := NewFacultyHandler(facultyService)
	manage := RequireRole(types.RoleSuperAdmin, types.RoleAdmin, types.RoleModerator)

	r.Get("/", handler.List)
	r.With(requireAuth, manage).Post("/", handler.Create)
	r.Route("/{facultyID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.With(requireAuth, manage).Put("/", handler.Update)
		r.With(requireAuth, manage).Delete("/", handler.Delete)
	})
}

type FacultyListResponse struct {
	Items []types.Faculty `json:"items"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
	Total int             `json:"total"`
}

type FacultyUpsertRequest struct {
	Name          string `json:"name"`
	Subject       string `json:"subject"`
	Qualification string `json:"qualification"`
	Bio           string `json:"bio"`
	Photo         string `json:"photo"`
}

func (req *FacultyUpsertRequest) validate() error {
	req.Name = strings.TrimSpace(req.Name)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Qualification = strings.TrimSpace(req.Qualification)
	req.Bio = strings.TrimSpace(req.Bio)
	req.Photo = strings.TrimSpace(req.Photo)
	if req.Name == "" || req.Subject == "" || req.Qualification == "" || req.Bio == "" || req.Photo == "" {
		return errRequired("name, subject, qualification, bio, and photo")
	}
	return nil
}

func (h *FacultyHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, total, err := h.facultyService.List(r.Context(), offset, limit)
	if err != nil {
		writeServiceError(w, err, "failed to list faculty")
		return
	}

	writeJSON(w, http.StatusOK, FacultyListResponse{Items: items, Page: page, Limit: limit, Total: total})
}

func (h *FacultyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "facultyID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	member, err := h.facultyService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to fetch faculty member")
		return
	}

	writeJSON(w, http.StatusOK, member)
}

func (h *FacultyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req FacultyUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.facultyService.Create(r.Context(), types.Faculty{
		Name:          req.Name,
		Subject:       req.Subject,
		Qualification: req.Qualification,
		Bio:           req.Bio,
		Photo:         req.Photo,
	})
	if err != nil {
		writeServiceError(w, err, "failed to create faculty member")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *FacultyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "facultyID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req FacultyUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.facultyService.Update(r.Context(), types.Faculty{
		ID:            id,
		Name:          req.Name,
		Subject:       req.Subject,
		Qualification: req.Qualification,
		Bio:           req.Bio,
		Photo:         req.Photo,
	})
	if err != nil {
		writeServiceError(w, err, "failed to update faculty member")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *FacultyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "facultyID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.facultyService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "failed to delete faculty member")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
