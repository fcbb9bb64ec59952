package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mastergurukulam/apiserver/internal/services"
	"github.com/mastergurukulam/apiserver/types"
)

// FacilityHandler provides HTTP handlers for facilities.
type FacilityHandler struct {
	facilityService *services.FacilityService
}

func NewFacilityHandler(facilityService *services.FacilityService) *FacilityHandler {
	return &FacilityHandler{facilityService: facilityService}
}

// FacilityRouter registers facility routes.
func FacilityRouter(r chi.Router, facilityService *services.FacilityService, requireAuth func(http.Handler) http.Handler) {
	handler := NewFacilityHandler(facilityService)
	manage := RequireRole(types.RoleSuperAdmin, types.RoleAdmin, types.RoleModerator)

	r.Get("/", handler.List)
	r.With(requireAuth, manage).Post("/", handler.Create)
	r.Route("/{facilityID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.With(requireAuth, manage).Put("/", handler.Update)
		r.With(requireAuth, manage).Delete("/", handler.Delete)
	})
}

type FacilityListResponse struct {
	Items []types.Facility `json:"items"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Total int              `json:"total"`
}

type FacilityUpsertRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

func (req *FacilityUpsertRequest) validate() error {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.Image = strings.TrimSpace(req.Image)
	if req.Name == "" || req.Description == "" || req.Image == "" {
		return errRequired("name, description, and image")
	}
	return nil
}

func (h *FacilityHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, total, err := h.facilityService.List(r.Context(), offset, limit)
	if err != nil {
		writeServiceError(w, err, "failed to list facilities")
		return
	}

	writeJSON(w, http.StatusOK, FacilityListResponse{Items: items, Page: page, Limit: limit, Total: total})
}

func (h *FacilityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "facilityID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	facility, err := h.facilityService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to fetch facility")
		return
	}

	writeJSON(w, http.StatusOK, facility)
}

func (h *FacilityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req FacilityUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.facilityService.Create(r.Context(), types.Facility{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		writeServiceError(w, err, "failed to create facility")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *FacilityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "facilityID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req FacilityUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.facilityService.Update(r.Context(), types.Facility{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		writeServiceError(w, err, "failed to update facility")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *FacilityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "facilityID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.facilityService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "failed to delete facility")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
