package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mastergurukulam/apiserver/internal/services"
	"github.com/mastergurukulam/apiserver/types"
)

// ActivityHandler provides HTTP handlers for activities.
type ActivityHandler struct {
	activityService *services.ActivityService
}

func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// ActivityRouter registers activity routes.
func ActivityRouter(r chi.Router, activityService *services.ActivityService, requireAuth func(http.Handler) http.Handler) {
	handler := NewActivityHandler(activityService)
	manage := RequireRole(types.RoleSuperAdmin, types.RoleAdmin, types.RoleModerator)

	r.Get("/", handler.List)
	r.With(requireAuth, manage).Post("/", handler.Create)
	r.Route("/{activityID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.With(requireAuth, manage).Put("/", handler.Update)
		r.With(requireAuth, manage).Delete("/", handler.Delete)
	})
}

type ActivityListResponse struct {
	Items []types.Activity `json:"items"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Total int              `json:"total"`
}

type ActivityUpsertRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
}

func (req *ActivityUpsertRequest) validate() error {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Type = strings.TrimSpace(req.Type)
	if req.Title == "" || req.Description == "" || req.Date.IsZero() {
		return errRequired("title, description, and date")
	}
	return nil
}

func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, total, err := h.activityService.List(r.Context(), offset, limit)
	if err != nil {
		writeServiceError(w, err, "failed to list activities")
		return
	}

	writeJSON(w, http.StatusOK, ActivityListResponse{Items: items, Page: page, Limit: limit, Total: total})
}

func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "activityID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	activity, err := h.activityService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to fetch activity")
		return
	}

	writeJSON(w, http.StatusOK, activity)
}

func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ActivityUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.activityService.Create(r.Context(), types.Activity{
		Title:       req.Title,
		Description: req.Description,
		Images:      req.Images,
		Date:        req.Date,
		Type:        req.Type,
	})
	if err != nil {
		writeServiceError(w, err, "failed to create activity")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "activityID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req ActivityUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.activityService.Update(r.Context(), types.Activity{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Images:      req.Images,
		Date:        req.Date,
		Type:        req.Type,
	})
	if err != nil {
		writeServiceError(w, err, "failed to update activity")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "activityID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.activityService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "failed to delete activity")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
