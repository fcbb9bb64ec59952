package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mastergurukulam/apiserver/internal/services"
	"github.com/mastergurukulam/apiserver/types"
)

// VideoHandler provides HTTP handlers for videos.
type VideoHandler struct {
	videoService *services.VideoService
}

func NewVideoHandler(videoService *services.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// VideoRouter registers video routes.
func VideoRouter(r chi.Router, videoService *services.VideoService, requireAuth func(http.Handler) http.Handler) {
	handler := NewVideoHandler(videoService)
	manage := RequireRole(types.RoleSuperAdmin, types.RoleAdmin, types.RoleModerator)

	r.Get("/", handler.List)
	r.With(requireAuth, manage).Post("/", handler.Create)
	r.Route("/{videoID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.With(requireAuth, manage).Put("/", handler.Update)
		r.With(requireAuth, manage).Delete("/", handler.Delete)
	})
}

type VideoListResponse struct {
	Items []types.Video `json:"items"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
	Total int           `json:"total"`
}

type VideoUpsertRequest struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

func (req *VideoUpsertRequest) validate() error {
	req.URL = strings.TrimSpace(req.URL)
	req.Type = strings.TrimSpace(strings.ToLower(req.Type))
	if req.URL == "" || req.Type == "" {
		return errRequired("url and type")
	}
	if !types.VideoType(req.Type).Valid() {
		return errors.New("type must be youtube or mp4")
	}
	return nil
}

func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, total, err := h.videoService.List(r.Context(), offset, limit)
	if err != nil {
		writeServiceError(w, err, "failed to list videos")
		return
	}

	writeJSON(w, http.StatusOK, VideoListResponse{Items: items, Page: page, Limit: limit, Total: total})
}

func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "videoID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	video, err := h.videoService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to fetch video")
		return
	}

	writeJSON(w, http.StatusOK, video)
}

func (h *VideoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req VideoUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.videoService.Create(r.Context(), types.Video{
		URL:  req.URL,
		Type: types.VideoType(req.Type),
	})
	if err != nil {
		writeServiceError(w, err, "failed to create video")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "videoID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req VideoUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.videoService.Update(r.Context(), types.Video{
		ID:   id,
		URL:  req.URL,
		Type: types.VideoType(req.Type),
	})
	if err != nil {
		writeServiceError(w, err, "failed to update video")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "videoID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.videoService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "failed to delete video")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
