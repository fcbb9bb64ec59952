package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mastergurukulam/apiserver/internal/services"
	"github.com/mastergurukulam/apiserver/types"
)

var contactEmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ContactHandler provides HTTP handlers for contact enquiries. Submission
// is public; reading and deleting enquiries is back-office only.
type ContactHandler struct {
	contactService *services.ContactService
}

func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// ContactRouter registers the public enquiry submission route.
func ContactRouter(r chi.Router, contactService *services.ContactService) {
	handler := NewContactHandler(contactService)
	r.Post("/", handler.Create)
}

// ContactReviewRouter registers the back-office enquiry routes.
func ContactReviewRouter(r chi.Router, contactService *services.ContactService, requireAuth func(http.Handler) http.Handler) {
	handler := NewContactHandler(contactService)
	review := RequireRole(types.RoleSuperAdmin, types.RoleAdmin, types.RoleModerator)

	r.Use(requireAuth, review)
	r.Get("/", handler.List)
	r.Route("/{contactID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.Delete("/", handler.Delete)
	})
}

type ContactListResponse struct {
	Items []types.Contact `json:"items"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
	Total int             `json:"total"`
}

type ContactCreateRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
	Message string `json:"message"`
}

func (req *ContactCreateRequest) validate() error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Mobile = strings.TrimSpace(req.Mobile)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return errRequired("name, email, and message")
	}
	if !contactEmailPattern.MatchString(req.Email) {
		return errors.New("invalid email address")
	}
	return nil
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ContactCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.contactService.Create(r.Context(), types.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Mobile:  req.Mobile,
		Message: req.Message,
	})
	if err != nil {
		writeServiceError(w, err, "failed to submit enquiry")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, total, err := h.contactService.List(r.Context(), offset, limit)
	if err != nil {
		writeServiceError(w, err, "failed to list enquiries")
		return
	}

	writeJSON(w, http.StatusOK, ContactListResponse{Items: items, Page: page, Limit: limit, Total: total})
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "contactID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	contact, err := h.contactService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to fetch enquiry")
		return
	}

	writeJSON(w, http.StatusOK, contact)
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "contactID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.contactService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "failed to delete enquiry")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
