package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mastergurukulam/apiserver/internal/services"
	"github.com/mastergurukulam/apiserver/types"
)

// AdminHandler provides login and account-management endpoints.
type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// AdminRouter registers the /admin routes. Account creation and listing
// require superadmin or admin; edits and deletes require superadmin.
func AdminRouter(r chi.Router, adminService *services.AdminService, requireAuth func(http.Handler) http.Handler) {
	handler := NewAdminHandler(adminService)

	r.Post("/login", handler.Login)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/me", handler.Me)

		r.Route("/accounts", func(r chi.Router) {
			manage := RequireRole(types.RoleSuperAdmin, types.RoleAdmin)
			super := RequireRole(types.RoleSuperAdmin)

			r.With(manage).Post("/", handler.CreateAccount)
			r.With(manage).Get("/", handler.ListAccounts)
			r.With(super).Put("/{accountID}", handler.UpdateAccount)
			r.With(super).Delete("/{accountID}", handler.DeleteAccount)
		})
	})
}

// AdminView is the sanitized account representation returned by the API.
// The password hash is never included.
type AdminView struct {
	ID        int        `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      types.Role `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
}

func toAdminView(admin types.Admin) AdminView {
	return AdminView{
		ID:        admin.ID,
		Username:  admin.Username,
		Email:     admin.Email,
		Role:      admin.Role,
		CreatedAt: admin.CreatedAt,
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	Admin AdminView `json:"admin"`
}

// Login verifies credentials and returns a session token. Unknown
// usernames and wrong passwords produce identical 401 responses.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	token, admin, err := h.adminService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err, "failed to authenticate")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token, Admin: toAdminView(admin)})
}

// Me returns the account behind the presented token.
func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	admin, err := h.adminService.GetByID(r.Context(), claims.AdminID)
	if err != nil {
		writeServiceError(w, err, "failed to load account")
		return
	}

	writeJSON(w, http.StatusOK, toAdminView(admin))
}

type CreateAccountRequest struct {
	Username string     `json:"username"`
	Password string     `json:"password"`
	Email    string     `json:"email"`
	Role     types.Role `json:"role"`
}

func (h *AdminHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	admin, err := h.adminService.CreateAccount(r.Context(), claims.Role, services.CreateAccountInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Role:     req.Role,
	})
	if err != nil {
		writeServiceError(w, err, "failed to create account")
		return
	}

	writeJSON(w, http.StatusCreated, toAdminView(admin))
}

func (h *AdminHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	admins, err := h.adminService.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to list accounts")
		return
	}

	views := make([]AdminView, 0, len(admins))
	for _, admin := range admins {
		views = append(views, toAdminView(admin))
	}
	writeJSON(w, http.StatusOK, views)
}

type UpdateAccountRequest struct {
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Role     types.Role `json:"role"`

	// Password is optional: when omitted the existing hash is kept.
	Password string `json:"password"`
}

func (h *AdminHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "accountID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	admin, err := h.adminService.UpdateAccount(r.Context(), id, services.UpdateAccountInput{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, err, "failed to update account")
		return
	}

	writeJSON(w, http.StatusOK, toAdminView(admin))
}

func (h *AdminHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "accountID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.adminService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "failed to delete account")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
