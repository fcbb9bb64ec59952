package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mastergurukulam/apiserver/internal/auth"
	"github.com/mastergurukulam/apiserver/internal/services"
	"github.com/mastergurukulam/apiserver/internal/store"
	"github.com/mastergurukulam/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

// memAdminRepo is an in-memory services.AdminRepository with the same
// case-insensitive uniqueness behavior as the database indexes.
type memAdminRepo struct {
	nextID int
	admins map[int]types.Admin
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{nextID: 1, admins: map[int]types.Admin{}}
}

func (m *memAdminRepo) GetByID(_ context.Context, id int) (types.Admin, error) {
	admin, ok := m.admins[id]
	if !ok {
		return types.Admin{}, store.ErrNotFound
	}
	return admin, nil
}

func (m *memAdminRepo) GetByUsername(_ context.Context, username string) (types.Admin, error) {
	for _, admin := range m.admins {
		if strings.EqualFold(admin.Username, username) {
			return admin, nil
		}
	}
	return types.Admin{}, store.ErrNotFound
}

func (m *memAdminRepo) GetByEmail(_ context.Context, email string) (types.Admin, error) {
	for _, admin := range m.admins {
		if strings.EqualFold(admin.Email, email) {
			return admin, nil
		}
	}
	return types.Admin{}, store.ErrNotFound
}

func (m *memAdminRepo) List(_ context.Context) ([]types.Admin, error) {
	out := make([]types.Admin, 0, len(m.admins))
	for _, admin := range m.admins {
		out = append(out, admin)
	}
	return out, nil
}

func (m *memAdminRepo) Create(_ context.Context, admin types.Admin) (types.Admin, error) {
	for _, existing := range m.admins {
		if strings.EqualFold(existing.Username, admin.Username) || strings.EqualFold(existing.Email, admin.Email) {
			return types.Admin{}, store.ErrDuplicate
		}
	}
	admin.ID = m.nextID
	admin.CreatedAt = time.Now()
	admin.UpdatedAt = admin.CreatedAt
	m.nextID++
	m.admins[admin.ID] = admin
	return admin, nil
}

func (m *memAdminRepo) Update(_ context.Context, admin types.Admin) (types.Admin, error) {
	if _, ok := m.admins[admin.ID]; !ok {
		return types.Admin{}, store.ErrNotFound
	}
	admin.UpdatedAt = time.Now()
	m.admins[admin.ID] = admin
	return admin, nil
}

func (m *memAdminRepo) Delete(_ context.Context, id int) error {
	if _, ok := m.admins[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.admins, id)
	return nil
}

func newAdminTestServer(t *testing.T) (*httptest.Server, *services.AdminService, *auth.TokenService) {
	t.Helper()

	repo := newMemAdminRepo()
	tokens := auth.NewTokenService("test-secret", time.Hour)
	adminService := services.NewAdminService(repo, tokens, bcrypt.MinCost, nil)

	if err := adminService.EnsureDefaultAdmin(context.Background()); err != nil {
		t.Fatalf("seed default admin: %v", err)
	}

	router := chi.NewRouter()
	router.Route("/admin", func(r chi.Router) {
		AdminRouter(r, adminService, RequireAuth(tokens))
	})

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, adminService, tokens
}

func doJSON(t *testing.T, method, url, token string, payload any) *http.Response {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func loginAs(t *testing.T, baseURL, username, password string) (string, AdminView) {
	t.Helper()

	resp := doJSON(t, http.MethodPost, baseURL+"/admin/login", "", LoginRequest{Username: username, Password: password})
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		t.Fatalf("login status %d", resp.StatusCode)
	}
	parsed := decodeBody[LoginResponse](t, resp)
	if parsed.Token == "" {
		t.Fatal("missing token in login response")
	}
	return parsed.Token, parsed.Admin
}

func TestLoginDefaultSuperadmin(t *testing.T) {
	ts, _, _ := newAdminTestServer(t)

	token, admin := loginAs(t, ts.URL, "admin", "admin123")
	if token == "" {
		t.Fatal("expected a token")
	}
	if admin.Role != types.RoleSuperAdmin {
		t.Fatalf("expected superadmin, got %q", admin.Role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	ts, _, _ := newAdminTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/admin/login", "", LoginRequest{Username: "admin", Password: "wrong"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestAccountLifecycle(t *testing.T) {
	ts, _, _ := newAdminTestServer(t)
	token, _ := loginAs(t, ts.URL, "admin", "admin123")

	// Create a moderator.
	resp := doJSON(t, http.MethodPost, ts.URL+"/admin/accounts", token, CreateAccountRequest{
		Username: "mod1",
		Password: "modpass1",
		Email:    "mod1@example.com",
		Role:     types.RoleModerator,
	})
	if resp.StatusCode != http.StatusCreated {
		resp.Body.Close()
		t.Fatalf("create account status %d", resp.StatusCode)
	}
	created := decodeBody[AdminView](t, resp)
	if created.Role != types.RoleModerator {
		t.Fatalf("unexpected role: %q", created.Role)
	}

	// Duplicate username is rejected regardless of case.
	resp = doJSON(t, http.MethodPost, ts.URL+"/admin/accounts", token, CreateAccountRequest{
		Username: "MOD1",
		Password: "modpass1",
		Email:    "other@example.com",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate, got %d", resp.StatusCode)
	}

	// The new moderator can log in and see itself.
	modToken, _ := loginAs(t, ts.URL, "mod1", "modpass1")
	resp = doJSON(t, http.MethodGet, ts.URL+"/admin/me", modToken, nil)
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		t.Fatalf("me status %d", resp.StatusCode)
	}
	me := decodeBody[AdminView](t, resp)
	if me.Username != "mod1" {
		t.Fatalf("unexpected username: %q", me.Username)
	}

	// Moderators cannot create accounts.
	resp = doJSON(t, http.MethodPost, ts.URL+"/admin/accounts", modToken, CreateAccountRequest{
		Username: "mod2",
		Password: "modpass2",
		Email:    "mod2@example.com",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for moderator, got %d", resp.StatusCode)
	}

	// Superadmin deletes the moderator; its token still names a
	// now-missing account.
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/admin/accounts/"+strconv.Itoa(created.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete account: %v", err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status %d", delResp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/admin/me", modToken, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for deleted account, got %d", resp.StatusCode)
	}
}

func TestAccountEditRequiresSuperadmin(t *testing.T) {
	ts, _, _ := newAdminTestServer(t)
	token, _ := loginAs(t, ts.URL, "admin", "admin123")

	resp := doJSON(t, http.MethodPost, ts.URL+"/admin/accounts", token, CreateAccountRequest{
		Username: "helper",
		Password: "helperpass",
		Email:    "helper@example.com",
		Role:     types.RoleAdmin,
	})
	if resp.StatusCode != http.StatusCreated {
		resp.Body.Close()
		t.Fatalf("create account status %d", resp.StatusCode)
	}
	created := decodeBody[AdminView](t, resp)

	helperToken, _ := loginAs(t, ts.URL, "helper", "helperpass")

	// A plain admin may not edit accounts.
	resp = doJSON(t, http.MethodPut, ts.URL+"/admin/accounts/"+strconv.Itoa(created.ID), helperToken, UpdateAccountRequest{
		Email: "changed@example.com",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for admin edit, got %d", resp.StatusCode)
	}

	// The superadmin may.
	resp = doJSON(t, http.MethodPut, ts.URL+"/admin/accounts/"+strconv.Itoa(created.ID), token, UpdateAccountRequest{
		Email: "changed@example.com",
	})
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		t.Fatalf("superadmin edit status %d", resp.StatusCode)
	}
	updated := decodeBody[AdminView](t, resp)
	if updated.Email != "changed@example.com" {
		t.Fatalf("unexpected email: %q", updated.Email)
	}
}

func TestProtectedRoutesRejectBadTokens(t *testing.T) {
	ts, _, _ := newAdminTestServer(t)

	for _, token := range []string{"", "garbage", "aaaa.bbbb.cccc"} {
		resp := doJSON(t, http.MethodGet, ts.URL+"/admin/me", token, nil)
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("token %q: expected 401, got %d", token, resp.StatusCode)
		}
	}
}

