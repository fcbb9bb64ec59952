package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mastergurukulam/apiserver/internal/auth"
	"github.com/mastergurukulam/apiserver/internal/services"
	"github.com/mastergurukulam/apiserver/internal/store"
	"github.com/mastergurukulam/apiserver/types"
)

type memContactRepo struct {
	nextID   int
	contacts map[int]types.Contact
}

func newMemContactRepo() *memContactRepo {
	return &memContactRepo{nextID: 1, contacts: map[int]types.Contact{}}
}

func (m *memContactRepo) List(_ context.Context, offset, limit int) ([]types.Contact, int, error) {
	out := make([]types.Contact, 0, len(m.contacts))
	for _, contact := range m.contacts {
		out = append(out, contact)
	}
	total := len(out)
	if offset >= len(out) {
		return []types.Contact{}, total, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (m *memContactRepo) Get(_ context.Context, id int) (types.Contact, error) {
	contact, ok := m.contacts[id]
	if !ok {
		return types.Contact{}, store.ErrNotFound
	}
	return contact, nil
}

func (m *memContactRepo) Create(_ context.Context, contact types.Contact) (types.Contact, error) {
	contact.ID = m.nextID
	contact.CreatedAt = time.Now()
	contact.UpdatedAt = contact.CreatedAt
	m.nextID++
	m.contacts[contact.ID] = contact
	return contact, nil
}

func (m *memContactRepo) Delete(_ context.Context, id int) error {
	if _, ok := m.contacts[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.contacts, id)
	return nil
}

func newContactTestServer(t *testing.T) (*httptest.Server, *auth.TokenService) {
	t.Helper()

	tokens := auth.NewTokenService("test-secret", time.Hour)
	contactService := services.NewContactService(newMemContactRepo(), nil)

	router := chi.NewRouter()
	router.Route("/contacts", func(r chi.Router) {
		ContactRouter(r, contactService)
	})
	router.Route("/admin/contacts", func(r chi.Router) {
		ContactReviewRouter(r, contactService, RequireAuth(tokens))
	})

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, tokens
}

func TestContactSubmissionIsPublic(t *testing.T) {
	ts, _ := newContactTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/contacts", "", ContactCreateRequest{
		Name:    "A Parent",
		Email:   "Parent@Example.com",
		Mobile:  "9876543210",
		Message: "When does admission open?",
	})
	if resp.StatusCode != http.StatusCreated {
		resp.Body.Close()
		t.Fatalf("submit status %d", resp.StatusCode)
	}
	created := decodeBody[types.Contact](t, resp)
	if created.ID == 0 {
		t.Fatal("expected id to be set")
	}
	if created.Email != "parent@example.com" {
		t.Fatalf("expected lowercased email, got %q", created.Email)
	}
}

func TestContactSubmissionValidation(t *testing.T) {
	ts, _ := newContactTestServer(t)

	cases := []struct {
		name    string
		payload ContactCreateRequest
	}{
		{"missing fields", ContactCreateRequest{Name: "X"}},
		{"bad email", ContactCreateRequest{Name: "X", Email: "not-an-email", Message: "hi"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, ts.URL+"/contacts", "", tc.payload)
			resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestContactListRequiresToken(t *testing.T) {
	ts, tokens := newContactTestServer(t)

	resp, err := http.Get(ts.URL + "/admin/contacts")
	if err != nil {
		t.Fatalf("get contacts: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	token, err := tokens.Issue(3, types.RoleModerator)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	authed := doJSON(t, http.MethodGet, ts.URL+"/admin/contacts", token, nil)
	defer authed.Body.Close()
	if authed.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for moderator, got %d", authed.StatusCode)
	}
}
