package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mastergurukulam/apiserver/internal/auth"
	"github.com/mastergurukulam/apiserver/internal/services"
	"github.com/mastergurukulam/apiserver/internal/store"
	"github.com/mastergurukulam/apiserver/types"
)

type memCourseRepo struct {
	nextID  int
	courses map[int]types.Course
}

func newMemCourseRepo() *memCourseRepo {
	return &memCourseRepo{nextID: 1, courses: map[int]types.Course{}}
}

func (m *memCourseRepo) List(_ context.Context, offset, limit int) ([]types.Course, int, error) {
	out := make([]types.Course, 0, len(m.courses))
	for _, course := range m.courses {
		out = append(out, course)
	}
	total := len(out)
	if offset >= len(out) {
		return []types.Course{}, total, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (m *memCourseRepo) Get(_ context.Context, id int) (types.Course, error) {
	course, ok := m.courses[id]
	if !ok {
		return types.Course{}, store.ErrNotFound
	}
	return course, nil
}

func (m *memCourseRepo) Create(_ context.Context, course types.Course) (types.Course, error) {
	course.ID = m.nextID
	course.CreatedAt = time.Now()
	course.UpdatedAt = course.CreatedAt
	m.nextID++
	m.courses[course.ID] = course
	return course, nil
}

func (m *memCourseRepo) Update(_ context.Context, course types.Course) (types.Course, error) {
	if _, ok := m.courses[course.ID]; !ok {
		return types.Course{}, store.ErrNotFound
	}
	course.UpdatedAt = time.Now()
	m.courses[course.ID] = course
	return course, nil
}

func (m *memCourseRepo) Delete(_ context.Context, id int) error {
	if _, ok := m.courses[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.courses, id)
	return nil
}

func newCourseTestServer(t *testing.T) (*httptest.Server, *auth.TokenService) {
	t.Helper()

	tokens := auth.NewTokenService("test-secret", time.Hour)
	courseService := services.NewCourseService(newMemCourseRepo())

	router := chi.NewRouter()
	router.Route("/courses", func(r chi.Router) {
		CourseRouter(r, courseService, RequireAuth(tokens))
	})

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, tokens
}

func TestCourseListIsPublic(t *testing.T) {
	ts, _ := newCourseTestServer(t)

	resp, err := http.Get(ts.URL + "/courses")
	if err != nil {
		t.Fatalf("get courses: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestCourseMutationRequiresToken(t *testing.T) {
	ts, _ := newCourseTestServer(t)

	payload := CourseUpsertRequest{Title: "Physics", Duration: "2 years", Description: "Mechanics to optics"}

	resp := doJSON(t, http.MethodPost, ts.URL+"/courses", "", payload)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, ts.URL+"/courses", "garbage", payload)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", resp.StatusCode)
	}
}

func TestCourseLifecycleWithModeratorToken(t *testing.T) {
	ts, tokens := newCourseTestServer(t)

	token, err := tokens.Issue(7, types.RoleModerator)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	resp := doJSON(t, http.MethodPost, ts.URL+"/courses", token, CourseUpsertRequest{
		Title:       "Physics",
		Duration:    "2 years",
		Description: "Mechanics to optics",
	})
	if resp.StatusCode != http.StatusCreated {
		resp.Body.Close()
		t.Fatalf("create status %d", resp.StatusCode)
	}
	created := decodeBody[types.Course](t, resp)
	if created.ID == 0 {
		t.Fatal("expected id to be set")
	}

	resp = doJSON(t, http.MethodPut, ts.URL+"/courses/"+strconv.Itoa(created.ID), token, CourseUpsertRequest{
		Title:       "Physics (updated)",
		Duration:    "2 years",
		Description: "Mechanics to optics",
	})
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		t.Fatalf("update status %d", resp.StatusCode)
	}
	updated := decodeBody[types.Course](t, resp)
	if updated.Title != "Physics (updated)" {
		t.Fatalf("unexpected title: %q", updated.Title)
	}

	// Anyone can read it back.
	getResp, err := http.Get(ts.URL + "/courses/" + strconv.Itoa(created.ID))
	if err != nil {
		t.Fatalf("get course: %v", err)
	}
	fetched := decodeBody[types.Course](t, getResp)
	if fetched.ID != created.ID {
		t.Fatalf("unexpected id: %d", fetched.ID)
	}

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/courses/"+strconv.Itoa(created.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete course: %v", err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status %d", delResp.StatusCode)
	}

	getResp, err = http.Get(ts.URL + "/courses/" + strconv.Itoa(created.ID))
	if err != nil {
		t.Fatalf("get deleted course: %v", err)
	}
	getResp.Body.Close()
	if getResp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", getResp.StatusCode)
	}
}

func TestCourseValidation(t *testing.T) {
	ts, tokens := newCourseTestServer(t)

	token, err := tokens.Issue(7, types.RoleAdmin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	resp := doJSON(t, http.MethodPost, ts.URL+"/courses", token, CourseUpsertRequest{Title: "   "})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
