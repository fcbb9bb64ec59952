//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/mastergurukulam/apiserver/config"
	"github.com/mastergurukulam/apiserver/internal/db"
	"github.com/mastergurukulam/apiserver/internal/server"
	_ "github.com/lib/pq"
)

const (
	serverPort = 18080
)

func TestMain(m *testing.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	root, err := repoRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to locate repo root: %v\n", err)
		os.Exit(1)
	}

	if err := dockerCompose(ctx, root, "up", "-d"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start docker compose: %v\n", err)
		os.Exit(1)
	}

	setServerEnv()

	if err := waitForPostgres(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "postgres not ready: %v\n", err)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	if err := runMigrations(root); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run migrations: %v\n", err)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	srv, err := startServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start server: %v\n", err)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	baseURL := fmt.Sprintf("http://localhost:%d", serverPort)
	if err := waitForHealth(ctx, baseURL+"/healthz"); err != nil {
		fmt.Fprintf(os.Stderr, "server not healthy: %v\n", err)
		shutdownServer(srv)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	code := m.Run()

	shutdownServer(srv)
	_ = dockerCompose(context.Background(), root, "down")
	os.Exit(code)
}

func TestAdminAndContentLifecycle(t *testing.T) {
	baseURL := fmt.Sprintf("http://localhost:%d", serverPort)

	// The default superadmin is seeded on first boot.
	token, err := login(t, baseURL, "admin", "admin123")
	if err != nil {
		t.Fatalf("login default superadmin: %v", err)
	}

	// Wrong password gets the same uniform rejection as unknown users.
	if _, err := login(t, baseURL, "admin", "nope"); err == nil {
		t.Fatal("expected wrong password to fail")
	}
	if _, err := login(t, baseURL, "ghost", "nope"); err == nil {
		t.Fatal("expected unknown username to fail")
	}

	// Create a moderator and exercise content management with it.
	modName := fmt.Sprintf("mod_%d", time.Now().UnixNano())
	if err := createAccount(t, baseURL, token, modName, "modpass1", "moderator"); err != nil {
		t.Fatalf("create moderator: %v", err)
	}

	modToken, err := login(t, baseURL, modName, "modpass1")
	if err != nil {
		t.Fatalf("login moderator: %v", err)
	}

	courseID, err := createCourse(t, baseURL, modToken)
	if err != nil {
		t.Fatalf("create course: %v", err)
	}

	// Public read, no token.
	if err := getCourse(t, baseURL, courseID); err != nil {
		t.Fatalf("get course: %v", err)
	}

	// Mutation without a token is rejected.
	if err := deleteCourse(t, baseURL, "", courseID); err == nil {
		t.Fatal("expected unauthenticated delete to fail")
	}
	if err := deleteCourse(t, baseURL, modToken, courseID); err != nil {
		t.Fatalf("delete course: %v", err)
	}

	// A public enquiry lands in the back office.
	contactID, err := submitEnquiry(t, baseURL)
	if err != nil {
		t.Fatalf("submit enquiry: %v", err)
	}
	if err := getContact(t, baseURL, modToken, contactID); err != nil {
		t.Fatalf("read enquiry: %v", err)
	}
}

type loginResponse struct {
	Token string `json:"token"`
}

type idResponse struct {
	ID int `json:"id"`
}

func login(t *testing.T, baseURL, username, password string) (string, error) {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := http.Post(baseURL+"/admin/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("login status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if parsed.Token == "" {
		return "", fmt.Errorf("missing token in login response")
	}
	return parsed.Token, nil
}

func createAccount(t *testing.T, baseURL, token, username, password, role string) error {
	t.Helper()

	payload := map[string]string{
		"username": username,
		"password": password,
		"email":    username + "@example.com",
		"role":     role,
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequest(http.MethodPost, baseURL+"/admin/accounts", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("create account status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}

func createCourse(t *testing.T, baseURL, token string) (int, error) {
	t.Helper()

	payload := map[string]string{
		"title":       "Foundation Batch",
		"duration":    "1 year",
		"description": "Class 10 foundation course",
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequest(http.MethodPost, baseURL+"/courses", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("create course status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed idResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, err
	}
	return parsed.ID, nil
}

func getCourse(t *testing.T, baseURL string, id int) error {
	t.Helper()

	resp, err := http.Get(fmt.Sprintf("%s/courses/%d", baseURL, id))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get course status %d", resp.StatusCode)
	}
	return nil
}

func deleteCourse(t *testing.T, baseURL, token string, id int) error {
	t.Helper()

	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/courses/%d", baseURL, id), nil)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("delete course status %d", resp.StatusCode)
	}
	return nil
}

func submitEnquiry(t *testing.T, baseURL string) (int, error) {
	t.Helper()

	payload := map[string]string{
		"name":    "A Parent",
		"email":   "parent@example.com",
		"mobile":  "9876543210",
		"message": "When does admission open?",
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(baseURL+"/contacts", "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("submit enquiry status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed idResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, err
	}
	return parsed.ID, nil
}

func getContact(t *testing.T, baseURL, token string, id int) error {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/admin/contacts/%d", baseURL, id), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get contact status %d", resp.StatusCode)
	}
	return nil
}

func setServerEnv() {
	_ = os.Setenv("JWT_SECRET", "test-secret")
	_ = os.Setenv("SERVER_PORT", fmt.Sprintf("%d", serverPort))
	_ = os.Setenv("DB_HOST", "localhost")
	_ = os.Setenv("DB_PORT", "5432")
	_ = os.Setenv("DB_USER", "gurukulam")
	_ = os.Setenv("DB_PASSWORD", "gurukulam")
	_ = os.Setenv("DB_NAME", "gurukulam")
	_ = os.Setenv("DB_USE_SSL", "false")
	_ = os.Setenv("NOTIFY_BACKEND", "")
	_ = os.Setenv("BCRYPT_COST", "4")
}

func startServer() (*server.Server, error) {
	cfg := config.LoadConfig()
	srv, err := server.New(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	go func() {
		_ = srv.Start()
	}()

	return srv, nil
}

func shutdownServer(srv *server.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}

func waitForPostgres(ctx context.Context) error {
	cfg := config.LoadConfig()
	conn, err := sql.Open("postgres", db.DSN(cfg))
	if err != nil {
		return err
	}
	defer conn.Close()

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := conn.PingContext(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("postgres ping timeout: %w", err)
		case <-ticker.C:
		}
	}
}

func waitForHealth(ctx context.Context, url string) error {
	client := &http.Client{Timeout: 2 * time.Second}
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			return fmt.Errorf("health check failed with status")
		case <-ticker.C:
		}
	}
}

func runMigrations(root string) error {
	cfg := config.LoadConfig()
	migrationsPath := filepath.Join(root, "internal", "db", "migrations")
	migrationsURL := "file://" + migrationsPath

	migrator, err := migrate.New(migrationsURL, db.DSN(cfg))
	if err != nil {
		return err
	}
	defer func() {
		_, _ = migrator.Close()
	}()

	if err := migrator.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func dockerCompose(ctx context.Context, root string, args ...string) error {
	composeFile := filepath.Join(root, "development", "docker-compose.yml")
	baseArgs := append([]string{"compose", "-f", composeFile}, args...)
	cmd := exec.CommandContext(ctx, "docker", baseArgs...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found")
		}
		dir = parent
	}
}
