package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abyxtask/taskctl/internal/domain/entities"
	"github.com/abyxtask/taskctl/internal/infrastructure/config"
	"github.com/abyxtask/taskctl/internal/infrastructure/storage"
)

func testClient(t *testing.T, baseURL, stateDir string) *Client {
	t.Helper()

	jar := NewCookieJar(storage.NewStore(stateDir, "session.json"))
	client, err := New(config.APIConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	}, jar, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return client
}

func TestLoginPersistsSessionAcrossRestarts(t *testing.T) {
	var meCookie string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc123"})
		json.NewEncoder(w).Encode(entities.Message{Message: "ok"})
	})
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("session"); err == nil {
			meCookie = c.Value
		}
		json.NewEncoder(w).Encode(entities.User{ID: "u1", Email: "a@b.co", DisplayName: "A"})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	dir := t.TempDir()
	ctx := context.Background()

	client := testClient(t, server.URL, dir)
	msg, err := client.Auth().Login(ctx, entities.LoginRequest{Email: "a@b.co", Password: "secret"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if msg.Message != "ok" {
		t.Errorf("Expected message ok, got %q", msg.Message)
	}

	// A fresh client over the same state directory must still be signed in.
	restarted := testClient(t, server.URL, dir)
	user, err := restarted.Users().Me(ctx)
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if user.ID != "u1" {
		t.Errorf("Expected user u1, got %q", user.ID)
	}
	if meCookie != "abc123" {
		t.Errorf("Expected session cookie abc123 on the request, got %q", meCookie)
	}
}

func TestLoginUnverifiedBranch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(entities.Message{Message: "account not verified"})
	}))
	defer server.Close()

	client := testClient(t, server.URL, t.TempDir())
	_, err := client.Auth().Login(context.Background(), entities.LoginRequest{Email: "a@b.co", Password: "secret"})
	if err == nil {
		t.Fatal("Expected an error for 403")
	}
	if !IsStatus(err, http.StatusForbidden) {
		t.Errorf("Expected a 403 API error, got %v", err)
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Message != "account not verified" {
		t.Errorf("Expected the backend message, got %v", err)
	}
}

func TestTaskListEmptyBoardBranch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := testClient(t, server.URL, t.TempDir())
	_, err := client.Tasks().List(context.Background(), "p1")
	if !IsStatus(err, http.StatusNotFound) {
		t.Errorf("Expected a 404 API error, got %v", err)
	}
}

func TestRequestValidationStopsBeforeSend(t *testing.T) {
	hit := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
	}))
	defer server.Close()

	client := testClient(t, server.URL, t.TempDir())
	_, err := client.Auth().Login(context.Background(), entities.LoginRequest{Email: "not-an-email", Password: "secret"})
	if err == nil {
		t.Fatal("Expected a validation error")
	}
	if hit {
		t.Error("Expected the request to be rejected before reaching the server")
	}
}

func TestRequestIDHeader(t *testing.T) {
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-ID")
		json.NewEncoder(w).Encode([]entities.Project{})
	}))
	defer server.Close()

	client := testClient(t, server.URL, t.TempDir())
	if _, err := client.Projects().List(context.Background()); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if requestID == "" {
		t.Error("Expected an X-Request-ID header on the request")
	}
}

func TestLogoutClearsPersistedCookies(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc123"})
		json.NewEncoder(w).Encode(entities.Message{Message: "ok"})
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(entities.Message{Message: "bye"})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	dir := t.TempDir()
	ctx := context.Background()
	client := testClient(t, server.URL, dir)

	if _, err := client.Auth().Login(ctx, entities.LoginRequest{Email: "a@b.co", Password: "secret"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := client.Auth().Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	store := storage.NewStore(dir, "session.json")
	if stored := store.Get("cookies"); stored != "" {
		t.Errorf("Expected persisted cookies to be cleared, got %q", stored)
	}
}

func TestUpdateProfilePictureMultipart(t *testing.T) {
	var partName, partType, filename string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reader, err := r.MultipartReader()
		if err != nil {
			t.Errorf("Expected a multipart request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		part, err := reader.NextPart()
		if err != nil {
			t.Errorf("Expected a part: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		partName = part.FormName()
		partType = part.Header.Get("Content-Type")
		filename = part.FileName()
		json.NewEncoder(w).Encode(entities.Message{Message: "updated"})
	}))
	defer server.Close()

	imagePath := filepath.Join(t.TempDir(), "avatar.JPG")
	if err := os.WriteFile(imagePath, []byte("not really a jpeg"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	client := testClient(t, server.URL, t.TempDir())
	msg, err := client.Users().UpdateProfilePicture(context.Background(), imagePath)
	if err != nil {
		t.Fatalf("UpdateProfilePicture failed: %v", err)
	}

	if msg.Message != "updated" {
		t.Errorf("Expected message updated, got %q", msg.Message)
	}
	if partName != "profilePicture" {
		t.Errorf("Expected part name profilePicture, got %q", partName)
	}
	if partType != "image/jpeg" {
		t.Errorf("Expected content type image/jpeg, got %q", partType)
	}
	if !strings.HasSuffix(filename, ".JPG") {
		t.Errorf("Expected original filename, got %q", filename)
	}
}

func TestServiceFacadesAreCached(t *testing.T) {
	client := testClient(t, "http://backend.example/api", t.TempDir())

	if client.Auth() != client.Auth() {
		t.Error("Expected Auth facade to be initialized once")
	}
	if client.Tasks() != client.Tasks() {
		t.Error("Expected Tasks facade to be initialized once")
	}
}
