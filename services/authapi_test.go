// ABOUTME: Tests for the upstream auth client
// ABOUTME: Exercises login, current-user, and the 401 teardown signal against a mock upstream

package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quizforge/quiz-gateway/models"
)

func TestAuthClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/login_check" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var creds map[string]string
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if creds["username"] == "a@b.com" && creds["password"] == "secret1" {
			json.NewEncoder(w).Encode(map[string]string{"token": "t1"})
			return
		}

		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials."})
	}))
	defer server.Close()

	client := NewAuthClient(server.URL, 5*time.Second)

	token, err := client.Login(context.Background(), "a@b.com", "secret1")
	if err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}
	if token != "t1" {
		t.Errorf("expected token t1, got %q", token)
	}

	_, err = client.Login(context.Background(), "a@b.com", "wrong")
	if err == nil {
		t.Fatal("expected login with bad password to fail")
	}
}

func TestAuthClient_Login_EmptyToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	client := NewAuthClient(server.URL, 5*time.Second)

	_, err := client.Login(context.Background(), "a@b.com", "secret1")
	if err == nil {
		t.Fatal("expected an error when the upstream returns no token")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", apiErr.StatusCode)
	}
}

func TestAuthClient_CurrentUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/me" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("Authorization") != "Bearer t1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":        7,
			"email":     "a@b.com",
			"roles":     []string{"ROLE_ADMIN", "ROLE_MYSTERY"},
			"firstName": "Alice",
			"lastName":  "Martin",
		})
	}))
	defer server.Close()

	client := NewAuthClient(server.URL, 5*time.Second)

	user, err := client.CurrentUser(context.Background(), "t1")
	if err != nil {
		t.Fatalf("expected current user, got %v", err)
	}
	if user.ID != 7 || user.Email != "a@b.com" {
		t.Errorf("unexpected user: %+v", user)
	}
	if !user.IsAdmin() {
		t.Error("expected user to be admin")
	}
	// Unknown roles are dropped at the boundary.
	if len(user.Roles) != 1 {
		t.Errorf("expected 1 recognized role, got %v", user.Roles)
	}
}

func TestAuthClient_CurrentUser_ExpiredToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewAuthClient(server.URL, 5*time.Second)

	_, err := client.CurrentUser(context.Background(), "expired")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if client.IsAuthenticated(context.Background(), "expired") {
		t.Error("expected IsAuthenticated to be false for a rejected token")
	}
}

func TestAuthClient_CurrentUser_EmptyToken(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewAuthClient(server.URL, 5*time.Second)

	user, err := client.CurrentUser(context.Background(), "")
	if err != nil {
		t.Fatalf("expected nil error for empty token, got %v", err)
	}
	if user != nil {
		t.Errorf("expected nil user for empty token, got %+v", user)
	}
	if requests != 0 {
		t.Errorf("expected no upstream call for empty token, got %d", requests)
	}
}

func TestAuthClient_HasRole(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":    3,
			"email": "s@b.com",
			"roles": []string{"ROLE_USER"},
		})
	}))
	defer server.Close()

	client := NewAuthClient(server.URL, 5*time.Second)

	if !client.IsStudent(context.Background(), "t1") {
		t.Error("expected student role")
	}
	if client.IsAdmin(context.Background(), "t1") {
		t.Error("did not expect admin role")
	}
	if !client.HasRole(context.Background(), "t1", models.RoleStudent) {
		t.Error("expected HasRole ROLE_USER")
	}
}

func TestAuthClient_Unavailable(t *testing.T) {
	client := NewAuthClient("http://127.0.0.1:1", 200*time.Millisecond)

	_, err := client.Login(context.Background(), "a@b.com", "secret1")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
