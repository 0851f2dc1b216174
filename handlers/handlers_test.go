// ABOUTME: Shared test helpers for the handlers package
// ABOUTME: Builds a Handler against a mock upstream and fakes the auth middleware context

package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/quizforge/quiz-gateway/cache"
	"github.com/quizforge/quiz-gateway/config"
	"github.com/quizforge/quiz-gateway/middleware"
	"github.com/quizforge/quiz-gateway/models"
)

func newTestHandler(t *testing.T, upstreamURL string) *Handler {
	t.Helper()
	cfg := &config.Config{
		Port:           "8080",
		QuizAPIURL:     upstreamURL,
		QuizAPITimeout: 5,
		AttemptTTL:     3600,
		AIProbeTTL:     300,
	}
	return NewHandler(cfg, cache.New(time.Minute))
}

// asAdmin attaches an admin identity the way the auth middleware would.
func asAdmin(r *http.Request) *http.Request {
	return r.WithContext(middleware.WithIdentity(r.Context(), &middleware.Identity{
		User:  &models.User{ID: 1, Email: "a@b.com", Roles: []models.Role{models.RoleAdmin}},
		Token: "t1",
	}))
}

// asStudent attaches a student identity.
func asStudent(r *http.Request) *http.Request {
	return r.WithContext(middleware.WithIdentity(r.Context(), &middleware.Identity{
		User:  &models.User{ID: 2, Email: "s@b.com", Roles: []models.Role{models.RoleStudent}},
		Token: "t2",
	}))
}
