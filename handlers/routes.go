// ABOUTME: Declarative route table for the gateway API
// ABOUTME: Each route names its handler, its guard role, and its rate-limit class

package handlers

import (
	"net/http"

	"github.com/quizforge/quiz-gateway/models"
)

// Route defines an API endpoint. Public routes skip the authentication
// middleware entirely; everything else runs behind it, with Role adding the
// route guard on top. AuthLimit marks credential endpoints for the tight
// per-IP rate limit.
type Route struct {
	Method    string
	Path      string
	Handler   http.HandlerFunc
	Public    bool
	Role      models.Role
	AuthLimit bool
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health & session
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health, Public: true},
		{Method: http.MethodPost, Path: "/api/v1/login", Handler: h.Login, Public: true, AuthLimit: true},
		{Method: http.MethodPost, Path: "/api/v1/logout", Handler: h.Logout, Public: true},
		{Method: http.MethodGet, Path: "/api/v1/me", Handler: h.Me, Public: true},
		{Method: http.MethodPost, Path: "/api/v1/register", Handler: h.Register, Public: true, AuthLimit: true},
		{Method: http.MethodPost, Path: "/api/v1/password/forgot", Handler: h.ForgotPassword, Public: true, AuthLimit: true},
		{Method: http.MethodPost, Path: "/api/v1/password/reset", Handler: h.ResetPassword, Public: true, AuthLimit: true},

		// Participant attempt flow. Public: joining a quiz takes an access
		// code and a name, not an account.
		{Method: http.MethodPost, Path: "/api/v1/attempts", Handler: h.JoinAttempt, Public: true},
		{Method: http.MethodGet, Path: "/api/v1/attempts/{sessionId}", Handler: h.AttemptView, Public: true},
		{Method: http.MethodPost, Path: "/api/v1/attempts/{sessionId}/answers", Handler: h.SelectAnswer, Public: true},
		{Method: http.MethodPost, Path: "/api/v1/attempts/{sessionId}/next", Handler: h.NextQuestion, Public: true},
		{Method: http.MethodPost, Path: "/api/v1/attempts/{sessionId}/back", Handler: h.PreviousQuestion, Public: true},
		{Method: http.MethodGet, Path: "/api/v1/results/{tentativeId}", Handler: h.AttemptResult, Public: true},

		// Student area
		{Method: http.MethodGet, Path: "/api/v1/student/history", Handler: h.History, Role: models.RoleStudent},
		{Method: http.MethodGet, Path: "/api/v1/student/history/{attemptId}", Handler: h.HistoryDetail, Role: models.RoleStudent},

		// Admin area
		{Method: http.MethodGet, Path: "/api/v1/admin/dashboard", Handler: h.Dashboard, Role: models.RoleAdmin},
		{Method: http.MethodGet, Path: "/api/v1/admin/quizzes", Handler: h.ListQuizzes, Role: models.RoleAdmin},
		{Method: http.MethodPost, Path: "/api/v1/admin/quizzes", Handler: h.CreateQuiz, Role: models.RoleAdmin},
		{Method: http.MethodGet, Path: "/api/v1/admin/quizzes/{id}", Handler: h.QuizDetail, Role: models.RoleAdmin},
		{Method: http.MethodPut, Path: "/api/v1/admin/quizzes/{id}/active", Handler: h.ToggleQuiz, Role: models.RoleAdmin},
		{Method: http.MethodDelete, Path: "/api/v1/admin/quizzes/{id}", Handler: h.DeleteQuiz, Role: models.RoleAdmin},
		{Method: http.MethodPost, Path: "/api/v1/admin/quizzes/{id}/questions", Handler: h.CreateQuestion, Role: models.RoleAdmin},
		{Method: http.MethodPost, Path: "/api/v1/admin/quizzes/{id}/questions/bulk", Handler: h.BulkCreateQuestions, Role: models.RoleAdmin},
		{Method: http.MethodPut, Path: "/api/v1/admin/quizzes/{id}/questions/{questionId}", Handler: h.UpdateQuestion, Role: models.RoleAdmin},
		{Method: http.MethodDelete, Path: "/api/v1/admin/questions/{questionId}", Handler: h.DeleteQuestion, Role: models.RoleAdmin},
		{Method: http.MethodGet, Path: "/api/v1/admin/quizzes/{id}/results", Handler: h.QuizResults, Role: models.RoleAdmin},
		{Method: http.MethodGet, Path: "/api/v1/admin/quizzes/{id}/results/{attemptId}", Handler: h.StudentAttemptDetail, Role: models.RoleAdmin},
		{Method: http.MethodGet, Path: "/api/v1/admin/ai/availability", Handler: h.AIAvailability, Role: models.RoleAdmin},
		{Method: http.MethodPost, Path: "/api/v1/admin/ai/generate", Handler: h.GenerateQuestions, Role: models.RoleAdmin},

		// Landing redirect
		{Method: http.MethodGet, Path: "/{$}", Handler: h.Home, Public: true},
	}
}

// Home sends the caller to their area: admins to /admin, students to
// /student, everyone else to /login.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	token := h.tokens.Get(r)
	user, err := h.auth.CurrentUser(r.Context(), token)
	if err != nil || user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	switch {
	case user.IsAdmin():
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	case user.IsStudent():
		http.Redirect(w, r, "/student", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}
