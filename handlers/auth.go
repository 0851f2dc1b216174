// ABOUTME: Auth handlers implementing the BFF token-cookie pattern
// ABOUTME: Login stores the upstream token in an httpOnly cookie; it never reaches page scripts

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/quizforge/quiz-gateway/models"
	"github.com/quizforge/quiz-gateway/services"
)

// Login exchanges credentials for an upstream token and stores it in the
// cookie. The token itself is never returned to the browser.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if violations := h.forms.Check(req); violations != nil {
		h.writeViolations(w, violations)
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) || services.StatusOf(err) == http.StatusUnauthorized {
			slog.Warn("Login failed", "email", req.Email)
			h.writeJSON(w, http.StatusUnauthorized, models.LoginResponse{
				Success: false,
				Message: "Email ou mot de passe incorrect",
			})
			return
		}
		h.writeUpstreamError(w, err)
		return
	}

	user, err := h.auth.CurrentUser(r.Context(), token)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}

	h.tokens.Set(w, token)
	slog.Info("Login succeeded", "email", req.Email)

	h.writeJSON(w, http.StatusOK, models.LoginResponse{
		Success: true,
		User:    user,
	})
}

// Logout clears the cookie and tells the upstream, best effort. The cookie
// goes regardless of what the upstream says.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := h.tokens.Get(r); token != "" {
		h.auth.Logout(r.Context(), token)
	}

	h.tokens.Clear(w)
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Me reports the caller's authentication state. This route carries no guard:
// an absent or rejected token answers authenticated=false rather than an
// error, so the page can render either way.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	token := h.tokens.Get(r)
	user, err := h.auth.CurrentUser(r.Context(), token)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			h.tokens.Clear(w)
			h.writeJSON(w, http.StatusOK, models.UserInfoResponse{Authenticated: false})
			return
		}
		h.writeUpstreamError(w, err)
		return
	}
	if user == nil {
		h.writeJSON(w, http.StatusOK, models.UserInfoResponse{Authenticated: false})
		return
	}

	h.writeJSON(w, http.StatusOK, models.UserInfoResponse{
		Authenticated: true,
		User:          user,
	})
}

// Register creates an account. The new user still logs in afterwards; no
// token is issued here.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if violations := h.forms.Check(req); violations != nil {
		h.writeViolations(w, violations)
		return
	}

	if err := h.auth.Register(r.Context(), req); err != nil {
		h.writeUpstreamError(w, err)
		return
	}

	slog.Info("Account registered", "email", req.Email)
	h.writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

// ForgotPassword relays a reset-link request. The response never reveals
// whether the address exists.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if !h.decodeBody(w, r, &req) {
		return
	}
	if violations := h.forms.Check(req); violations != nil {
		h.writeViolations(w, violations)
		return
	}

	if err := h.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		slog.Warn("Forgot-password relay failed", "error", err)
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Si un compte existe avec cette adresse, un email de réinitialisation a été envoyé.",
	})
}

// ResetPassword completes a mailed reset flow.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token" validate:"required"`
		Password string `json:"password" validate:"required,min=6"`
	}
	if !h.decodeBody(w, r, &req) {
		return
	}
	if violations := h.forms.Check(req); violations != nil {
		h.writeViolations(w, violations)
		return
	}

	if err := h.auth.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		h.writeUpstreamError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Mot de passe réinitialisé. Vous pouvez vous connecter.",
	})
}
