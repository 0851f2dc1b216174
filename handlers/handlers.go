// ABOUTME: HTTP handlers for the quiz gateway API
// ABOUTME: Shared handler state, JSON helpers, and upstream error mapping

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/quizforge/quiz-gateway/cache"
	"github.com/quizforge/quiz-gateway/config"
	"github.com/quizforge/quiz-gateway/middleware"
	"github.com/quizforge/quiz-gateway/models"
	"github.com/quizforge/quiz-gateway/services"
)

type Handler struct {
	cfg      *config.Config
	cache    *cache.Cache
	auth     *services.AuthClient
	quiz     *services.QuizClient
	ai       *services.AIClient
	attempts *services.AttemptFlow
	forms    *services.FormValidator
	tokens   middleware.TokenStore
}

func NewHandler(cfg *config.Config, c *cache.Cache) *Handler {
	timeout := time.Duration(cfg.QuizAPITimeout) * time.Second
	quiz := services.NewQuizClient(cfg.QuizAPIURL, timeout)
	return &Handler{
		cfg:      cfg,
		cache:    c,
		auth:     services.NewAuthClient(cfg.QuizAPIURL, timeout),
		quiz:     quiz,
		ai:       services.NewAIClient(cfg.QuizAPIURL, timeout),
		attempts: services.NewAttemptFlow(quiz, c, time.Duration(cfg.AttemptTTL)*time.Second),
		forms:    services.NewFormValidator(),
		tokens:   middleware.TokenStore{Secure: cfg.CookieSecure},
	}
}

// TokenStore exposes the cookie store for middleware wiring.
func (h *Handler) TokenStore() middleware.TokenStore {
	return h.tokens
}

// CurrentUser exposes the auth lookup for middleware wiring.
func (h *Handler) CurrentUser() middleware.CurrentUserFunc {
	return h.auth.CurrentUser
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{Error: message, Code: code})
}

func (h *Handler) writeViolations(w http.ResponseWriter, violations []models.FieldViolation) {
	h.writeJSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{
		Error:      "Données invalides. Vérifiez vos informations.",
		Code:       http.StatusUnprocessableEntity,
		Violations: violations,
	})
}

// writeUpstreamError maps an upstream failure onto the gateway's error
// envelope. A 401 tears the session down: the cookie is cleared and the
// browser is told where to go, whatever route the failure surfaced on.
func (h *Handler) writeUpstreamError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrUnauthorized) {
		h.tokens.Clear(w)
		h.writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{
			Error:    "Session expirée. Veuillez vous reconnecter.",
			Code:     http.StatusUnauthorized,
			Redirect: "/login",
		})
		return
	}

	if errors.Is(err, services.ErrUnavailable) {
		h.writeError(w, "Erreur réseau. Vérifiez votre connexion.", http.StatusBadGateway)
		return
	}

	var apiErr *services.APIError
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" {
			message = messageForStatus(apiErr.StatusCode)
		}
		h.writeError(w, message, apiErr.StatusCode)
		return
	}

	slog.Error("Unexpected upstream error", "error", err)
	h.writeError(w, "Une erreur est survenue. Réessayez plus tard.", http.StatusInternalServerError)
}

func messageForStatus(status int) string {
	switch status {
	case http.StatusForbidden:
		return "Accès non autorisé."
	case http.StatusNotFound:
		return "Ressource introuvable."
	case http.StatusConflict:
		return "Cette ressource existe déjà."
	case http.StatusUnprocessableEntity:
		return "Données invalides. Vérifiez vos informations."
	default:
		return "Une erreur est survenue. Réessayez plus tard."
	}
}

// decodeBody reads a JSON request body, replying 400 itself on failure.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, "Requête invalide", http.StatusBadRequest)
		return false
	}
	return true
}

// identity returns the caller resolved by the auth middleware. Handlers on
// guarded routes can assume it is present; the empty fallback keeps a
// misconfigured route from panicking.
func (h *Handler) identity(r *http.Request) *middleware.Identity {
	if id := middleware.GetIdentity(r); id != nil {
		return id
	}
	return &middleware.Identity{User: &models.User{}}
}
