// ABOUTME: Authentication middleware resolving the cookie token to a user
// ABOUTME: The upstream is the only judge of a token; nothing is decoded locally

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/quizforge/quiz-gateway/models"
	"github.com/quizforge/quiz-gateway/services"
)

// CurrentUserFunc resolves a token to the account behind it. It returns
// services.ErrUnauthorized when the upstream no longer accepts the token.
type CurrentUserFunc func(ctx context.Context, token string) (*models.User, error)

// Identity is the resolved caller, stored in the request context for the
// duration of one request. Nothing is cached between requests; each request
// re-asks the upstream so a revoked token is caught immediately.
type Identity struct {
	User  *models.User
	Token string
}

// contextKey is a private type for context keys to avoid collisions
type contextKey string

const identityKey contextKey = "identity"

// Authenticate returns middleware that requires a valid token cookie. The
// resolved Identity is placed in the request context. Requests without a
// token, or with one the upstream rejects, are redirected to login; a
// rejected token is also cleared so the next request starts clean.
func Authenticate(store TokenStore, currentUser CurrentUserFunc) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token := store.Get(r)
			if token == "" {
				slog.Debug("Auth rejected: no token", "path", r.URL.Path)
				writeLoginRedirect(w, r, "Veuillez vous connecter pour accéder à cette page")
				return
			}

			user, err := currentUser(r.Context(), token)
			if err != nil {
				if errors.Is(err, services.ErrUnauthorized) {
					slog.Info("Auth rejected: token no longer valid", "path", r.URL.Path)
					store.Clear(w)
					writeLoginRedirect(w, r, "Session expirée. Veuillez vous reconnecter.")
					return
				}
				slog.Error("Auth check failed", "path", r.URL.Path, "error", err)
				writeJSONError(w, "Erreur réseau. Vérifiez votre connexion.", http.StatusBadGateway)
				return
			}
			if user == nil {
				writeLoginRedirect(w, r, "Veuillez vous connecter pour accéder à cette page")
				return
			}

			ctx := WithIdentity(r.Context(), &Identity{User: user, Token: token})
			next(w, r.WithContext(ctx))
		}
	}
}

// WithIdentity stores a resolved caller in the context.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentity returns the resolved caller, or nil outside an authenticated
// route.
func GetIdentity(r *http.Request) *Identity {
	identity, _ := r.Context().Value(identityKey).(*Identity)
	return identity
}
