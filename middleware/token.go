// ABOUTME: Bearer-token cookie store
// ABOUTME: The token never reaches page scripts; it lives in an HttpOnly cookie owned by the gateway

package middleware

import (
	"net/http"
)

// TokenCookieName is the cookie carrying the upstream bearer token.
const TokenCookieName = "jwt_token"

// tokenMaxAge keeps the cookie for 7 days, matching the upstream token
// lifetime.
const tokenMaxAge = 7 * 24 * 3600

// TokenStore reads and writes the token cookie. Secure controls the cookie's
// Secure flag and is off only in local development over plain HTTP.
type TokenStore struct {
	Secure bool
}

// Get returns the stored token, or "" when the cookie is absent.
func (s TokenStore) Get(r *http.Request) string {
	cookie, err := r.Cookie(TokenCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Set stores a token. SameSite=Lax keeps the cookie on top-level navigation
// while blocking cross-site subresource requests.
func (s TokenStore) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   tokenMaxAge,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the cookie immediately.
func (s TokenStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
