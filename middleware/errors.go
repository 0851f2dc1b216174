// ABOUTME: JSON error response helpers for middleware
// ABOUTME: Middleware failures use the same envelope as handler errors

package middleware

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/quizforge/quiz-gateway/models"
)

// writeJSONError writes an error response as JSON with the given status code.
// Matches the format used by the handlers package for consistency.
func writeJSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// writeLoginRedirect sends the caller to the login page. Browser navigations
// get a real redirect; API calls get a JSON envelope naming the target so the
// page script can navigate, with the original path preserved for return.
func writeLoginRedirect(w http.ResponseWriter, r *http.Request, message string) {
	from := r.URL.Path
	if r.Method == http.MethodGet && acceptsHTML(r) {
		q := url.Values{"from": {from}, "reason": {message}}
		http.Redirect(w, r, "/login?"+q.Encode(), http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Error:    message,
		Code:     http.StatusUnauthorized,
		Redirect: "/login",
		From:     from,
	})
}

func acceptsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
