// ABOUTME: Route guard deciding who may enter a route and where everyone else goes
// ABOUTME: The decision logic is a pure function so every role and route combination is testable

package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/quizforge/quiz-gateway/models"
)

// Decision is the guard verdict for one request. When Allow is false, Target
// names where the caller belongs instead.
type Decision struct {
	Allow  bool
	Target string
}

// Decide applies the route guard rules. An unauthenticated caller always goes
// to login. A caller with the required role passes. A caller with the wrong
// role is sent to their own area rather than an error page, except that a
// student already on the student area with no student role goes to login to
// avoid a redirect loop.
func Decide(authenticated bool, roles []models.Role, required models.Role, currentPath string) Decision {
	if !authenticated {
		return Decision{Target: "/login"}
	}
	if required == "" {
		return Decision{Allow: true}
	}

	user := models.User{Roles: roles}
	if user.HasRole(required) {
		return Decision{Allow: true}
	}

	switch {
	case user.IsAdmin():
		return Decision{Target: "/admin"}
	case user.IsStudent():
		if currentPath == "/student" {
			return Decision{Target: "/login"}
		}
		return Decision{Target: "/student"}
	default:
		return Decision{Target: "/login"}
	}
}

// RequireRole returns middleware enforcing a role on routes already behind
// Authenticate. Denied callers get a 403 naming their own area so the page
// script can navigate there.
func RequireRole(required models.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r)
			if identity == nil {
				writeLoginRedirect(w, r, "Veuillez vous connecter pour accéder à cette page")
				return
			}

			decision := Decide(true, identity.User.Roles, required, r.URL.Path)
			if !decision.Allow {
				slog.Warn("Route guard denied",
					"path", r.URL.Path,
					"method", r.Method,
					"required_role", string(required),
					"user", identity.User.Email,
				)
				writeForbidden(w, "Accès non autorisé. Rôle requis: "+string(required), decision.Target)
				return
			}

			next(w, r)
		}
	}
}

func writeForbidden(w http.ResponseWriter, message, target string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Error:    message,
		Code:     http.StatusForbidden,
		Redirect: target,
	})
}
