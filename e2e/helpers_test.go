// ABOUTME: Test helpers for e2e tests
// ABOUTME: Builds a full gateway with its middleware chains against a scripted mock upstream

package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quizforge/quiz-gateway/cache"
	"github.com/quizforge/quiz-gateway/config"
	"github.com/quizforge/quiz-gateway/handlers"
	"github.com/quizforge/quiz-gateway/middleware"
)

// upstreamUser scripts one account on the mock upstream.
type upstreamUser struct {
	Email    string
	Password string
	Token    string
	Roles    []string
}

// newUpstream serves the slice of the upstream REST API the e2e scenarios
// touch: login, current-user, and a one-question public quiz.
func newUpstream(t *testing.T, users []upstreamUser) *httptest.Server {
	t.Helper()

	byToken := make(map[string]upstreamUser)
	for _, u := range users {
		byToken[u.Token] = u
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/login_check":
			var creds map[string]string
			json.NewDecoder(r.Body).Decode(&creds)
			for _, u := range users {
				if u.Email == creds["username"] && u.Password == creds["password"] {
					json.NewEncoder(w).Encode(map[string]string{"token": u.Token})
					return
				}
			}
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials."})

		case "/api/users/me":
			token := bearer(r)
			u, ok := byToken[token]
			if !ok {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id":    1,
				"email": u.Email,
				"roles": u.Roles,
			})

		case "/api/logout":
			w.WriteHeader(http.StatusOK)

		case "/api/questionnaires":
			if _, ok := byToken[bearer(r)]; !ok {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode([]map[string]interface{}{
				{"id": 5, "title": "Go basics", "accessCode": "ABC123", "isActive": true},
			})

		case "/api/quizzes/play/code/ABC123":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id": 5, "title": "Go basics", "accessCode": "ABC123", "isActive": true,
			})

		case "/api/public/questionnaires/5":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id": 5, "title": "Go basics",
				"questions": []map[string]interface{}{
					{
						"id": 1, "texte": "Combien font 2 + 2 ?", "numeroOrdre": 1,
						"reponses": []map[string]interface{}{
							{"id": 11, "texte": "4", "numeroOrdre": 1},
							{"id": 12, "texte": "5", "numeroOrdre": 2},
						},
					},
				},
			})

		case "/api/public/questionnaires/5/submit":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"tentativeId": 42, "bonnesReponses": 1, "totalQuestions": 1,
			})

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func bearer(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if len(auth) > 7 && auth[:7] == "Bearer " {
		return auth[7:]
	}
	return ""
}

// newGateway wires the handler, middleware chains, and route table the way
// main does, returning the gateway as a test server.
func newGateway(t *testing.T, upstreamURL string, rateLimitAuth int) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		Port:             "8080",
		QuizAPIURL:       upstreamURL,
		QuizAPITimeout:   5,
		RateLimitEnabled: rateLimitAuth > 0,
		RateLimitAuth:    rateLimitAuth,
		RateLimitDefault: 1000,
		AttemptTTL:       3600,
		AIProbeTTL:       300,
	}

	h := handlers.NewHandler(cfg, cache.New(time.Minute))

	var authLimiter, defaultLimiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		authLimiter = middleware.NewRateLimiter(cfg.RateLimitAuth, time.Minute)
		defaultLimiter = middleware.NewRateLimiter(cfg.RateLimitDefault, time.Minute)
	}

	cors := middleware.CORS(cfg.CORSAllowedOrigins)
	authenticate := middleware.Authenticate(h.TokenStore(), h.CurrentUser())

	mux := http.NewServeMux()
	for _, route := range h.Routes() {
		chain := []func(http.HandlerFunc) http.HandlerFunc{
			middleware.LogRequest,
			cors,
		}
		if route.AuthLimit {
			chain = append(chain, middleware.RateLimit(authLimiter, middleware.ClientIP))
		} else {
			chain = append(chain, middleware.RateLimit(defaultLimiter, middleware.TokenOrIP))
		}
		if !route.Public {
			chain = append(chain, authenticate)
			if route.Role != "" {
				chain = append(chain, middleware.RequireRole(route.Role))
			}
		}
		mux.HandleFunc(route.Method+" "+route.Path, middleware.Chain(route.Handler, chain...))
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// tokenCookie finds the gateway token cookie in a response, nil if absent.
func tokenCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == middleware.TokenCookieName {
			return c
		}
	}
	return nil
}
