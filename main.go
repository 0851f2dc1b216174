// ABOUTME: Entry point for the quiz gateway service
// ABOUTME: Owns the token cookie and fronts the upstream quiz REST API for the browser

package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/quizforge/quiz-gateway/cache"
	"github.com/quizforge/quiz-gateway/config"
	"github.com/quizforge/quiz-gateway/handlers"
	"github.com/quizforge/quiz-gateway/logger"
	"github.com/quizforge/quiz-gateway/middleware"
)

func main() {
	// A .env file is a local-dev convenience; absence is not an error.
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded .env file")
	}

	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting quiz gateway")
	slog.Info("Upstream configured", "url", cfg.QuizAPIURL, "timeout_s", cfg.QuizAPITimeout)
	if !cfg.CookieSecure {
		slog.Warn("Token cookie is not marked Secure; use only for local development")
	}

	c := cache.New(time.Duration(cfg.AttemptTTL) * time.Second)
	h := handlers.NewHandler(cfg, c)

	mux := buildMux(cfg, h)

	addr := ":" + cfg.Port
	slog.Info("Server listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// buildMux registers every route with its middleware chain: logging and CORS
// on everything, authentication plus the route guard on protected routes, and
// the rate limit class the route declares.
func buildMux(cfg *config.Config, h *handlers.Handler) *http.ServeMux {
	var authLimiter, defaultLimiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		authLimiter = middleware.NewRateLimiter(cfg.RateLimitAuth, time.Minute)
		defaultLimiter = middleware.NewRateLimiter(cfg.RateLimitDefault, time.Minute)
		slog.Info("Rate limiting enabled", "auth_per_min", cfg.RateLimitAuth, "default_per_min", cfg.RateLimitDefault)
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

	return mux
}
