// ABOUTME: Configuration loader for the quiz gateway
// ABOUTME: Loads settings from environment variables with defaults

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Server
	Port               string
	CORSAllowedOrigins []string // allowed CORS origins (empty = block all cross-origin)
	CookieSecure       bool     // Set Secure flag on the token cookie (default: true)

	// Upstream quiz API
	QuizAPIURL     string
	QuizAPITimeout int // seconds, default 30

	// Rate Limiting
	RateLimitEnabled bool // Enable rate limiting (default: true)
	RateLimitAuth    int  // Requests per minute for login/register (default: 5)
	RateLimitDefault int  // Requests per minute for all other endpoints (default: 100)

	// In-progress attempt sessions
	AttemptTTL int // seconds an unfinished attempt survives, default 3600

	// AI availability probe
	AIProbeTTL int // seconds to cache the upstream AI availability result, default 300
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),
		CookieSecure:       getEnvBool("COOKIE_SECURE", true),

		QuizAPIURL:     ensureScheme(os.Getenv("QUIZ_API_URL")),
		QuizAPITimeout: getEnvInt("QUIZ_API_TIMEOUT", 30),

		RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitAuth:    getEnvInt("RATE_LIMIT_AUTH", 5),
		RateLimitDefault: getEnvInt("RATE_LIMIT_DEFAULT", 100),

		AttemptTTL: getEnvInt("ATTEMPT_TTL", 3600),
		AIProbeTTL: getEnvInt("AI_PROBE_TTL", 300),
	}

	if cfg.QuizAPIURL == "" {
		return nil, fmt.Errorf("QUIZ_API_URL is required")
	}
	if cfg.QuizAPITimeout < 1 {
		return nil, fmt.Errorf("QUIZ_API_TIMEOUT must be at least 1 second, got %d", cfg.QuizAPITimeout)
	}

	// Validate rate limit values
	for _, rl := range []struct {
		name  string
		value int
	}{
		{"RATE_LIMIT_AUTH", cfg.RateLimitAuth},
		{"RATE_LIMIT_DEFAULT", cfg.RateLimitDefault},
	} {
		if rl.value < 1 || rl.value > 10000 {
			return nil, fmt.Errorf("%s must be between 1 and 10000, got %d", rl.name, rl.value)
		}
	}

	if cfg.AttemptTTL < 60 {
		return nil, fmt.Errorf("ATTEMPT_TTL must be at least 60 seconds, got %d", cfg.AttemptTTL)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ensureScheme adds https:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "https://" + url
	}
	return url
}
