// ABOUTME: Upstream auth client: login, logout, current-user, registration
// ABOUTME: Single source of truth for talking to the backend auth endpoints

package services

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/quizforge/quiz-gateway/models"
)

// AuthClient wraps the upstream authentication endpoints. "Authenticated" is
// defined operationally: the upstream currently accepts the token and returns
// a user. The token is never decoded locally.
type AuthClient struct {
	api *apiClient
}

func NewAuthClient(baseURL string, timeout time.Duration) *AuthClient {
	return &AuthClient{api: newAPIClient(baseURL, timeout)}
}

// rawUser is the upstream /api/users/me payload before role validation.
type rawUser struct {
	ID        int      `json:"id"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
}

// Login exchanges credentials for a bearer token. Expected failures (bad
// credentials, locked account) come back as *APIError carrying the upstream
// message; only transport problems surface as ErrUnavailable.
func (c *AuthClient) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{
		"username": email,
		"password": password,
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := c.api.doJSON(ctx, http.MethodPost, "/api/login_check", "", body, &resp); err != nil {
		return "", err
	}

	if resp.Token == "" {
		return "", &APIError{StatusCode: http.StatusBadGateway, Message: "Erreur lors de la connexion"}
	}
	return resp.Token, nil
}

// Logout notifies the upstream, best effort. The caller clears the token
// store unconditionally regardless of the outcome here.
func (c *AuthClient) Logout(ctx context.Context, token string) {
	if _, err := c.api.do(ctx, http.MethodPost, "/api/logout", token, nil); err != nil {
		slog.Debug("Upstream logout failed", "error", err)
	}
}

// CurrentUser fetches the account behind the token. An empty token returns
// (nil, nil) without a network call. A 401 returns ErrUnauthorized so the
// caller can tear the session down; any other failure fails closed with a
// nil user.
func (c *AuthClient) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}

	var raw rawUser
	if err := c.api.doJSON(ctx, http.MethodGet, "/api/users/me", token, nil, &raw); err != nil {
		return nil, err
	}

	return &models.User{
		ID:        raw.ID,
		Email:     raw.Email,
		Roles:     models.ParseRoles(raw.Roles),
		FirstName: raw.FirstName,
		LastName:  raw.LastName,
	}, nil
}

// IsAuthenticated reports whether the upstream currently accepts the token.
func (c *AuthClient) IsAuthenticated(ctx context.Context, token string) bool {
	user, err := c.CurrentUser(ctx, token)
	return err == nil && user != nil
}

// HasRole checks a role against a freshly fetched user.
func (c *AuthClient) HasRole(ctx context.Context, token string, role models.Role) bool {
	user, err := c.CurrentUser(ctx, token)
	if err != nil {
		return false
	}
	return user.HasRole(role)
}

func (c *AuthClient) IsAdmin(ctx context.Context, token string) bool {
	return c.HasRole(ctx, token, models.RoleAdmin)
}

func (c *AuthClient) IsStudent(ctx context.Context, token string) bool {
	return c.HasRole(ctx, token, models.RoleStudent)
}

// Register creates a new account.
func (c *AuthClient) Register(ctx context.Context, req models.RegisterRequest) error {
	return c.api.doJSON(ctx, http.MethodPost, "/api/users/register", "", req, nil)
}

// ForgotPassword asks the upstream to mail a reset link.
func (c *AuthClient) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.api.doJSON(ctx, http.MethodPost, "/api/mail/forgot-password", "", body, nil)
}

// ResetPassword completes a mailed reset flow.
func (c *AuthClient) ResetPassword(ctx context.Context, resetToken, password string) error {
	body := map[string]string{"token": resetToken, "password": password}
	return c.api.doJSON(ctx, http.MethodPost, "/api/mail/reset-password", "", body, nil)
}
