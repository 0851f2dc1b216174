// ABOUTME: Auth request/response models for the BFF token-cookie pattern
// ABOUTME: Defines the user identity, closed role set, and login/logout API contracts

package models

// Role is a coarse permission tag granted by the upstream identity service.
// The set is closed; raw role strings are validated at the auth-client
// boundary and anything unknown is dropped.
type Role string

const (
	RoleAdmin   Role = "ROLE_ADMIN"
	RoleStudent Role = "ROLE_USER"
)

// ParseRoles maps raw role strings from the upstream into the closed Role set.
func ParseRoles(raw []string) []Role {
	roles := make([]Role, 0, len(raw))
	for _, r := range raw {
		switch Role(r) {
		case RoleAdmin, RoleStudent:
			roles = append(roles, Role(r))
		}
	}
	return roles
}

// User is the authenticated account as reported by the upstream.
// Replaced wholesale on every authentication check, never partially mutated.
type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	Roles     []Role `json:"roles"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role Role) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool   { return u.HasRole(RoleAdmin) }
func (u *User) IsStudent() bool { return u.HasRole(RoleStudent) }

// LoginRequest carries credentials from the browser to the gateway.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents the result of a login attempt.
type LoginResponse struct {
	Success bool   `json:"success"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}

// UserInfoResponse represents the current user's authentication state.
type UserInfoResponse struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user,omitempty"`
}

// RegisterRequest carries a new account registration.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required,min=2,max=50"`
	LastName  string `json:"lastName" validate:"required,min=2,max=50"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error      string           `json:"error"`
	Code       int              `json:"code"`
	Redirect   string           `json:"redirect,omitempty"`
	From       string           `json:"from,omitempty"`
	Violations []FieldViolation `json:"violations,omitempty"`
}

// FieldViolation pins a validation error to the offending field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
