package auth

import (
	"context"

	"github.com/google/uuid"
)

// Roles carried in tokens
const (
	RoleAdmin   = "admin"
	RoleStaff   = "staff"
	RoleViewer  = "viewer"
	RoleService = "service"
)

// Authentication methods
const (
	AuthTypeAPIKey = "api_key"
	AuthTypeJWT    = "jwt"
)

// SystemUserID identifies requests authenticated with the admin API key
var SystemUserID = uuid.Nil

// UserContext holds authenticated user information
type UserContext struct {
	UserID      uuid.UUID
	Username    string
	DisplayName string
	Email       string
	Roles       []string
	AuthType    string
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// MustFromContext extracts user context or panics
func MustFromContext(ctx context.Context) *UserContext {
	user, ok := FromContext(ctx)
	if !ok {
		panic("user context not found in context")
	}
	return user
}

// HasRole checks if user has a specific role
func (u *UserContext) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole checks if user has any of the specified roles
func (u *UserContext) HasAnyRole(roles ...string) bool {
	for _, role := range roles {
		if u.HasRole(role) {
			return true
		}
	}
	return false
}

// CanWrite reports whether the user may change inventory records
func (u *UserContext) CanWrite() bool {
	return u.HasAnyRole(RoleAdmin, RoleStaff, RoleService)
}

func systemUser() *UserContext {
	return &UserContext{
		UserID:      SystemUserID,
		Username:    "system",
		DisplayName: "System",
		Roles:       []string{RoleAdmin, RoleService},
		AuthType:    AuthTypeAPIKey,
	}
}
