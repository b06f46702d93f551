// Package auth provides bearer-token authentication and role enforcement
// for the back-office API. Roles are carried in the JWT and enforced per
// route group; "admin" implies every other role.
package auth

import "context"

type contextKey int

const (
	userIDKey contextKey = iota
	rolesKey
)

// WithUser returns a context carrying the authenticated user and roles.
func WithUser(ctx context.Context, userID string, roles []string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, rolesKey, roles)
}

// UserIDFromContext returns the authenticated user id, or "".
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// RolesFromContext returns the authenticated user's roles.
func RolesFromContext(ctx context.Context) []string {
	roles, _ := ctx.Value(rolesKey).([]string)
	return roles
}
