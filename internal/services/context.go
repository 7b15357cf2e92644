package services

import (
	"context"

	"studio-proof/internal/domain/session"
	"studio-proof/pkg/logger"
)

// WithRole stores the requester role on ctx. The logger picks it up from the same key.
func WithRole(ctx context.Context, role session.Role) context.Context {
	return context.WithValue(ctx, logger.RoleKey, string(role))
}

// RoleFromContext returns the requester role, defaulting to client.
func RoleFromContext(ctx context.Context) session.Role {
	value, ok := ctx.Value(logger.RoleKey).(string)
	if !ok {
		return session.RoleClient
	}
	return session.Role(value)
}
