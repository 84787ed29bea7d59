package context

import (
	"context"

	"google.golang.org/grpc/metadata"

	"github.com/dtroode/authkeeper/internal/model"
)

// Metadata keys used to carry verified claims in the incoming gRPC context.
const (
	emailKey string = "x-claims-email"
	roleKey  string = "x-claims-role"
)

// Manager represents a gRPC context manager for verified claims.
// It stores claims in incoming metadata after authentication succeeded.
type Manager struct{}

// NewManager creates a new gRPC context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetClaimsToContext sets the claims in the incoming gRPC metadata,
// overwriting whatever the client sent under the same keys.
func (m *Manager) SetClaimsToContext(ctx context.Context, claims model.Claims) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		md = metadata.New(nil)
	} else {
		md = md.Copy()
	}
	md.Set(emailKey, claims.Email)
	md.Set(roleKey, claims.Role.String())

	return metadata.NewIncomingContext(ctx, md)
}

// GetClaimsFromContext retrieves claims from incoming gRPC metadata.
func (m *Manager) GetClaimsFromContext(ctx context.Context) (model.Claims, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return model.Claims{}, false
	}

	emails := md.Get(emailKey)
	roles := md.Get(roleKey)
	if len(emails) == 0 || len(roles) == 0 || emails[0] == "" {
		return model.Claims{}, false
	}

	role := model.Role(roles[0])
	if !role.Valid() {
		return model.Claims{}, false
	}

	return model.Claims{Email: emails[0], Role: role}, true
}
