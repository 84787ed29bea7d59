package middleware

import (
	"context"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
)

// TokenParser verifies access tokens.
type TokenParser interface {
	Parse(token string) (model.Claims, error)
}

// Authenticate validates bearer tokens and injects claims into context.
// Only admin tokens are admitted.
type Authenticate struct {
	tokens         TokenParser
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokens TokenParser, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokens: tokens, contextManager: contextManager, logger: logger}
}

// AuthFunc parses the authorization header, validates the token and returns a
// context carrying the claims.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	var tokenString string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if authHeaders := md.Get("authorization"); len(authHeaders) > 0 {
			tokenString = strings.TrimPrefix(authHeaders[0], "Bearer ")
		}
	}

	if tokenString == "" {
		return nil, status.Error(codes.Unauthenticated, "missing authorization token")
	}

	claims, err := m.tokens.Parse(tokenString)
	if err != nil {
		m.logger.Debug("gRPC authentication failed",
			"error", err.Error())
		return nil, status.Error(codes.Unauthenticated, "invalid authorization token")
	}

	if !claims.IsAdmin() {
		m.logger.Info("gRPC request by non-admin",
			"email", claims.Email)
		return nil, status.Error(codes.PermissionDenied, "admin role required")
	}

	return m.contextManager.SetClaimsToContext(ctx, claims), nil
}
