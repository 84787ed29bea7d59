package middleware

import (
	"net/http"

	"github.com/dtroode/authkeeper/internal/api/http/httpx"
	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
)

// TokenParser verifies access tokens.
type TokenParser interface {
	Parse(token string) (model.Claims, error)
}

// Authenticate validates the access token cookie and injects claims into
// the request context.
type Authenticate struct {
	tokens         TokenParser
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokens TokenParser, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokens: tokens, contextManager: contextManager, logger: logger}
}

// Handle rejects requests without a valid access token with 401.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(httpx.TokenCookieName)
		if err != nil || cookie.Value == "" {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "missing access token")
			return
		}

		claims, err := m.tokens.Parse(cookie.Value)
		if err != nil {
			m.logger.Debug("HTTP authentication failed",
				"path", r.URL.Path,
				"error", err.Error())
			httpx.RespondError(w, err)
			return
		}

		ctx := m.contextManager.SetClaimsToContext(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole admits only requests whose claims carry role. It must run
// after Authenticate.
func RequireRole(contextManager model.ContextManager, role model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := contextManager.GetClaimsFromContext(r.Context())
			if !ok {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "missing access token")
				return
			}
			if claims.Role != role {
				httpx.Problem(w, http.StatusForbidden, "Forbidden", "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
