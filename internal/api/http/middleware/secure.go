package middleware

import (
	"net/http"

	"github.com/unrolled/secure"

	"github.com/dtroode/authkeeper/internal/logger"
)

// Secure sets security response headers.
type Secure struct {
	secure *secure.Secure
	logger *logger.Logger
}

// NewSecure creates the security header middleware. When https is set,
// plain HTTP requests are redirected and HSTS is sent.
func NewSecure(https bool, logger *logger.Logger) *Secure {
	opts := secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		SSLRedirect:           https,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:         !https,
	}
	if https {
		opts.STSSeconds = 31536000
		opts.STSIncludeSubdomains = true
	}

	return &Secure{secure: secure.New(opts), logger: logger}
}

// Handle applies the security headers before calling next.
func (s *Secure) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := s.secure.Process(w, r); err != nil {
			s.logger.Warn("secure headers blocked request",
				"path", r.URL.Path,
				"error", err.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}
