package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpcontext "github.com/dtroode/authkeeper/internal/api/http/context"
	"github.com/dtroode/authkeeper/internal/api/http/httpx"
	"github.com/dtroode/authkeeper/internal/mocks"
	"github.com/dtroode/authkeeper/internal/model"
	"github.com/dtroode/authkeeper/internal/testutil"
)

func echoClaims(cm model.ContextManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := cm.GetClaimsFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_, _ = w.Write([]byte(claims.Email))
	})
}

func TestAuthenticate_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		cookie     *http.Cookie
		claims     model.Claims
		parseErr   error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing cookie",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty cookie",
			cookie:     &http.Cookie{Name: httpx.TokenCookieName, Value: ""},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			cookie:     &http.Cookie{Name: httpx.TokenCookieName, Value: "bad"},
			parseErr:   model.ErrInvalidToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			cookie:     &http.Cookie{Name: httpx.TokenCookieName, Value: "good"},
			claims:     model.Claims{Email: "a@x.com", Role: model.RoleSimpleUser},
			wantStatus: http.StatusOK,
			wantBody:   "a@x.com",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens := mocks.NewTokenManager(t)
			if tt.cookie != nil && tt.cookie.Value != "" {
				tokens.On("Parse", tt.cookie.Value).Return(tt.claims, tt.parseErr)
			}
			cm := httpcontext.NewManager()
			m := NewAuthenticate(tokens, cm, testutil.MakeNoopLogger())

			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()
			m.Handle(echoClaims(cm)).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		claims     *model.Claims
		wantStatus int
	}{
		{name: "no claims", wantStatus: http.StatusUnauthorized},
		{name: "simple user", claims: &model.Claims{Email: "b@x.com", Role: model.RoleSimpleUser}, wantStatus: http.StatusForbidden},
		{name: "admin", claims: &model.Claims{Email: "r@x.com", Role: model.RoleAdmin}, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cm := mocks.NewContextManager(t)
			if tt.claims != nil {
				cm.On("GetClaimsFromContext", mock.Anything).Return(*tt.claims, true)
			} else {
				cm.On("GetClaimsFromContext", mock.Anything).Return(model.Claims{}, false)
			}

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			rec := httptest.NewRecorder()
			RequireRole(cm, model.RoleAdmin)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/users", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestLogging_Handle(t *testing.T) {
	t.Parallel()

	l := NewLogging(testutil.MakeNoopLogger())

	for _, status := range []int{0, http.StatusCreated, http.StatusNotFound, http.StatusInternalServerError} {
		status := status
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if status != 0 {
				w.WriteHeader(status)
			}
			_, _ = w.Write([]byte("body"))
		})

		rec := httptest.NewRecorder()
		l.Handle(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

		want := status
		if want == 0 {
			want = http.StatusOK
		}
		assert.Equal(t, want, rec.Code)
		assert.Equal(t, "body", rec.Body.String())
	}
}

func TestSecure_Handle(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	NewSecure(false, testutil.MakeNoopLogger()).Handle(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))

	rec = httptest.NewRecorder()
	NewSecure(true, testutil.MakeNoopLogger()).Handle(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://example.com/healthz", nil))
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
}
