package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpcontext "github.com/dtroode/authkeeper/internal/api/http/context"
	"github.com/dtroode/authkeeper/internal/api/http/httpx"
	"github.com/dtroode/authkeeper/internal/mocks"
	"github.com/dtroode/authkeeper/internal/model"
	"github.com/dtroode/authkeeper/internal/testutil"
	"github.com/dtroode/authkeeper/internal/token"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func setup(t *testing.T) (http.Handler, *mocks.AccountService, *token.JWT) {
	t.Helper()

	tokens, err := token.NewJWT("router-secret", "HS256", time.Minute)
	require.NoError(t, err)
	svc := mocks.NewAccountService(t)

	r := New(svc, tokens, okPinger{}, httpcontext.NewManager(), Options{RequestTimeout: time.Second}, testutil.MakeNoopLogger())
	return r.Register(), svc, tokens
}

func do(h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: httpx.TokenCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_PublicRoutes(t *testing.T) {
	h, svc, _ := setup(t)

	rec := do(h, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Content-Type-Options"))

	svc.On("Login", mock.Anything, "a@x.com", "secret!1").Return("tok", nil)
	rec = do(h, http.MethodPost, "/api/v1/users/login", `{"email":"a@x.com","password":"secret!1"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	svc.On("Register", mock.Anything, mock.Anything).Return(model.Account{ExternalID: uuid.New()}, nil)
	rec = do(h, http.MethodPost, "/api/v1/users", `{"given_name":"Al","family_name":"Sm","patronymic":"Ja","email":"a@x.com","password":"secret!1","confirm_password":"secret!1"}`, "")
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = do(h, http.MethodPost, "/api/v1/users/logout", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, http.MethodGet, "/api/v1/nowhere", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_AuthenticatedRoutes(t *testing.T) {
	h, svc, tokens := setup(t)

	userToken, err := tokens.Issue(model.Claims{Email: "a@x.com", Role: model.RoleSimpleUser})
	require.NoError(t, err)

	for _, path := range []string{"/api/v1/users/me", "/api/v1/mock/products", "/api/v1/mock/orders"} {
		rec := do(h, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)

		rec = do(h, http.MethodGet, path, "", "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := do(h, http.MethodGet, "/api/v1/mock/products", "", userToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	svc.On("GetProfile", mock.Anything, mock.MatchedBy(func(c model.Claims) bool {
		return c.Email == "a@x.com" && c.Role == model.RoleSimpleUser
	})).Return(model.Account{Email: "a@x.com", Role: model.RoleSimpleUser}, nil)
	rec = do(h, http.MethodGet, "/api/v1/users/me", "", userToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	svc.On("SoftDelete", mock.Anything, mock.Anything, "").Return(nil)
	rec = do(h, http.MethodDelete, "/api/v1/users/deactivate", "", userToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AdminRoutes(t *testing.T) {
	h, svc, tokens := setup(t)

	userToken, err := tokens.Issue(model.Claims{Email: "a@x.com", Role: model.RoleSimpleUser})
	require.NoError(t, err)
	adminToken, err := tokens.Issue(model.Claims{Email: "root@x.com", Role: model.RoleAdmin})
	require.NoError(t, err)
	target := uuid.New()
	rolePath := "/api/v1/users/" + target.String() + "/role"

	rec := do(h, http.MethodPatch, rolePath, `{"role":"admin"}`, userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = do(h, http.MethodDelete, "/api/v1/users", `{"email":"b@x.com"}`, userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	svc.On("ChangeRole", mock.Anything, mock.Anything, model.RoleAdmin, target).Return(nil)
	rec = do(h, http.MethodPatch, rolePath, `{"role":"admin"}`, adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	svc.On("HardDelete", mock.Anything, mock.Anything, "b@x.com").Return(nil)
	rec = do(h, http.MethodDelete, "/api/v1/users", `{"email":"b@x.com"}`, adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, http.MethodPost, "/api/v1/users/admin/joke", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = do(h, http.MethodPost, "/api/v1/users/admin/joke", "", userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = do(h, http.MethodPost, "/api/v1/users/admin/joke", "", adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message"`)
}
