package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syande/shoestore-service/internal/permissions"
	"github.com/syande/shoestore-service/internal/service"
	"github.com/syande/shoestore-service/internal/session"
)

type stubCreds struct {
	codes []string
}

func (s *stubCreds) PermissionCodes(_ context.Context, _ int64) ([]string, error) {
	return s.codes, nil
}

func newAuthService(creds service.CredentialStore) *service.AuthService {
	return service.NewAuthService(nil, creds, nil, service.AuthConfig{
		OTPValidity:    10 * time.Minute,
		OTPCooldown:    30 * time.Second,
		SessionTimeout: 30 * time.Minute,
	})
}

func TestWithSessionMintsCookie(t *testing.T) {
	store := session.NewStore()
	var got *session.Session

	h := WithSession(store, "shoestore_session")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetSession(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, got)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "shoestore_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Same(t, got, store.Get(cookies[0].Value))
}

func TestWithSessionReusesToken(t *testing.T) {
	store := session.NewStore()
	token, sess := store.Create()

	var got *session.Session
	h := WithSession(store, "shoestore_session")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetSession(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "shoestore_session", Value: token})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Same(t, sess, got)
	// A known token keeps its cookie.
	assert.Empty(t, rec.Result().Cookies())
}

func TestRequireAuth(t *testing.T) {
	store := session.NewStore()
	auth := newAuthService(nil)

	called := false
	h := WithSession(store, "shoestore_session")(
		RequireAuth(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})),
	)

	// Anonymous session is rejected.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)

	// A logged-in session passes.
	token, sess := store.Create()
	sess.Authenticated = true
	sess.LoggedAt = time.Now()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "shoestore_session", Value: token})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.True(t, called)
}

func TestRequirePermission(t *testing.T) {
	store := session.NewStore()
	auth := newAuthService(&stubCreds{codes: []string{"view_sales"}})

	var held []permissions.Code
	h := WithSession(store, "shoestore_session")(
		RequirePermission(auth, permissions.ManageSales, permissions.ViewSales)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				held, _ = GetPermissions(r.Context())
			}),
		),
	)

	userID := int64(42)
	token, sess := store.Create()
	sess.Authenticated = true
	sess.UserID = &userID
	sess.LoggedAt = time.Now()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "shoestore_session", Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []permissions.Code{permissions.ViewSales}, held)
}

func TestRequirePermissionForbidden(t *testing.T) {
	store := session.NewStore()
	auth := newAuthService(&stubCreds{codes: []string{"view_sales"}})

	h := WithSession(store, "shoestore_session")(
		RequirePermission(auth, permissions.ManageUsers)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run")
			}),
		),
	)

	userID := int64(42)
	token, sess := store.Create()
	sess.Authenticated = true
	sess.UserID = &userID

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "shoestore_session", Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequirePermissionSuperadmin(t *testing.T) {
	store := session.NewStore()
	auth := newAuthService(nil)

	called := false
	h := WithSession(store, "shoestore_session")(
		RequirePermission(auth, permissions.ManageUsers)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}),
		),
	)

	token, sess := store.Create()
	sess.Authenticated = true
	sess.Superadmin = true

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "shoestore_session", Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.True(t, called)
}
