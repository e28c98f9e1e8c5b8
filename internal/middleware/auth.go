package middleware

import (
	"context"
	"net/http"

	"github.com/syande/shoestore-service/internal/api"
	"github.com/syande/shoestore-service/internal/permissions"
	"github.com/syande/shoestore-service/internal/service"
	"github.com/syande/shoestore-service/internal/session"
)

// contextKey is a type for context keys
type contextKey string

// Context keys
const (
	SessionKey     contextKey = "session"
	TokenKey       contextKey = "sessionToken"
	PermissionsKey contextKey = "permissions"
)

// WithSession resolves the session cookie to a server-side session, creating
// an anonymous one when the cookie is missing or stale, and sets the cookie
// whenever a new token was minted.
func WithSession(store *session.Store, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if cookie, err := r.Cookie(cookieName); err == nil {
				token = cookie.Value
			}

			resolved, sess := store.Ensure(token)
			if resolved != token {
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    resolved,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), SessionKey, sess)
			ctx = context.WithValue(ctx, TokenKey, resolved)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests whose session is not authenticated or has
// idled past the timeout.
func RequireAuth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := GetSession(r.Context())
			if !ok {
				api.RespondError(w, service.ErrUnauthorized)
				return
			}

			if err := authService.SessionStillValid(sess); err != nil {
				api.RespondError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermission resolves the session's permission set and rejects the
// request unless it satisfies at least one of the required codes. The
// resolved set is placed in the context for handlers that filter by it.
func RequirePermission(authService *service.AuthService, required ...permissions.Code) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := GetSession(r.Context())
			if !ok {
				api.RespondError(w, service.ErrUnauthorized)
				return
			}

			held, err := authService.Permissions(r.Context(), sess)
			if err != nil {
				api.RespondError(w, err)
				return
			}

			if !permissions.Check(held, required...) {
				api.RespondError(w, service.ErrForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), PermissionsKey, held)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithPermissions resolves the session's permission set into the context
// without gating on any particular code. Used by endpoints that filter their
// response by permissions rather than requiring one.
func WithPermissions(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := GetSession(r.Context())
			if !ok {
				api.RespondError(w, service.ErrUnauthorized)
				return
			}

			held, err := authService.Permissions(r.Context(), sess)
			if err != nil {
				api.RespondError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), PermissionsKey, held)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Helper functions for extracting values from context
func GetSession(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(SessionKey).(*session.Session)
	return sess, ok
}

func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok
}

func GetPermissions(ctx context.Context) ([]permissions.Code, bool) {
	held, ok := ctx.Value(PermissionsKey).([]permissions.Code)
	return held, ok
}
