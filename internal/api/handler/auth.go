package handler

import (
	"encoding/json"
	"net/http"

	"github.com/syande/shoestore-service/internal/api"
	"github.com/syande/shoestore-service/internal/middleware"
	"github.com/syande/shoestore-service/internal/models"
	"github.com/syande/shoestore-service/internal/service"
	"github.com/syande/shoestore-service/internal/session"
)

// AuthHandler handles the OTP, registration and login endpoints.
type AuthHandler struct {
	authService *service.AuthService
	sessions    *session.Store
	cookieName  string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, sessions *session.Store, cookieName string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		cookieName:  cookieName,
	}
}

// RequestOTP issues a one-time password to the submitted email address.
func (h *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req models.RequestOTPRequest
	if !decodeValid(w, r, &req) {
		return
	}

	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		api.RespondError(w, service.ErrUnauthorized)
		return
	}

	if err := h.authService.RequestOTP(r.Context(), sess, req.Email, req.RequestNew); err != nil {
		api.RespondError(w, err)
		return
	}

	api.Respond(w, http.StatusOK, "OTP sent", nil)
}

// VerifyOTP checks the submitted code. A mismatch is a success=false 200 so
// the client can re-prompt without treating it as a transport failure.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyOTPRequest
	if !decodeValid(w, r, &req) {
		return
	}

	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		api.RespondError(w, service.ErrUnauthorized)
		return
	}

	verified, email, err := h.authService.VerifyOTP(r.Context(), sess, req.OTP)
	if err != nil {
		api.RespondError(w, err)
		return
	}

	if !verified {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(api.Envelope{Success: false, Message: "incorrect OTP"})
		return
	}

	api.Respond(w, http.StatusOK, "OTP verified", struct {
		Email string `json:"email"`
	}{Email: email})
}

// Register creates a user account for a session that completed the OTP flow.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeValid(w, r, &req) {
		return
	}

	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		api.RespondError(w, service.ErrUnauthorized)
		return
	}

	user, err := h.authService.Register(r.Context(), sess, req)
	if err != nil {
		api.RespondError(w, err)
		return
	}

	api.Respond(w, http.StatusCreated, "user registered", user)
}

// Login authenticates the session against a username or email identifier.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeValid(w, r, &req) {
		return
	}

	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		api.RespondError(w, service.ErrUnauthorized)
		return
	}

	if err := h.authService.Login(r.Context(), sess, req.Identifier, req.Password); err != nil {
		api.RespondError(w, err)
		return
	}

	api.Respond(w, http.StatusOK, "logged in", struct {
		Username string `json:"username"`
	}{Username: sess.Username})
}

// Logout clears the session, drops its server-side token binding and expires
// the cookie, so the old token cannot be replayed.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		api.RespondError(w, service.ErrUnauthorized)
		return
	}

	if err := h.authService.Logout(sess); err != nil {
		api.RespondError(w, err)
		return
	}

	if token, ok := middleware.GetToken(r.Context()); ok {
		h.sessions.Destroy(token)
		http.SetCookie(w, &http.Cookie{
			Name:     h.cookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	api.Respond(w, http.StatusOK, "logged out", nil)
}
