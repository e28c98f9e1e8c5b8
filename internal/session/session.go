// Package session holds the per-connection authentication state and the
// in-memory store that maps opaque cookie tokens to it. Session values are
// server-side only; the cookie carries nothing but the token.
package session

import (
	"sync"
	"time"
)

// Session is the mutable authentication record attached to one cookie.
// OTP fields are only populated pre-login; Login clears them.
type Session struct {
	mu sync.Mutex

	Authenticated bool
	Superadmin    bool

	UserID   *int64
	Username string
	Email    string

	OTP           string
	OTPIssuedAt   time.Time
	OTPCooldownAt time.Time
	OTPVerified   bool

	LoggedAt time.Time
}

// Lock guards multi-field transitions. Handlers run concurrently against the
// same session when a client issues parallel requests with one cookie.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the transition lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// Clear resets the session to the anonymous state in place, keeping the
// token-to-session binding alive.
func (s *Session) Clear() {
	s.Authenticated = false
	s.Superadmin = false
	s.UserID = nil
	s.Username = ""
	s.Email = ""
	s.clearOTP()
	s.OTPVerified = false
	s.LoggedAt = time.Time{}
}

// ClearOTP drops the pending code and its timestamps. Used on expiry and
// after a successful verification.
func (s *Session) ClearOTP() {
	s.clearOTP()
}

func (s *Session) clearOTP() {
	s.OTP = ""
	s.OTPIssuedAt = time.Time{}
	s.OTPCooldownAt = time.Time{}
}

// HasPendingOTP reports whether a code has been issued and not yet consumed.
func (s *Session) HasPendingOTP() bool {
	return s.OTP != ""
}
