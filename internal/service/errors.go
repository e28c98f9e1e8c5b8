package service

import (
	"errors"
	"fmt"
)

// Business-rule failures returned by the services. The API layer maps each
// of these to an HTTP status and a {success,message} envelope exactly once.
var (
	ErrUnauthorized         = errors.New("unauthorized access")
	ErrForbidden            = errors.New("insufficient permissions")
	ErrSessionExpired       = errors.New("session expired")
	ErrAlreadyAuthenticated = errors.New("a user is already logged in")
	ErrNotAuthenticated     = errors.New("login first")
	ErrInvalidCredentials   = errors.New("incorrect username or password")
	ErrUsernameTaken        = errors.New("username is already taken")
	ErrNoPendingOTP         = errors.New("no OTP has been requested")
	ErrOTPStillValid        = errors.New("a valid OTP has already been sent")
	ErrOTPExpired           = errors.New("OTP has expired, request a new one")
	ErrValidation           = errors.New("invalid input")
)

// OTPCooldownError reports how long the caller has to wait before another
// OTP may be requested.
type OTPCooldownError struct {
	Remaining int // seconds
}

func (e *OTPCooldownError) Error() string {
	return fmt.Sprintf("wait %d seconds before requesting another OTP", e.Remaining)
}
