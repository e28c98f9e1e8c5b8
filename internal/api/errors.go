// Package api holds the HTTP response envelope and the single place where
// business errors are translated to status codes.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/syande/shoestore-service/internal/db/repository"
	"github.com/syande/shoestore-service/internal/service"
)

// Envelope is the uniform response body. Handlers attach payloads under Data.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Respond writes a success envelope.
func Respond(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondError maps a business error to its HTTP status and writes a failure
// envelope. Unrecognized errors are logged and reported as an opaque 500 so
// internals never leak to the client.
func RespondError(w http.ResponseWriter, err error) {
	status, message := classify(err)

	body := Envelope{Success: false, Message: message}

	var cooldown *service.OTPCooldownError
	if errors.As(err, &cooldown) {
		body.Data = struct {
			RetryAfterSeconds int `json:"retry_after_seconds"`
		}{RetryAfterSeconds: cooldown.Remaining}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func classify(err error) (int, string) {
	var cooldown *service.OTPCooldownError
	var stock *repository.InsufficientStockError

	switch {
	// Missing permissions render 401 alongside missing sessions; clients
	// treat both as "go (re)authenticate".
	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrSessionExpired):
		return http.StatusUnauthorized, err.Error()

	case errors.Is(err, service.ErrAlreadyAuthenticated),
		errors.Is(err, service.ErrNotAuthenticated),
		errors.Is(err, service.ErrNoPendingOTP),
		errors.Is(err, service.ErrOTPStillValid),
		errors.Is(err, service.ErrOTPExpired):
		return http.StatusNotAcceptable, err.Error()

	case errors.As(err, &cooldown):
		return http.StatusNotAcceptable, err.Error()

	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, err.Error()

	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "resource not found"

	case errors.As(err, &stock),
		errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusBadRequest, err.Error()

	default:
		log.Printf("internal error: %v", err)
		return http.StatusInternalServerError, "internal server error"
	}
}
