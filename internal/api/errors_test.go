package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syande/shoestore-service/internal/db/repository"
	"github.com/syande/shoestore-service/internal/service"
)

func doRespondError(t *testing.T, err error) (int, Envelope) {
	t.Helper()

	rec := httptest.NewRecorder()
	RespondError(rec, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{service.ErrUnauthorized, http.StatusUnauthorized},
		{service.ErrSessionExpired, http.StatusUnauthorized},
		{service.ErrInvalidCredentials, http.StatusBadRequest},
		{service.ErrForbidden, http.StatusUnauthorized},
		{service.ErrAlreadyAuthenticated, http.StatusNotAcceptable},
		{service.ErrNotAuthenticated, http.StatusNotAcceptable},
		{service.ErrNoPendingOTP, http.StatusNotAcceptable},
		{service.ErrOTPStillValid, http.StatusNotAcceptable},
		{service.ErrOTPExpired, http.StatusNotAcceptable},
		{service.ErrUsernameTaken, http.StatusConflict},
		{repository.ErrConflict, http.StatusConflict},
		{repository.ErrNotFound, http.StatusNotFound},
		{service.ErrValidation, http.StatusBadRequest},
		{&repository.InsufficientStockError{VariantID: 5, Available: 1, Requested: 3}, http.StatusBadRequest},
	}

	for _, tc := range cases {
		status, env := doRespondError(t, tc.err)
		assert.Equal(t, tc.status, status, "error %v", tc.err)
		assert.False(t, env.Success)
		assert.NotEmpty(t, env.Message)
	}
}

func TestRespondErrorWrappedSentinel(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), service.ErrUsernameTaken)
	status, _ := doRespondError(t, wrapped)
	assert.Equal(t, http.StatusConflict, status)
}

func TestRespondErrorCooldownPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, &service.OTPCooldownError{Remaining: 17})

	assert.Equal(t, http.StatusNotAcceptable, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			RetryAfterSeconds int `json:"retry_after_seconds"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, 17, body.Data.RetryAfterSeconds)
}

func TestRespondErrorUnknownIsOpaque(t *testing.T) {
	status, env := doRespondError(t, errors.New("pq: connection reset"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", env.Message)
}

func TestRespond(t *testing.T) {
	rec := httptest.NewRecorder()
	Respond(rec, http.StatusCreated, "created", map[string]int{"id": 7})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "created", env.Message)
}
