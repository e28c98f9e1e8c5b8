package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreEnsure(t *testing.T) {
	store := NewStore()

	token, sess := store.Ensure("")
	require.NotEmpty(t, token)
	require.NotNil(t, sess)

	// Same token resolves to the same session.
	again, sameSess := store.Ensure(token)
	assert.Equal(t, token, again)
	assert.Same(t, sess, sameSess)

	// Unknown tokens get a fresh session under a new token.
	other, otherSess := store.Ensure("not-a-token")
	assert.NotEqual(t, token, other)
	assert.NotSame(t, sess, otherSess)

	// Both tokens stay live.
	assert.Same(t, sess, store.Get(token))
	assert.Same(t, otherSess, store.Get(other))
}

func TestStoreDestroy(t *testing.T) {
	store := NewStore()

	token, _ := store.Create()
	store.Destroy(token)

	assert.Nil(t, store.Get(token))
}

func TestSessionClear(t *testing.T) {
	userID := int64(7)
	sess := &Session{
		Authenticated: true,
		Superadmin:    true,
		UserID:        &userID,
		Username:      "jane",
		Email:         "jane@example.com",
		OTP:           "123456",
		OTPIssuedAt:   time.Now(),
		OTPCooldownAt: time.Now(),
		OTPVerified:   true,
		LoggedAt:      time.Now(),
	}

	sess.Clear()

	assert.False(t, sess.Authenticated)
	assert.False(t, sess.Superadmin)
	assert.Nil(t, sess.UserID)
	assert.Empty(t, sess.Username)
	assert.Empty(t, sess.Email)
	assert.False(t, sess.HasPendingOTP())
	assert.False(t, sess.OTPVerified)
	assert.True(t, sess.LoggedAt.IsZero())
}

func TestSessionClearOTP(t *testing.T) {
	sess := &Session{OTP: "654321", OTPIssuedAt: time.Now(), OTPCooldownAt: time.Now()}

	sess.ClearOTP()

	assert.False(t, sess.HasPendingOTP())
	assert.True(t, sess.OTPIssuedAt.IsZero())
	assert.True(t, sess.OTPCooldownAt.IsZero())
}
