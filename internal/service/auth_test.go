package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syande/shoestore-service/internal/db/repository"
	"github.com/syande/shoestore-service/internal/models"
	"github.com/syande/shoestore-service/internal/permissions"
	"github.com/syande/shoestore-service/internal/session"
	"golang.org/x/crypto/bcrypt"
)

type stubUsers struct {
	byIdentifier map[string]*models.User
	taken        map[string]bool
	registered   []models.User
}

func (s *stubUsers) GetByIdentifier(_ context.Context, identifier string) (*models.User, error) {
	if user, ok := s.byIdentifier[identifier]; ok {
		return user, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubUsers) UsernameExists(_ context.Context, username string) (bool, error) {
	return s.taken[username], nil
}

func (s *stubUsers) Register(_ context.Context, user models.User, phone, email string) (*models.User, error) {
	user.UserID = int64(len(s.registered) + 1)
	s.registered = append(s.registered, user)
	return &user, nil
}

type stubCreds struct {
	codes map[int64][]string
}

func (s *stubCreds) PermissionCodes(_ context.Context, userID int64) ([]string, error) {
	return s.codes[userID], nil
}

type stubMailer struct {
	sentTo  []string
	sentOTP []string
	fail    error
}

func (s *stubMailer) SendOTP(_ context.Context, email, otp string) error {
	if s.fail != nil {
		return s.fail
	}
	s.sentTo = append(s.sentTo, email)
	s.sentOTP = append(s.sentOTP, otp)
	return nil
}

func newTestAuth(t *testing.T) (*AuthService, *stubUsers, *stubMailer, *time.Time) {
	t.Helper()

	users := &stubUsers{
		byIdentifier: make(map[string]*models.User),
		taken:        make(map[string]bool),
	}
	creds := &stubCreds{codes: make(map[int64][]string)}
	mailer := &stubMailer{}

	svc := NewAuthService(users, creds, mailer, AuthConfig{
		OTPValidity:          10 * time.Minute,
		OTPCooldown:          30 * time.Second,
		SessionTimeout:       30 * time.Minute,
		SuperadminIdentifier: "superadmin",
	})

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	return svc, users, mailer, &now
}

func TestRequestOTP(t *testing.T) {
	svc, _, mailer, _ := newTestAuth(t)
	sess := &session.Session{}

	err := svc.RequestOTP(context.Background(), sess, "jane@example.com", false)
	require.NoError(t, err)

	require.Len(t, mailer.sentOTP, 1)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), mailer.sentOTP[0])
	assert.Equal(t, "jane@example.com", mailer.sentTo[0])
	assert.Equal(t, mailer.sentOTP[0], sess.OTP)
	assert.Equal(t, "jane@example.com", sess.Email)
}

func TestRequestOTPWhileStillValid(t *testing.T) {
	svc, _, _, now := newTestAuth(t)
	sess := &session.Session{}

	require.NoError(t, svc.RequestOTP(context.Background(), sess, "jane@example.com", false))

	*now = now.Add(5 * time.Minute)
	err := svc.RequestOTP(context.Background(), sess, "jane@example.com", false)
	assert.ErrorIs(t, err, ErrOTPStillValid)
}

func TestRequestOTPCooldown(t *testing.T) {
	svc, _, mailer, now := newTestAuth(t)
	sess := &session.Session{}

	require.NoError(t, svc.RequestOTP(context.Background(), sess, "jane@example.com", false))

	// Forcing a new code inside the cooldown window reports the wait.
	*now = now.Add(10 * time.Second)
	err := svc.RequestOTP(context.Background(), sess, "jane@example.com", true)

	var cooldown *OTPCooldownError
	require.ErrorAs(t, err, &cooldown)
	assert.Equal(t, 20, cooldown.Remaining)

	// Once the cooldown has elapsed a forced request issues a fresh code.
	*now = now.Add(25 * time.Second)
	require.NoError(t, svc.RequestOTP(context.Background(), sess, "jane@example.com", true))
	assert.Len(t, mailer.sentOTP, 2)
}

func TestRequestOTPWhileAuthenticated(t *testing.T) {
	svc, _, _, _ := newTestAuth(t)
	sess := &session.Session{Authenticated: true}

	err := svc.RequestOTP(context.Background(), sess, "jane@example.com", false)
	assert.ErrorIs(t, err, ErrAlreadyAuthenticated)
}

func TestVerifyOTP(t *testing.T) {
	svc, _, mailer, _ := newTestAuth(t)
	sess := &session.Session{}

	require.NoError(t, svc.RequestOTP(context.Background(), sess, "jane@example.com", false))

	// A wrong code is not an error; the client just re-prompts.
	ok, _, err := svc.VerifyOTP(context.Background(), sess, "000000x")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, sess.HasPendingOTP())

	ok, email, err := svc.VerifyOTP(context.Background(), sess, mailer.sentOTP[0])
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "jane@example.com", email)
	assert.True(t, sess.OTPVerified)
	assert.False(t, sess.HasPendingOTP())
}

func TestVerifyOTPJustBeforeExpiry(t *testing.T) {
	svc, _, mailer, now := newTestAuth(t)
	sess := &session.Session{}

	require.NoError(t, svc.RequestOTP(context.Background(), sess, "jane@example.com", false))

	// One second inside the validity window the code still works.
	*now = now.Add(10*time.Minute - time.Second)
	ok, email, err := svc.VerifyOTP(context.Background(), sess, mailer.sentOTP[0])
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "jane@example.com", email)
	assert.True(t, sess.OTPVerified)
}

func TestVerifyOTPExpired(t *testing.T) {
	svc, _, mailer, now := newTestAuth(t)
	sess := &session.Session{}

	require.NoError(t, svc.RequestOTP(context.Background(), sess, "jane@example.com", false))

	*now = now.Add(10 * time.Minute)
	_, _, err := svc.VerifyOTP(context.Background(), sess, mailer.sentOTP[0])
	assert.ErrorIs(t, err, ErrOTPExpired)
	assert.False(t, sess.HasPendingOTP())
}

func TestVerifyOTPWithoutPending(t *testing.T) {
	svc, _, _, _ := newTestAuth(t)
	sess := &session.Session{}

	_, _, err := svc.VerifyOTP(context.Background(), sess, "123456")
	assert.ErrorIs(t, err, ErrNoPendingOTP)
}

func TestRegisterRequiresVerifiedOTP(t *testing.T) {
	svc, _, _, _ := newTestAuth(t)
	sess := &session.Session{}

	_, err := svc.Register(context.Background(), sess, models.RegisterRequest{
		FirstName: "Jane", LastName: "Doe", Username: "jane",
		Password: "secret1", Phone: "0211234567", Email: "jane@example.com",
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRegister(t *testing.T) {
	svc, users, _, _ := newTestAuth(t)
	sess := &session.Session{OTPVerified: true}

	created, err := svc.Register(context.Background(), sess, models.RegisterRequest{
		FirstName: "Jane", LastName: "Doe", Username: "jane",
		Password: "secret1", Phone: "0211234567", Email: "jane@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "jane", created.Username)

	// The stored credential is a bcrypt hash, never the plaintext.
	require.Len(t, users.registered, 1)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(users.registered[0].PasswordHash), []byte("secret1")))

	// The verified flag is consumed; a second registration needs a new OTP.
	assert.False(t, sess.OTPVerified)
}

func TestRegisterUsernameTaken(t *testing.T) {
	svc, users, _, _ := newTestAuth(t)
	users.taken["jane"] = true
	sess := &session.Session{OTPVerified: true}

	_, err := svc.Register(context.Background(), sess, models.RegisterRequest{
		FirstName: "Jane", LastName: "Doe", Username: "jane",
		Password: "secret1", Phone: "0211234567", Email: "jane@example.com",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	svc, users, _, _ := newTestAuth(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	users.byIdentifier["jane"] = &models.User{
		UserID: 42, Username: "jane", PasswordHash: string(hash),
	}

	sess := &session.Session{}
	require.NoError(t, svc.Login(context.Background(), sess, "jane", "secret1"))

	assert.True(t, sess.Authenticated)
	assert.False(t, sess.Superadmin)
	require.NotNil(t, sess.UserID)
	assert.Equal(t, int64(42), *sess.UserID)
	assert.Equal(t, "jane", sess.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, users, _, _ := newTestAuth(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	users.byIdentifier["jane"] = &models.User{UserID: 42, Username: "jane", PasswordHash: string(hash)}

	sess := &session.Session{}
	err := svc.Login(context.Background(), sess, "jane", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.False(t, sess.Authenticated)
}

func TestLoginUnknownIdentifier(t *testing.T) {
	svc, _, _, _ := newTestAuth(t)

	sess := &session.Session{}
	err := svc.Login(context.Background(), sess, "nobody", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginAlreadyAuthenticated(t *testing.T) {
	svc, _, _, _ := newTestAuth(t)

	sess := &session.Session{Authenticated: true}
	err := svc.Login(context.Background(), sess, "jane", "secret1")
	assert.ErrorIs(t, err, ErrAlreadyAuthenticated)
}

func TestSuperadminLogin(t *testing.T) {
	svc, _, _, _ := newTestAuth(t)

	sess := &session.Session{}
	require.NoError(t, svc.Login(context.Background(), sess, "superadmin", "anything"))

	assert.True(t, sess.Authenticated)
	assert.True(t, sess.Superadmin)
	assert.Nil(t, sess.UserID)

	held, err := svc.Permissions(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, []permissions.Code{permissions.AdminAll}, held)
}

func TestPermissions(t *testing.T) {
	svc, _, _, _ := newTestAuth(t)
	svc.creds.(*stubCreds).codes[42] = []string{"view_sales", "use_pos"}

	userID := int64(42)
	sess := &session.Session{Authenticated: true, UserID: &userID}

	held, err := svc.Permissions(context.Background(), sess)
	require.NoError(t, err)
	assert.ElementsMatch(t, []permissions.Code{permissions.ViewSales, permissions.UsePOS}, held)
}

func TestSessionStillValid(t *testing.T) {
	svc, _, _, now := newTestAuth(t)

	userID := int64(42)
	sess := &session.Session{Authenticated: true, UserID: &userID, LoggedAt: *now}

	*now = now.Add(29 * time.Minute)
	assert.NoError(t, svc.SessionStillValid(sess))

	*now = now.Add(time.Minute)
	err := svc.SessionStillValid(sess)
	assert.ErrorIs(t, err, ErrSessionExpired)

	// Expiry clears the session back to anonymous.
	assert.False(t, sess.Authenticated)
	assert.Nil(t, sess.UserID)
}

func TestSessionStillValidSuperadmin(t *testing.T) {
	svc, _, _, now := newTestAuth(t)

	sess := &session.Session{Authenticated: true, Superadmin: true, LoggedAt: *now}

	*now = now.Add(48 * time.Hour)
	assert.NoError(t, svc.SessionStillValid(sess))
}

func TestLogout(t *testing.T) {
	svc, _, _, _ := newTestAuth(t)

	sess := &session.Session{Authenticated: true, Username: "jane"}
	require.NoError(t, svc.Logout(sess))
	assert.False(t, sess.Authenticated)
	assert.Empty(t, sess.Username)

	assert.ErrorIs(t, svc.Logout(sess), ErrNotAuthenticated)
}

func TestRequestOTPMailerFailure(t *testing.T) {
	svc, _, mailer, _ := newTestAuth(t)
	mailer.fail = errors.New("smtp down")

	sess := &session.Session{}
	err := svc.RequestOTP(context.Background(), sess, "jane@example.com", false)
	require.Error(t, err)

	// A failed send must not leave a pending code behind.
	assert.False(t, sess.HasPendingOTP())
}
