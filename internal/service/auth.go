package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/syande/shoestore-service/internal/models"
	"github.com/syande/shoestore-service/internal/permissions"
	"github.com/syande/shoestore-service/internal/session"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	GetByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	Register(ctx context.Context, user models.User, phone, email string) (*models.User, error)
}

// CredentialStore resolves a user's effective permission codes.
type CredentialStore interface {
	PermissionCodes(ctx context.Context, userID int64) ([]string, error)
}

// AuthConfig carries the timing rules and the superadmin sentinel.
type AuthConfig struct {
	OTPValidity    time.Duration
	OTPCooldown    time.Duration
	SessionTimeout time.Duration

	// SuperadminIdentifier is a login identifier that bypasses the password
	// check entirely and grants the admin_all wildcard. Leave empty to
	// disable the escape hatch.
	SuperadminIdentifier string
}

// AuthService drives the OTP/registration/login state machine and resolves
// permissions for authorization checks.
type AuthService struct {
	users  UserStore
	creds  CredentialStore
	mailer Mailer
	cfg    AuthConfig

	now func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(users UserStore, creds CredentialStore, mailer Mailer, cfg AuthConfig) *AuthService {
	return &AuthService{
		users:  users,
		creds:  creds,
		mailer: mailer,
		cfg:    cfg,
		now:    time.Now,
	}
}

// RequestOTP issues a 6-digit code for the given email and mails it out.
// A pending unexpired code blocks a new one unless forceNew is set, and
// requests inside the cooldown window are rejected with the remaining wait.
func (s *AuthService) RequestOTP(ctx context.Context, sess *session.Session, email string, forceNew bool) error {
	sess.Lock()
	defer sess.Unlock()

	if sess.Authenticated {
		return ErrAlreadyAuthenticated
	}

	now := s.now()

	if sess.HasPendingOTP() && now.Sub(sess.OTPIssuedAt) < s.cfg.OTPValidity && !forceNew {
		return ErrOTPStillValid
	}

	if !sess.OTPCooldownAt.IsZero() {
		elapsed := now.Sub(sess.OTPCooldownAt)
		if elapsed < s.cfg.OTPCooldown {
			remaining := int((s.cfg.OTPCooldown - elapsed + time.Second - 1) / time.Second)
			return &OTPCooldownError{Remaining: remaining}
		}
	}

	otp, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	if err := s.mailer.SendOTP(ctx, email, otp); err != nil {
		return fmt.Errorf("failed to send OTP: %w", err)
	}

	sess.OTP = otp
	sess.Email = email
	sess.OTPIssuedAt = now
	sess.OTPCooldownAt = now

	return nil
}

// VerifyOTP checks a submitted code against the pending one. A mismatch is
// not an error: ok=false lets the client re-prompt. On success the session
// is marked verified and the pending email is returned for registration.
func (s *AuthService) VerifyOTP(_ context.Context, sess *session.Session, code string) (bool, string, error) {
	sess.Lock()
	defer sess.Unlock()

	if sess.Authenticated {
		return false, "", ErrAlreadyAuthenticated
	}

	if !sess.HasPendingOTP() {
		return false, "", ErrNoPendingOTP
	}

	if s.now().Sub(sess.OTPIssuedAt) >= s.cfg.OTPValidity {
		sess.ClearOTP()
		return false, "", ErrOTPExpired
	}

	if code != sess.OTP {
		return false, "", nil
	}

	email := sess.Email
	sess.OTPVerified = true
	sess.ClearOTP()

	return true, email, nil
}

// Register persists a new user. Only sessions that completed the OTP flow
// may register; the verified flag is consumed on success.
func (s *AuthService) Register(ctx context.Context, sess *session.Session, req models.RegisterRequest) (*models.User, error) {
	sess.Lock()
	defer sess.Unlock()

	if !sess.OTPVerified {
		return nil, ErrUnauthorized
	}

	taken, err := s.users.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	req.Password = ""

	user := models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     req.Username,
		PasswordHash: string(hash),
	}

	created, err := s.users.Register(ctx, user, req.Phone, req.Email)
	if err != nil {
		return nil, err
	}

	sess.OTPVerified = false

	return created, nil
}

// Login authenticates against username or email. The configured superadmin
// identifier short-circuits the credential store and password check; see the
// design notes before touching that branch.
func (s *AuthService) Login(ctx context.Context, sess *session.Session, identifier, password string) error {
	sess.Lock()
	defer sess.Unlock()

	if sess.Authenticated {
		return ErrAlreadyAuthenticated
	}

	if s.cfg.SuperadminIdentifier != "" && identifier == s.cfg.SuperadminIdentifier {
		sess.Authenticated = true
		sess.Superadmin = true
		sess.Username = identifier
		sess.LoggedAt = s.now()
		sess.ClearOTP()
		sess.OTPVerified = false
		return nil
	}

	user, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		return ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	sess.Authenticated = true
	sess.Superadmin = false
	sess.UserID = &user.UserID
	sess.Username = user.Username
	sess.LoggedAt = s.now()
	sess.ClearOTP()
	sess.OTPVerified = false

	return nil
}

// Logout clears the whole session.
func (s *AuthService) Logout(sess *session.Session) error {
	sess.Lock()
	defer sess.Unlock()

	if !sess.Authenticated {
		return ErrNotAuthenticated
	}

	sess.Clear()
	return nil
}

// SessionStillValid enforces the idle timeout. Superadmin sessions never
// expire. An expired session is cleared as a side effect.
func (s *AuthService) SessionStillValid(sess *session.Session) error {
	sess.Lock()
	defer sess.Unlock()

	if !sess.Authenticated {
		return ErrUnauthorized
	}

	if sess.Superadmin {
		return nil
	}

	if s.now().Sub(sess.LoggedAt) >= s.cfg.SessionTimeout {
		sess.Clear()
		return ErrSessionExpired
	}

	return nil
}

// Permissions resolves the session's effective permission set. Superadmin
// sessions hold only the admin_all wildcard.
func (s *AuthService) Permissions(ctx context.Context, sess *session.Session) ([]permissions.Code, error) {
	sess.Lock()
	superadmin := sess.Superadmin
	userID := sess.UserID
	sess.Unlock()

	if superadmin {
		return []permissions.Code{permissions.AdminAll}, nil
	}

	if userID == nil {
		return nil, ErrUnauthorized
	}

	codes, err := s.creds.PermissionCodes(ctx, *userID)
	if err != nil {
		return nil, err
	}

	return permissions.FromStrings(codes), nil
}

// generateOTP draws six independent uniform decimal digits, so leading
// zeros are as likely as any other digit.
func generateOTP() (string, error) {
	digits := make([]byte, 6)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
