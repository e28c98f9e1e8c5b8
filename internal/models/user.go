package models

import (
	"time"
)

type User struct {
	UserID       int64     `db:"user_id" json:"user_id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password" json:"-"` // Never expose in JSON
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type Phone struct {
	PhoneID int64  `db:"phone_id" json:"phone_id"`
	UserID  int64  `db:"user_id" json:"user_id"`
	Phone   string `db:"phone" json:"phone"`
}

type Email struct {
	EmailID int64  `db:"email_id" json:"email_id"`
	UserID  int64  `db:"user_id" json:"user_id"`
	Email   string `db:"email" json:"email"`
}

type Role struct {
	RoleID   int64  `db:"role_id" json:"role_id"`
	RoleName string `db:"role_name" json:"role_name"`
}

type Permission struct {
	PermissionID   int64  `db:"permission_id" json:"permission_id"`
	PermissionCode string `db:"permission_code" json:"permission_code"`
	Description    string `db:"description" json:"description"`
	Category       string `db:"category" json:"category"`
}

type UserRole struct {
	UserID int64 `db:"user_id" json:"user_id"`
	RoleID int64 `db:"role_id" json:"role_id"`
}

type RolePermission struct {
	RoleID       int64 `db:"role_id" json:"role_id"`
	PermissionID int64 `db:"permission_id" json:"permission_id"`
}

// RegisterRequest is the registration payload. Registration is only accepted
// after the session's email has been verified through the OTP flow.
type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Password  string `json:"password" validate:"required,min=6"`
	Phone     string `json:"phone" validate:"omitempty,min=5,max=30"`
	Email     string `json:"email" validate:"required,email"`
}

// LoginRequest carries a username or email in the identifier field.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"`
}

// RequestOTPRequest asks for a one-time password to be mailed out.
// RequestNew forces a fresh code even when an unexpired one is pending.
type RequestOTPRequest struct {
	Email      string `json:"email" validate:"required,email"`
	RequestNew bool   `json:"request_new"`
}

type VerifyOTPRequest struct {
	OTP string `json:"otp" validate:"required,len=6,numeric"`
}
