package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/syande/shoestore-service/internal/models"
)

// UserRepository handles user data access
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT user_id, first_name, last_name, username, password, created_at
		FROM users
		WHERE user_id = $1
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetByIdentifier resolves a login identifier against username or any of the
// user's registered email addresses.
func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	query := `
		SELECT DISTINCT u.user_id, u.first_name, u.last_name, u.username, u.password, u.created_at
		FROM users u
		LEFT JOIN emails e ON e.user_id = u.user_id
		WHERE u.username = $1 OR e.email = $1
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, identifier)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by identifier: %w", err)
	}

	return &user, nil
}

// UsernameExists reports whether a username is already taken.
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE username = $1`, username)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return count > 0, nil
}

// Register creates the user together with its phone and email rows in one
// transaction.
func (r *UserRepository) Register(ctx context.Context, user models.User, phone, email string) (*models.User, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `
		INSERT INTO users (first_name, last_name, username, password)
		VALUES ($1, $2, $3, $4)
		RETURNING user_id, first_name, last_name, username, password, created_at
	`

	var created models.User
	err = tx.GetContext(ctx, &created, query,
		user.FirstName, user.LastName, user.Username, user.PasswordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if phone != "" {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO phones (user_id, phone) VALUES ($1, $2)`, created.UserID, phone)
		if err != nil {
			return nil, fmt.Errorf("failed to create phone: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO emails (user_id, email) VALUES ($1, $2)`, created.UserID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to create email: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &created, nil
}

// List retrieves all users
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT user_id, first_name, last_name, username, password, created_at
		FROM users
		ORDER BY username ASC
	`

	var users []models.User
	err := r.db.SelectContext(ctx, &users, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// Phones retrieves a user's phone numbers.
func (r *UserRepository) Phones(ctx context.Context, userID int64) ([]models.Phone, error) {
	var phones []models.Phone
	err := r.db.SelectContext(ctx, &phones,
		`SELECT phone_id, user_id, phone FROM phones WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list phones: %w", err)
	}
	return phones, nil
}

// Emails retrieves a user's email addresses.
func (r *UserRepository) Emails(ctx context.Context, userID int64) ([]models.Email, error) {
	var emails []models.Email
	err := r.db.SelectContext(ctx, &emails,
		`SELECT email_id, user_id, email FROM emails WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list emails: %w", err)
	}
	return emails, nil
}

// UpdatePassword updates a user's password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET password = $1 WHERE user_id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update user password: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete deletes a user
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
