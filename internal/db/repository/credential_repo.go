package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/syande/shoestore-service/internal/models"
)

// CredentialRepository resolves role and permission assignments. It is the
// credential store the authorization check queries on every request.
type CredentialRepository struct {
	db *sqlx.DB
}

// NewCredentialRepository creates a new credential repository
func NewCredentialRepository(db *sqlx.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// PermissionCodes returns the distinct permission codes a user holds through
// its role assignments.
func (r *CredentialRepository) PermissionCodes(ctx context.Context, userID int64) ([]string, error) {
	query := `
		SELECT DISTINCT p.permission_code
		FROM user_roles ur
		JOIN role_permissions rp ON rp.role_id = ur.role_id
		JOIN permissions p ON rp.permission_id = p.permission_id
		WHERE ur.user_id = $1
	`

	var codes []string
	err := r.db.SelectContext(ctx, &codes, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve permissions: %w", err)
	}

	return codes, nil
}

// ListRoles retrieves all roles
func (r *CredentialRepository) ListRoles(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	err := r.db.SelectContext(ctx, &roles,
		`SELECT role_id, role_name FROM roles ORDER BY role_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// CreateRole creates a role. Role names are unique; duplicates surface as
// ErrConflict.
func (r *CredentialRepository) CreateRole(ctx context.Context, roleName string) (*models.Role, error) {
	var role models.Role
	err := r.db.GetContext(ctx, &role,
		`INSERT INTO roles (role_name) VALUES ($1) RETURNING role_id, role_name`, roleName)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create role: %w", err)
	}
	return &role, nil
}

// DeleteRole deletes a role and its assignments.
func (r *CredentialRepository) DeleteRole(ctx context.Context, roleID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
		return fmt.Errorf("failed to delete role permissions: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM user_roles WHERE role_id = $1`, roleID); err != nil {
		return fmt.Errorf("failed to delete role assignments: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM roles WHERE role_id = $1`, roleID)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		err = ErrNotFound
		return err
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListPermissions retrieves the persisted permission catalog.
func (r *CredentialRepository) ListPermissions(ctx context.Context) ([]models.Permission, error) {
	var perms []models.Permission
	err := r.db.SelectContext(ctx, &perms,
		`SELECT permission_id, permission_code, description, category FROM permissions ORDER BY category, permission_code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return perms, nil
}

// ListUserRoles retrieves all user-role assignments.
func (r *CredentialRepository) ListUserRoles(ctx context.Context) ([]models.UserRole, error) {
	var assignments []models.UserRole
	err := r.db.SelectContext(ctx, &assignments,
		`SELECT user_id, role_id FROM user_roles`)
	if err != nil {
		return nil, fmt.Errorf("failed to list user roles: %w", err)
	}
	return assignments, nil
}

// ListRolePermissions retrieves all role-permission assignments.
func (r *CredentialRepository) ListRolePermissions(ctx context.Context) ([]models.RolePermission, error) {
	var assignments []models.RolePermission
	err := r.db.SelectContext(ctx, &assignments,
		`SELECT role_id, permission_id FROM role_permissions`)
	if err != nil {
		return nil, fmt.Errorf("failed to list role permissions: %w", err)
	}
	return assignments, nil
}

// RolesForUser retrieves one user's role assignments.
func (r *CredentialRepository) RolesForUser(ctx context.Context, userID int64) ([]models.Role, error) {
	query := `
		SELECT ro.role_id, ro.role_name
		FROM user_roles ur
		JOIN roles ro ON ro.role_id = ur.role_id
		WHERE ur.user_id = $1
		ORDER BY ro.role_name ASC
	`

	var roles []models.Role
	err := r.db.SelectContext(ctx, &roles, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user roles: %w", err)
	}
	return roles, nil
}

// AssignRole links a user to a role. Duplicate assignments are conflicts.
func (r *CredentialRepository) AssignRole(ctx context.Context, userID, roleID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`, userID, roleID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("failed to assign role: %w", err)
	}
	return nil
}

// GrantPermission links a role to a permission.
func (r *CredentialRepository) GrantPermission(ctx context.Context, roleID, permissionID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2)`, roleID, permissionID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("failed to grant permission: %w", err)
	}
	return nil
}
