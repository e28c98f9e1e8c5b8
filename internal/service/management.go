package service

import (
	"context"
	"fmt"

	"github.com/syande/shoestore-service/internal/db/repository"
	"github.com/syande/shoestore-service/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// ManagementService handles user and role administration.
type ManagementService struct {
	users *repository.UserRepository
	creds *repository.CredentialRepository
}

// NewManagementService creates a new management service
func NewManagementService(users *repository.UserRepository, creds *repository.CredentialRepository) *ManagementService {
	return &ManagementService{
		users: users,
		creds: creds,
	}
}

func (s *ManagementService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *ManagementService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *ManagementService) DeleteUser(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}

func (s *ManagementService) UserPhones(ctx context.Context, userID int64) ([]models.Phone, error) {
	return s.users.Phones(ctx, userID)
}

func (s *ManagementService) UserEmails(ctx context.Context, userID int64) ([]models.Email, error) {
	return s.users.Emails(ctx, userID)
}

func (s *ManagementService) UserRoles(ctx context.Context, userID int64) ([]models.Role, error) {
	return s.creds.RolesForUser(ctx, userID)
}

// ChangePassword replaces a user's password hash after verifying the
// current one.
func (s *ManagementService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.UpdatePassword(ctx, userID, string(hash))
}

func (s *ManagementService) ListRoles(ctx context.Context) ([]models.Role, error) {
	return s.creds.ListRoles(ctx)
}

func (s *ManagementService) CreateRole(ctx context.Context, roleName string) (*models.Role, error) {
	return s.creds.CreateRole(ctx, roleName)
}

func (s *ManagementService) DeleteRole(ctx context.Context, roleID int64) error {
	return s.creds.DeleteRole(ctx, roleID)
}

func (s *ManagementService) ListPermissions(ctx context.Context) ([]models.Permission, error) {
	return s.creds.ListPermissions(ctx)
}

func (s *ManagementService) ListUserRoles(ctx context.Context) ([]models.UserRole, error) {
	return s.creds.ListUserRoles(ctx)
}

func (s *ManagementService) ListRolePermissions(ctx context.Context) ([]models.RolePermission, error) {
	return s.creds.ListRolePermissions(ctx)
}

func (s *ManagementService) AssignRole(ctx context.Context, userID, roleID int64) error {
	return s.creds.AssignRole(ctx, userID, roleID)
}

func (s *ManagementService) GrantPermission(ctx context.Context, roleID, permissionID int64) error {
	return s.creds.GrantPermission(ctx, roleID, permissionID)
}
