package handler

import (
	"net/http"

	"github.com/syande/shoestore-service/internal/api"
	"github.com/syande/shoestore-service/internal/middleware"
	"github.com/syande/shoestore-service/internal/service"
)

// UserHandler handles user and role administration requests.
type UserHandler struct {
	managementService *service.ManagementService
}

// NewUserHandler creates a new user handler
func NewUserHandler(managementService *service.ManagementService) *UserHandler {
	return &UserHandler{
		managementService: managementService,
	}
}

// ListUsers lists all users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.managementService.ListUsers(r.Context())
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "users", users)
}

// GetUser gets a user by ID
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.managementService.GetUser(r.Context(), id)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "user", user)
}

// DeleteUser deletes a user
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.managementService.DeleteUser(r.Context(), id); err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "user deleted", nil)
}

// UserPhones lists a user's phone numbers.
func (h *UserHandler) UserPhones(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	phones, err := h.managementService.UserPhones(r.Context(), id)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "phones", phones)
}

// UserEmails lists a user's email addresses.
func (h *UserHandler) UserEmails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	emails, err := h.managementService.UserEmails(r.Context(), id)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "emails", emails)
}

// UserRoles lists a user's role assignments.
func (h *UserHandler) UserRoles(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	roles, err := h.managementService.UserRoles(r.Context(), id)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "user roles", roles)
}

// ChangePassword changes the logged-in user's own password.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=6"`
	}
	if !decodeValid(w, r, &req) {
		return
	}

	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		api.RespondError(w, service.ErrUnauthorized)
		return
	}

	sess.Lock()
	userID := sess.UserID
	sess.Unlock()

	if userID == nil {
		api.RespondError(w, service.ErrForbidden)
		return
	}

	if err := h.managementService.ChangePassword(r.Context(), *userID, req.CurrentPassword, req.NewPassword); err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "password changed", nil)
}

// ListRoles lists all roles
func (h *UserHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.managementService.ListRoles(r.Context())
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "roles", roles)
}

// CreateRole creates a role with a unique name.
func (h *UserHandler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RoleName string `json:"role_name" validate:"required,min=1,max=100"`
	}
	if !decodeValid(w, r, &req) {
		return
	}

	role, err := h.managementService.CreateRole(r.Context(), req.RoleName)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusCreated, "role created", role)
}

// DeleteRole deletes a role and its assignments.
func (h *UserHandler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.managementService.DeleteRole(r.Context(), id); err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "role deleted", nil)
}

// AssignRole links a user to a role.
func (h *UserHandler) AssignRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		RoleID int64 `json:"role_id" validate:"required,min=1"`
	}
	if !decodeValid(w, r, &req) {
		return
	}

	if err := h.managementService.AssignRole(r.Context(), userID, req.RoleID); err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusCreated, "role assigned", nil)
}

// GrantPermission links a role to a permission.
func (h *UserHandler) GrantPermission(w http.ResponseWriter, r *http.Request) {
	roleID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		PermissionID int64 `json:"permission_id" validate:"required,min=1"`
	}
	if !decodeValid(w, r, &req) {
		return
	}

	if err := h.managementService.GrantPermission(r.Context(), roleID, req.PermissionID); err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusCreated, "permission granted", nil)
}

// ListPermissions lists the persisted permission catalog.
func (h *UserHandler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	perms, err := h.managementService.ListPermissions(r.Context())
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "permissions", perms)
}

// ListUserRoles lists every user-role assignment.
func (h *UserHandler) ListUserRoles(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.managementService.ListUserRoles(r.Context())
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "user role assignments", assignments)
}

// ListRolePermissions lists every role-permission assignment.
func (h *UserHandler) ListRolePermissions(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.managementService.ListRolePermissions(r.Context())
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "role permission assignments", assignments)
}
