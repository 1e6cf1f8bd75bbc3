package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/auth"
	"github.com/sfares/newsroom-be/internal/models"
	"github.com/sfares/newsroom-be/internal/services"
)

// UserHandler handles HTTP requests for user administration.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// CreateUserPayload defines the structure for admin user creation.
type CreateUserPayload struct {
	FullName string `json:"fullName" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=reader editor admin superadmin"`
}

// UpdateUserPayload defines the structure for profile updates. Zero-valued
// fields are left unchanged.
type UpdateUserPayload struct {
	FullName string `json:"fullName" validate:"omitempty,max=100"`
	Email    string `json:"email" validate:"omitempty,email"`
	Role     string `json:"role" validate:"omitempty,oneof=reader editor admin superadmin"`
	Status   string `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

// ChangePasswordPayload defines the structure for password changes.
type ChangePasswordPayload struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
}

// canGrant reports whether the caller may assign the target role. Admin and
// superadmin grants are reserved for superadmins.
func canGrant(caller models.User, role models.Role) bool {
	if role == models.RoleAdmin || role == models.RoleSuperadmin {
		return caller.Role == models.RoleSuperadmin
	}
	return true
}

// List handles listing users with optional role/status filters.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	users, total, err := h.service.ListUsers(r.URL.Query().Get("role"), r.URL.Query().Get("status"), page, limit)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, "users retrieved", map[string]any{
		"users": users,
		"total": total,
	})
}

// Get handles retrieving a user by their ID.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUserByID(chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "user retrieved", user.Sanitized())
}

// Create handles admin creation of a user with an assigned role.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload CreateUserPayload
	if err := decodeJSON(r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	caller, _ := auth.UserFromContext(r.Context())
	role := models.Role(payload.Role)
	if !canGrant(caller, role) {
		RespondError(w, r, apperrors.Forbidden("only superadmins may grant admin roles"))
		return
	}

	user, err := h.service.CreateUser(payload.FullName, payload.Email, payload.Password, role)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, "user created", user.Sanitized())
}

// Update handles updating a user's profile, role or status.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload UpdateUserPayload
	if err := decodeJSON(r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	role := models.Role(payload.Role)
	if payload.Role != "" {
		caller, _ := auth.UserFromContext(r.Context())
		if !canGrant(caller, role) {
			RespondError(w, r, apperrors.Forbidden("only superadmins may grant admin roles"))
			return
		}
	}

	user, err := h.service.UpdateUser(chi.URLParam(r, "id"), payload.FullName, payload.Email, role, payload.Status)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "user updated", user.Sanitized())
}

// Delete handles the permanent deletion of a user account.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteUser(chi.URLParam(r, "id")); err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "user deleted", nil)
}

// ChangePassword lets the authenticated user change their own password.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		RespondError(w, r, apperrors.Unauthorized("authentication required"))
		return
	}

	var payload ChangePasswordPayload
	if err := decodeJSON(r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.service.UpdatePassword(user.ID, payload.CurrentPassword, payload.NewPassword); err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "password updated", nil)
}
