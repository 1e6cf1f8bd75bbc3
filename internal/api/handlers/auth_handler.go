package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/auth"
	"github.com/sfares/newsroom-be/internal/services"
)

// AuthHandler handles session lifecycle requests.
type AuthHandler struct {
	sessions services.SessionServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessions services.SessionServiceProvider) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	FullName string `json:"fullName" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshPayload carries the refresh token presented for rotation.
type RefreshPayload struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// ForgotPasswordPayload identifies the account to send a reset link to.
type ForgotPasswordPayload struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordPayload carries the emailed reset token and the new password.
type ResetPasswordPayload struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

// Register handles new reader registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := decodeJSON(r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	user, pair, err := h.sessions.Register(payload.FullName, payload.Email, payload.Password)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	respond(w, http.StatusCreated, "registration successful", map[string]any{
		"user":         user.Sanitized(),
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

// Login handles user authentication and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := decodeJSON(r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	user, pair, err := h.sessions.Login(payload.Email, payload.Password)
	if err != nil {
		log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
		RespondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, "login successful", map[string]any{
		"user":         user.Sanitized(),
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

// Refresh rotates a valid refresh token into a new token pair.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var payload RefreshPayload
	if err := decodeJSON(r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	user, pair, err := h.sessions.Refresh(payload.RefreshToken)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, "token refreshed", map[string]any{
		"user":         user.Sanitized(),
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

// Logout invalidates the caller's stored refresh token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		RespondError(w, r, apperrors.Unauthorized("authentication required"))
		return
	}

	if err := h.sessions.Logout(user.ID); err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "logged out", nil)
}

// Me returns the authenticated user's own record.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		RespondError(w, r, apperrors.Unauthorized("authentication required"))
		return
	}
	respond(w, http.StatusOK, "user retrieved", user)
}

// ForgotPassword emails a reset link. The response does not reveal whether
// the account exists.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var payload ForgotPasswordPayload
	if err := decodeJSON(r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.sessions.ForgotPassword(payload.Email); err != nil {
		apiErr := apperrors.From(err)
		if apiErr.Status == http.StatusNotFound {
			respond(w, http.StatusOK, "if the account exists, a reset link has been sent", nil)
			return
		}
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "if the account exists, a reset link has been sent", nil)
}

// ResetPassword consumes an emailed reset token and sets a new password.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var payload ResetPasswordPayload
	if err := decodeJSON(r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.sessions.ResetPassword(payload.Token, payload.NewPassword); err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "password has been reset", nil)
}
