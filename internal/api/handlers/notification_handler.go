package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/auth"
	"github.com/sfares/newsroom-be/internal/services"
)

// NotificationHandler handles HTTP requests for user notifications.
type NotificationHandler struct {
	service services.NotificationServiceProvider
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(service services.NotificationServiceProvider) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// NotificationPayload defines the structure for creating a notification.
type NotificationPayload struct {
	UserID  string `json:"userId" validate:"required"`
	Title   string `json:"title" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=1000"`
	Type    string `json:"type" validate:"omitempty,oneof=info success warning error"`
}

// ListMine handles listing the caller's notifications.
func (h *NotificationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		RespondError(w, r, apperrors.Unauthorized("authentication required"))
		return
	}

	notifications, err := h.service.GetNotificationsByUser(user.ID)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "notifications retrieved", notifications)
}

// Create handles sending a notification to a user. The stored record is the
// source of truth; the websocket push is best effort.
func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload NotificationPayload
	if err := decodeJSON(r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	notification, err := h.service.CreateNotification(payload.UserID, payload.Title, payload.Message, payload.Type)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, "notification sent", notification)
}

// MarkRead handles marking a notification as read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	notification, err := h.service.MarkRead(chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "notification updated", notification)
}

// Delete handles removing a notification.
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteNotification(chi.URLParam(r, "id")); err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "notification deleted", nil)
}
