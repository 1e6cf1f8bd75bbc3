package services

import (
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/models"
)

// NotificationPusher delivers a payload to a user's live connections.
// Satisfied by the websocket hub.
type NotificationPusher interface {
	PushTo(userID string, message []byte)
}

// NotificationServiceProvider defines the interface for notification services.
type NotificationServiceProvider interface {
	CreateNotification(userID, title, message, notifType string) (models.Notification, error)
	GetNotificationsByUser(userID string) ([]models.Notification, error)
	MarkRead(id string) (models.Notification, error)
	DeleteNotification(id string) error
}

// NotificationService provides business logic for user notifications.
// Persisting is the primary operation; the live websocket push is best
// effort and never fails the write.
type NotificationService struct {
	db     *sql.DB
	pusher NotificationPusher
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(db *sql.DB, pusher NotificationPusher) *NotificationService {
	return &NotificationService{db: db, pusher: pusher}
}

const notificationColumns = `id, user_id, title, message, type, read, created_at`

func scanNotification(row interface{ Scan(...any) error }) (models.Notification, error) {
	var n models.Notification
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Read, &n.CreatedAt)
	return n, err
}

// CreateNotification stores a notification and pushes it to the user's open
// connections.
func (s *NotificationService) CreateNotification(userID, title, message, notifType string) (models.Notification, error) {
	if userID == "" || title == "" || message == "" {
		return models.Notification{}, apperrors.Validation("userId, title and message are required")
	}

	notification := models.Notification{
		ID:      uuid.New().String(),
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notifType,
	}

	_, err := s.db.Exec(
		"INSERT INTO notifications (id, user_id, title, message, type) VALUES (?, ?, ?, ?, ?)",
		notification.ID, notification.UserID, notification.Title, notification.Message, notification.Type,
	)
	if err != nil {
		return models.Notification{}, err
	}

	stored, err := s.getNotification(notification.ID)
	if err != nil {
		return models.Notification{}, err
	}

	if s.pusher != nil {
		payload, err := json.Marshal(map[string]any{"action": "notification", "payload": stored})
		if err != nil {
			log.Warn().Err(err).Msg("Failed to marshal notification push payload")
		} else {
			s.pusher.PushTo(userID, payload)
		}
	}

	return stored, nil
}

// GetNotificationsByUser retrieves a user's notifications, newest first.
func (s *NotificationService) GetNotificationsByUser(userID string) ([]models.Notification, error) {
	rows, err := s.db.Query(
		"SELECT "+notificationColumns+" FROM notifications WHERE user_id = ? ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		notification, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}
	return notifications, rows.Err()
}

// MarkRead flags a notification as read.
func (s *NotificationService) MarkRead(id string) (models.Notification, error) {
	res, err := s.db.Exec("UPDATE notifications SET read = 1 WHERE id = ?", id)
	if err != nil {
		return models.Notification{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Notification{}, apperrors.NotFound("notification not found")
	}
	return s.getNotification(id)
}

// DeleteNotification removes a notification.
func (s *NotificationService) DeleteNotification(id string) error {
	res, err := s.db.Exec("DELETE FROM notifications WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFound("notification not found")
	}
	return nil
}

func (s *NotificationService) getNotification(id string) (models.Notification, error) {
	notification, err := scanNotification(s.db.QueryRow("SELECT "+notificationColumns+" FROM notifications WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return models.Notification{}, apperrors.NotFound("notification not found")
	}
	return notification, err
}
