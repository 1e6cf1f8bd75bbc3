package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/models"
)

// HistoryServiceProvider defines the interface for reading-history services.
type HistoryServiceProvider interface {
	RecordRead(userID, slug, title, category string) (models.ReadingHistoryEntry, error)
	GetHistoryByUser(userID string, limit int) ([]models.ReadingHistoryEntry, error)
	ClearHistory(userID string) error
}

// HistoryService tracks which articles a user has read. One entry per
// (user, slug); re-reads refresh the timestamp.
type HistoryService struct {
	db *sql.DB
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(db *sql.DB) *HistoryService {
	return &HistoryService{db: db}
}

// RecordRead upserts a history entry for the user and article.
func (s *HistoryService) RecordRead(userID, slug, title, category string) (models.ReadingHistoryEntry, error) {
	if userID == "" || slug == "" || title == "" {
		return models.ReadingHistoryEntry{}, apperrors.Validation("userId, slug and title are required")
	}

	now := time.Now()
	_, err := s.db.Exec(`
		INSERT INTO reading_history (id, user_id, slug, title, category, read_at) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, slug) DO UPDATE SET title = excluded.title, category = excluded.category, read_at = excluded.read_at`,
		uuid.New().String(), userID, slug, title, category, now,
	)
	if err != nil {
		return models.ReadingHistoryEntry{}, err
	}

	var entry models.ReadingHistoryEntry
	err = s.db.QueryRow(
		"SELECT id, user_id, slug, title, category, read_at FROM reading_history WHERE user_id = ? AND slug = ?",
		userID, slug,
	).Scan(&entry.ID, &entry.UserID, &entry.Slug, &entry.Title, &entry.Category, &entry.ReadAt)
	return entry, err
}

// GetHistoryByUser retrieves a user's history, newest first.
func (s *HistoryService) GetHistoryByUser(userID string, limit int) ([]models.ReadingHistoryEntry, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}

	rows, err := s.db.Query(
		"SELECT id, user_id, slug, title, category, read_at FROM reading_history WHERE user_id = ? ORDER BY read_at DESC LIMIT ?",
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.ReadingHistoryEntry
	for rows.Next() {
		var entry models.ReadingHistoryEntry
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Slug, &entry.Title, &entry.Category, &entry.ReadAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// ClearHistory removes all of a user's history entries.
func (s *HistoryService) ClearHistory(userID string) error {
	_, err := s.db.Exec("DELETE FROM reading_history WHERE user_id = ?", userID)
	return err
}
