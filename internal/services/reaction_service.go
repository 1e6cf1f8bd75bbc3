package services

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/models"
)

// ReactionServiceProvider defines the interface for reaction services.
type ReactionServiceProvider interface {
	SetReaction(articleID, userID, reactionType string) (models.Reaction, error)
	GetReactionsByArticle(articleID string) ([]models.Reaction, error)
	CountReactionsByArticle(articleID string) (map[string]int64, error)
	DeleteReaction(articleID, userID string) error
}

// ReactionService provides business logic for article reactions. A user has
// at most one reaction per article; re-reacting replaces the type.
type ReactionService struct {
	db *sql.DB
}

// NewReactionService creates a new ReactionService.
func NewReactionService(db *sql.DB) *ReactionService {
	return &ReactionService{db: db}
}

// SetReaction upserts the user's reaction on an article.
func (s *ReactionService) SetReaction(articleID, userID, reactionType string) (models.Reaction, error) {
	if articleID == "" || userID == "" {
		return models.Reaction{}, apperrors.Validation("articleId and userId are required")
	}
	if !models.ValidReactionType(reactionType) {
		return models.Reaction{}, apperrors.Validation("invalid reaction type")
	}

	// The (article_id, user_id) unique index makes this an atomic replace.
	_, err := s.db.Exec(`
		INSERT INTO reactions (id, article_id, user_id, type) VALUES (?, ?, ?, ?)
		ON CONFLICT(article_id, user_id) DO UPDATE SET type = excluded.type`,
		uuid.New().String(), articleID, userID, reactionType,
	)
	if err != nil {
		return models.Reaction{}, err
	}

	var r models.Reaction
	err = s.db.QueryRow(
		"SELECT id, article_id, user_id, type, created_at FROM reactions WHERE article_id = ? AND user_id = ?",
		articleID, userID,
	).Scan(&r.ID, &r.ArticleID, &r.UserID, &r.Type, &r.CreatedAt)
	return r, err
}

// GetReactionsByArticle retrieves all reactions for an article.
func (s *ReactionService) GetReactionsByArticle(articleID string) ([]models.Reaction, error) {
	rows, err := s.db.Query(
		"SELECT id, article_id, user_id, type, created_at FROM reactions WHERE article_id = ?",
		articleID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reactions []models.Reaction
	for rows.Next() {
		var r models.Reaction
		if err := rows.Scan(&r.ID, &r.ArticleID, &r.UserID, &r.Type, &r.CreatedAt); err != nil {
			return nil, err
		}
		reactions = append(reactions, r)
	}
	return reactions, rows.Err()
}

// CountReactionsByArticle returns per-type tallies for an article.
func (s *ReactionService) CountReactionsByArticle(articleID string) (map[string]int64, error) {
	rows, err := s.db.Query(
		"SELECT type, COUNT(*) FROM reactions WHERE article_id = ? GROUP BY type",
		articleID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var reactionType string
		var count int64
		if err := rows.Scan(&reactionType, &count); err != nil {
			return nil, err
		}
		counts[reactionType] = count
	}
	return counts, rows.Err()
}

// DeleteReaction removes the user's reaction from an article.
func (s *ReactionService) DeleteReaction(articleID, userID string) error {
	res, err := s.db.Exec("DELETE FROM reactions WHERE article_id = ? AND user_id = ?", articleID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFound("reaction not found")
	}
	return nil
}
