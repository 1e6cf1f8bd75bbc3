package services

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/models"
	"github.com/sfares/newsroom-be/internal/sanitize"
)

// CommentServiceProvider defines the interface for comment services.
type CommentServiceProvider interface {
	CreateComment(articleID, author, content string, moderated bool) (models.Comment, error)
	GetCommentsByArticle(articleID, status string) ([]models.Comment, error)
	ListCommentsByStatus(status string, limit int) ([]models.Comment, error)
	SetCommentStatus(id, status string) (models.Comment, error)
	LikeComment(id string) (models.Comment, error)
	DeleteComment(id string) error
}

// CommentService provides business logic for reader comments. Comments are
// adversarial input: both author and content are stripped to plain text and
// length-capped before they touch storage.
type CommentService struct {
	db *sql.DB
}

// NewCommentService creates a new CommentService.
func NewCommentService(db *sql.DB) *CommentService {
	return &CommentService{db: db}
}

const commentColumns = `id, article_id, author, content, likes, status, created_at`

func scanComment(row interface{ Scan(...any) error }) (models.Comment, error) {
	var c models.Comment
	err := row.Scan(&c.ID, &c.ArticleID, &c.Author, &c.Content, &c.Likes, &c.Status, &c.CreatedAt)
	return c, err
}

// CreateComment sanitizes and stores a new comment. When moderation is
// enabled the comment starts pending; otherwise it is approved immediately.
func (s *CommentService) CreateComment(articleID, author, content string, moderated bool) (models.Comment, error) {
	author = sanitize.AuthorName(author)
	content = sanitize.PlainText(content)
	if articleID == "" || author == "" || content == "" {
		return models.Comment{}, apperrors.Validation("articleId, author and content are required")
	}

	status := models.CommentStatusApproved
	if moderated {
		status = models.CommentStatusPending
	}

	comment := models.Comment{
		ID:        uuid.New().String(),
		ArticleID: articleID,
		Author:    author,
		Content:   content,
		Status:    status,
	}

	_, err := s.db.Exec(
		"INSERT INTO comments (id, article_id, author, content, status) VALUES (?, ?, ?, ?, ?)",
		comment.ID, comment.ArticleID, comment.Author, comment.Content, comment.Status,
	)
	if err != nil {
		return models.Comment{}, err
	}
	return s.getComment(comment.ID)
}

// GetCommentsByArticle retrieves comments for an article, optionally limited
// to one moderation status.
func (s *CommentService) GetCommentsByArticle(articleID, status string) ([]models.Comment, error) {
	query := "SELECT " + commentColumns + " FROM comments WHERE article_id = ?"
	args := []any{articleID}
	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"
	return s.queryComments(query, args...)
}

// ListCommentsByStatus retrieves the newest comments in one moderation state,
// for the moderation queue.
func (s *CommentService) ListCommentsByStatus(status string, limit int) ([]models.Comment, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return s.queryComments(
		"SELECT "+commentColumns+" FROM comments WHERE status = ? ORDER BY created_at DESC LIMIT ?",
		status, limit,
	)
}

// SetCommentStatus moves a comment between pending/approved/spam.
func (s *CommentService) SetCommentStatus(id, status string) (models.Comment, error) {
	switch status {
	case models.CommentStatusPending, models.CommentStatusApproved, models.CommentStatusSpam:
	default:
		return models.Comment{}, apperrors.Validation("invalid comment status")
	}

	res, err := s.db.Exec("UPDATE comments SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return models.Comment{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Comment{}, apperrors.NotFound("comment not found")
	}
	return s.getComment(id)
}

// LikeComment increments the like counter.
func (s *CommentService) LikeComment(id string) (models.Comment, error) {
	res, err := s.db.Exec("UPDATE comments SET likes = likes + 1 WHERE id = ?", id)
	if err != nil {
		return models.Comment{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Comment{}, apperrors.NotFound("comment not found")
	}
	return s.getComment(id)
}

// DeleteComment removes a comment.
func (s *CommentService) DeleteComment(id string) error {
	res, err := s.db.Exec("DELETE FROM comments WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFound("comment not found")
	}
	return nil
}

func (s *CommentService) getComment(id string) (models.Comment, error) {
	comment, err := scanComment(s.db.QueryRow("SELECT "+commentColumns+" FROM comments WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return models.Comment{}, apperrors.NotFound("comment not found")
	}
	return comment, err
}

func (s *CommentService) queryComments(query string, args ...any) ([]models.Comment, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}
