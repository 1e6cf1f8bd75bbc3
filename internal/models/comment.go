package models

import "time"

// Comment moderation statuses.
const (
	CommentStatusPending  = "pending"
	CommentStatusApproved = "approved"
	CommentStatusSpam     = "spam"
)

// Comment is reader input on an article. Author and content are stored
// sanitized plain text.
type Comment struct {
	ID        string    `json:"id"`
	ArticleID string    `json:"articleId"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Likes     int64     `json:"likes"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
