package models

import "time"

// Reaction types a reader can attach to an article.
var ReactionTypes = []string{"like", "love", "laugh", "surprise", "sad", "angry"}

// ValidReactionType reports whether t is a known reaction type.
func ValidReactionType(t string) bool {
	for _, known := range ReactionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Reaction is at most one per (article, user); re-reacting replaces the type.
type Reaction struct {
	ID        string    `json:"id"`
	ArticleID string    `json:"articleId"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}
