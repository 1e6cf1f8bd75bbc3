package models

import "time"

// ReadingHistoryEntry records that a user opened an article. One entry per
// (user, slug); re-reads refresh the timestamp.
type ReadingHistoryEntry struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	Slug     string    `json:"slug"`
	Title    string    `json:"title"`
	Category string    `json:"category"`
	ReadAt   time.Time `json:"readAt"`
}
