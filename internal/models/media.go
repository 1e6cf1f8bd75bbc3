package models

import "time"

// Media is an entry in the media library, written after an upload lands in
// object storage.
type Media struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"` // image, video, audio
	Size      int64     `json:"size"`
	URL       string    `json:"url"`
	Usage     int64     `json:"usage"`
	CreatedAt time.Time `json:"createdAt"`
}
