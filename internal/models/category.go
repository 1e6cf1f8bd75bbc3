package models

import "time"

// Category statuses.
const (
	CategoryStatusActive   = "active"
	CategoryStatusInactive = "inactive"
)

// Category groups articles; slug is the public identifier.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	NameEn      string    `json:"nameEn,omitempty"`
	Slug        string    `json:"slug"`
	Icon        string    `json:"icon,omitempty"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	Order       int       `json:"order"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
