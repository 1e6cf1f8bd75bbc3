package models

import "time"

// Ad placements and statuses.
const (
	AdTypeBanner  = "banner"
	AdTypeSidebar = "sidebar"
	AdTypeInline  = "inline"
	AdTypeVideo   = "video"

	AdStatusActive    = "active"
	AdStatusPaused    = "paused"
	AdStatusScheduled = "scheduled"
)

// ValidAdType reports whether t is a known ad type.
func ValidAdType(t string) bool {
	switch t {
	case AdTypeBanner, AdTypeSidebar, AdTypeInline, AdTypeVideo:
		return true
	}
	return false
}

// Ad is a campaign with a display window. The scheduler moves scheduled ads
// into their window and pauses expired ones.
type Ad struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Placement   string    `json:"placement"`
	Status      string    `json:"status"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
