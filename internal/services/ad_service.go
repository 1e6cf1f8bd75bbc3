package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/models"
)

// AdServiceProvider defines the interface for ad services.
type AdServiceProvider interface {
	CreateAd(ad models.Ad) (models.Ad, error)
	GetAdByID(id string) (models.Ad, error)
	ListAds(status, placement string) ([]models.Ad, error)
	UpdateAd(id string, ad models.Ad) (models.Ad, error)
	DeleteAd(id string) error
	RecordImpression(id string) error
	RecordClick(id string) error
	ApplyWindowTransitions(now time.Time) (activated, paused int, err error)
}

// AdService provides business logic for ad campaigns.
type AdService struct {
	db *sql.DB
}

// NewAdService creates a new AdService.
func NewAdService(db *sql.DB) *AdService {
	return &AdService{db: db}
}

const adColumns = `id, title, type, placement, status, impressions, clicks, start_date, end_date, created_at, updated_at`

func scanAd(row interface{ Scan(...any) error }) (models.Ad, error) {
	var a models.Ad
	err := row.Scan(&a.ID, &a.Title, &a.Type, &a.Placement, &a.Status,
		&a.Impressions, &a.Clicks, &a.StartDate, &a.EndDate, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// CreateAd stores a new ad campaign.
func (s *AdService) CreateAd(ad models.Ad) (models.Ad, error) {
	if ad.Title == "" || ad.Placement == "" {
		return models.Ad{}, apperrors.Validation("title and placement are required")
	}
	if ad.StartDate.IsZero() || ad.EndDate.IsZero() {
		return models.Ad{}, apperrors.Validation("startDate and endDate are required")
	}
	if ad.EndDate.Before(ad.StartDate) {
		return models.Ad{}, apperrors.Validation("endDate must not precede startDate")
	}
	if ad.Type == "" {
		ad.Type = models.AdTypeBanner
	}
	if !models.ValidAdType(ad.Type) {
		return models.Ad{}, apperrors.Validation("invalid ad type")
	}
	if ad.Status == "" {
		ad.Status = models.AdStatusActive
	}

	ad.ID = uuid.New().String()
	_, err := s.db.Exec(
		"INSERT INTO ads (id, title, type, placement, status, start_date, end_date) VALUES (?, ?, ?, ?, ?, ?, ?)",
		ad.ID, ad.Title, ad.Type, ad.Placement, ad.Status, ad.StartDate, ad.EndDate,
	)
	if err != nil {
		return models.Ad{}, err
	}
	return s.GetAdByID(ad.ID)
}

// GetAdByID retrieves one ad.
func (s *AdService) GetAdByID(id string) (models.Ad, error) {
	ad, err := scanAd(s.db.QueryRow("SELECT "+adColumns+" FROM ads WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return models.Ad{}, apperrors.NotFound("ad not found")
	}
	return ad, err
}

// ListAds retrieves ads filtered by status and placement.
func (s *AdService) ListAds(status, placement string) ([]models.Ad, error) {
	query := "SELECT " + adColumns + " FROM ads WHERE 1=1"
	args := []any{}
	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}
	if placement != "" {
		query += " AND placement = ?"
		args = append(args, placement)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ads []models.Ad
	for rows.Next() {
		ad, err := scanAd(rows)
		if err != nil {
			return nil, err
		}
		ads = append(ads, ad)
	}
	return ads, rows.Err()
}

// UpdateAd applies a partial update.
func (s *AdService) UpdateAd(id string, update models.Ad) (models.Ad, error) {
	ad, err := s.GetAdByID(id)
	if err != nil {
		return models.Ad{}, err
	}

	if update.Title != "" {
		ad.Title = update.Title
	}
	if update.Type != "" {
		if !models.ValidAdType(update.Type) {
			return models.Ad{}, apperrors.Validation("invalid ad type")
		}
		ad.Type = update.Type
	}
	if update.Placement != "" {
		ad.Placement = update.Placement
	}
	if update.Status != "" {
		switch update.Status {
		case models.AdStatusActive, models.AdStatusPaused, models.AdStatusScheduled:
			ad.Status = update.Status
		default:
			return models.Ad{}, apperrors.Validation("invalid ad status")
		}
	}
	if !update.StartDate.IsZero() {
		ad.StartDate = update.StartDate
	}
	if !update.EndDate.IsZero() {
		ad.EndDate = update.EndDate
	}
	if ad.EndDate.Before(ad.StartDate) {
		return models.Ad{}, apperrors.Validation("endDate must not precede startDate")
	}

	_, err = s.db.Exec(
		"UPDATE ads SET title = ?, type = ?, placement = ?, status = ?, start_date = ?, end_date = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		ad.Title, ad.Type, ad.Placement, ad.Status, ad.StartDate, ad.EndDate, id,
	)
	if err != nil {
		return models.Ad{}, err
	}
	return s.GetAdByID(id)
}

// DeleteAd removes an ad.
func (s *AdService) DeleteAd(id string) error {
	res, err := s.db.Exec("DELETE FROM ads WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFound("ad not found")
	}
	return nil
}

// RecordImpression bumps the impression counter.
func (s *AdService) RecordImpression(id string) error {
	return s.bumpCounter(id, "impressions")
}

// RecordClick bumps the click counter.
func (s *AdService) RecordClick(id string) error {
	return s.bumpCounter(id, "clicks")
}

func (s *AdService) bumpCounter(id, column string) error {
	res, err := s.db.Exec("UPDATE ads SET "+column+" = "+column+" + 1 WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFound("ad not found")
	}
	return nil
}

// ApplyWindowTransitions activates scheduled ads whose window has opened and
// pauses active ads whose window has closed. Invoked by the scheduler.
func (s *AdService) ApplyWindowTransitions(now time.Time) (int, int, error) {
	activated, err := s.db.Exec(
		"UPDATE ads SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE status = ? AND start_date <= ? AND end_date > ?",
		models.AdStatusActive, models.AdStatusScheduled, now, now,
	)
	if err != nil {
		return 0, 0, err
	}
	paused, err := s.db.Exec(
		"UPDATE ads SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE status = ? AND end_date <= ?",
		models.AdStatusPaused, models.AdStatusActive, now,
	)
	if err != nil {
		return 0, 0, err
	}

	a, _ := activated.RowsAffected()
	p, _ := paused.RowsAffected()
	return int(a), int(p), nil
}
