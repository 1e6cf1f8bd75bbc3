package services

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/models"
)

// HoroscopeServiceProvider defines the interface for horoscope services.
type HoroscopeServiceProvider interface {
	CreateSign(sign models.HoroscopeSign) (models.HoroscopeSign, error)
	GetSignBySlug(slug string) (models.HoroscopeSign, error)
	ListSigns() ([]models.HoroscopeSign, error)
	UpdateSign(slug string, sign models.HoroscopeSign) (models.HoroscopeSign, error)
	DeleteSign(slug string) error
}

// HoroscopeService manages the zodiac sign records.
type HoroscopeService struct {
	db *sql.DB
}

// NewHoroscopeService creates a new HoroscopeService.
func NewHoroscopeService(db *sql.DB) *HoroscopeService {
	return &HoroscopeService{db: db}
}

const signColumns = `id, name, name_en, slug, icon, symbol, date_range`

func scanSign(row interface{ Scan(...any) error }) (models.HoroscopeSign, error) {
	var h models.HoroscopeSign
	err := row.Scan(&h.ID, &h.Name, &h.NameEn, &h.Slug, &h.Icon, &h.Symbol, &h.DateRange)
	return h, err
}

// CreateSign stores a new sign; slugs are unique.
func (s *HoroscopeService) CreateSign(sign models.HoroscopeSign) (models.HoroscopeSign, error) {
	if sign.Name == "" || sign.NameEn == "" || sign.Slug == "" {
		return models.HoroscopeSign{}, apperrors.Validation("name, nameEn and slug are required")
	}

	sign.ID = uuid.New().String()
	_, err := s.db.Exec(
		"INSERT INTO horoscope_signs (id, name, name_en, slug, icon, symbol, date_range) VALUES (?, ?, ?, ?, ?, ?, ?)",
		sign.ID, sign.Name, sign.NameEn, sign.Slug, sign.Icon, sign.Symbol, sign.DateRange,
	)
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			return models.HoroscopeSign{}, apperrors.Conflict("a sign with this slug already exists")
		}
		return models.HoroscopeSign{}, err
	}
	return s.GetSignBySlug(sign.Slug)
}

// GetSignBySlug retrieves one sign.
func (s *HoroscopeService) GetSignBySlug(slug string) (models.HoroscopeSign, error) {
	sign, err := scanSign(s.db.QueryRow("SELECT "+signColumns+" FROM horoscope_signs WHERE slug = ?", slug))
	if err == sql.ErrNoRows {
		return models.HoroscopeSign{}, apperrors.NotFound("sign not found")
	}
	return sign, err
}

// ListSigns retrieves all signs.
func (s *HoroscopeService) ListSigns() ([]models.HoroscopeSign, error) {
	rows, err := s.db.Query("SELECT " + signColumns + " FROM horoscope_signs ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signs []models.HoroscopeSign
	for rows.Next() {
		sign, err := scanSign(rows)
		if err != nil {
			return nil, err
		}
		signs = append(signs, sign)
	}
	return signs, rows.Err()
}

// UpdateSign applies a partial update to the sign with the given slug.
func (s *HoroscopeService) UpdateSign(slug string, update models.HoroscopeSign) (models.HoroscopeSign, error) {
	sign, err := s.GetSignBySlug(slug)
	if err != nil {
		return models.HoroscopeSign{}, err
	}

	if update.Name != "" {
		sign.Name = update.Name
	}
	if update.NameEn != "" {
		sign.NameEn = update.NameEn
	}
	if update.Slug != "" {
		sign.Slug = update.Slug
	}
	if update.Icon != "" {
		sign.Icon = update.Icon
	}
	if update.Symbol != "" {
		sign.Symbol = update.Symbol
	}
	if update.DateRange != "" {
		sign.DateRange = update.DateRange
	}

	_, err = s.db.Exec(
		"UPDATE horoscope_signs SET name = ?, name_en = ?, slug = ?, icon = ?, symbol = ?, date_range = ? WHERE id = ?",
		sign.Name, sign.NameEn, sign.Slug, sign.Icon, sign.Symbol, sign.DateRange, sign.ID,
	)
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			return models.HoroscopeSign{}, apperrors.Conflict("a sign with this slug already exists")
		}
		return models.HoroscopeSign{}, err
	}
	return s.GetSignBySlug(sign.Slug)
}

// DeleteSign removes the sign with the given slug.
func (s *HoroscopeService) DeleteSign(slug string) error {
	res, err := s.db.Exec("DELETE FROM horoscope_signs WHERE slug = ?", slug)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFound("sign not found")
	}
	return nil
}
