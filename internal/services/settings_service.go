package services

import (
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/sfares/newsroom-be/internal/models"
)

// SettingsPatch is a partial settings update; nil groups are left untouched.
type SettingsPatch struct {
	SiteInfo      *models.SiteInfo             `json:"siteInfo"`
	Notifications *models.NotificationSettings `json:"notifications"`
	Publishing    *models.PublishingSettings   `json:"publishing"`
	Security      *models.SecuritySettings     `json:"security"`
	SEO           *models.SEOSettings          `json:"seo"`
}

// SettingsServiceProvider defines the interface for settings services.
type SettingsServiceProvider interface {
	GetSettings() (models.Settings, error)
	UpdateSettings(patch SettingsPatch) (models.Settings, error)
	ResetSettings() (models.Settings, error)
}

// SettingsService manages the portal-wide settings singleton; the first read
// creates the defaults.
type SettingsService struct {
	db *sql.DB
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(db *sql.DB) *SettingsService {
	return &SettingsService{db: db}
}

// GetSettings retrieves the settings document, creating defaults when none
// exists yet.
func (s *SettingsService) GetSettings() (models.Settings, error) {
	settings, err := s.load()
	if err == sql.ErrNoRows {
		return s.insertDefaults()
	}
	return settings, err
}

// UpdateSettings merges the patch group by group; groups absent from the
// patch keep their current values.
func (s *SettingsService) UpdateSettings(patch SettingsPatch) (models.Settings, error) {
	settings, err := s.GetSettings()
	if err != nil {
		return models.Settings{}, err
	}

	if patch.SiteInfo != nil {
		settings.SiteInfo = *patch.SiteInfo
	}
	if patch.Notifications != nil {
		settings.Notifications = *patch.Notifications
	}
	if patch.Publishing != nil {
		settings.Publishing = *patch.Publishing
	}
	if patch.Security != nil {
		settings.Security = *patch.Security
	}
	if patch.SEO != nil {
		settings.SEO = *patch.SEO
	}

	siteInfo, _ := json.Marshal(settings.SiteInfo)
	notifications, _ := json.Marshal(settings.Notifications)
	publishing, _ := json.Marshal(settings.Publishing)
	security, _ := json.Marshal(settings.Security)
	seo, _ := json.Marshal(settings.SEO)

	_, err = s.db.Exec(
		"UPDATE settings SET site_info_json = ?, notifications_json = ?, publishing_json = ?, security_json = ?, seo_json = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		string(siteInfo), string(notifications), string(publishing), string(security), string(seo), settings.ID,
	)
	if err != nil {
		return models.Settings{}, err
	}
	return s.load()
}

// ResetSettings deletes the document and recreates the defaults.
func (s *SettingsService) ResetSettings() (models.Settings, error) {
	if _, err := s.db.Exec("DELETE FROM settings"); err != nil {
		return models.Settings{}, err
	}
	return s.insertDefaults()
}

func (s *SettingsService) load() (models.Settings, error) {
	var settings models.Settings
	var siteInfo, notifications, publishing, security, seo string

	err := s.db.QueryRow(
		"SELECT id, site_info_json, notifications_json, publishing_json, security_json, seo_json, created_at, updated_at FROM settings LIMIT 1",
	).Scan(&settings.ID, &siteInfo, &notifications, &publishing, &security, &seo, &settings.CreatedAt, &settings.UpdatedAt)
	if err != nil {
		return models.Settings{}, err
	}

	_ = json.Unmarshal([]byte(siteInfo), &settings.SiteInfo)
	_ = json.Unmarshal([]byte(notifications), &settings.Notifications)
	_ = json.Unmarshal([]byte(publishing), &settings.Publishing)
	_ = json.Unmarshal([]byte(security), &settings.Security)
	_ = json.Unmarshal([]byte(seo), &settings.SEO)
	return settings, nil
}

func (s *SettingsService) insertDefaults() (models.Settings, error) {
	defaults := models.DefaultSettings()
	defaults.ID = uuid.New().String()

	siteInfo, _ := json.Marshal(defaults.SiteInfo)
	notifications, _ := json.Marshal(defaults.Notifications)
	publishing, _ := json.Marshal(defaults.Publishing)
	security, _ := json.Marshal(defaults.Security)
	seo, _ := json.Marshal(defaults.SEO)

	_, err := s.db.Exec(
		"INSERT INTO settings (id, site_info_json, notifications_json, publishing_json, security_json, seo_json) VALUES (?, ?, ?, ?, ?, ?)",
		defaults.ID, string(siteInfo), string(notifications), string(publishing), string(security), string(seo),
	)
	if err != nil {
		return models.Settings{}, err
	}
	return s.load()
}
