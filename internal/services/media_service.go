package services

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/models"
)

// MediaServiceProvider defines the interface for media services.
type MediaServiceProvider interface {
	StoreUpload(src io.Reader, filename, mediaType string) (models.Media, error)
	GetMediaByID(id string) (models.Media, error)
	ListMedia(mediaType string, limit int) ([]models.Media, error)
	RecordUsage(id string) error
	DeleteMedia(id string) error
}

// MediaService stores uploads on local disk and tracks them in the media
// library.
type MediaService struct {
	db       *sql.DB
	basePath string
	baseURL  string // Public prefix under which stored files are served
}

// NewMediaService creates a new MediaService.
func NewMediaService(db *sql.DB, basePath, baseURL string) *MediaService {
	return &MediaService{db: db, basePath: basePath, baseURL: strings.TrimRight(baseURL, "/")}
}

const mediaColumns = `id, name, type, size, url, usage, created_at`

func scanMedia(row interface{ Scan(...any) error }) (models.Media, error) {
	var m models.Media
	err := row.Scan(&m.ID, &m.Name, &m.Type, &m.Size, &m.URL, &m.Usage, &m.CreatedAt)
	return m, err
}

// StoreUpload writes the upload to disk and records it in the library. The
// destination file is removed again if any later step fails, so no orphaned
// files are left behind.
func (s *MediaService) StoreUpload(src io.Reader, filename, mediaType string) (models.Media, error) {
	switch mediaType {
	case "image", "video", "audio":
	default:
		return models.Media{}, apperrors.Validation("media type must be image, video or audio")
	}

	id := uuid.New().String()
	storedName := id + strings.ToLower(filepath.Ext(filename))
	destPath := filepath.Join(s.basePath, storedName)

	dest, err := os.Create(destPath)
	if err != nil {
		return models.Media{}, fmt.Errorf("failed to create media file: %w", err)
	}

	size, err := io.Copy(dest, src)
	closeErr := dest.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		s.removeStored(destPath)
		return models.Media{}, fmt.Errorf("failed to write media file: %w", err)
	}

	media := models.Media{
		ID:   id,
		Name: filepath.Base(filename),
		Type: mediaType,
		Size: size,
		URL:  s.baseURL + "/" + storedName,
	}

	_, err = s.db.Exec(
		"INSERT INTO media (id, name, type, size, url) VALUES (?, ?, ?, ?, ?)",
		media.ID, media.Name, media.Type, media.Size, media.URL,
	)
	if err != nil {
		s.removeStored(destPath)
		return models.Media{}, err
	}
	return s.GetMediaByID(media.ID)
}

// GetMediaByID retrieves one library entry.
func (s *MediaService) GetMediaByID(id string) (models.Media, error) {
	media, err := scanMedia(s.db.QueryRow("SELECT "+mediaColumns+" FROM media WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return models.Media{}, apperrors.NotFound("media not found")
	}
	return media, err
}

// ListMedia retrieves library entries, newest first.
func (s *MediaService) ListMedia(mediaType string, limit int) ([]models.Media, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}

	query := "SELECT " + mediaColumns + " FROM media"
	args := []any{}
	if mediaType != "" {
		query += " WHERE type = ?"
		args = append(args, mediaType)
	}
	query += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Media
	for rows.Next() {
		media, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, media)
	}
	return items, rows.Err()
}

// RecordUsage bumps the usage counter for a library entry.
func (s *MediaService) RecordUsage(id string) error {
	res, err := s.db.Exec("UPDATE media SET usage = usage + 1 WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFound("media not found")
	}
	return nil
}

// DeleteMedia removes the library entry and its stored file. A missing file
// on disk is not an error.
func (s *MediaService) DeleteMedia(id string) error {
	media, err := s.GetMediaByID(id)
	if err != nil {
		return err
	}

	if _, err := s.db.Exec("DELETE FROM media WHERE id = ?", id); err != nil {
		return err
	}

	storedName := media.URL[strings.LastIndex(media.URL, "/")+1:]
	if err := os.Remove(filepath.Join(s.basePath, storedName)); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("media_id", id).Msg("Failed to remove stored media file")
	}
	return nil
}

func (s *MediaService) removeStored(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", path).Msg("Failed to clean up media file")
	}
}
