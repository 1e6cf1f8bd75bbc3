package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/models"
)

// HostStats is a point-in-time sample of the machine serving the portal,
// used for the realtime block of analytics reports.
type HostStats struct {
	CPUPercent    float64
	MemoryPercent float64
	UptimeSeconds int64
	SampledAt     time.Time
}

// HostStatsProvider exposes the latest host sample. Satisfied by the
// monitoring package.
type HostStatsProvider interface {
	Latest() HostStats
}

// AnalyticsServiceProvider defines the interface for analytics services.
type AnalyticsServiceProvider interface {
	CreateSnapshot(snapshot models.AnalyticsSnapshot) (models.AnalyticsSnapshot, error)
	ListSnapshots() ([]models.AnalyticsSnapshot, error)
	GetSnapshotsByDateRange(start, end time.Time) ([]models.AnalyticsSnapshot, error)
	GetLatestSnapshot() (models.AnalyticsSnapshot, error)
	GetReport(rangeName string, liveVisitors int64) (models.AnalyticsReport, error)
	RollupDaily(now time.Time) (models.AnalyticsSnapshot, error)
}

// AnalyticsService provides aggregation over daily traffic snapshots.
type AnalyticsService struct {
	db    *sql.DB
	hosts HostStatsProvider
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(db *sql.DB, hosts HostStatsProvider) *AnalyticsService {
	return &AnalyticsService{db: db, hosts: hosts}
}

const analyticsColumns = `id, date, page_views, unique_users, sessions, bounce_rate, avg_session_duration, breakdown_json, created_at`

func scanSnapshot(row interface{ Scan(...any) error }) (models.AnalyticsSnapshot, error) {
	var a models.AnalyticsSnapshot
	err := row.Scan(&a.ID, &a.Date, &a.PageViews, &a.UniqueUsers, &a.Sessions,
		&a.BounceRate, &a.AvgSessionDuration, &a.BreakdownJSON, &a.CreatedAt)
	if err != nil {
		return models.AnalyticsSnapshot{}, err
	}
	a.PrepareForAPI()
	return a, nil
}

// CreateSnapshot stores a daily snapshot.
func (s *AnalyticsService) CreateSnapshot(snapshot models.AnalyticsSnapshot) (models.AnalyticsSnapshot, error) {
	snapshot.ID = uuid.New().String()
	if snapshot.Date.IsZero() {
		snapshot.Date = time.Now()
	}
	snapshot.PrepareForDB()

	_, err := s.db.Exec(
		"INSERT INTO analytics (id, date, page_views, unique_users, sessions, bounce_rate, avg_session_duration, breakdown_json) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		snapshot.ID, snapshot.Date, snapshot.PageViews, snapshot.UniqueUsers, snapshot.Sessions,
		snapshot.BounceRate, snapshot.AvgSessionDuration, snapshot.BreakdownJSON,
	)
	if err != nil {
		return models.AnalyticsSnapshot{}, err
	}

	stored, err := scanSnapshot(s.db.QueryRow("SELECT "+analyticsColumns+" FROM analytics WHERE id = ?", snapshot.ID))
	return stored, err
}

// ListSnapshots retrieves all snapshots, newest first.
func (s *AnalyticsService) ListSnapshots() ([]models.AnalyticsSnapshot, error) {
	return s.querySnapshots("SELECT " + analyticsColumns + " FROM analytics ORDER BY date DESC")
}

// GetSnapshotsByDateRange retrieves snapshots inside [start, end].
func (s *AnalyticsService) GetSnapshotsByDateRange(start, end time.Time) ([]models.AnalyticsSnapshot, error) {
	return s.querySnapshots(
		"SELECT "+analyticsColumns+" FROM analytics WHERE date >= ? AND date <= ? ORDER BY date DESC",
		start, end,
	)
}

// GetLatestSnapshot retrieves the most recent snapshot.
func (s *AnalyticsService) GetLatestSnapshot() (models.AnalyticsSnapshot, error) {
	snapshot, err := scanSnapshot(s.db.QueryRow("SELECT " + analyticsColumns + " FROM analytics ORDER BY date DESC LIMIT 1"))
	if err == sql.ErrNoRows {
		return models.AnalyticsSnapshot{}, apperrors.NotFound("no analytics data found")
	}
	return snapshot, err
}

// GetReport aggregates snapshots over a named range (today, week, month,
// year) into the nested report structure. An empty range yields a zeroed
// report rather than an error.
func (s *AnalyticsService) GetReport(rangeName string, liveVisitors int64) (models.AnalyticsReport, error) {
	start := rangeStart(rangeName, time.Now())

	snapshots, err := s.querySnapshots(
		"SELECT "+analyticsColumns+" FROM analytics WHERE date >= ? ORDER BY date DESC",
		start,
	)
	if err != nil {
		return models.AnalyticsReport{}, err
	}

	var report models.AnalyticsReport
	for _, snap := range snapshots {
		report.Overview.PageViews += snap.PageViews
		report.Overview.UniqueUsers += snap.UniqueUsers
		report.Overview.Sessions += snap.Sessions
		if snap.BounceRate != 0 {
			report.Overview.BounceRate = snap.BounceRate
		}
		if snap.AvgSessionDuration != 0 {
			report.Overview.AvgSessionDuration = snap.AvgSessionDuration
		}
		// The ranked lists come from the newest snapshot that has them.
		if report.Audience.TopCountries == nil && len(snap.TopCountries) > 0 {
			report.Audience.TopCountries = snap.TopCountries
		}
		if report.Audience.TopDevices == nil && len(snap.TopDevices) > 0 {
			report.Audience.TopDevices = snap.TopDevices
		}
		if report.Content.TopArticles == nil && len(snap.TopArticles) > 0 {
			report.Content.TopArticles = snap.TopArticles
		}
		if report.Content.TopCategories == nil && len(snap.TopCategories) > 0 {
			report.Content.TopCategories = snap.TopCategories
		}
	}

	report.Realtime.LiveVisitors = liveVisitors
	if s.hosts != nil {
		stats := s.hosts.Latest()
		report.Realtime.CPUPercent = stats.CPUPercent
		report.Realtime.MemoryPercent = stats.MemoryPercent
		report.Realtime.UptimeSeconds = stats.UptimeSeconds
	}
	return report, nil
}

// RollupDaily builds a snapshot from today's content counters (article views
// per article and category). Invoked by the scheduler at day boundaries.
func (s *AnalyticsService) RollupDaily(now time.Time) (models.AnalyticsSnapshot, error) {
	snapshot := models.AnalyticsSnapshot{Date: now}

	if err := s.db.QueryRow("SELECT COALESCE(SUM(views), 0) FROM articles").Scan(&snapshot.PageViews); err != nil {
		return models.AnalyticsSnapshot{}, err
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE status = 'active'").Scan(&snapshot.UniqueUsers); err != nil {
		return models.AnalyticsSnapshot{}, err
	}

	rows, err := s.db.Query("SELECT title, views FROM articles ORDER BY views DESC LIMIT 10")
	if err != nil {
		return models.AnalyticsSnapshot{}, err
	}
	for rows.Next() {
		var stat models.ArticleStat
		if err := rows.Scan(&stat.Title, &stat.Views); err != nil {
			rows.Close()
			return models.AnalyticsSnapshot{}, err
		}
		snapshot.TopArticles = append(snapshot.TopArticles, stat)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return models.AnalyticsSnapshot{}, err
	}

	rows, err = s.db.Query("SELECT category_slug, COALESCE(SUM(views), 0) FROM articles WHERE category_slug != '' GROUP BY category_slug ORDER BY SUM(views) DESC LIMIT 10")
	if err != nil {
		return models.AnalyticsSnapshot{}, err
	}
	for rows.Next() {
		var stat models.CategoryStat
		if err := rows.Scan(&stat.Category, &stat.Views); err != nil {
			rows.Close()
			return models.AnalyticsSnapshot{}, err
		}
		snapshot.TopCategories = append(snapshot.TopCategories, stat)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return models.AnalyticsSnapshot{}, err
	}

	return s.CreateSnapshot(snapshot)
}

func (s *AnalyticsService) querySnapshots(query string, args ...any) ([]models.AnalyticsSnapshot, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []models.AnalyticsSnapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, rows.Err()
}

func rangeStart(rangeName string, now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch rangeName {
	case "today":
		return midnight
	case "month":
		return midnight.AddDate(0, -1, 0)
	case "year":
		return midnight.AddDate(-1, 0, 0)
	default: // week
		return midnight.AddDate(0, 0, -7)
	}
}
