package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/models"
)

type stubHostStats struct {
	stats HostStats
}

func (s *stubHostStats) Latest() HostStats { return s.stats }

func seedViewedArticle(t *testing.T, db *sql.DB, title, slug, category string, views int64) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO articles (id, title, excerpt, category_slug, author, date, slug, views) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		slug, title, "excerpt", category, "desk", time.Now(), slug, views,
	)
	require.NoError(t, err)
}

func TestSnapshotBreakdownRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(db, nil)

	created, err := svc.CreateSnapshot(models.AnalyticsSnapshot{
		PageViews:   1200,
		UniqueUsers: 300,
		TopCountries: []models.CountryStat{
			{Country: "DE", Users: 180, Percentage: 60},
		},
		TopArticles: []models.ArticleStat{
			{Title: "Election results", Views: 400},
		},
	})
	require.NoError(t, err)

	latest, err := svc.GetLatestSnapshot()
	require.NoError(t, err)
	assert.Equal(t, created.ID, latest.ID)
	require.Len(t, latest.TopCountries, 1)
	assert.Equal(t, "DE", latest.TopCountries[0].Country)
	require.Len(t, latest.TopArticles, 1)
	assert.Equal(t, int64(400), latest.TopArticles[0].Views)
}

func TestGetLatestSnapshotEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(db, nil)

	_, err := svc.GetLatestSnapshot()
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)
}

func TestGetReportAggregatesRange(t *testing.T) {
	db := newTestDB(t)
	hosts := &stubHostStats{stats: HostStats{CPUPercent: 12.5, MemoryPercent: 40, UptimeSeconds: 3600}}
	svc := NewAnalyticsService(db, hosts)

	now := time.Now()
	_, err := svc.CreateSnapshot(models.AnalyticsSnapshot{Date: now.AddDate(0, 0, -1), PageViews: 100, Sessions: 10})
	require.NoError(t, err)
	_, err = svc.CreateSnapshot(models.AnalyticsSnapshot{Date: now.AddDate(0, 0, -2), PageViews: 50, Sessions: 5})
	require.NoError(t, err)
	// Outside the week window, must not be counted.
	_, err = svc.CreateSnapshot(models.AnalyticsSnapshot{Date: now.AddDate(0, 0, -10), PageViews: 9999})
	require.NoError(t, err)

	report, err := svc.GetReport("week", 7)
	require.NoError(t, err)
	assert.Equal(t, int64(150), report.Overview.PageViews)
	assert.Equal(t, int64(15), report.Overview.Sessions)
	assert.Equal(t, int64(7), report.Realtime.LiveVisitors)
	assert.Equal(t, 12.5, report.Realtime.CPUPercent)
	assert.Equal(t, int64(3600), report.Realtime.UptimeSeconds)

	month, err := svc.GetReport("month", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(10149), month.Overview.PageViews)
}

func TestRollupDailyBuildsSnapshotFromContent(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(db, nil)

	seedViewedArticle(t, db, "Most read", "most-read", "politics", 500)
	seedViewedArticle(t, db, "Second", "second", "politics", 200)
	seedViewedArticle(t, db, "Niche", "niche", "culture", 50)

	snapshot, err := svc.RollupDaily(time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(750), snapshot.PageViews)
	require.NotEmpty(t, snapshot.TopArticles)
	assert.Equal(t, "Most read", snapshot.TopArticles[0].Title)
	require.Len(t, snapshot.TopCategories, 2)
	assert.Equal(t, "politics", snapshot.TopCategories[0].Category)
	assert.Equal(t, int64(700), snapshot.TopCategories[0].Views)
}
