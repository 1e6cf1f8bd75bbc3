package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/models"
)

func seedAd(t *testing.T, svc *AdService, status string, start, end time.Time) models.Ad {
	t.Helper()
	ad, err := svc.CreateAd(models.Ad{
		Title:     "Spring campaign",
		Placement: "sidebar",
		Status:    status,
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)
	return ad
}

func TestCreateAdValidatesWindow(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdService(db)
	now := time.Now().UTC()

	_, err := svc.CreateAd(models.Ad{Title: "No dates", Placement: "header"})
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)

	_, err = svc.CreateAd(models.Ad{
		Title:     "Backwards",
		Placement: "header",
		StartDate: now,
		EndDate:   now.Add(-time.Hour),
	})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)

	ad, err := svc.CreateAd(models.Ad{
		Title:     "Valid",
		Placement: "header",
		StartDate: now,
		EndDate:   now.Add(24 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, models.AdTypeBanner, ad.Type)
	assert.Equal(t, models.AdStatusActive, ad.Status)
}

func TestAdCounters(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdService(db)
	now := time.Now().UTC()
	ad := seedAd(t, svc, models.AdStatusActive, now, now.Add(time.Hour))

	require.NoError(t, svc.RecordImpression(ad.ID))
	require.NoError(t, svc.RecordImpression(ad.ID))
	require.NoError(t, svc.RecordClick(ad.ID))

	got, err := svc.GetAdByID(ad.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Impressions)
	assert.Equal(t, int64(1), got.Clicks)

	err = svc.RecordClick("missing")
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)
}

func TestApplyWindowTransitions(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdService(db)
	now := time.Now().UTC()

	due := seedAd(t, svc, models.AdStatusScheduled, now.Add(-time.Hour), now.Add(time.Hour))
	future := seedAd(t, svc, models.AdStatusScheduled, now.Add(time.Hour), now.Add(2*time.Hour))
	expired := seedAd(t, svc, models.AdStatusActive, now.Add(-2*time.Hour), now.Add(-time.Hour))
	running := seedAd(t, svc, models.AdStatusActive, now.Add(-time.Hour), now.Add(time.Hour))

	activated, paused, err := svc.ApplyWindowTransitions(now)
	require.NoError(t, err)
	assert.Equal(t, 1, activated)
	assert.Equal(t, 1, paused)

	wantStatus := map[string]string{
		due.ID:     models.AdStatusActive,
		future.ID:  models.AdStatusScheduled,
		expired.ID: models.AdStatusPaused,
		running.ID: models.AdStatusActive,
	}
	for id, want := range wantStatus {
		got, err := svc.GetAdByID(id)
		require.NoError(t, err)
		assert.Equal(t, want, got.Status)
	}
}

func TestListAdsFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdService(db)
	now := time.Now().UTC()

	seedAd(t, svc, models.AdStatusActive, now, now.Add(time.Hour))
	seedAd(t, svc, models.AdStatusPaused, now, now.Add(time.Hour))

	active, err := svc.ListAds(models.AdStatusActive, "")
	require.NoError(t, err)
	assert.Len(t, active, 1)

	sidebar, err := svc.ListAds("", "sidebar")
	require.NoError(t, err)
	assert.Len(t, sidebar, 2)
}
