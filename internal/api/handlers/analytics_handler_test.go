package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfares/newsroom-be/internal/models"
)

type stubAnalyticsService struct {
	created    []models.AnalyticsSnapshot
	rangeStart time.Time
	rangeEnd   time.Time
}

func (s *stubAnalyticsService) CreateSnapshot(snapshot models.AnalyticsSnapshot) (models.AnalyticsSnapshot, error) {
	snapshot.ID = "snap-1"
	s.created = append(s.created, snapshot)
	return snapshot, nil
}

func (s *stubAnalyticsService) ListSnapshots() ([]models.AnalyticsSnapshot, error) { return nil, nil }

func (s *stubAnalyticsService) GetSnapshotsByDateRange(start, end time.Time) ([]models.AnalyticsSnapshot, error) {
	s.rangeStart, s.rangeEnd = start, end
	return []models.AnalyticsSnapshot{}, nil
}

func (s *stubAnalyticsService) GetLatestSnapshot() (models.AnalyticsSnapshot, error) {
	return models.AnalyticsSnapshot{}, nil
}

func (s *stubAnalyticsService) GetReport(rangeName string, liveVisitors int64) (models.AnalyticsReport, error) {
	return models.AnalyticsReport{}, nil
}

func (s *stubAnalyticsService) RollupDaily(now time.Time) (models.AnalyticsSnapshot, error) {
	return models.AnalyticsSnapshot{}, nil
}

func TestCreateSnapshotEndpoint(t *testing.T) {
	svc := &stubAnalyticsService{}
	handler := NewAnalyticsHandler(svc, nil)

	body := `{"date":"2026-08-01T00:00:00Z","pageViews":1200,"uniqueUsers":300,"topCountries":[{"country":"DE","users":180}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analytics/snapshots", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.CreateSnapshot(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, svc.created, 1)
	assert.Equal(t, int64(1200), svc.created[0].PageViews)
	assert.Equal(t, "DE", svc.created[0].TopCountries[0].Country)
	assert.Equal(t, 2026, svc.created[0].Date.Year())
}

func TestCreateSnapshotRejectsBadDate(t *testing.T) {
	svc := &stubAnalyticsService{}
	handler := NewAnalyticsHandler(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analytics/snapshots", strings.NewReader(`{"date":"01/08/2026"}`))
	rec := httptest.NewRecorder()
	handler.CreateSnapshot(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.created)
}

func TestRangeEndpoint(t *testing.T) {
	svc := &stubAnalyticsService{}
	handler := NewAnalyticsHandler(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/range?start=2026-08-01T00:00:00Z&end=2026-08-31T00:00:00Z", nil)
	rec := httptest.NewRecorder()
	handler.Range(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.August, svc.rangeStart.Month())
	assert.Equal(t, 31, svc.rangeEnd.Day())

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
}

func TestRangeEndpointValidatesOrder(t *testing.T) {
	svc := &stubAnalyticsService{}
	handler := NewAnalyticsHandler(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/range?start=2026-08-31T00:00:00Z&end=2026-08-01T00:00:00Z", nil)
	rec := httptest.NewRecorder()
	handler.Range(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/analytics/range?start=notadate", nil)
	rec = httptest.NewRecorder()
	handler.Range(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
