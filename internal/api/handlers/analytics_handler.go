package handlers

import (
	"net/http"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/models"
	"github.com/sfares/newsroom-be/internal/services"
)

// LiveCounter reports how many distinct users hold open websocket
// connections. Satisfied by the websocket hub.
type LiveCounter interface {
	ConnectedUsers() int64
}

// AnalyticsHandler handles HTTP requests for traffic analytics.
type AnalyticsHandler struct {
	service services.AnalyticsServiceProvider
	live    LiveCounter
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(service services.AnalyticsServiceProvider, live LiveCounter) *AnalyticsHandler {
	return &AnalyticsHandler{service: service, live: live}
}

// Report handles the aggregated report for a named range.
func (h *AnalyticsHandler) Report(w http.ResponseWriter, r *http.Request) {
	rangeName := r.URL.Query().Get("range")
	if rangeName == "" {
		rangeName = "week"
	}
	switch rangeName {
	case "today", "week", "month", "year":
	default:
		RespondError(w, r, apperrors.Validation("range must be one of: today, week, month, year"))
		return
	}

	var liveVisitors int64
	if h.live != nil {
		liveVisitors = h.live.ConnectedUsers()
	}

	report, err := h.service.GetReport(rangeName, liveVisitors)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "report generated", report)
}

// Snapshots handles listing the stored daily snapshots.
func (h *AnalyticsHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.service.ListSnapshots()
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "snapshots retrieved", snapshots)
}

// SnapshotPayload defines an externally supplied daily snapshot.
type SnapshotPayload struct {
	Date               *string               `json:"date"`
	PageViews          int64                 `json:"pageViews" validate:"min=0"`
	UniqueUsers        int64                 `json:"uniqueUsers" validate:"min=0"`
	Sessions           int64                 `json:"sessions" validate:"min=0"`
	BounceRate         float64               `json:"bounceRate"`
	AvgSessionDuration float64               `json:"avgSessionDuration"`
	TopCountries       []models.CountryStat  `json:"topCountries"`
	TopDevices         []models.DeviceStat   `json:"topDevices"`
	TopArticles        []models.ArticleStat  `json:"topArticles"`
	TopCategories      []models.CategoryStat `json:"topCategories"`
}

// CreateSnapshot handles storing a snapshot posted by an external pipeline.
func (h *AnalyticsHandler) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	var payload SnapshotPayload
	if err := decodeJSON(r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	snapshot := models.AnalyticsSnapshot{
		PageViews:          payload.PageViews,
		UniqueUsers:        payload.UniqueUsers,
		Sessions:           payload.Sessions,
		BounceRate:         payload.BounceRate,
		AvgSessionDuration: payload.AvgSessionDuration,
		TopCountries:       payload.TopCountries,
		TopDevices:         payload.TopDevices,
		TopArticles:        payload.TopArticles,
		TopCategories:      payload.TopCategories,
	}
	if payload.Date != nil {
		at, err := parseTime(*payload.Date)
		if err != nil {
			RespondError(w, r, apperrors.Validation("date must be an RFC 3339 timestamp"))
			return
		}
		snapshot.Date = at
	}

	stored, err := h.service.CreateSnapshot(snapshot)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, "snapshot created", stored)
}

// Range handles listing snapshots between two dates.
func (h *AnalyticsHandler) Range(w http.ResponseWriter, r *http.Request) {
	start, err := parseTime(r.URL.Query().Get("start"))
	if err != nil {
		RespondError(w, r, apperrors.Validation("start must be an RFC 3339 timestamp"))
		return
	}
	end, err := parseTime(r.URL.Query().Get("end"))
	if err != nil {
		RespondError(w, r, apperrors.Validation("end must be an RFC 3339 timestamp"))
		return
	}
	if end.Before(start) {
		RespondError(w, r, apperrors.Validation("end must not precede start"))
		return
	}

	snapshots, err := h.service.GetSnapshotsByDateRange(start, end)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "snapshots retrieved", snapshots)
}

// Latest handles retrieving the most recent snapshot.
func (h *AnalyticsHandler) Latest(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.GetLatestSnapshot()
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "snapshot retrieved", snapshot)
}
