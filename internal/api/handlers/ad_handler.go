package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/models"
	"github.com/sfares/newsroom-be/internal/services"
)

// AdHandler handles HTTP requests for ad campaigns.
type AdHandler struct {
	service services.AdServiceProvider
}

// NewAdHandler creates a new AdHandler.
func NewAdHandler(service services.AdServiceProvider) *AdHandler {
	return &AdHandler{service: service}
}

// AdPayload defines the writable fields of an ad campaign.
type AdPayload struct {
	Title     string `json:"title" validate:"required,max=200"`
	Type      string `json:"type" validate:"required,oneof=banner sidebar inline video"`
	Placement string `json:"placement" validate:"required,max=100"`
	Status    string `json:"status" validate:"omitempty,oneof=active paused scheduled"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
}

func (p *AdPayload) toModel() (models.Ad, error) {
	start, err := parseTime(p.StartDate)
	if err != nil {
		return models.Ad{}, apperrors.Validation("startDate must be an RFC 3339 timestamp")
	}
	end, err := parseTime(p.EndDate)
	if err != nil {
		return models.Ad{}, apperrors.Validation("endDate must be an RFC 3339 timestamp")
	}
	return models.Ad{
		Title:     p.Title,
		Type:      p.Type,
		Placement: p.Placement,
		Status:    p.Status,
		StartDate: start,
		EndDate:   end,
	}, nil
}

// List handles listing ads with optional status/placement filters.
func (h *AdHandler) List(w http.ResponseWriter, r *http.Request) {
	ads, err := h.service.ListAds(r.URL.Query().Get("status"), r.URL.Query().Get("placement"))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "ads retrieved", ads)
}

// Get handles retrieving an ad by ID.
func (h *AdHandler) Get(w http.ResponseWriter, r *http.Request) {
	ad, err := h.service.GetAdByID(chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "ad retrieved", ad)
}

// Create handles adding a new ad campaign.
func (h *AdHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload AdPayload
	if err := decodeJSON(r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	ad, err := payload.toModel()
	if err != nil {
		RespondError(w, r, err)
		return
	}

	created, err := h.service.CreateAd(ad)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, "ad created", created)
}

// Update handles editing an ad campaign.
func (h *AdHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload AdPayload
	if err := decodeJSON(r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	ad, err := payload.toModel()
	if err != nil {
		RespondError(w, r, err)
		return
	}

	updated, err := h.service.UpdateAd(chi.URLParam(r, "id"), ad)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "ad updated", updated)
}

// Delete handles removing an ad campaign.
func (h *AdHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAd(chi.URLParam(r, "id")); err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "ad deleted", nil)
}

// Impression handles recording one ad impression.
func (h *AdHandler) Impression(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RecordImpression(chi.URLParam(r, "id")); err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "impression recorded", nil)
}

// Click handles recording one ad click.
func (h *AdHandler) Click(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RecordClick(chi.URLParam(r, "id")); err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "click recorded", nil)
}
