package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sfares/newsroom-be/internal/models"
	"github.com/sfares/newsroom-be/internal/services"
)

// HoroscopeHandler handles HTTP requests for zodiac signs.
type HoroscopeHandler struct {
	service services.HoroscopeServiceProvider
}

// NewHoroscopeHandler creates a new HoroscopeHandler.
func NewHoroscopeHandler(service services.HoroscopeServiceProvider) *HoroscopeHandler {
	return &HoroscopeHandler{service: service}
}

// SignPayload defines the writable fields of a zodiac sign.
type SignPayload struct {
	Name      string `json:"name" validate:"required,max=100"`
	NameEn    string `json:"nameEn" validate:"required,max=100"`
	Slug      string `json:"slug" validate:"required,max=100"`
	Icon      string `json:"icon"`
	Symbol    string `json:"symbol"`
	DateRange string `json:"dateRange"`
}

func (p *SignPayload) toModel() models.HoroscopeSign {
	return models.HoroscopeSign{
		Name:      p.Name,
		NameEn:    p.NameEn,
		Slug:      p.Slug,
		Icon:      p.Icon,
		Symbol:    p.Symbol,
		DateRange: p.DateRange,
	}
}

// List handles listing all signs.
func (h *HoroscopeHandler) List(w http.ResponseWriter, r *http.Request) {
	signs, err := h.service.ListSigns()
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "signs retrieved", signs)
}

// Get handles retrieving a sign by slug.
func (h *HoroscopeHandler) Get(w http.ResponseWriter, r *http.Request) {
	sign, err := h.service.GetSignBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "sign retrieved", sign)
}

// Create handles adding a new sign.
func (h *HoroscopeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload SignPayload
	if err := decodeJSON(r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	sign, err := h.service.CreateSign(payload.toModel())
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, "sign created", sign)
}

// Update handles editing a sign.
func (h *HoroscopeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload SignPayload
	if err := decodeBody(r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	sign, err := h.service.UpdateSign(chi.URLParam(r, "slug"), payload.toModel())
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "sign updated", sign)
}

// Delete handles removing a sign.
func (h *HoroscopeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSign(chi.URLParam(r, "slug")); err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "sign deleted", nil)
}
