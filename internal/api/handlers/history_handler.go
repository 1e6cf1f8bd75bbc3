package handlers

import (
	"net/http"
	"strconv"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/auth"
	"github.com/sfares/newsroom-be/internal/services"
)

// HistoryHandler handles HTTP requests for per-user reading history.
type HistoryHandler struct {
	service services.HistoryServiceProvider
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(service services.HistoryServiceProvider) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// HistoryPayload records one article read.
type HistoryPayload struct {
	Slug     string `json:"slug" validate:"required,max=200"`
	Title    string `json:"title" validate:"required,max=300"`
	Category string `json:"category" validate:"omitempty,max=100"`
}

// Record handles upserting a reading history entry for the caller.
func (h *HistoryHandler) Record(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		RespondError(w, r, apperrors.Unauthorized("authentication required"))
		return
	}

	var payload HistoryPayload
	if err := decodeJSON(r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	entry, err := h.service.RecordRead(user.ID, payload.Slug, payload.Title, payload.Category)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, "read recorded", entry)
}

// List handles listing the caller's history, newest first.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		RespondError(w, r, apperrors.Unauthorized("authentication required"))
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.service.GetHistoryByUser(user.ID, limit)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "history retrieved", entries)
}

// Clear handles wiping the caller's history.
func (h *HistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		RespondError(w, r, apperrors.Unauthorized("authentication required"))
		return
	}

	if err := h.service.ClearHistory(user.ID); err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "history cleared", nil)
}
