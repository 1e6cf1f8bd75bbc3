package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/services"
)

// Uploads larger than this are rejected before touching disk.
const maxUploadBytes = 32 << 20 // 32 MB

// MediaHandler handles HTTP requests for the media library.
type MediaHandler struct {
	service services.MediaServiceProvider
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(service services.MediaServiceProvider) *MediaHandler {
	return &MediaHandler{service: service}
}

// Upload handles a multipart file upload into the media library.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		RespondError(w, r, apperrors.Validation("invalid multipart upload"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		RespondError(w, r, apperrors.Validation("file field is required"))
		return
	}
	defer file.Close()

	media, err := h.service.StoreUpload(file, header.Filename, r.FormValue("type"))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, "file uploaded", media)
}

// List handles listing media records, optionally filtered by type.
func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	media, err := h.service.ListMedia(r.URL.Query().Get("type"), limit)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "media retrieved", media)
}

// Get handles retrieving a media record by ID.
func (h *MediaHandler) Get(w http.ResponseWriter, r *http.Request) {
	media, err := h.service.GetMediaByID(chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "media retrieved", media)
}

// RecordUsage handles incrementing a media record's usage counter.
func (h *MediaHandler) RecordUsage(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RecordUsage(chi.URLParam(r, "id")); err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "usage recorded", nil)
}

// Delete handles removing a media record and its file.
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMedia(chi.URLParam(r, "id")); err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "media deleted", nil)
}
