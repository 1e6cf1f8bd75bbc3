package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/sfares/newsroom-be/internal/services"
)

// CommentHandler handles HTTP requests for reader comments.
type CommentHandler struct {
	service  services.CommentServiceProvider
	settings services.SettingsServiceProvider
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(service services.CommentServiceProvider, settings services.SettingsServiceProvider) *CommentHandler {
	return &CommentHandler{service: service, settings: settings}
}

// CommentPayload defines the structure for posting a comment.
type CommentPayload struct {
	ArticleID string `json:"articleId" validate:"required"`
	Author    string `json:"author" validate:"required,max=100"`
	Content   string `json:"content" validate:"required,max=2000"`
}

// ModeratePayload sets a comment's moderation status.
type ModeratePayload struct {
	Status string `json:"status" validate:"required,oneof=pending approved spam"`
}

// Create handles posting a comment. Whether the comment starts pending or
// approved follows the portal's moderation setting.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload CommentPayload
	if err := decodeJSON(r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	moderated := true
	if settings, err := h.settings.GetSettings(); err == nil {
		moderated = settings.Publishing.ModerateComments
	} else {
		log.Warn().Err(err).Msg("Could not load settings, defaulting to moderated comments")
	}

	comment, err := h.service.CreateComment(payload.ArticleID, payload.Author, payload.Content, moderated)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, "comment submitted", comment)
}

// ListByArticle handles listing an article's comments. Unauthenticated
// callers only ever see approved comments.
func (h *CommentHandler) ListByArticle(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.GetCommentsByArticle(chi.URLParam(r, "articleId"), "approved")
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "comments retrieved", comments)
}

// ListByStatus handles the moderation queue listing.
func (h *CommentHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	comments, err := h.service.ListCommentsByStatus(r.URL.Query().Get("status"), limit)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "comments retrieved", comments)
}

// Moderate handles approving or flagging a comment.
func (h *CommentHandler) Moderate(w http.ResponseWriter, r *http.Request) {
	var payload ModeratePayload
	if err := decodeJSON(r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	comment, err := h.service.SetCommentStatus(chi.URLParam(r, "id"), payload.Status)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "comment updated", comment)
}

// Like handles incrementing a comment's like counter.
func (h *CommentHandler) Like(w http.ResponseWriter, r *http.Request) {
	comment, err := h.service.LikeComment(chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "comment liked", comment)
}

// Delete handles removing a comment.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteComment(chi.URLParam(r, "id")); err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "comment deleted", nil)
}
