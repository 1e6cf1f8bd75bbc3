package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/auth"
	"github.com/sfares/newsroom-be/internal/services"
)

// ReactionHandler handles HTTP requests for article reactions.
type ReactionHandler struct {
	service services.ReactionServiceProvider
}

// NewReactionHandler creates a new ReactionHandler.
func NewReactionHandler(service services.ReactionServiceProvider) *ReactionHandler {
	return &ReactionHandler{service: service}
}

// ReactionPayload sets the caller's reaction on an article.
type ReactionPayload struct {
	Type string `json:"type" validate:"required,oneof=like love laugh surprise sad angry"`
}

// Set handles placing or replacing the caller's reaction.
func (h *ReactionHandler) Set(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		RespondError(w, r, apperrors.Unauthorized("authentication required"))
		return
	}

	var payload ReactionPayload
	if err := decodeJSON(r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	reaction, err := h.service.SetReaction(chi.URLParam(r, "articleId"), user.ID, payload.Type)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "reaction saved", reaction)
}

// List handles retrieving the individual reactions on an article.
func (h *ReactionHandler) List(w http.ResponseWriter, r *http.Request) {
	reactions, err := h.service.GetReactionsByArticle(chi.URLParam(r, "articleId"))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "reactions retrieved", reactions)
}

// Counts handles retrieving per-type reaction tallies for an article.
func (h *ReactionHandler) Counts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.CountReactionsByArticle(chi.URLParam(r, "articleId"))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "reactions counted", counts)
}

// Delete handles removing the caller's reaction.
func (h *ReactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		RespondError(w, r, apperrors.Unauthorized("authentication required"))
		return
	}

	if err := h.service.DeleteReaction(chi.URLParam(r, "articleId"), user.ID); err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "reaction removed", nil)
}
