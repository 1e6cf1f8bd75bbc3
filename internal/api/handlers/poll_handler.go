package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/auth"
	"github.com/sfares/newsroom-be/internal/services"
)

// PollHandler handles HTTP requests for reader polls.
type PollHandler struct {
	service services.PollServiceProvider
}

// NewPollHandler creates a new PollHandler.
func NewPollHandler(service services.PollServiceProvider) *PollHandler {
	return &PollHandler{service: service}
}

// PollPayload defines the writable fields of a poll.
type PollPayload struct {
	Question     string   `json:"question" validate:"required,max=500"`
	Options      []string `json:"options" validate:"required,min=2,dive,required"`
	Status       string   `json:"status" validate:"omitempty,oneof=active closed scheduled"`
	ScheduledFor *string  `json:"scheduledFor"`
}

func (p *PollPayload) scheduledFor() *time.Time {
	if p.ScheduledFor == nil {
		return nil
	}
	at, err := parseTime(*p.ScheduledFor)
	if err != nil {
		return nil
	}
	return &at
}

// VotePayload records a vote for one option.
type VotePayload struct {
	OptionIndex int `json:"optionIndex" validate:"min=0"`
}

// List handles listing all polls.
func (h *PollHandler) List(w http.ResponseWriter, r *http.Request) {
	polls, err := h.service.ListPolls()
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "polls retrieved", polls)
}

// Get handles retrieving a poll by ID.
func (h *PollHandler) Get(w http.ResponseWriter, r *http.Request) {
	poll, err := h.service.GetPollByID(chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "poll retrieved", poll)
}

// Create handles adding a new poll.
func (h *PollHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload PollPayload
	if err := decodeJSON(r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	poll, err := h.service.CreatePoll(payload.Question, payload.Options, payload.Status, payload.scheduledFor())
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, "poll created", poll)
}

// Update handles editing a poll's question, options or status.
func (h *PollHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload PollPayload
	if err := decodeBody(r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	poll, err := h.service.UpdatePoll(chi.URLParam(r, "id"), payload.Question, payload.Options, payload.Status, payload.scheduledFor())
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "poll updated", poll)
}

// Vote handles casting the authenticated user's vote.
func (h *PollHandler) Vote(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		RespondError(w, r, apperrors.Unauthorized("authentication required"))
		return
	}

	var payload VotePayload
	if err := decodeJSON(r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	poll, err := h.service.Vote(chi.URLParam(r, "id"), user.ID, payload.OptionIndex)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "vote recorded", poll)
}

// Delete handles removing a poll.
func (h *PollHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePoll(chi.URLParam(r, "id")); err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "poll deleted", nil)
}
