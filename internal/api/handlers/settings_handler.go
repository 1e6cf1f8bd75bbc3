package handlers

import (
	"net/http"

	"github.com/sfares/newsroom-be/internal/services"
)

// SettingsHandler handles HTTP requests for the portal settings singleton.
type SettingsHandler struct {
	service services.SettingsServiceProvider
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(service services.SettingsServiceProvider) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// Get handles retrieving the settings, creating defaults on first access.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.GetSettings()
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "settings retrieved", settings)
}

// Update merges the provided groups into the settings document. Groups
// absent from the payload are untouched.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch services.SettingsPatch
	if err := decodeBody(r, &patch); err != nil {
		RespondError(w, r, err)
		return
	}

	settings, err := h.service.UpdateSettings(patch)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "settings updated", settings)
}

// Reset restores the default settings document.
func (h *SettingsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.ResetSettings()
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "settings reset", settings)
}
