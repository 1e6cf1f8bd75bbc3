package handlers

import (
	"database/sql"
	"net/http"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/services"
)

// HealthHandler reports process liveness, database reachability and the
// latest host sample.
type HealthHandler struct {
	db    *sql.DB
	hosts services.HostStatsProvider
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sql.DB, hosts services.HostStatsProvider) *HealthHandler {
	return &HealthHandler{db: db, hosts: hosts}
}

// Check reports whether the server and its database are reachable.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(); err != nil {
		RespondError(w, r, apperrors.Internal("database unreachable"))
		return
	}

	data := map[string]any{"database": "ok"}
	if h.hosts != nil {
		stats := h.hosts.Latest()
		data["host"] = map[string]any{
			"cpuPercent":    stats.CPUPercent,
			"memoryPercent": stats.MemoryPercent,
			"uptimeSeconds": stats.UptimeSeconds,
			"sampledAt":     stats.SampledAt,
		}
	}
	respond(w, http.StatusOK, "healthy", data)
}
