package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/halcyonair/skyaudit/internal/audit"
	"github.com/halcyonair/skyaudit/internal/pilots"
	"github.com/halcyonair/skyaudit/internal/timeutil"
	"github.com/halcyonair/skyaudit/pkg/logger"
)

// Handler serves audit results over HTTP
type Handler struct {
	auditor *audit.Auditor
	bundle  *audit.Bundle
	logger  *logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(auditor *audit.Auditor, bundle *audit.Bundle, logger *logger.Logger) *Handler {
	return &Handler{
		auditor: auditor,
		bundle:  bundle,
		logger:  logger.Named("api-handler"),
	}
}

// GetViolations runs the audit and returns the violations as JSON
func (h *Handler) GetViolations(w http.ResponseWriter, r *http.Request) {
	violations := h.auditor.WeatherViolations(h.bundle)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"count":      len(violations),
		"violations": violations,
	})
}

// GetLessons returns the loaded lessons table
func (h *Handler) GetLessons(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(h.bundle.Lessons),
		"lessons": h.bundle.Lessons,
	})
}

// GetPilotCertification returns a pilot's certification tier at a given
// instant (query parameter "at", defaulting to now).
func (h *Handler) GetPilotCertification(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	pilot, ok := h.bundle.Roster.Lookup(id)
	if !ok {
		h.writeError(w, http.StatusNotFound, "unknown pilot id")
		return
	}

	at := time.Now().In(h.bundle.Daycycle.Location())
	if raw := r.URL.Query().Get("at"); raw != "" {
		parsed, ok := timeutil.ParseTime(raw, h.bundle.Daycycle.Location())
		if !ok {
			h.writeError(w, http.StatusBadRequest, "unparseable 'at' timestamp")
			return
		}
		at = parsed
	}

	cert := pilots.Classify(at, pilot)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"id":            pilot.ID,
		"at":            at.Format(time.RFC3339),
		"certification": cert.String(),
	})
}

// GetHealth is a health probe
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", logger.Error(err))
	}
}

// writeError writes a JSON error response
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]any{"error": message})
}
