package handlers

import (
	"net/http"
)

type TransitHandler struct {
	realtime RealtimeProvider
	alerts   AlertProvider
}

func NewTransitHandler(realtime RealtimeProvider, alerts AlertProvider) *TransitHandler {
	return &TransitHandler{realtime: realtime, alerts: alerts}
}

// GetRealtimeStatus returns live status records for a line. An empty result
// means either nothing to report or feed trouble; the two are not
// distinguishable.
func (h *TransitHandler) GetRealtimeStatus(w http.ResponseWriter, r *http.Request) {
	line := r.PathValue("line")
	if line == "" {
		writeError(w, http.StatusBadRequest, "Line is required")
		return
	}

	statuses := h.realtime.GetRealtimeStatus(r.Context(), line)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"line":     line,
		"statuses": statuses,
		"count":    len(statuses),
	})
}

// GetAlerts returns active service alerts for a line.
func (h *TransitHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	line := r.PathValue("line")
	if line == "" {
		writeError(w, http.StatusBadRequest, "Line is required")
		return
	}

	alerts, err := h.alerts.GetAlerts(r.Context(), line)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error":   "Failed to fetch service alerts",
			"message": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"line":    line,
		"alerts":  alerts,
		"count":   len(alerts),
	})
}
