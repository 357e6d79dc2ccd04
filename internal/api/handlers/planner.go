package handlers

import (
	"net/http"

	"github.com/DannyMichaels/nyc-navigation-helper/internal/models"
	"github.com/DannyMichaels/nyc-navigation-helper/internal/store"
)

type PlannerHandler struct {
	store   *store.Store
	planner PlannerProvider
}

func NewPlannerHandler(s *store.Store, p PlannerProvider) *PlannerHandler {
	return &PlannerHandler{store: s, planner: p}
}

func (h *PlannerHandler) resolvePair(w http.ResponseWriter, fromID, toID string) (models.Venue, models.Venue, bool) {
	from, ok := h.store.Venue(fromID)
	if !ok {
		writeError(w, http.StatusNotFound, "Venue not found: "+fromID)
		return models.Venue{}, models.Venue{}, false
	}
	to, ok := h.store.Venue(toID)
	if !ok {
		writeError(w, http.StatusNotFound, "Venue not found: "+toID)
		return models.Venue{}, models.Venue{}, false
	}
	return from, to, true
}

// Plan generates enhanced transit options between two stored venues and, by
// default, saves them to the store.
func (h *PlannerHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var body struct {
		From        string `json:"from"`
		To          string `json:"to"`
		ArrivalTime string `json:"arrival_time"`
		Save        *bool  `json:"save"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.From == "" || body.To == "" {
		writeError(w, http.StatusBadRequest, "from and to venue ids are required")
		return
	}

	from, to, ok := h.resolvePair(w, body.From, body.To)
	if !ok {
		return
	}

	options, source := h.planner.EnhanceOptions(r.Context(), from, to, body.ArrivalTime)

	if body.Save == nil || *body.Save {
		for i, option := range options {
			options[i] = h.store.AddTransitOption(option)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"source":  source,
		"options": options,
		"count":   len(options),
	})
}

// Suggest returns a single transit suggestion between two stored venues.
func (h *PlannerHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var body struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.From == "" || body.To == "" {
		writeError(w, http.StatusBadRequest, "from and to venue ids are required")
		return
	}

	from, to, ok := h.resolvePair(w, body.From, body.To)
	if !ok {
		return
	}

	option, source := h.planner.Suggest(r.Context(), from, to)

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"source":  source,
		"option":  option,
	})
}

// Geocode converts an address to coordinates.
func (h *PlannerHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Address string `json:"address"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Address == "" {
		writeError(w, http.StatusBadRequest, "address is required")
		return
	}

	coords, source := h.planner.Geocode(r.Context(), body.Address)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"source":      source,
		"coordinates": coords,
	})
}

// Compass renders the stored venues as a compass SVG.
func (h *PlannerHandler) Compass(w http.ResponseWriter, r *http.Request) {
	venues := h.store.Venues()
	if len(venues) < 2 {
		writeError(w, http.StatusBadRequest, "At least two venues are required for a compass")
		return
	}

	var center *models.Venue
	if c, ok := h.store.Center(); ok {
		center = &c
	}

	svg, source := h.planner.CompassSVG(r.Context(), venues, center)

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"source":  source,
		"svg":     svg,
	})
}

// Assist answers a free-form navigation question with the stored venues as
// context. Unlike the structured endpoints this one surfaces upstream
// failures so the caller can show an error banner.
func (h *PlannerHandler) Assist(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query string `json:"query"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	var center *models.Venue
	if c, ok := h.store.Center(); ok {
		center = &c
	}

	answer, err := h.planner.Assist(r.Context(), body.Query, h.store.Venues(), center)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error":   "Failed to reach the navigation assistant",
			"message": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"answer":  answer,
	})
}
