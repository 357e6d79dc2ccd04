package handlers

import (
	"errors"
	"net/http"

	"github.com/DannyMichaels/nyc-navigation-helper/internal/models"
	"github.com/DannyMichaels/nyc-navigation-helper/internal/planner"
	"github.com/DannyMichaels/nyc-navigation-helper/internal/store"
)

type VenueHandler struct {
	store   *store.Store
	planner PlannerProvider
}

func NewVenueHandler(s *store.Store, p PlannerProvider) *VenueHandler {
	return &VenueHandler{store: s, planner: p}
}

// List returns all venues plus the center venue id.
func (h *VenueHandler) List(w http.ResponseWriter, r *http.Request) {
	venues := h.store.Venues()

	centerID := ""
	if center, ok := h.store.Center(); ok {
		centerID = center.ID
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"venues":  venues,
		"center":  centerID,
		"count":   len(venues),
	})
}

// Create adds a venue. When coordinates are omitted the address is geocoded
// through the model, and the response reports whether the coordinates came
// from the model or the static fallback.
func (h *VenueHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name      string   `json:"name"`
		ShortName string   `json:"short_name"`
		Address   string   `json:"address"`
		Lat       *float64 `json:"lat"`
		Lng       *float64 `json:"lng"`
		Color     string   `json:"color"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Name == "" {
		writeError(w, http.StatusBadRequest, "Venue name is required")
		return
	}

	venue := models.Venue{
		Name:      body.Name,
		ShortName: body.ShortName,
		Address:   body.Address,
		Color:     body.Color,
	}

	geocodeSource := planner.Source("")
	if body.Lat != nil && body.Lng != nil {
		venue.Lat = *body.Lat
		venue.Lng = *body.Lng
	} else {
		if body.Address == "" {
			writeError(w, http.StatusBadRequest, "Either coordinates or an address is required")
			return
		}
		coords, source := h.planner.Geocode(r.Context(), body.Address)
		venue.Lat = coords.Lat
		venue.Lng = coords.Lng
		geocodeSource = source
	}

	venue = h.store.AddVenue(venue)

	response := map[string]any{
		"success": true,
		"venue":   venue,
	}
	if geocodeSource != "" {
		response["geocode_source"] = geocodeSource
	}
	writeJSON(w, http.StatusCreated, response)
}

// Update applies a partial update to a venue.
func (h *VenueHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var update store.VenueUpdate
	if !decodeBody(w, r, &update) {
		return
	}

	venue, err := h.store.UpdateVenue(id, update)
	if errors.Is(err, store.ErrVenueNotFound) {
		writeError(w, http.StatusNotFound, "Venue not found: "+id)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"venue":   venue,
	})
}

// Delete removes a venue, cascading to transit options that reference it.
func (h *VenueHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.store.RemoveVenue(id); errors.Is(err, store.ErrVenueNotFound) {
		writeError(w, http.StatusNotFound, "Venue not found: "+id)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"removed": id,
	})
}

// SetCenter designates the center venue; an empty id clears it.
func (h *VenueHandler) SetCenter(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	if err := h.store.SetCenter(body.ID); errors.Is(err, store.ErrVenueNotFound) {
		writeError(w, http.StatusNotFound, "Venue not found: "+body.ID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"center":  body.ID,
	})
}
