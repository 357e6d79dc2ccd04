package handlers

import (
	"errors"
	"net/http"

	"github.com/DannyMichaels/nyc-navigation-helper/internal/models"
	"github.com/DannyMichaels/nyc-navigation-helper/internal/store"
	"github.com/DannyMichaels/nyc-navigation-helper/internal/transit"
)

type OptionsHandler struct {
	store *store.Store
}

func NewOptionsHandler(s *store.Store) *OptionsHandler {
	return &OptionsHandler{store: s}
}

// List returns transit options. By default options whose endpoints no longer
// exist are filtered out; ?all=true returns the raw collection.
func (h *OptionsHandler) List(w http.ResponseWriter, r *http.Request) {
	var options []models.TransitOption
	if r.URL.Query().Get("all") == "true" {
		options = h.store.Options()
	} else {
		options = h.store.OptionsForRender()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"options": options,
		"count":   len(options),
	})
}

// Create stores a caller-supplied transit option, backfilling the display
// color so the color invariant holds for direct writes too.
func (h *OptionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var option models.TransitOption
	if !decodeBody(w, r, &option) {
		return
	}
	if option.From == "" || option.To == "" {
		writeError(w, http.StatusBadRequest, "from and to venue ids are required")
		return
	}

	if option.Color == "" {
		option.Color = option.TrainColor
	}
	if option.Color == "" && option.Line != "" {
		if c := transit.ColorFor(option.Line); c != transit.DefaultColor {
			option.Color = c
		}
	}
	if option.Color == "" {
		option.Color = transit.ModeColor(option.Type)
	}

	option = h.store.AddTransitOption(option)

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"option":  option,
	})
}

// Delete removes a transit option by id.
func (h *OptionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.store.RemoveTransitOption(id); errors.Is(err, store.ErrOptionNotFound) {
		writeError(w, http.StatusNotFound, "Transit option not found: "+id)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"removed": id,
	})
}
