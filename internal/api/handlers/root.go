package handlers

import (
	"net/http"
)

type RootHandler struct{}

func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

func (h *RootHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        "nyc-navigation-helper",
		"description": "NYC venue planner with AI routing and live MTA status",
		"version":     "1.0.0",
		"endpoints": map[string]string{
			"GET /":                        "API information",
			"GET /health":                  "Health check",
			"GET /venues":                  "List venues and the center venue",
			"POST /venues":                 "Add a venue (geocodes the address when coordinates are omitted)",
			"PATCH /venues/{id}":           "Partially update a venue",
			"DELETE /venues/{id}":          "Remove a venue and its transit options",
			"PUT /venues/center":           "Set or clear the center venue",
			"GET /options":                 "List transit options",
			"POST /options":                "Add a transit option",
			"DELETE /options/{id}":         "Remove a transit option",
			"POST /plan":                   "Generate enhanced transit options between two venues",
			"POST /suggest":                "Get a single transit suggestion",
			"POST /geocode":                "Convert an address to coordinates",
			"POST /compass":                "Generate a compass SVG of the venues",
			"POST /assist":                 "Ask the navigation assistant a question",
			"GET /transit/realtime/{line}": "Live status for a subway line, LIRR, or METRO-NORTH",
			"GET /transit/alerts/{line}":   "Active service alerts for a line",
		},
	})
}

func (h *RootHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"error":   "Route not found",
		"message": "Check the root endpoint (/) for available routes",
	})
}
