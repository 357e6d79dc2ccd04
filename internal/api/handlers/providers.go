package handlers

import (
	"context"

	"github.com/DannyMichaels/nyc-navigation-helper/internal/models"
	"github.com/DannyMichaels/nyc-navigation-helper/internal/planner"
)

// PlannerProvider abstracts the model-backed planning operations for
// testability.
type PlannerProvider interface {
	Geocode(ctx context.Context, address string) (planner.Coordinates, planner.Source)
	Suggest(ctx context.Context, from, to models.Venue) (models.TransitOption, planner.Source)
	EnhanceOptions(ctx context.Context, from, to models.Venue, arrival string) ([]models.TransitOption, planner.Source)
	CompassSVG(ctx context.Context, venues []models.Venue, center *models.Venue) (string, planner.Source)
	Assist(ctx context.Context, query string, venues []models.Venue, center *models.Venue) (string, error)
}

// RealtimeProvider abstracts the live status source.
type RealtimeProvider interface {
	GetRealtimeStatus(ctx context.Context, line string) []models.RealtimeTransitStatus
}

// AlertProvider abstracts the service alerts data source.
type AlertProvider interface {
	GetAlerts(ctx context.Context, line string) ([]models.ServiceAlert, error)
}
