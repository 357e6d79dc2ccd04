// Package planner turns model output into validated, display-ready transit
// options, coordinates, and map visualizations.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/DannyMichaels/nyc-navigation-helper/internal/llm"
	"github.com/DannyMichaels/nyc-navigation-helper/internal/models"
	"github.com/DannyMichaels/nyc-navigation-helper/internal/timeutil"
	"github.com/DannyMichaels/nyc-navigation-helper/internal/transit"
)

// Source reports whether a result came from the model or from the static
// fallback path. Callers always get a usable value either way; Source is how
// they find out which.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// Fallback coordinates: lower Manhattan, used when geocoding fails.
const (
	fallbackLat = 40.7128
	fallbackLng = -74.0060
)

// ChatClient abstracts the chat completion endpoint for testability.
type ChatClient interface {
	Chat(ctx context.Context, system, user string) (string, error)
}

// RealtimeProvider abstracts the live status source.
type RealtimeProvider interface {
	GetRealtimeStatus(ctx context.Context, line string) []models.RealtimeTransitStatus
}

// Service is the transit option normalizer and its sibling model-backed
// operations.
type Service struct {
	chat     ChatClient
	realtime RealtimeProvider
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a planner service.
func New(chat ChatClient, realtime RealtimeProvider, opts ...Option) *Service {
	s := &Service{chat: chat, realtime: realtime, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Coordinates is a geocoding result.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geocode resolves a free-text NYC address to coordinates via the model.
// Failures of any kind fall back to the fixed NYC center point.
func (s *Service) Geocode(ctx context.Context, address string) (Coordinates, Source) {
	content, err := s.chat.Chat(ctx, geocodeSystemPrompt, geocodePrompt(address))
	if err != nil {
		log.Error().Err(err).Str("address", address).Msg("geocoding address")
		return Coordinates{Lat: fallbackLat, Lng: fallbackLng}, SourceFallback
	}

	span, err := llm.ExtractJSONObject(content)
	if err != nil {
		log.Error().Err(err).Msg("no coordinates in geocode response")
		return Coordinates{Lat: fallbackLat, Lng: fallbackLng}, SourceFallback
	}

	// Pointer fields so an object missing either key is rejected rather
	// than coerced to the zero island off West Africa.
	var raw struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	}
	if err := json.Unmarshal([]byte(span), &raw); err != nil || raw.Lat == nil || raw.Lng == nil {
		log.Error().Err(err).Str("span", span).Msg("malformed geocode coordinates")
		return Coordinates{Lat: fallbackLat, Lng: fallbackLng}, SourceFallback
	}

	return Coordinates{Lat: *raw.Lat, Lng: *raw.Lng}, SourceModel
}

// rawOption is the shape the routing prompts ask the model for. Parsing is
// strict: a duration arriving as a string, or pros arriving as prose, fails
// the whole batch and routes to the fallback.
type rawOption struct {
	Type        models.TransitMode `json:"type"`
	Name        string             `json:"name"`
	Line        string             `json:"line"`
	Direction   string             `json:"direction"`
	Description string             `json:"description"`
	Duration    int                `json:"duration"`
	Cost        float64            `json:"cost"`
	Pros        []string           `json:"pros"`
	Cons        []string           `json:"cons"`
	Steps       []string           `json:"steps"`
	Recommended bool               `json:"recommended"`
}

// Suggest asks the model for a single transit suggestion between two venues.
func (s *Service) Suggest(ctx context.Context, from, to models.Venue) (models.TransitOption, Source) {
	content, err := s.chat.Chat(ctx, suggestSystemPrompt, suggestPrompt(from, to))
	if err != nil {
		log.Error().Err(err).Msg("getting transit suggestion")
		return s.walkFallback(from, to), SourceFallback
	}

	span, err := llm.ExtractJSONObject(content)
	if err != nil {
		log.Error().Err(err).Msg("no JSON in transit suggestion")
		return s.walkFallback(from, to), SourceFallback
	}

	var raw rawOption
	if err := json.Unmarshal([]byte(span), &raw); err != nil {
		log.Error().Err(err).Str("span", span).Msg("malformed transit suggestion")
		return s.walkFallback(from, to), SourceFallback
	}

	option := s.normalize(ctx, raw, from, to, time.Time{})
	return option, SourceModel
}

func (s *Service) walkFallback(from, to models.Venue) models.TransitOption {
	return models.TransitOption{
		ID:          "transit-" + uuid.NewString(),
		From:        from.ID,
		To:          to.ID,
		Type:        models.ModeWalk,
		Name:        "Walk to destination",
		Description: "Walk to destination",
		Duration:    20,
		Color:       transit.ModeColor(models.ModeWalk),
		TrainSymbol: "W",
		Steps:       placeholderSteps(),
	}
}

// EnhanceOptions asks the model for a full option list between two venues and
// normalizes it: symbols and colors, best-effort realtime enrichment,
// 12-hour times, ids, endpoint references, and guaranteed steps. Model order
// is preserved. Parse failures of any kind return the static fallback pair.
func (s *Service) EnhanceOptions(ctx context.Context, from, to models.Venue, arrival string) ([]models.TransitOption, Source) {
	departure, err := timeutil.OptimalDeparture(s.now(), arrival)
	if err != nil {
		log.Warn().Err(err).Str("arrival", arrival).Msg("ignoring unparseable arrival time")
		departure, _ = timeutil.OptimalDeparture(s.now(), "")
	}

	prompt := enhancePrompt(from, to, departure.DepartureTime.Format("3:04 PM"), departure.MaxTravelTime, arrival)

	content, err := s.chat.Chat(ctx, enhanceSystemPrompt, prompt)
	if err != nil {
		log.Error().Err(err).Msg("getting enhanced transit options")
		return s.fallbackOptions(ctx, from, to, departure.DepartureTime), SourceFallback
	}

	span, err := llm.ExtractJSONArray(content)
	if err != nil {
		log.Error().Err(err).Msg("no JSON array in routing response")
		return s.fallbackOptions(ctx, from, to, departure.DepartureTime), SourceFallback
	}

	var raws []rawOption
	if err := json.Unmarshal([]byte(span), &raws); err != nil {
		log.Error().Err(err).Msg("malformed routing options")
		return s.fallbackOptions(ctx, from, to, departure.DepartureTime), SourceFallback
	}

	options := make([]models.TransitOption, len(raws))

	// Realtime lookups for different options run concurrently; one line's
	// feed being down must not affect the others.
	var wg sync.WaitGroup
	for i, raw := range raws {
		wg.Add(1)
		go func(i int, raw rawOption) {
			defer wg.Done()
			options[i] = s.normalize(ctx, raw, from, to, departure.DepartureTime)
		}(i, raw)
	}
	wg.Wait()

	return options, SourceModel
}

// normalize fills the derived display fields of one option. A zero departure
// time skips time formatting (the single-suggestion path has no schedule).
func (s *Service) normalize(ctx context.Context, raw rawOption, from, to models.Venue, departureAt time.Time) models.TransitOption {
	option := models.TransitOption{
		ID:          "transit-" + uuid.NewString(),
		From:        from.ID,
		To:          to.ID,
		Type:        raw.Type,
		Name:        raw.Name,
		Description: raw.Description,
		Duration:    raw.Duration,
		Cost:        raw.Cost,
		Line:        raw.Line,
		Direction:   raw.Direction,
		Pros:        raw.Pros,
		Cons:        raw.Cons,
		Steps:       raw.Steps,
		Recommended: raw.Recommended,
	}

	switch raw.Type {
	case models.ModeSubway:
		option.TrainSymbol = transit.SymbolFor(raw.Type, raw.Line)
		if raw.Line != "" {
			option.TrainColor = transit.ColorFor(raw.Line)
			s.enrichRealtime(ctx, &option, transit.FirstLine(raw.Line))
		}
	case models.ModeLIRR:
		option.TrainSymbol = "L"
		option.TrainColor = transit.ColorFor("LIRR")
		s.enrichRealtime(ctx, &option, "LIRR")
	case models.ModeMetroNorth:
		option.TrainSymbol = "M"
		option.TrainColor = transit.ColorFor("METRO-NORTH")
	default:
		option.TrainSymbol = transit.SymbolFor(raw.Type, raw.Line)
	}

	option.Color = colorFor(option)

	if !departureAt.IsZero() {
		option.DepartureTime = timeutil.ToTwelveHour(departureAt.Format("3:04 PM"))
		if option.Duration > 0 {
			arrivalAt := departureAt.Add(time.Duration(option.Duration) * time.Minute)
			option.ArrivalTime = timeutil.ToTwelveHour(arrivalAt.Format("3:04 PM"))
		}
	}

	if len(option.Steps) == 0 {
		option.Steps = placeholderSteps()
	}

	return option
}

// colorFor applies the color invariant: trainColor first, then the registry
// by line, then the mode default, which itself bottoms out at neutral gray.
func colorFor(option models.TransitOption) string {
	if option.TrainColor != "" {
		return option.TrainColor
	}
	if option.Line != "" {
		if c := transit.ColorFor(option.Line); c != transit.DefaultColor {
			return c
		}
	}
	return transit.ModeColor(option.Type)
}

// enrichRealtime attaches the first live status record for a line, when the
// feed has one. Best effort only.
func (s *Service) enrichRealtime(ctx context.Context, option *models.TransitOption, line string) {
	statuses := s.realtime.GetRealtimeStatus(ctx, line)
	if len(statuses) == 0 {
		return
	}
	option.RealtimeStatus = statuses[0].Status
	option.EstimatedArrival = statuses[0].EstimatedArrival
}

func placeholderSteps() []string {
	return []string{
		"Detailed route steps not provided",
		"Please refer to the description for route information",
	}
}

// fallbackOptions is the deterministic option pair served when the model or
// its output is unusable: a direct commuter-rail route and a multimodal
// alternative, with best-effort LIRR live status on the first.
func (s *Service) fallbackOptions(ctx context.Context, from, to models.Venue, departureAt time.Time) []models.TransitOption {
	departureStr := timeutil.ToTwelveHour(departureAt.Format("3:04 PM"))

	direct := models.TransitOption{
		ID:          "transit-" + uuid.NewString(),
		From:        from.ID,
		To:          to.ID,
		Type:        models.ModeLIRR,
		Name:        "Direct LIRR Express",
		Line:        "LIRR Babylon Line",
		Direction:   "Westbound",
		TrainSymbol: "L",
		TrainColor:  transit.ColorFor("LIRR"),
		Color:       transit.ColorFor("LIRR"),
		Description: fmt.Sprintf("Take the LIRR directly to Penn Station, then the subway toward %s.", to.Name),
		Duration:    45,
		Cost:        15.50,
		Pros:        []string{"Direct LIRR route", "Minimal transfers", "Comfortable train service"},
		Cons:        []string{"More expensive than subway", "Requires additional subway transfer"},
		Recommended: true,
		DepartureTime: departureStr,
		ArrivalTime:   timeutil.ToTwelveHour(departureAt.Add(45 * time.Minute).Format("3:04 PM")),
		Steps: []string{
			fmt.Sprintf("Walk from %s to the nearest LIRR station", from.Name),
			"Take the LIRR to Penn Station",
			"Transfer to the subway at Penn Station",
			fmt.Sprintf("Take the subway toward %s", to.Name),
			"Short walk to final destination",
		},
	}
	s.enrichRealtime(ctx, &direct, "LIRR")

	combo := models.TransitOption{
		ID:          "transit-" + uuid.NewString(),
		From:        from.ID,
		To:          to.ID,
		Type:        models.ModeMultimodal,
		Name:        "Subway + Bus Combination",
		Line:        "A,1,M15",
		Direction:   "Downtown",
		TrainSymbol: "M",
		TrainColor:  transit.ModeColor(models.ModeMultimodal),
		Color:       transit.ModeColor(models.ModeMultimodal),
		Description: "Combination of subway and bus routes with minimal walking.",
		Duration:    55,
		Cost:        8.75,
		Pros:        []string{"Lower cost", "Multiple route options", "Flexible transfers"},
		Cons:        []string{"Longer travel time", "More complicated route", "Potential crowded transfers"},
		DepartureTime: departureStr,
		ArrivalTime:   timeutil.ToTwelveHour(departureAt.Add(55 * time.Minute).Format("3:04 PM")),
		Steps: []string{
			fmt.Sprintf("Take the subway from %s toward Jamaica Station", from.Name),
			"Transfer to the E train to Manhattan",
			"Transfer to a downtown train",
			fmt.Sprintf("Take the M15 bus to %s", to.Name),
		},
	}

	return []models.TransitOption{direct, combo}
}

// CompassSVG asks the model to draw the venues as a compass SVG, falling back
// to a deterministic rendering computed from the coordinates.
func (s *Service) CompassSVG(ctx context.Context, venues []models.Venue, center *models.Venue) (string, Source) {
	content, err := s.chat.Chat(ctx, svgSystemPrompt, compassPrompt(venues, center))
	if err != nil {
		log.Error().Err(err).Msg("generating compass SVG")
		return FallbackSVG(venues, center), SourceFallback
	}

	svg, err := llm.ExtractSVG(content)
	if err != nil {
		log.Error().Err(err).Msg("model returned non-SVG output")
		return FallbackSVG(venues, center), SourceFallback
	}

	return svg, SourceModel
}

// Assist answers a free-form navigation question with the venue list as
// context. The response is opaque markdown; unlike the structured paths there
// is no fallback document worth serving, so errors surface to the caller.
func (s *Service) Assist(ctx context.Context, query string, venues []models.Venue, center *models.Venue) (string, error) {
	content, err := s.chat.Chat(ctx, assistSystemPrompt, assistPrompt(query, venues, center))
	if err != nil {
		return "", fmt.Errorf("asking navigation assistant: %w", err)
	}
	return content, nil
}
