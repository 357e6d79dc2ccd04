package planner_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DannyMichaels/nyc-navigation-helper/internal/models"
	"github.com/DannyMichaels/nyc-navigation-helper/internal/planner"
)

type mockChat struct {
	content string
	err     error
	calls   int
}

func (m *mockChat) Chat(ctx context.Context, system, user string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.content, nil
}

type mockRealtime struct {
	statuses map[string][]models.RealtimeTransitStatus
	calls    []string
}

func (m *mockRealtime) GetRealtimeStatus(ctx context.Context, line string) []models.RealtimeTransitStatus {
	m.calls = append(m.calls, line)
	return m.statuses[line]
}

var (
	penn     = models.Venue{ID: "penn", Name: "Penn Station", ShortName: "PENN", Address: "7th Ave & 32nd St", Lat: 40.750323, Lng: -73.991659, Color: "#4285F4"}
	fiveIron = models.Venue{ID: "fiveiron", Name: "Five Iron Golf", ShortName: "5i", Address: "883 6th Ave", Lat: 40.747951, Lng: -73.988569, Color: "#DB4437"}
)

func fixedClock() planner.Option {
	at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	return planner.WithClock(func() time.Time { return at })
}

func TestGeocode_extractsCoordinates(t *testing.T) {
	chat := &mockChat{content: "Sure!\n```json\n{\"lat\": 40.7431, \"lng\": -73.9897}\n```"}
	svc := planner.New(chat, &mockRealtime{}, fixedClock())

	coords, source := svc.Geocode(context.Background(), "230 5th Ave, New York, NY")

	require.Equal(t, planner.SourceModel, source)
	require.InDelta(t, 40.7431, coords.Lat, 1e-9)
	require.InDelta(t, -73.9897, coords.Lng, 1e-9)
}

func TestGeocode_fallsBackOnErrorAndGarbage(t *testing.T) {
	cases := []*mockChat{
		{err: errors.New("connection refused")},
		{content: "I can't find that address."},
		{content: `{"lat": "forty", "lng": -73.9}`},
		{content: `{"lat": 40.7}`}, // missing lng
	}

	for _, chat := range cases {
		svc := planner.New(chat, &mockRealtime{}, fixedClock())
		coords, source := svc.Geocode(context.Background(), "somewhere")

		require.Equal(t, planner.SourceFallback, source)
		require.InDelta(t, 40.7128, coords.Lat, 1e-9)
		require.InDelta(t, -74.0060, coords.Lng, 1e-9)
	}
}

func TestEnhanceOptions_normalizesModelOutput(t *testing.T) {
	content := "Here are your routes:\n```json\n" + `[
  {"type": "subway", "name": "A Train Direct", "line": "A,C", "description": "Take the A downtown", "duration": 30, "cost": 2.90, "pros": ["fast"], "cons": ["crowded"]},
  {"type": "walk", "name": "Scenic Walk", "description": "Walk down 6th Ave", "duration": 12},
  {"type": "lirr", "name": "LIRR Hop", "line": "LIRR", "description": "One stop on the LIRR", "duration": 10, "cost": 5.00, "recommended": true}
]` + "\n```\nEnjoy!"

	est := time.Date(2024, 6, 1, 9, 40, 0, 0, time.UTC)
	rt := &mockRealtime{statuses: map[string][]models.RealtimeTransitStatus{
		"A":    {{Line: "A", Type: models.ModeSubway, Status: models.StatusDelayed, EstimatedArrival: &est}},
		"LIRR": {{Line: "1049", Type: models.ModeLIRR, Status: models.StatusOnTime}},
	}}
	svc := planner.New(&mockChat{content: content}, rt, fixedClock())

	options, source := svc.EnhanceOptions(context.Background(), penn, fiveIron, "")

	require.Equal(t, planner.SourceModel, source)
	require.Len(t, options, 3)

	// Model order preserved.
	require.Equal(t, "A Train Direct", options[0].Name)
	require.Equal(t, "Scenic Walk", options[1].Name)
	require.Equal(t, "LIRR Hop", options[2].Name)

	subway := options[0]
	require.Equal(t, "A", subway.TrainSymbol)
	require.Equal(t, "#0039A6", subway.TrainColor)
	require.Equal(t, "#0039A6", subway.Color)
	require.Equal(t, models.StatusDelayed, subway.RealtimeStatus)
	require.NotNil(t, subway.EstimatedArrival)
	require.Equal(t, "penn", subway.From)
	require.Equal(t, "fiveiron", subway.To)
	require.NotEmpty(t, subway.ID)
	// No explicit recommended flag in the model output.
	require.False(t, subway.Recommended)

	walk := options[1]
	require.Equal(t, "#4285F4", walk.Color)
	require.Len(t, walk.Steps, 2, "missing steps are backfilled with placeholders")

	lirr := options[2]
	require.Equal(t, "#808183", lirr.Color)
	require.Equal(t, models.StatusOnTime, lirr.RealtimeStatus)
	require.True(t, lirr.Recommended, "explicit recommended flag is honored")

	// 9:00 + 45 minute default budget, then +30 for the subway ride.
	require.Equal(t, "9:45 AM", subway.DepartureTime)
	require.Equal(t, "10:15 AM", subway.ArrivalTime)
}

func TestEnhanceOptions_fallbackOnMalformedOutput(t *testing.T) {
	for _, chat := range []*mockChat{
		{err: errors.New("ollama is down")},
		{content: "No routes today, sorry."},
		{content: `[{"type": "subway", "duration": "thirty"}]`},
	} {
		svc := planner.New(chat, &mockRealtime{}, fixedClock())

		options, source := svc.EnhanceOptions(context.Background(), penn, fiveIron, "10:30")

		require.Equal(t, planner.SourceFallback, source)
		require.Len(t, options, 2)
		require.Equal(t, models.ModeLIRR, options[0].Type)
		require.True(t, options[0].Recommended)
		require.Equal(t, models.ModeMultimodal, options[1].Type)
		require.False(t, options[1].Recommended)

		for _, o := range options {
			require.Equal(t, "penn", o.From)
			require.Equal(t, "fiveiron", o.To)
			require.NotEmpty(t, o.Color)
			require.NotEmpty(t, o.Steps)
		}
	}
}

func TestEnhanceOptions_colorInvariantAlwaysHolds(t *testing.T) {
	content := `[
  {"type": "subway", "name": "Mystery Line", "line": "X9", "description": "?", "duration": 5},
  {"type": "hovercraft", "name": "Future Transit", "description": "?", "duration": 5},
  {"type": "taxi", "name": "Cab", "description": "?", "duration": 15}
]`
	svc := planner.New(&mockChat{content: content}, &mockRealtime{}, fixedClock())

	options, _ := svc.EnhanceOptions(context.Background(), penn, fiveIron, "")

	require.Len(t, options, 3)
	require.Equal(t, "#333333", options[0].Color, "unknown subway line falls to neutral gray")
	require.Equal(t, "#333333", options[1].Color, "unknown mode falls to neutral gray")
	require.Equal(t, "#000000", options[2].Color, "taxi uses the mode default")
}

func TestSuggest_modelAndFallback(t *testing.T) {
	chat := &mockChat{content: `{"type": "subway", "description": "Take the 1 downtown", "duration": 15, "line": "1"}`}
	svc := planner.New(chat, &mockRealtime{}, fixedClock())

	option, source := svc.Suggest(context.Background(), penn, fiveIron)
	require.Equal(t, planner.SourceModel, source)
	require.Equal(t, models.ModeSubway, option.Type)
	require.Equal(t, "#EE352E", option.Color)
	require.Equal(t, "penn", option.From)

	svc = planner.New(&mockChat{err: errors.New("down")}, &mockRealtime{}, fixedClock())
	option, source = svc.Suggest(context.Background(), penn, fiveIron)
	require.Equal(t, planner.SourceFallback, source)
	require.Equal(t, models.ModeWalk, option.Type)
	require.Equal(t, 20, option.Duration)
	require.Equal(t, "#4285F4", option.Color)
}

func TestAssist_passesThroughAndErrors(t *testing.T) {
	svc := planner.New(&mockChat{content: "## Route 1\nTake the **A** train."}, &mockRealtime{}, fixedClock())

	answer, err := svc.Assist(context.Background(), "how do I get to Five Iron?", []models.Venue{penn, fiveIron}, &penn)
	require.NoError(t, err)
	require.Contains(t, answer, "Route 1")

	svc = planner.New(&mockChat{err: errors.New("refused")}, &mockRealtime{}, fixedClock())
	_, err = svc.Assist(context.Background(), "anything", nil, nil)
	require.Error(t, err)
}
