package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DannyMichaels/nyc-navigation-helper/internal/api"
	"github.com/DannyMichaels/nyc-navigation-helper/internal/config"
	"github.com/DannyMichaels/nyc-navigation-helper/internal/models"
	"github.com/DannyMichaels/nyc-navigation-helper/internal/planner"
	"github.com/DannyMichaels/nyc-navigation-helper/internal/store"
)

// ---------------------------------------------------------------------------
// Mock providers
// ---------------------------------------------------------------------------

type mockPlanner struct {
	coords    planner.Coordinates
	option    models.TransitOption
	options   []models.TransitOption
	svg       string
	answer    string
	source    planner.Source
	assistErr error
}

func (m *mockPlanner) Geocode(ctx context.Context, address string) (planner.Coordinates, planner.Source) {
	return m.coords, m.source
}

func (m *mockPlanner) Suggest(ctx context.Context, from, to models.Venue) (models.TransitOption, planner.Source) {
	option := m.option
	option.From = from.ID
	option.To = to.ID
	return option, m.source
}

func (m *mockPlanner) EnhanceOptions(ctx context.Context, from, to models.Venue, arrival string) ([]models.TransitOption, planner.Source) {
	options := make([]models.TransitOption, len(m.options))
	for i, o := range m.options {
		o.From = from.ID
		o.To = to.ID
		options[i] = o
	}
	return options, m.source
}

func (m *mockPlanner) CompassSVG(ctx context.Context, venues []models.Venue, center *models.Venue) (string, planner.Source) {
	return m.svg, m.source
}

func (m *mockPlanner) Assist(ctx context.Context, query string, venues []models.Venue, center *models.Venue) (string, error) {
	if m.assistErr != nil {
		return "", m.assistErr
	}
	return m.answer, nil
}

type mockRealtime struct {
	statuses map[string][]models.RealtimeTransitStatus
}

func (m *mockRealtime) GetRealtimeStatus(ctx context.Context, line string) []models.RealtimeTransitStatus {
	return m.statuses[line]
}

type mockAlerts struct {
	alerts []models.ServiceAlert
	err    error
}

func (m *mockAlerts) GetAlerts(ctx context.Context, line string) ([]models.ServiceAlert, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.alerts, nil
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func newTestServer(t *testing.T, p *mockPlanner, rt *mockRealtime, al *mockAlerts) (*httptest.Server, *store.Store) {
	t.Helper()

	st, err := store.New(store.NewMemoryPersister())
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}

	cfg := &config.Config{HTTPTimeout: 5 * time.Second}
	router := api.NewRouter(cfg, st, p, rt, al)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, st
}

func defaultPlanner() *mockPlanner {
	return &mockPlanner{
		coords: planner.Coordinates{Lat: 40.7431, Lng: -73.9897},
		option: models.TransitOption{
			ID: "transit-suggest", Type: models.ModeWalk, Name: "Walk",
			Description: "Walk over", Duration: 12, Color: "#4285F4",
		},
		options: []models.TransitOption{
			{
				ID: "transit-1", Type: models.ModeSubway, Name: "A Train",
				Line: "A", Duration: 25, Color: "#0039A6", TrainSymbol: "A",
				Steps: []string{"Board the A"},
			},
			{
				ID: "transit-2", Type: models.ModeWalk, Name: "Walk",
				Duration: 40, Color: "#4285F4",
				Steps: []string{"Walk south"},
			},
		},
		svg:    `<svg viewBox="0 0 500 500"></svg>`,
		answer: "## Take the A train",
		source: planner.SourceModel,
	}
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp, decoded
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestHealthEndpoint(t *testing.T) {
	server, _ := newTestServer(t, defaultPlanner(), &mockRealtime{}, &mockAlerts{})

	resp, body := doJSON(t, http.MethodGet, server.URL+"/health", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["status"] != "OK" {
		t.Errorf("expected status OK, got %v", body["status"])
	}
}

func TestVenueLifecycle(t *testing.T) {
	server, _ := newTestServer(t, defaultPlanner(), &mockRealtime{}, &mockAlerts{})

	// Seeded venues are visible.
	resp, body := doJSON(t, http.MethodGet, server.URL+"/venues", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["count"].(float64) != 2 {
		t.Fatalf("expected 2 seeded venues, got %v", body["count"])
	}
	if body["center"] != "penn" {
		t.Errorf("expected center penn, got %v", body["center"])
	}

	// Create with address only: coordinates come from the geocoder.
	resp, body = doJSON(t, http.MethodPost, server.URL+"/venues", map[string]any{
		"name":    "Flatiron Building",
		"address": "175 5th Ave, New York, NY",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	venue := body["venue"].(map[string]any)
	if venue["lat"].(float64) != 40.7431 {
		t.Errorf("expected geocoded lat, got %v", venue["lat"])
	}
	if body["geocode_source"] != "model" {
		t.Errorf("expected geocode_source model, got %v", body["geocode_source"])
	}
	if venue["short_name"] != "FB" {
		t.Errorf("expected derived short name FB, got %v", venue["short_name"])
	}
	venueID := venue["id"].(string)

	// Partial update.
	resp, body = doJSON(t, http.MethodPatch, server.URL+"/venues/"+venueID, map[string]any{
		"color": "#123456",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["venue"].(map[string]any)["color"] != "#123456" {
		t.Errorf("color update not applied: %v", body["venue"])
	}

	// Delete.
	resp, _ = doJSON(t, http.MethodDelete, server.URL+"/venues/"+venueID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodDelete, server.URL+"/venues/"+venueID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for repeat delete, got %d", resp.StatusCode)
	}
}

func TestVenueDeleteCascadesToOptions(t *testing.T) {
	server, st := newTestServer(t, defaultPlanner(), &mockRealtime{}, &mockAlerts{})

	st.AddTransitOption(models.TransitOption{ID: "o1", From: "penn", To: "fiveiron", Type: models.ModeWalk, Color: "#4285F4"})

	resp, _ := doJSON(t, http.MethodDelete, server.URL+"/venues/fiveiron", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	_, body := doJSON(t, http.MethodGet, server.URL+"/options?all=true", nil)
	if body["count"].(float64) != 0 {
		t.Errorf("expected cascade to remove the option, got %v", body["count"])
	}
}

func TestPlanEndpoint_savesOptions(t *testing.T) {
	server, st := newTestServer(t, defaultPlanner(), &mockRealtime{}, &mockAlerts{})

	resp, body := doJSON(t, http.MethodPost, server.URL+"/plan", map[string]any{
		"from": "penn",
		"to":   "fiveiron",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["source"] != "model" {
		t.Errorf("expected source model, got %v", body["source"])
	}
	if body["count"].(float64) != 2 {
		t.Fatalf("expected 2 options, got %v", body["count"])
	}

	if got := len(st.Options()); got != 2 {
		t.Errorf("expected options persisted to the store, got %d", got)
	}
}

func TestPlanEndpoint_unknownVenue(t *testing.T) {
	server, _ := newTestServer(t, defaultPlanner(), &mockRealtime{}, &mockAlerts{})

	resp, _ := doJSON(t, http.MethodPost, server.URL+"/plan", map[string]any{
		"from": "penn",
		"to":   "ghost",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestPlanEndpoint_fallbackSourceSurfaces(t *testing.T) {
	p := defaultPlanner()
	p.source = planner.SourceFallback

	server, _ := newTestServer(t, p, &mockRealtime{}, &mockAlerts{})

	resp, body := doJSON(t, http.MethodPost, server.URL+"/plan", map[string]any{
		"from": "penn", "to": "fiveiron", "save": false,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["source"] != "fallback" {
		t.Errorf("expected fallback source surfaced, got %v", body["source"])
	}
}

func TestCompassEndpoint(t *testing.T) {
	server, _ := newTestServer(t, defaultPlanner(), &mockRealtime{}, &mockAlerts{})

	resp, body := doJSON(t, http.MethodPost, server.URL+"/compass", map[string]any{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["svg"] != `<svg viewBox="0 0 500 500"></svg>` {
		t.Errorf("unexpected svg: %v", body["svg"])
	}
}

func TestAssistEndpoint_upstreamFailure(t *testing.T) {
	p := defaultPlanner()
	p.assistErr = errors.New("connection refused")

	server, _ := newTestServer(t, p, &mockRealtime{}, &mockAlerts{})

	resp, body := doJSON(t, http.MethodPost, server.URL+"/assist", map[string]any{
		"query": "how do I get there?",
	})
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
	if body["error"] == nil {
		t.Errorf("expected an error message, got %v", body)
	}
}

func TestRealtimeEndpoint(t *testing.T) {
	est := time.Now().Add(4 * time.Minute)
	rt := &mockRealtime{statuses: map[string][]models.RealtimeTransitStatus{
		"A": {{Line: "A", Type: models.ModeSubway, Status: models.StatusOnTime, EstimatedArrival: &est}},
	}}

	server, _ := newTestServer(t, defaultPlanner(), rt, &mockAlerts{})

	resp, body := doJSON(t, http.MethodGet, server.URL+"/transit/realtime/A", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["count"].(float64) != 1 {
		t.Fatalf("expected 1 status, got %v", body["count"])
	}

	// Unknown lines read as empty, not as errors.
	resp, body = doJSON(t, http.MethodGet, server.URL+"/transit/realtime/X9", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["count"].(float64) != 0 {
		t.Errorf("expected 0 statuses, got %v", body["count"])
	}
}

func TestAlertsEndpoint(t *testing.T) {
	al := &mockAlerts{alerts: []models.ServiceAlert{{ID: "a1", Routes: []string{"A"}, Header: "Delays on the A"}}}
	server, _ := newTestServer(t, defaultPlanner(), &mockRealtime{}, al)

	resp, body := doJSON(t, http.MethodGet, server.URL+"/transit/alerts/A", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["count"].(float64) != 1 {
		t.Fatalf("expected 1 alert, got %v", body["count"])
	}

	al.err = fmt.Errorf("feed down")
	resp, _ = doJSON(t, http.MethodGet, server.URL+"/transit/alerts/A", nil)
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
}

func TestUnknownRoute(t *testing.T) {
	server, _ := newTestServer(t, defaultPlanner(), &mockRealtime{}, &mockAlerts{})

	resp, _ := doJSON(t, http.MethodGet, server.URL+"/nope", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
