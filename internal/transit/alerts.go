package transit

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/DannyMichaels/nyc-navigation-helper/internal/cache"
	"github.com/DannyMichaels/nyc-navigation-helper/internal/models"
)

const alertsFeedURL = "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/camsys%2Fall-alerts"

// AlertService fetches and caches MTA service alerts.
type AlertService struct {
	client *http.Client
	cache  *cache.Cache[[]models.ServiceAlert]
}

// NewAlertService creates a new alert service.
func NewAlertService(timeout, cacheTTL time.Duration) *AlertService {
	return &AlertService{
		client: &http.Client{Timeout: timeout},
		cache:  cache.New[[]models.ServiceAlert](cacheTTL),
	}
}

// Close releases the alert cache.
func (s *AlertService) Close() {
	s.cache.Close()
}

// GetAlerts returns active service alerts, filtered to a line when one is
// given. Line matching uses the leading route symbol, so "A,1" filters on "A".
func (s *AlertService) GetAlerts(ctx context.Context, line string) ([]models.ServiceAlert, error) {
	allAlerts, err := s.fetchAlerts(ctx)
	if err != nil {
		return nil, err
	}

	symbol := FirstLine(line)
	if symbol == "" {
		return allAlerts, nil
	}

	var filtered []models.ServiceAlert
	for _, alert := range allAlerts {
		for _, r := range alert.Routes {
			if r == symbol {
				filtered = append(filtered, alert)
				break
			}
		}
	}
	return filtered, nil
}

func (s *AlertService) fetchAlerts(ctx context.Context) ([]models.ServiceAlert, error) {
	if cached, ok := s.cache.Get("all"); ok {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, alertsFeedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building alerts request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching alerts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alerts feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading alerts response: %w", err)
	}

	feed := &gtfs.FeedMessage{}
	if err := proto.Unmarshal(body, feed); err != nil {
		return nil, fmt.Errorf("parsing alerts protobuf: %w", err)
	}

	alerts := parseAlerts(feed)
	s.cache.Set("all", alerts)
	return alerts, nil
}

func parseAlerts(feed *gtfs.FeedMessage) []models.ServiceAlert {
	var alerts []models.ServiceAlert
	now := time.Now().Unix()

	for _, entity := range feed.GetEntity() {
		alert := entity.GetAlert()
		if alert == nil {
			continue
		}

		active := len(alert.GetActivePeriod()) == 0
		for _, period := range alert.GetActivePeriod() {
			start := int64(period.GetStart())
			end := int64(period.GetEnd())
			if now >= start && (end == 0 || now < end) {
				active = true
				break
			}
		}
		if !active {
			continue
		}

		var routes []string
		seen := make(map[string]bool)
		for _, ie := range alert.GetInformedEntity() {
			if routeID := ie.GetRouteId(); routeID != "" && !seen[routeID] {
				seen[routeID] = true
				routes = append(routes, routeID)
			}
		}

		header := translatedText(alert.GetHeaderText())
		if header == "" {
			continue
		}

		alerts = append(alerts, models.ServiceAlert{
			ID:          entity.GetId(),
			Routes:      routes,
			Header:      header,
			Description: translatedText(alert.GetDescriptionText()),
		})
	}

	return alerts
}

func translatedText(ts *gtfs.TranslatedString) string {
	if ts == nil {
		return ""
	}
	for _, t := range ts.GetTranslation() {
		if t.GetLanguage() == "en" || t.GetLanguage() == "" {
			return t.GetText()
		}
	}
	if len(ts.GetTranslation()) > 0 {
		return ts.GetTranslation()[0].GetText()
	}
	return ""
}
