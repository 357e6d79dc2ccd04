package transit

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/rs/zerolog/log"
	"google.golang.org/protobuf/proto"

	"github.com/DannyMichaels/nyc-navigation-helper/internal/cache"
	"github.com/DannyMichaels/nyc-navigation-helper/internal/models"
)

// MTA GTFS-RT feed URLs by line group
var feedURLs = map[string]string{
	"ace":  "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/nyct%2Fgtfs-ace",
	"bdfm": "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/nyct%2Fgtfs-bdfm",
	"nqrw": "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/nyct%2Fgtfs-nqrw",
	"jz":   "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/nyct%2Fgtfs-jz",
	"123":  "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/nyct%2Fgtfs",
	"lirr": "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/lirr%2Fgtfs-lirr",
	"mnr":  "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/mnr%2Fgtfs-mnr",
}

// routeToFeed maps subway route symbols to their feed group
var routeToFeed = map[string]string{
	"A": "ace", "C": "ace", "E": "ace",
	"B": "bdfm", "D": "bdfm", "F": "bdfm", "M": "bdfm",
	"J": "jz", "Z": "jz",
	"N": "nqrw", "Q": "nqrw", "R": "nqrw", "W": "nqrw",
	"1": "123", "2": "123", "3": "123",
}

// delayThresholdSeconds: a departure running this far behind schedule is
// reported as Delayed.
const delayThresholdSeconds = 300

type feedInfo struct {
	url  string
	mode models.TransitMode
}

// resolveFeed maps a line identifier to the feed it is published in. Subway
// symbols resolve through the line groups; LIRR and Metro-North have their
// own feeds. The second return is false for anything else.
func resolveFeed(line string) (feedInfo, bool) {
	symbol := FirstLine(line)
	if feed, ok := routeToFeed[symbol]; ok {
		return feedInfo{url: feedURLs[feed], mode: models.ModeSubway}, true
	}

	switch {
	case strings.EqualFold(symbol, "LIRR"):
		return feedInfo{url: feedURLs["lirr"], mode: models.ModeLIRR}, true
	case strings.EqualFold(symbol, "METRO-NORTH"):
		return feedInfo{url: feedURLs["mnr"], mode: models.ModeMetroNorth}, true
	}

	return feedInfo{}, false
}

// RealtimeService fetches live trip status from the MTA GTFS-realtime feeds.
type RealtimeService struct {
	client    *http.Client
	feedCache *cache.Cache[*gtfs.FeedMessage]
}

// NewRealtimeService creates a realtime service. Decoded feeds are cached per
// feed URL for cacheTTL so one option batch does not refetch the same group.
func NewRealtimeService(timeout, cacheTTL time.Duration) *RealtimeService {
	return &RealtimeService{
		client:    &http.Client{Timeout: timeout},
		feedCache: cache.New[*gtfs.FeedMessage](cacheTTL),
	}
}

// Close releases the feed cache.
func (s *RealtimeService) Close() {
	s.feedCache.Close()
}

// GetRealtimeStatus returns live status records for a line. It never returns
// an error: failures are logged and yield an empty slice, so callers cannot
// distinguish "no data" from "nothing to report". Unresolvable lines
// short-circuit without any network call.
func (s *RealtimeService) GetRealtimeStatus(ctx context.Context, line string) []models.RealtimeTransitStatus {
	feed, ok := resolveFeed(line)
	if !ok {
		log.Warn().Str("line", line).Msg("no realtime feed for line")
		return nil
	}

	msg, err := s.fetchFeed(ctx, feed.url)
	if err != nil {
		log.Error().Err(err).Str("line", line).Msg("fetching realtime feed")
		return nil
	}

	return extractStatuses(msg, FirstLine(line), feed.mode)
}

func (s *RealtimeService) fetchFeed(ctx context.Context, url string) (*gtfs.FeedMessage, error) {
	if cached, ok := s.feedCache.Get(url); ok {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building feed request: %w", err)
	}
	req.Header.Set("Accept", "application/x-protobuf")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading feed response: %w", err)
	}

	msg := &gtfs.FeedMessage{}
	if err := proto.Unmarshal(body, msg); err != nil {
		return nil, fmt.Errorf("parsing feed protobuf: %w", err)
	}

	s.feedCache.Set(url, msg)
	return msg, nil
}

// extractStatuses walks trip updates and emits one status record per
// stop-time update. Subway feeds carry several routes, so entities are
// filtered down to the requested line; the commuter feeds have no per-line
// breakdown and every trip is kept.
func extractStatuses(feed *gtfs.FeedMessage, line string, mode models.TransitMode) []models.RealtimeTransitStatus {
	var statuses []models.RealtimeTransitStatus

	for _, entity := range feed.GetEntity() {
		tripUpdate := entity.GetTripUpdate()
		if tripUpdate == nil {
			continue
		}

		trip := tripUpdate.GetTrip()
		if mode == models.ModeSubway && trip.GetRouteId() != line {
			continue
		}

		status := deriveStatus(tripUpdate)

		for _, stopUpdate := range tripUpdate.GetStopTimeUpdate() {
			record := models.RealtimeTransitStatus{
				Line:     trip.GetRouteId(),
				Type:     mode,
				Status:   status,
				Platform: stopUpdate.GetStopId(),
			}
			if record.Line == "" {
				record.Line = line
			}
			if t := stopUpdate.GetDeparture().GetTime(); t != 0 {
				est := time.Unix(t, 0)
				record.EstimatedArrival = &est
				if delay := stopUpdate.GetDeparture().GetDelay(); delay != 0 {
					sched := time.Unix(t-int64(delay), 0)
					record.ScheduledArrival = &sched
				}
			}
			statuses = append(statuses, record)
		}
	}

	return statuses
}

// deriveStatus classifies a trip: cancelled trips first, then the gap between
// the first stop's scheduled and estimated departures against the threshold,
// otherwise on time. The scheduled time reaches us as the departure delay.
func deriveStatus(tripUpdate *gtfs.TripUpdate) models.ServiceStatus {
	if tripUpdate.GetTrip().GetScheduleRelationship() == gtfs.TripDescriptor_CANCELED {
		return models.StatusCancelled
	}

	updates := tripUpdate.GetStopTimeUpdate()
	if len(updates) > 0 {
		departure := updates[0].GetDeparture()
		if departure.GetTime() != 0 && departure.GetDelay() > delayThresholdSeconds {
			return models.StatusDelayed
		}
	}

	return models.StatusOnTime
}
