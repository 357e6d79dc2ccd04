// Package timeutil converts schedule strings for display and computes
// departure windows.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// defaultTravelMinutes is the budget assumed when the rider has no
	// target arrival time.
	defaultTravelMinutes = 45
	// transferBufferMinutes is held back from the travel window to cover
	// transfers and walking at the far end.
	transferBufferMinutes = 15
	// minTravelMinutes floors the usable window so a target arrival in the
	// immediate past or present still yields a plannable trip.
	minTravelMinutes = 15
)

// ToTwelveHour converts a clock string to 12-hour display form.
//
// Input already containing AM or PM is returned unchanged, so the function is
// idempotent. "HH:MM" and 4-digit "HHMM" forms are converted; anything else is
// returned as-is rather than guessed at.
func ToTwelveHour(s string) string {
	if strings.Contains(s, "AM") || strings.Contains(s, "PM") {
		return s
	}

	var hours, minutes int
	var err error

	trimmed := strings.TrimSpace(s)
	if h, m, ok := strings.Cut(trimmed, ":"); ok {
		hours, minutes, err = parseClockPair(h, m)
	} else if len(trimmed) == 4 {
		hours, minutes, err = parseClockPair(trimmed[:2], trimmed[2:])
	} else {
		return s
	}
	if err != nil {
		return s
	}

	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	hours = hours % 12
	if hours == 0 {
		hours = 12
	}

	return fmt.Sprintf("%d:%02d %s", hours, minutes, period)
}

func parseClockPair(h, m string) (int, int, error) {
	hours, err := strconv.Atoi(h)
	if err != nil {
		return 0, 0, err
	}
	minutes, err := strconv.Atoi(m)
	if err != nil {
		return 0, 0, err
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, 0, fmt.Errorf("clock value out of range: %d:%d", hours, minutes)
	}
	return hours, minutes, nil
}

// Departure is the latest safe departure for a trip and the minutes of travel
// it leaves available.
type Departure struct {
	DepartureTime time.Time
	MaxTravelTime int
}

// OptimalDeparture computes when to leave given a desired "HH:MM" arrival
// time. With no arrival time the rider departs now with the default budget.
// Otherwise the next occurrence of the arrival clock time at or after now is
// used (rolling to tomorrow when it has already passed today), a transfer
// buffer is subtracted, and the window is floored at minTravelMinutes.
func OptimalDeparture(now time.Time, arrival string) (Departure, error) {
	if arrival == "" {
		return Departure{
			DepartureTime: now.Add(defaultTravelMinutes * time.Minute),
			MaxTravelTime: defaultTravelMinutes,
		}, nil
	}

	h, m, ok := strings.Cut(arrival, ":")
	if !ok {
		return Departure{}, fmt.Errorf("arrival time %q is not HH:MM", arrival)
	}
	hours, minutes, err := parseClockPair(h, m)
	if err != nil {
		return Departure{}, fmt.Errorf("arrival time %q is not HH:MM: %w", arrival, err)
	}

	arrivalAt := time.Date(now.Year(), now.Month(), now.Day(), hours, minutes, 0, 0, now.Location())
	if arrivalAt.Before(now) {
		arrivalAt = arrivalAt.AddDate(0, 0, 1)
	}

	window := int(arrivalAt.Sub(now).Minutes()) - transferBufferMinutes
	if window < minTravelMinutes {
		window = minTravelMinutes
	}

	departure := arrivalAt.Add(-time.Duration(window) * time.Minute)
	return Departure{DepartureTime: departure, MaxTravelTime: window}, nil
}
