// Package models defines shared data types
package models

import "time"

// TransitMode enumerates the ways of getting between two venues.
type TransitMode string

const (
	ModeSubway     TransitMode = "subway"
	ModeBus        TransitMode = "bus"
	ModeWalk       TransitMode = "walk"
	ModeTaxi       TransitMode = "taxi"
	ModeUber       TransitMode = "uber"
	ModeLIRR       TransitMode = "lirr"
	ModeMetroNorth TransitMode = "metro-north"
	ModeMultimodal TransitMode = "multimodal"
)

// ServiceStatus is the derived realtime state of a transit line.
type ServiceStatus string

const (
	StatusOnTime    ServiceStatus = "OnTime"
	StatusDelayed   ServiceStatus = "Delayed"
	StatusCancelled ServiceStatus = "Cancelled"
)

// Venue is a user-added point of interest on the map.
type Venue struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ShortName string  `json:"short_name"`
	Address   string  `json:"address"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Color     string  `json:"color"`
}

// TransitOption is one candidate route between two venues.
//
// From and To hold venue IDs. They are referential only: a venue may be
// removed after the option was created, and consumers filter dangling
// references at render time instead of treating them as errors.
type TransitOption struct {
	ID               string        `json:"id"`
	From             string        `json:"from"`
	To               string        `json:"to"`
	Type             TransitMode   `json:"type"`
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	Duration         int           `json:"duration"`
	Cost             float64       `json:"cost,omitempty"`
	Line             string        `json:"line,omitempty"`
	Direction        string        `json:"direction,omitempty"`
	TrainSymbol      string        `json:"train_symbol,omitempty"`
	TrainColor       string        `json:"train_color,omitempty"`
	DepartureTime    string        `json:"departure_time,omitempty"`
	ArrivalTime      string        `json:"arrival_time,omitempty"`
	Pros             []string      `json:"pros,omitempty"`
	Cons             []string      `json:"cons,omitempty"`
	Recommended      bool          `json:"recommended"`
	Color            string        `json:"color"`
	Steps            []string      `json:"steps,omitempty"`
	RealtimeStatus   ServiceStatus `json:"realtime_status,omitempty"`
	EstimatedArrival *time.Time    `json:"estimated_arrival,omitempty"`
}

// RealtimeTransitStatus is one live status record derived from a GTFS-realtime
// stop-time update. It is transient and never persisted.
type RealtimeTransitStatus struct {
	Line             string        `json:"line"`
	Type             TransitMode   `json:"type"`
	Status           ServiceStatus `json:"status"`
	EstimatedArrival *time.Time    `json:"estimated_arrival,omitempty"`
	ScheduledArrival *time.Time    `json:"scheduled_arrival,omitempty"`
	Platform         string        `json:"platform,omitempty"`
	Destination      string        `json:"destination,omitempty"`
	OriginStation    string        `json:"origin_station,omitempty"`
}

// ServiceAlert is an active rider alert from the MTA alerts feed.
type ServiceAlert struct {
	ID          string   `json:"id"`
	Routes      []string `json:"routes,omitempty"`
	Header      string   `json:"header"`
	Description string   `json:"description,omitempty"`
}
