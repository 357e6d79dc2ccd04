// Package store keeps the venue and transit option collections behind a
// CRUD surface with pluggable persistence.
package store

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/DannyMichaels/nyc-navigation-helper/internal/models"
)

var (
	ErrVenueNotFound  = errors.New("venue not found")
	ErrOptionNotFound = errors.New("transit option not found")
)

const maxShortNameLen = 4

// venuePalette supplies display colors for venues added without one.
var venuePalette = []string{
	"#4285F4", "#DB4437", "#0F9D58", "#FF6D00",
	"#9C27B0", "#00BCD4", "#8BC34A", "#FFC107",
	"#795548", "#607D8B", "#FF5722", "#673AB7",
}

// Store holds venues, transit options, and the center-venue reference.
// Mutations are atomic under one mutex and written through to the persister;
// a failed save is logged and the in-memory state stands.
type Store struct {
	mu        sync.RWMutex
	venues    []models.Venue
	options   []models.TransitOption
	center    string
	persister Persister
}

// New builds a store from the persister's snapshot, seeding the default
// venues when no snapshot exists yet.
func New(p Persister) (*Store, error) {
	snap, err := p.Load()
	if err != nil {
		return nil, fmt.Errorf("loading store snapshot: %w", err)
	}

	s := &Store{persister: p}
	if snap == nil {
		s.venues = seedVenues()
		s.center = "penn"
	} else {
		s.venues = snap.Venues
		s.options = snap.TransitOptions
		s.center = snap.CenterVenue
	}
	return s, nil
}

func seedVenues() []models.Venue {
	return []models.Venue{
		{
			ID: "penn", Name: "Penn Station", ShortName: "PENN",
			Address: "7th Ave & 32nd St, New York, NY",
			Lat:     40.750323, Lng: -73.991659, Color: "#4285F4",
		},
		{
			ID: "fiveiron", Name: "Five Iron Golf", ShortName: "5i",
			Address: "883 6th Ave, 3rd Floor, New York, NY",
			Lat:     40.747951, Lng: -73.988569, Color: "#DB4437",
		},
	}
}

// Venues returns all venues in insertion order.
func (s *Store) Venues() []models.Venue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Venue, len(s.venues))
	copy(out, s.venues)
	return out
}

// Venue looks a venue up by id.
func (s *Store) Venue(id string) (models.Venue, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findVenue(id)
}

func (s *Store) findVenue(id string) (models.Venue, bool) {
	for _, v := range s.venues {
		if v.ID == id {
			return v, true
		}
	}
	return models.Venue{}, false
}

// AddVenue stores a venue, generating an id, short name, and palette color
// for any the caller omitted, and returns the stored value.
func (s *Store) AddVenue(v models.Venue) models.Venue {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v.ID == "" {
		v.ID = "venue-" + uuid.NewString()
	}
	if v.ShortName == "" {
		v.ShortName = shortNameFor(v.Name)
	}
	if len(v.ShortName) > maxShortNameLen {
		v.ShortName = v.ShortName[:maxShortNameLen]
	}
	if v.Color == "" {
		v.Color = venuePalette[rand.Intn(len(venuePalette))]
	}

	s.venues = append(s.venues, v)
	s.persist()
	return v
}

// VenueUpdate carries the fields of a partial venue update. Nil fields are
// left untouched.
type VenueUpdate struct {
	Name      *string  `json:"name"`
	ShortName *string  `json:"short_name"`
	Address   *string  `json:"address"`
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`
	Color     *string  `json:"color"`
}

// UpdateVenue applies a partial update and returns the updated venue.
func (s *Store) UpdateVenue(id string, update VenueUpdate) (models.Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.venues {
		if s.venues[i].ID != id {
			continue
		}
		v := &s.venues[i]
		if update.Name != nil {
			v.Name = *update.Name
		}
		if update.ShortName != nil {
			v.ShortName = *update.ShortName
			if len(v.ShortName) > maxShortNameLen {
				v.ShortName = v.ShortName[:maxShortNameLen]
			}
		}
		if update.Address != nil {
			v.Address = *update.Address
		}
		if update.Lat != nil {
			v.Lat = *update.Lat
		}
		if update.Lng != nil {
			v.Lng = *update.Lng
		}
		if update.Color != nil {
			v.Color = *update.Color
		}
		s.persist()
		return *v, nil
	}
	return models.Venue{}, ErrVenueNotFound
}

// RemoveVenue deletes a venue, every transit option referencing it as an
// endpoint, and the center reference if it pointed at the removed venue.
func (s *Store) RemoveVenue(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findVenue(id); !ok {
		return ErrVenueNotFound
	}

	kept := s.venues[:0]
	for _, v := range s.venues {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	s.venues = kept

	keptOptions := s.options[:0]
	for _, o := range s.options {
		if o.From != id && o.To != id {
			keptOptions = append(keptOptions, o)
		}
	}
	s.options = keptOptions

	if s.center == id {
		s.center = ""
	}

	s.persist()
	return nil
}

// SetCenter designates the reference venue. An empty id clears it.
func (s *Store) SetCenter(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if _, ok := s.findVenue(id); !ok {
			return ErrVenueNotFound
		}
	}
	s.center = id
	s.persist()
	return nil
}

// Center returns the center venue when one is set and still exists.
func (s *Store) Center() (models.Venue, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.center == "" {
		return models.Venue{}, false
	}
	return s.findVenue(s.center)
}

// Options returns all transit options, including ones whose endpoints no
// longer exist.
func (s *Store) Options() []models.TransitOption {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.TransitOption, len(s.options))
	copy(out, s.options)
	return out
}

// OptionsForRender returns only options whose endpoints both still resolve
// to stored venues. Dangling references are tolerated, not errors.
func (s *Store) OptionsForRender() []models.TransitOption {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.TransitOption
	for _, o := range s.options {
		if _, ok := s.findVenue(o.From); !ok {
			continue
		}
		if _, ok := s.findVenue(o.To); !ok {
			continue
		}
		out = append(out, o)
	}
	return out
}

// AddTransitOption stores an option, generating an id when absent.
func (s *Store) AddTransitOption(o models.TransitOption) models.TransitOption {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.ID == "" {
		o.ID = "transit-" + uuid.NewString()
	}
	s.options = append(s.options, o)
	s.persist()
	return o
}

// UpdateTransitOption replaces the stored option with the given id.
func (s *Store) UpdateTransitOption(id string, o models.TransitOption) (models.TransitOption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.options {
		if s.options[i].ID == id {
			o.ID = id
			s.options[i] = o
			s.persist()
			return o, nil
		}
	}
	return models.TransitOption{}, ErrOptionNotFound
}

// RemoveTransitOption deletes an option by id.
func (s *Store) RemoveTransitOption(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.options {
		if s.options[i].ID == id {
			s.options = append(s.options[:i], s.options[i+1:]...)
			s.persist()
			return nil
		}
	}
	return ErrOptionNotFound
}

// persist writes the current state through the persister. Callers hold the
// write lock.
func (s *Store) persist() {
	snap := &Snapshot{
		Name:           StorageName,
		Venues:         append([]models.Venue(nil), s.venues...),
		TransitOptions: append([]models.TransitOption(nil), s.options...),
		CenterVenue:    s.center,
	}
	if err := s.persister.Save(snap); err != nil {
		log.Error().Err(err).Msg("saving store snapshot")
	}
}

// shortNameFor derives a label from a venue name's initials, capped at four
// characters.
func shortNameFor(name string) string {
	var initials []rune
	for _, word := range strings.Fields(name) {
		runes := []rune(strings.ToUpper(word))
		initials = append(initials, runes[0])
		if len(initials) == maxShortNameLen {
			break
		}
	}
	return string(initials)
}
