package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DannyMichaels/nyc-navigation-helper/internal/models"
)

// StorageName keys the persisted snapshot blob.
const StorageName = "nyc-legend-storage"

// Snapshot is the single serialized blob the store persists: every venue,
// every transit option, and the center-venue reference.
type Snapshot struct {
	Name           string                 `json:"name"`
	Venues         []models.Venue         `json:"venues"`
	TransitOptions []models.TransitOption `json:"transit_options"`
	CenterVenue    string                 `json:"center_venue,omitempty"`
}

// Persister loads and saves store snapshots. Load returns (nil, nil) when no
// snapshot exists yet so the store can seed defaults.
type Persister interface {
	Load() (*Snapshot, error)
	Save(*Snapshot) error
}

// FilePersister keeps the snapshot as a JSON file on disk.
type FilePersister struct {
	path string
}

// NewFilePersister creates a file-backed persister at the given path.
func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

// Load reads the snapshot file. A missing file is not an error.
func (p *FilePersister) Load() (*Snapshot, error) {
	data, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading store file: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing store file: %w", err)
	}
	return &snap, nil
}

// Save writes the snapshot atomically via a temp file rename.
func (p *FilePersister) Save(snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding store snapshot: %w", err)
	}

	dir := filepath.Dir(p.path)
	tmp, err := os.CreateTemp(dir, ".store-*")
	if err != nil {
		return fmt.Errorf("creating temp store file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing store snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp store file: %w", err)
	}

	if err := os.Rename(tmp.Name(), p.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing store file: %w", err)
	}
	return nil
}

// MemoryPersister holds the snapshot in memory. Useful for tests and for
// running with persistence disabled.
type MemoryPersister struct {
	snap *Snapshot
}

// NewMemoryPersister creates an empty in-memory persister.
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

// Load returns the last saved snapshot, or nil when nothing was saved.
func (p *MemoryPersister) Load() (*Snapshot, error) { return p.snap, nil }

// Save retains the snapshot.
func (p *MemoryPersister) Save(snap *Snapshot) error {
	p.snap = snap
	return nil
}
