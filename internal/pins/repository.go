// Package pins implements the read-side pin repository: it loads the
// full set of location entries from the records collaborator, normalizes
// them, and hands renderers a stable snapshot.
package pins

import (
	"context"
	"sync"

	"github.com/kc95kc/music-map/pkg/types"
)

// Repository holds the in-memory pin collection. Refresh replaces the
// collection wholesale; there is no incremental merge, so any pin value
// held across a refresh may be stale and must be re-fetched by ID.
type Repository struct {
	records types.Records

	mu   sync.RWMutex
	pins []types.Pin
}

// NewRepository creates an empty repository over the records surface.
func NewRepository(records types.Records) *Repository {
	return &Repository{records: records}
}

// LoadAll fetches every pin, normalizes derived fields, and replaces the
// collection. On failure it returns a FetchError and leaves the held
// collection unchanged.
func (r *Repository) LoadAll(ctx context.Context) ([]types.Pin, error) {
	loaded, err := r.records.ListPins(ctx)
	if err != nil {
		return nil, &types.FetchError{Op: "pins", Err: err}
	}

	for i := range loaded {
		normalize(&loaded[i])
	}

	r.mu.Lock()
	r.pins = loaded
	r.mu.Unlock()
	return loaded, nil
}

// Refresh re-runs the same load. Kept as a named operation so call sites
// read as intent rather than mechanism.
func (r *Repository) Refresh(ctx context.Context) error {
	_, err := r.LoadAll(ctx)
	return err
}

// Snapshot returns the held collection, including pins that cannot be
// rendered. Callers must treat the slice as immutable.
func (r *Repository) Snapshot() []types.Pin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pins
}

// Renderable returns the pins carrying both coordinates. The underlying
// collection retains the rest, so len(Snapshot()) >= len(Renderable()).
func (r *Repository) Renderable() []types.Pin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.Pin, 0, len(r.pins))
	for _, p := range r.pins {
		if p.HasLocation() {
			out = append(out, p)
		}
	}
	return out
}

// Get re-fetches a pin by ID from the current collection. The second
// return is false if no such pin exists, including after a refresh
// removed it.
func (r *Repository) Get(id string) (types.Pin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.pins {
		if p.PinID == id {
			return p, true
		}
	}
	return types.Pin{}, false
}

// normalize fills derived fields. The street-view link is a pure
// function of geometry, computed here once so renderers never derive it
// themselves.
func normalize(p *types.Pin) {
	if p.StreetViewURL == "" && p.HasLocation() {
		p.StreetViewURL = types.StreetViewURL(*p.Latitude, *p.Longitude)
	}
}
