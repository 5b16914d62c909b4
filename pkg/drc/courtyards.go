package drc

import (
	"sync"

	"github.com/leapstack-labs/boardcheck/pkg/board"
)

type courtyardEntry struct {
	courtyard board.Courtyard
	err       error
}

// CourtyardCache memoizes courtyard builds for one pass, keyed by footprint
// ID. Footprints are never modified; the cache owns the derived polygons.
type CourtyardCache struct {
	mu      sync.Mutex
	opts    board.OutlineOptions
	metrics *Metrics
	entries map[string]courtyardEntry
}

// NewCourtyardCache creates an empty cache.
func NewCourtyardCache(opts board.OutlineOptions, metrics *Metrics) *CourtyardCache {
	return &CourtyardCache{
		opts:    opts,
		metrics: metrics,
		entries: make(map[string]courtyardEntry),
	}
}

// Get returns the courtyard of fp, building it on first use. A failed build
// is cached too, so every caller sees the same outcome.
func (c *CourtyardCache) Get(fp *board.Footprint) (board.Courtyard, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[fp.ID]; ok {
		return e.courtyard, e.err
	}
	cy, err := board.BuildCourtyard(fp, c.opts)
	c.entries[fp.ID] = courtyardEntry{courtyard: cy, err: err}
	c.metrics.courtyardBuilt(err == nil)
	return cy, err
}

// Len returns the number of cached footprints.
func (c *CourtyardCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
