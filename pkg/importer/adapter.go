// Package importer fetches the public datasets backing the profile engine
// and writes them into the store layout (data.json + manifest.yaml per
// dataset). Each source is an Adapter registered at init time; source URLs
// live in a small SQLite table so operators can override them without a
// rebuild.
package importer

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Adapter downloads one data source, transforms it, and serializes a
// dataset into the store layout.
type Adapter interface {
	// ID returns the unique identifier of this adapter (e.g. "ssa-babynames-us").
	ID() string
	// DatasetID returns the target dataset directory name (e.g. "names").
	DatasetID() string
	// Description returns a human-readable description.
	Description() string
	// DefaultURL returns the default source URL used for seeding the database.
	DefaultURL() string
	// License returns the license identifier for this source (e.g. "Public Domain").
	License() string
	// Import downloads the source from sourceURL, transforms it, and writes
	// data.json + manifest.yaml into a subdirectory of dataDir named after
	// DatasetID().
	Import(ctx context.Context, sourceURL, dataDir string) error
}

var (
	registryMu sync.RWMutex
	adapters   = make(map[string]Adapter)
)

// Register adds an adapter to the global registry.
func Register(a Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	adapters[a.ID()] = a
}

// Get returns a registered adapter by ID, or an error if not found.
func Get(id string) (Adapter, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := adapters[id]
	if !ok {
		return nil, fmt.Errorf("unknown import source: %q", id)
	}
	return a, nil
}

// All returns all registered adapters sorted by ID.
func All() []Adapter {
	registryMu.RLock()
	defer registryMu.RUnlock()
	result := make([]Adapter, 0, len(adapters))
	for _, a := range adapters {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result
}
