package datastore

import (
	"sync"

	"github.com/shoplytics/shoplytics/internal/models"
)

// Store holds the current in-memory dataset bundle served over HTTP.
// Regeneration swaps the whole bundle atomically; readers always see a
// consistent users/products/events triple.
type Store struct {
	mu sync.RWMutex
	ds *models.Dataset
}

// NewStore wraps an initial dataset, which may be nil until the first
// generation completes.
func NewStore(ds *models.Dataset) *Store {
	return &Store{ds: ds}
}

// Current returns the active dataset, or nil when none has been loaded.
func (s *Store) Current() *models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds
}

// Replace installs a freshly generated dataset.
func (s *Store) Replace(ds *models.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ds = ds
}
