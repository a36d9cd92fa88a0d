package dataset

import (
	"errors"
	"sync"
)

// ErrNotFound is returned for unknown dataset IDs.
var ErrNotFound = errors.New("dataset not found")

// Store is the in-memory dataset store. Datasets are addressable both by
// their ID and by the input tuple that produced them.
type Store struct {
	mu   sync.RWMutex
	byID map[string]*Dataset
	keys map[Key]string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		byID: make(map[string]*Dataset),
		keys: make(map[Key]string),
	}
}

// Get returns a dataset by ID.
func (s *Store) Get(id string) (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ds, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return ds, nil
}

// GetByKey returns the dataset previously built for the exact input tuple.
func (s *Store) GetByKey(key Key) (*Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.keys[key]
	if !ok {
		return nil, false
	}
	ds, ok := s.byID[id]
	return ds, ok
}

// Put stores a dataset under both its ID and its key.
func (s *Store) Put(ds *Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[ds.ID] = ds
	s.keys[ds.Key] = ds.ID
}

// Count returns how many datasets are loaded.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
