// Package store persists named world maps.
//
// The API server lets operators save a world map once and plan against it by
// name afterwards. [MemoryStore] backs tests and single-instance standalone
// mode; [MongoStore] backs shared deployments, one document per map.
package store

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/routeworks/wayfind/pkg/worldmap"
)

var (
	// ErrMapNotFound is returned by Load and Delete when no map with the
	// given name exists.
	ErrMapNotFound = errors.New("world map not found")

	// ErrUnnamedMap is returned by Save when the map has no name to key on.
	ErrUnnamedMap = errors.New("world map must have a name")
)

// Store is the interface for world-map persistence backends.
type Store interface {
	// Save stores a map, replacing any existing map with the same name.
	Save(ctx context.Context, m worldmap.Map) error

	// Load retrieves a map by name. Returns ErrMapNotFound if absent.
	Load(ctx context.Context, name string) (worldmap.Map, error)

	// List returns the names of all stored maps, sorted.
	List(ctx context.Context) ([]string, error)

	// Delete removes a map by name. Returns ErrMapNotFound if absent.
	Delete(ctx context.Context, name string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// MemoryStore is an in-memory Store for tests and standalone mode.
// It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	maps map[string]worldmap.Map
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{maps: make(map[string]worldmap.Map)}
}

// Save stores a map, replacing any existing map with the same name.
func (s *MemoryStore) Save(ctx context.Context, m worldmap.Map) error {
	if m.Name == "" {
		return ErrUnnamedMap
	}
	if err := m.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maps[m.Name] = m
	return nil
}

// Load retrieves a map by name.
func (s *MemoryStore) Load(ctx context.Context, name string) (worldmap.Map, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.maps[name]
	if !ok {
		return worldmap.Map{}, ErrMapNotFound
	}
	return m, nil
}

// List returns the names of all stored maps, sorted.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.maps))
	for name := range s.maps {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Delete removes a map by name.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.maps[name]; !ok {
		return ErrMapNotFound
	}
	delete(s.maps, name)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
