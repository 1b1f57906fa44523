// Package memory provides an in-memory LayerStore, used by tests and by
// sessions that never touch disk.
package memory

import (
	"context"
	"sync"

	"github.com/strataforge/strata/pkg/domain"
	"github.com/strataforge/strata/pkg/layer"
)

// Store implements ports.LayerStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Save persists an encoded snapshot of the layer. Encoding on write keeps
// the stored state isolated from later mutations of the caller's layer.
func (s *Store) Save(ctx context.Context, id string, l *layer.Layer) error {
	data, err := l.Encode()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = data
	return nil
}

// Load retrieves and decodes the stored layer.
func (s *Store) Load(ctx context.Context, id string) (*layer.Layer, error) {
	s.mu.RLock()
	data, ok := s.data[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrLayerNotFound
	}
	return layer.Decode(data, id)
}

// Delete removes the stored layer.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored layer identifiers.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}
