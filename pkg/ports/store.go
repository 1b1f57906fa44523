package ports

import (
	"context"

	"github.com/strataforge/strata/pkg/layer"
)

// LayerStore defines the interface for persisting authoring layers.
// Implementations must isolate stored state from the caller's layer: a
// mutation after Save must not leak into the store, and two Loads must
// not alias each other.
type LayerStore interface {
	// Save persists the layer under the given identifier.
	Save(ctx context.Context, id string, l *layer.Layer) error

	// Load retrieves the layer stored under the identifier.
	// Returns domain.ErrLayerNotFound if it does not exist.
	Load(ctx context.Context, id string) (*layer.Layer, error)

	// Delete removes the stored layer.
	Delete(ctx context.Context, id string) error

	// List returns the identifiers of all stored layers.
	List(ctx context.Context) ([]string, error)
}
