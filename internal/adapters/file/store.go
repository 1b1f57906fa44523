// Package file provides a filesystem LayerStore: one YAML document per
// layer in a directory, plus a stage manifest describing stack order and
// edit target.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/strataforge/strata/pkg/domain"
	"github.com/strataforge/strata/pkg/layer"
)

// Store implements ports.LayerStore on the local filesystem. Layer
// identifiers double as filenames, so they must be plain names without
// path separators.
type Store struct {
	BasePath string
}

// NewStore creates a file store rooted at basePath. If basePath is empty,
// it defaults to ".strata/layers".
func NewStore(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".strata", "layers")
	}
	return &Store{BasePath: basePath}
}

func (f *Store) path(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("layer identifier cannot be empty")
	}
	if strings.ContainsAny(id, `/\`) || id == ManifestName {
		return "", fmt.Errorf("layer identifier %q is not a plain filename", id)
	}
	name := id
	if filepath.Ext(name) != ".yaml" {
		name += ".yaml"
	}
	return filepath.Join(f.BasePath, name), nil
}

// Save writes the layer as a YAML file.
func (f *Store) Save(ctx context.Context, id string, l *layer.Layer) error {
	filePath, err := f.path(id)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure layer directory: %w", err)
	}
	data, err := l.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write layer file: %w", err)
	}
	return nil
}

// Load reads and decodes a layer file.
func (f *Store) Load(ctx context.Context, id string) (*layer.Layer, error) {
	filePath, err := f.path(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrLayerNotFound
		}
		return nil, fmt.Errorf("failed to read layer file: %w", err)
	}
	return layer.Decode(data, id)
}

// Delete removes the layer file.
func (f *Store) Delete(ctx context.Context, id string) error {
	filePath, err := f.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete layer file: %w", err)
	}
	return nil
}

// List returns the identifiers of all layer files in the directory.
func (f *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list layers: %w", err)
	}
	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == ManifestName || filepath.Ext(name) != ".yaml" {
			continue
		}
		ids = append(ids, name)
	}
	return ids, nil
}
