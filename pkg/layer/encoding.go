package layer

import (
	"fmt"

	"github.com/strataforge/strata/pkg/domain"
	"gopkg.in/yaml.v3"
)

// layerDoc is the on-disk YAML shape of a layer.
type layerDoc struct {
	Identifier  string                      `yaml:"identifier"`
	DisplayName string                      `yaml:"display_name,omitempty"`
	Prims       map[string]*domain.PrimSpec `yaml:"prims,omitempty"`
}

// Encode serializes the layer to YAML.
func (l *Layer) Encode() ([]byte, error) {
	doc := layerDoc{
		Identifier:  l.identifier,
		DisplayName: l.displayName,
		Prims:       l.root.Children,
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode layer %s: %w", l.identifier, err)
	}
	return data, nil
}

// Decode parses a YAML layer document. When the document carries no
// identifier, fallbackID is used (typically the store key or filename).
func Decode(data []byte, fallbackID string) (*Layer, error) {
	var doc layerDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode layer: %w", err)
	}
	id := doc.Identifier
	if id == "" {
		id = fallbackID
	}
	if id == "" {
		return nil, fmt.Errorf("layer document has no identifier")
	}
	l := New(id)
	if doc.DisplayName != "" {
		l.displayName = doc.DisplayName
	}
	if doc.Prims != nil {
		l.root.Children = doc.Prims
	}
	return l, nil
}
