package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/strataforge/strata/pkg/layer"
	"github.com/strataforge/strata/pkg/stage"
	"gopkg.in/yaml.v3"
)

// ManifestName is the stage manifest filename inside a scene directory.
const ManifestName = "stage.yaml"

// Manifest describes a stage on disk: the layer stack in strength order
// (strongest first) and the layer designated as the edit target.
type Manifest struct {
	Layers     []string `yaml:"layers"`
	EditTarget string   `yaml:"edit_target,omitempty"`
}

// LoadManifest reads the stage manifest from dir.
func LoadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, fmt.Errorf("failed to read stage manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode stage manifest: %w", err)
	}
	if len(m.Layers) == 0 {
		return nil, fmt.Errorf("stage manifest lists no layers")
	}
	return &m, nil
}

// SaveManifest writes the stage manifest to dir.
func SaveManifest(dir string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode stage manifest: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure scene directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestName), data, 0644); err != nil {
		return fmt.Errorf("failed to write stage manifest: %w", err)
	}
	return nil
}

// LoadStage builds a stage from a scene directory: it reads the manifest
// and loads each listed layer through the file store, preserving stack
// order and the persisted edit target.
func LoadStage(ctx context.Context, dir string, opts ...stage.Option) (*stage.Stage, error) {
	m, err := LoadManifest(dir)
	if err != nil {
		return nil, err
	}
	store := NewStore(dir)
	layers := make([]*layer.Layer, 0, len(m.Layers))
	for _, id := range m.Layers {
		l, err := store.Load(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load layer %s: %w", id, err)
		}
		layers = append(layers, l)
	}
	if m.EditTarget != "" {
		opts = append([]stage.Option{stage.WithEditTarget(m.EditTarget)}, opts...)
	}
	return stage.New(layers, opts...)
}

// SaveStage writes every layer of the stage back to the scene directory
// along with a manifest reflecting the current stack order and edit
// target.
func SaveStage(ctx context.Context, dir string, st *stage.Stage) error {
	store := NewStore(dir)
	m := &Manifest{EditTarget: st.EditTarget().Identifier()}
	for _, l := range st.Layers() {
		if err := store.Save(ctx, l.Identifier(), l); err != nil {
			return err
		}
		m.Layers = append(m.Layers, l.Identifier())
	}
	return SaveManifest(dir, m)
}
