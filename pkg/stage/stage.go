// Package stage implements the composed view over an ordered stack of
// layers: resolution queries (which layers author a prim, strongest
// first), the ambient edit target, and structural edits scoped to it.
package stage

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/strataforge/strata/pkg/domain"
	"github.com/strataforge/strata/pkg/layer"
)

// Stage composes an ordered stack of layers, strongest first. All
// structural edits (DefinePrim, RemovePrim) target the ambient edit
// target layer; EditContext can override it for a scope.
//
// A stage is single-session, single-writer state. It is not a database:
// layer mutations are applied directly with no rollback, so callers that
// need transactional behavior must sequence their own copy-before-delete.
type Stage struct {
	layers     []*layer.Layer
	editTarget *layer.Layer
	onRemove   []func(domain.Path)
	logger     *slog.Logger
}

// Option configures a Stage.
type Option func(*Stage)

// WithLogger sets the stage logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Stage) { s.logger = l }
}

// WithEditTarget selects the initial edit target by layer identifier.
// By default the strongest layer is the edit target.
func WithEditTarget(identifier string) Option {
	return func(s *Stage) {
		if l := s.LayerByIdentifier(identifier); l != nil {
			s.editTarget = l
		}
	}
}

// New creates a stage over the given layers, ordered strongest first.
func New(layers []*layer.Layer, opts ...Option) (*Stage, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("stage requires at least one layer")
	}
	seen := make(map[string]bool, len(layers))
	for _, l := range layers {
		if seen[l.Identifier()] {
			return nil, fmt.Errorf("duplicate layer identifier %q", l.Identifier())
		}
		seen[l.Identifier()] = true
	}
	s := &Stage{
		layers:     layers,
		editTarget: layers[0],
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Layers returns the layer stack, strongest first. The slice is shared;
// callers must not reorder it.
func (s *Stage) Layers() []*layer.Layer { return s.layers }

// LayerByIdentifier returns the stacked layer with the given identifier,
// or nil.
func (s *Stage) LayerByIdentifier(id string) *layer.Layer {
	for _, l := range s.layers {
		if l.Identifier() == id {
			return l
		}
	}
	return nil
}

// EditTarget returns the layer currently receiving authoring operations.
func (s *Stage) EditTarget() *layer.Layer { return s.editTarget }

// SetEditTarget redirects authoring to the given layer, which must be a
// member of the stack.
func (s *Stage) SetEditTarget(l *layer.Layer) error {
	if s.LayerByIdentifier(l.Identifier()) != l {
		return fmt.Errorf("layer %q is not in the stage's stack", l.Identifier())
	}
	s.editTarget = l
	return nil
}

// OnRemove registers a hook invoked after RemovePrim removes authored
// scene description at a path. The scene registry uses this to expire
// outstanding item handles.
func (s *Stage) OnRemove(fn func(domain.Path)) {
	s.onRemove = append(s.onRemove, fn)
}

// HasPrim reports whether any layer authors an opinion at path.
func (s *Stage) HasPrim(p domain.Path) bool {
	if p.IsRoot() {
		return true
	}
	for _, l := range s.layers {
		if l.HasSpecAt(p) {
			return true
		}
	}
	return false
}

// LayersWithSpec returns every layer authoring an opinion at path,
// strongest first.
func (s *Stage) LayersWithSpec(p domain.Path) []*layer.Layer {
	var out []*layer.Layer
	for _, l := range s.layers {
		if l.HasSpecAt(p) {
			out = append(out, l)
		}
	}
	return out
}

// StrongestLayerWithSpec returns the strongest layer authoring an opinion
// at path, or nil.
func (s *Stage) StrongestLayerWithSpec(p domain.Path) *layer.Layer {
	for _, l := range s.layers {
		if l.HasSpecAt(p) {
			return l
		}
	}
	return nil
}

// DefiningLayer returns the layer holding the "def" spec for path, or nil
// when no layer defines the prim (only overs, or nothing at all).
func (s *Stage) DefiningLayer(p domain.Path) *layer.Layer {
	for _, l := range s.layers {
		if spec := l.SpecAt(p); spec != nil && spec.Specifier == domain.SpecifierDef {
			return l
		}
	}
	return nil
}

// EditTargetHasSpec reports whether the ambient edit target authors an
// opinion at path.
func (s *Stage) EditTargetHasSpec(p domain.Path) bool {
	return s.editTarget.HasSpecAt(p)
}

// ComposePrim returns the composed view of the prim at path: the merge of
// every layer's opinions, strongest wins per field. The second return is
// false when no layer authors anything there.
func (s *Stage) ComposePrim(p domain.Path) (*domain.PrimSpec, bool) {
	var composed *domain.PrimSpec
	// Weakest to strongest so stronger opinions overwrite.
	for i := len(s.layers) - 1; i >= 0; i-- {
		spec := s.layers[i].SpecAt(p)
		if spec == nil {
			continue
		}
		if composed == nil {
			composed = domain.NewPrimSpec(spec.Specifier)
		}
		if spec.Specifier == domain.SpecifierDef {
			composed.Specifier = domain.SpecifierDef
		}
		if spec.TypeName != "" {
			composed.TypeName = spec.TypeName
		}
		for k, v := range spec.Fields {
			if composed.Fields == nil {
				composed.Fields = make(map[string]any)
			}
			composed.Fields[k] = v
		}
		for k, v := range spec.Metadata {
			if composed.Metadata == nil {
				composed.Metadata = make(map[string]string)
			}
			composed.Metadata[k] = v
		}
	}
	if composed == nil {
		return nil, false
	}
	return composed, true
}

// ChildrenOf returns the sorted union of child prim names authored under
// path across all layers.
func (s *Stage) ChildrenOf(p domain.Path) []string {
	set := make(map[string]bool)
	for _, l := range s.layers {
		for _, name := range l.ChildrenAt(p) {
			set[name] = true
		}
	}
	if len(set) == 0 {
		return nil
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefinePrim authors an empty "def" spec at path in the edit target,
// creating placeholder ancestors as needed. An existing spec at the path
// in the edit target is preserved (only its specifier is promoted).
func (s *Stage) DefinePrim(p domain.Path) (*domain.PrimSpec, error) {
	if p.IsZero() || p.IsRoot() {
		return nil, fmt.Errorf("%w: cannot define prim at %q", domain.ErrInvalidPath, p.String())
	}
	if existing := s.editTarget.SpecAt(p); existing != nil {
		existing.Specifier = domain.SpecifierDef
		return existing, nil
	}
	spec := domain.NewPrimSpec(domain.SpecifierDef)
	if err := s.editTarget.SetSpecAt(p, spec); err != nil {
		return nil, err
	}
	return spec, nil
}

// RemovePrim removes all scene description for path and its subtree from
// the edit target layer. It reports whether anything was removed, and
// fires the registered removal hooks on success.
func (s *Stage) RemovePrim(p domain.Path) bool {
	if !s.editTarget.RemoveSpecAt(p) {
		s.logger.Debug("remove prim found nothing to remove",
			"path", p.String(), "layer", s.editTarget.Identifier())
		return false
	}
	for _, fn := range s.onRemove {
		fn(p)
	}
	return true
}
