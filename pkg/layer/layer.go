// Package layer implements a single authoring surface of a strata stage:
// a mutable tree of prim specs addressed by absolute paths, plus the
// subtree copy primitive and YAML serialization.
package layer

import (
	"sort"
	"strings"

	"github.com/strataforge/strata/pkg/domain"
)

// Layer is one authoring surface within a stage's layer stack. Opinions
// authored here are merged with other layers by strength order at
// composition time. Layers are not safe for concurrent mutation; the host
// runs a single-writer session.
type Layer struct {
	identifier  string
	displayName string

	// root is a pseudo-spec whose children are the top-level prims.
	// Its own fields are never authored.
	root *domain.PrimSpec
}

// New creates an empty layer. The display name defaults to the identifier
// with any extension stripped.
func New(identifier string) *Layer {
	name := identifier
	if idx := strings.LastIndexByte(name, '.'); idx > 0 {
		name = name[:idx]
	}
	return &Layer{
		identifier:  identifier,
		displayName: name,
		root:        domain.NewPrimSpec(domain.SpecifierOver),
	}
}

// Identifier returns the layer's unique identifier within its stage.
func (l *Layer) Identifier() string { return l.identifier }

// DisplayName returns the human-readable name used in diagnostics.
func (l *Layer) DisplayName() string { return l.displayName }

// SetDisplayName overrides the default display name.
func (l *Layer) SetDisplayName(name string) { l.displayName = name }

// SpecAt returns the spec authored at path, or nil if this layer holds no
// opinion there. The returned spec is live; mutating it mutates the layer.
func (l *Layer) SpecAt(p domain.Path) *domain.PrimSpec {
	if p.IsZero() {
		return nil
	}
	if p.IsRoot() {
		return l.root
	}
	cur := l.root
	for _, elem := range p.Elements() {
		cur = cur.Child(elem)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// HasSpecAt reports whether this layer authors an opinion at path.
func (l *Layer) HasSpecAt(p domain.Path) bool {
	return !p.IsRoot() && l.SpecAt(p) != nil
}

// SetSpecAt authors a spec at path, creating "over" placeholder ancestors
// as needed. An existing spec (and its subtree) at path is replaced.
func (l *Layer) SetSpecAt(p domain.Path, spec *domain.PrimSpec) error {
	if p.IsZero() || p.IsRoot() {
		return domain.ErrInvalidPath
	}
	parent := l.root
	elems := p.Elements()
	for _, elem := range elems[:len(elems)-1] {
		next := parent.Child(elem)
		if next == nil {
			next = domain.NewPrimSpec(domain.SpecifierOver)
			parent.SetChild(elem, next)
		}
		parent = next
	}
	parent.SetChild(p.Name(), spec)
	return nil
}

// RemoveSpecAt removes the spec at path together with its whole subtree.
// It reports whether anything was removed.
func (l *Layer) RemoveSpecAt(p domain.Path) bool {
	if p.IsZero() || p.IsRoot() {
		return false
	}
	parent := l.SpecAt(p.Parent())
	if parent == nil {
		return false
	}
	return parent.RemoveChild(p.Name())
}

// IsEmpty reports whether the layer authors no opinions at all.
func (l *Layer) IsEmpty() bool {
	return len(l.root.Children) == 0
}

// RootChildren returns the names of the top-level prims authored here.
func (l *Layer) RootChildren() []string {
	return childNames(l.root)
}

// ChildrenAt returns the child prim names authored under path, or nil.
func (l *Layer) ChildrenAt(p domain.Path) []string {
	return childNames(l.SpecAt(p))
}

func childNames(spec *domain.PrimSpec) []string {
	if spec == nil || len(spec.Children) == 0 {
		return nil
	}
	names := make([]string, 0, len(spec.Children))
	for name := range spec.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
