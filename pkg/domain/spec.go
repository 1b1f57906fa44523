package domain

import "reflect"

// Specifier describes how a prim spec contributes to composition.
type Specifier string

const (
	// SpecifierDef declares a concrete prim.
	SpecifierDef Specifier = "def"
	// SpecifierOver carries opinions for a prim defined elsewhere
	// (typically in a weaker layer, or as an ancestor placeholder).
	SpecifierOver Specifier = "over"
)

// PrimSpec is the authored content of one prim within one layer: its
// specifier, optional type, scalar fields, metadata, and child specs.
// A PrimSpec tree is mutable scene description; composition merges the
// trees of all layers in strength order.
type PrimSpec struct {
	Specifier Specifier            `yaml:"specifier" json:"specifier"`
	TypeName  string               `yaml:"type,omitempty" json:"type,omitempty"`
	Fields    map[string]any       `yaml:"fields,omitempty" json:"fields,omitempty"`
	Metadata  map[string]string    `yaml:"metadata,omitempty" json:"metadata,omitempty"`
	Children  map[string]*PrimSpec `yaml:"children,omitempty" json:"children,omitempty"`
}

// NewPrimSpec returns an empty spec with the given specifier.
func NewPrimSpec(sp Specifier) *PrimSpec {
	return &PrimSpec{Specifier: sp}
}

// Child returns the named child spec, or nil.
func (s *PrimSpec) Child(name string) *PrimSpec {
	if s == nil || s.Children == nil {
		return nil
	}
	return s.Children[name]
}

// SetChild attaches a child spec, allocating the child map on first use.
func (s *PrimSpec) SetChild(name string, child *PrimSpec) {
	if s.Children == nil {
		s.Children = make(map[string]*PrimSpec)
	}
	s.Children[name] = child
}

// RemoveChild detaches the named child and its subtree. It reports whether
// the child existed.
func (s *PrimSpec) RemoveChild(name string) bool {
	if s == nil || s.Children == nil {
		return false
	}
	if _, ok := s.Children[name]; !ok {
		return false
	}
	delete(s.Children, name)
	return true
}

// Copy returns a deep copy of the spec and its entire subtree. The copy
// shares no mutable state with the original.
func (s *PrimSpec) Copy() *PrimSpec {
	if s == nil {
		return nil
	}
	out := &PrimSpec{
		Specifier: s.Specifier,
		TypeName:  s.TypeName,
	}
	if s.Fields != nil {
		out.Fields = make(map[string]any, len(s.Fields))
		for k, v := range s.Fields {
			out.Fields[k] = v
		}
	}
	if s.Metadata != nil {
		out.Metadata = make(map[string]string, len(s.Metadata))
		for k, v := range s.Metadata {
			out.Metadata[k] = v
		}
	}
	if s.Children != nil {
		out.Children = make(map[string]*PrimSpec, len(s.Children))
		for name, child := range s.Children {
			out.Children[name] = child.Copy()
		}
	}
	return out
}

// Equal reports structural equality of two spec subtrees.
func (s *PrimSpec) Equal(other *PrimSpec) bool {
	if s == nil || other == nil {
		return s == other
	}
	return reflect.DeepEqual(s, other)
}
