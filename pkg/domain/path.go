package domain

import (
	"fmt"
	"strings"
)

// Path is an absolute, hierarchical identifier for a prim in the composed
// stage, e.g. "/World/Cube". The zero value is invalid; paths are built via
// ParsePath, MustPath, or the navigation methods on an existing Path.
//
// Paths are immutable values and safe to copy.
type Path struct {
	s string
}

// RootPath addresses the pseudo-root of the hierarchy. It always exists and
// can never be renamed or removed.
var RootPath = Path{s: "/"}

// ParsePath parses an absolute prim path. Every element must be a legal prim
// name (see ValidName). Trailing slashes are rejected.
func ParsePath(s string) (Path, error) {
	if s == "/" {
		return RootPath, nil
	}
	if !strings.HasPrefix(s, "/") {
		return Path{}, fmt.Errorf("%w: %q is not absolute", ErrInvalidPath, s)
	}
	elems := strings.Split(s[1:], "/")
	for _, e := range elems {
		if !ValidName(e) {
			return Path{}, fmt.Errorf("%w: %q has illegal element %q", ErrInvalidPath, s, e)
		}
	}
	return Path{s: s}, nil
}

// MustPath is ParsePath that panics on error. Intended for fixtures and examples.
func MustPath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// ValidName reports whether s is a legal single path element: a letter or
// underscore followed by letters, digits, or underscores.
func ValidName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// IsZero reports whether p is the invalid zero value.
func (p Path) IsZero() bool { return p.s == "" }

// IsRoot reports whether p is the pseudo-root.
func (p Path) IsRoot() bool { return p.s == "/" }

// String returns the textual form of the path.
func (p Path) String() string { return p.s }

// Name returns the leaf element of the path, or "" for the root.
func (p Path) Name() string {
	if p.IsRoot() || p.IsZero() {
		return ""
	}
	idx := strings.LastIndexByte(p.s, '/')
	return p.s[idx+1:]
}

// Parent returns the path with the leaf element removed. The parent of the
// root (and of the zero value) is the root.
func (p Path) Parent() Path {
	if p.IsRoot() || p.IsZero() {
		return RootPath
	}
	idx := strings.LastIndexByte(p.s, '/')
	if idx == 0 {
		return RootPath
	}
	return Path{s: p.s[:idx]}
}

// AppendChild returns the path extended by one element.
func (p Path) AppendChild(name string) (Path, error) {
	if p.IsZero() {
		return Path{}, fmt.Errorf("%w: cannot extend zero path", ErrInvalidPath)
	}
	if !ValidName(name) {
		return Path{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if p.IsRoot() {
		return Path{s: "/" + name}, nil
	}
	return Path{s: p.s + "/" + name}, nil
}

// Elements returns the path elements in order, excluding the root.
func (p Path) Elements() []string {
	if p.IsRoot() || p.IsZero() {
		return nil
	}
	return strings.Split(p.s[1:], "/")
}

// HasPrefix reports whether p equals prefix or lies beneath it.
func (p Path) HasPrefix(prefix Path) bool {
	if prefix.IsZero() || p.IsZero() {
		return false
	}
	if prefix.IsRoot() {
		return true
	}
	if p.s == prefix.s {
		return true
	}
	return strings.HasPrefix(p.s, prefix.s+"/")
}

// MarshalText implements encoding.TextMarshaler so paths serialize as plain
// strings in JSON and YAML payloads.
func (p Path) MarshalText() ([]byte, error) {
	if p.IsZero() {
		return nil, fmt.Errorf("%w: zero path", ErrInvalidPath)
	}
	return []byte(p.s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Path) UnmarshalText(text []byte) error {
	parsed, err := ParsePath(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
