// Package scene provides the front-end identity surface of a stage:
// item handles bound to prim paths, the registry that mints and expires
// them, rename notifications, and the in-path-change reentrancy fence.
package scene

import (
	"github.com/strataforge/strata/pkg/domain"
	"github.com/strataforge/strata/pkg/stage"
)

// Item is an external identity handle for a prim, bound to a path at the
// moment it was minted. An item expires as soon as authored scene
// description at or above its path is removed from the stage, even if a
// prim logically reappears at the same path afterwards. Expired items are
// never revived; a fresh handle must be minted through the Registry.
type Item struct {
	stage   *stage.Stage
	path    domain.Path
	expired bool
}

// Path returns the path the item was bound to when minted.
func (i *Item) Path() domain.Path { return i.path }

// Name returns the leaf element of the item's path.
func (i *Item) Name() string { return i.path.Name() }

// Valid reports whether the item still refers to live scene description:
// it has not been expired by a removal, and the stage still composes a
// prim at its path.
func (i *Item) Valid() bool {
	if i == nil || i.expired {
		return false
	}
	return i.stage.HasPrim(i.path)
}

// Prim returns the composed prim the item refers to. It returns
// domain.ErrItemExpired for an expired or dangling handle.
func (i *Item) Prim() (*domain.PrimSpec, error) {
	if !i.Valid() {
		return nil, domain.ErrItemExpired
	}
	spec, _ := i.stage.ComposePrim(i.path)
	return spec, nil
}

// Stage returns the stage the item belongs to.
func (i *Item) Stage() *stage.Stage { return i.stage }
