package scene

import (
	"fmt"

	"github.com/strataforge/strata/pkg/domain"
	"github.com/strataforge/strata/pkg/stage"
)

// Registry mints item handles for a stage and expires them when the
// scene description they point at is removed. There is one registry per
// editing session; it subscribes to the stage's removal hook at
// construction.
type Registry struct {
	stage *stage.Stage
	items []*Item
}

// NewRegistry creates a registry bound to the stage.
func NewRegistry(st *stage.Stage) *Registry {
	r := &Registry{stage: st}
	st.OnRemove(r.invalidate)
	return r
}

// Stage returns the stage this registry serves.
func (r *Registry) Stage() *stage.Stage { return r.stage }

// ItemAtPath mints a handle for the prim at path. It fails when the stage
// composes nothing there.
func (r *Registry) ItemAtPath(p domain.Path) (*Item, error) {
	if p.IsZero() || p.IsRoot() {
		return nil, fmt.Errorf("%w: no item for %q", domain.ErrInvalidPath, p.String())
	}
	if !r.stage.HasPrim(p) {
		return nil, fmt.Errorf("no prim found at %s", p.String())
	}
	return r.mint(p), nil
}

// CreateSiblingItem mints a handle for the sibling of an existing external
// path: the same parent, with the leaf element replaced by newName. The
// prim must already exist at the resulting path. This is the only
// sanctioned way to obtain a handle after a delete-then-recreate sequence;
// handles are never reused across a removal.
func (r *Registry) CreateSiblingItem(of domain.Path, newName string) (*Item, error) {
	sibling, err := of.Parent().AppendChild(newName)
	if err != nil {
		return nil, err
	}
	return r.ItemAtPath(sibling)
}

func (r *Registry) mint(p domain.Path) *Item {
	item := &Item{stage: r.stage, path: p}
	r.items = append(r.items, item)
	return item
}

// invalidate expires every outstanding handle at or below the removed
// path, and drops expired handles from the tracking list.
func (r *Registry) invalidate(removed domain.Path) {
	live := r.items[:0]
	for _, item := range r.items {
		if item.path.HasPrefix(removed) {
			item.expired = true
			continue
		}
		live = append(live, item)
	}
	r.items = live
}
