package scene

import "github.com/strataforge/strata/pkg/domain"

// Renamed announces that a prim moved to a new path. Item is the freshly
// minted handle at the new location; OldPath is the external path the
// prim had immediately before the operation.
type Renamed struct {
	Item    *Item
	OldPath domain.Path
}

// Notifier broadcasts scene-structure notifications to registered
// observers. Delivery is synchronous and in subscription order; observers
// that perform structural edits must consult InPathChange to avoid
// re-triggering rename logic recursively.
type Notifier struct {
	renamed []func(Renamed)
}

// SubscribeRenamed registers an observer for rename notifications.
func (n *Notifier) SubscribeRenamed(fn func(Renamed)) {
	n.renamed = append(n.renamed, fn)
}

// BroadcastRenamed delivers a rename notification to all observers.
func (n *Notifier) BroadcastRenamed(item *Item, oldPath domain.Path) {
	ev := Renamed{Item: item, OldPath: oldPath}
	for _, fn := range n.renamed {
		fn(ev)
	}
}
