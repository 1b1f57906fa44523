package stage

import "github.com/strataforge/strata/pkg/layer"

// EditContext temporarily forces the stage's edit target onto a specific
// layer, restoring the previous target on Close. It guarantees that edits
// inside the scope land on the intended layer regardless of the session's
// ambient edit target.
//
// Usage:
//
//	ctx, err := stage.NewEditContext(st, l)
//	if err != nil { ... }
//	defer ctx.Close()
//
// Close is idempotent and must run on every exit path, including panics,
// which the deferred call guarantees.
type EditContext struct {
	st       *Stage
	previous *layer.Layer
	closed   bool
}

// NewEditContext installs l as the edit target and remembers the previous
// one. The layer must belong to the stage's stack.
func NewEditContext(st *Stage, l *layer.Layer) (*EditContext, error) {
	previous := st.EditTarget()
	if err := st.SetEditTarget(l); err != nil {
		return nil, err
	}
	return &EditContext{st: st, previous: previous}, nil
}

// Close restores the edit target that was active when the context was
// created.
func (c *EditContext) Close() {
	if c.closed {
		return
	}
	c.closed = true
	// The previous target came from the same stack, so this cannot fail.
	_ = c.st.SetEditTarget(c.previous)
}
