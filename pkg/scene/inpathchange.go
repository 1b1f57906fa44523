package scene

// inPathChange marks that a structural path change is currently being
// applied by an editing command. It is process-wide because the host runs
// one active document-edit session at a time.
//
// This is a reentrancy fence within a single-threaded session, not a
// concurrency lock: observers reacting to change notifications check it
// to recognize a self-inflicted path change and skip cascading edits.
var inPathChange bool

// PathChangeGuard scopes the in-path-change marker. Obtain it with
// BeginPathChange and release it with a deferred Release so the marker is
// cleared on every exit path, including panics.
type PathChangeGuard struct {
	released bool
}

// BeginPathChange sets the marker and returns its guard.
func BeginPathChange() *PathChangeGuard {
	inPathChange = true
	return &PathChangeGuard{}
}

// Release clears the marker. It is idempotent.
func (g *PathChangeGuard) Release() {
	if g.released {
		return
	}
	g.released = true
	inPathChange = false
}

// InPathChange reports whether a path change is currently in flight.
func InPathChange() bool { return inPathChange }
