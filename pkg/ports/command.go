package ports

// UndoableCommand is the contract between an editing command and the host
// undo engine. The engine invokes Execute exactly once when the command is
// pushed, then Undo and Redo any number of times in stack order.
//
// Execute and Redo report expected operation failures (for example a
// failed subtree copy) by returning false after logging; they do not
// return errors because a false result simply means the document was left
// unchanged (or in a logged, recognized degraded state) and the user sees
// a no-op. Undo returns an error because a failed undo means the document
// and the undo history have diverged, and the host must decide what to do
// rather than silently continue.
type UndoableCommand interface {
	Execute() bool
	Redo() bool
	Undo() error
}
