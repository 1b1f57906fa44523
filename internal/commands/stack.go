package commands

import (
	"fmt"
	"log/slog"

	"github.com/strataforge/strata/pkg/ports"
)

// Stack is the host undo engine: a bounded history of executed commands
// with a redo tail. Pushing a new command truncates the redo tail, and
// the oldest command is evicted once the depth limit is reached.
type Stack struct {
	limit  int
	done   []ports.UndoableCommand
	undone []ports.UndoableCommand
	logger *slog.Logger
}

// StackOption configures a Stack.
type StackOption func(*Stack)

// WithLimit bounds the undo depth. Zero or negative means unbounded.
func WithLimit(n int) StackOption {
	return func(s *Stack) { s.limit = n }
}

// WithStackLogger sets the stack logger.
func WithStackLogger(l *slog.Logger) StackOption {
	return func(s *Stack) { s.logger = l }
}

// NewStack creates an empty undo stack.
func NewStack(opts ...StackOption) *Stack {
	s := &Stack{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push executes the command and, on success, records it in the history.
// A command whose Execute reports failure never enters the history; the
// redo tail is only discarded once the command actually applied.
func (s *Stack) Push(cmd ports.UndoableCommand) bool {
	if !cmd.Execute() {
		return false
	}
	s.undone = nil
	s.done = append(s.done, cmd)
	if s.limit > 0 && len(s.done) > s.limit {
		// Evict the oldest command; its edits become permanent.
		copy(s.done, s.done[1:])
		s.done = s.done[:len(s.done)-1]
	}
	return true
}

// Undo reverts the most recent command. On failure the command stays at
// the top of the history and the error propagates: the document and the
// history have diverged and the host must decide how to proceed.
func (s *Stack) Undo() error {
	if len(s.done) == 0 {
		return fmt.Errorf("nothing to undo")
	}
	cmd := s.done[len(s.done)-1]
	if err := cmd.Undo(); err != nil {
		return err
	}
	s.done = s.done[:len(s.done)-1]
	s.undone = append(s.undone, cmd)
	return nil
}

// Redo re-applies the most recently undone command. A false result means
// the command reported failure and remains on the redo tail for retry.
func (s *Stack) Redo() bool {
	if len(s.undone) == 0 {
		return false
	}
	cmd := s.undone[len(s.undone)-1]
	if !cmd.Redo() {
		s.logger.Warn("redo failed; command left on redo tail")
		return false
	}
	s.undone = s.undone[:len(s.undone)-1]
	s.done = append(s.done, cmd)
	return true
}

// CanUndo reports whether the history holds a command to revert.
func (s *Stack) CanUndo() bool { return len(s.done) > 0 }

// CanRedo reports whether the redo tail holds a command to re-apply.
func (s *Stack) CanRedo() bool { return len(s.undone) > 0 }

// Len returns the number of commands in the undo history.
func (s *Stack) Len() int { return len(s.done) }
