package strata

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/strataforge/strata/internal/commands"
	"github.com/strataforge/strata/pkg/domain"
	"github.com/strataforge/strata/pkg/scene"
	"github.com/strataforge/strata/pkg/stage"
)

// Version is the library version reported by the CLI and the servers.
var Version = "0.3.0"

// ErrDidNotApply marks an operation that passed validation but then
// failed to apply; the document is unchanged or in a logged, recognized
// degraded state. Distinct from precondition violations, which are
// returned before anything is mutated.
var ErrDidNotApply = errors.New("operation did not apply")

// Session is the high-level entry point for the strata library. It ties a
// stage to its item registry, notification broadcast, and undo history,
// and exposes the editing operations the surfaces (CLI, HTTP, MCP) drive.
type Session struct {
	stage    *stage.Stage
	registry *scene.Registry
	notifier *scene.Notifier
	stack    *commands.Stack
	logger   *slog.Logger
}

// Option defines a functional option for configuring a Session.
type Option func(*Session)

// WithLogger sets the session logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithUndoLimit bounds the undo history depth.
func WithUndoLimit(n int) Option {
	return func(s *Session) {
		s.stack = commands.NewStack(commands.WithLimit(n), commands.WithStackLogger(s.logger))
	}
}

// NewSession creates an editing session over the stage.
func NewSession(st *stage.Stage, opts ...Option) *Session {
	s := &Session{
		stage:    st,
		registry: scene.NewRegistry(st),
		notifier: &scene.Notifier{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.stack == nil {
		s.stack = commands.NewStack(commands.WithStackLogger(s.logger))
	}
	return s
}

// Stage returns the session's stage.
func (s *Session) Stage() *stage.Stage { return s.stage }

// Registry returns the session's item registry.
func (s *Session) Registry() *scene.Registry { return s.registry }

// Notifier returns the session's notification broadcaster.
func (s *Session) Notifier() *scene.Notifier { return s.notifier }

// Rename renames the prim at path to newName within its parent, recording
// the operation in the undo history. It returns the renamed path.
//
// Precondition violations (unknown prim, ambiguous layers, misaligned
// edit target, illegal name) are returned as errors before anything is
// mutated. An operation that validated but then failed to apply returns
// an error as well; the document is unchanged or in a logged, recognized
// degraded state.
func (s *Session) Rename(path string, newName string) (domain.Path, error) {
	p, err := domain.ParsePath(path)
	if err != nil {
		return domain.Path{}, err
	}
	item, err := s.registry.ItemAtPath(p)
	if err != nil {
		return domain.Path{}, err
	}
	cmd, err := commands.NewRenameCommand(s.registry, s.notifier, item, newName, s.logger)
	if err != nil {
		return domain.Path{}, err
	}
	if !s.stack.Push(cmd) {
		return domain.Path{}, fmt.Errorf("%w: rename of %s", ErrDidNotApply, path)
	}
	return cmd.DestinationPath(), nil
}

// Undo reverts the most recent operation. Errors indicate the document
// and the undo history have diverged; callers must surface them.
func (s *Session) Undo() error { return s.stack.Undo() }

// Redo re-applies the most recently undone operation.
func (s *Session) Redo() bool { return s.stack.Redo() }

// CanUndo reports whether the history holds an operation to revert.
func (s *Session) CanUndo() bool { return s.stack.CanUndo() }

// CanRedo reports whether an undone operation can be re-applied.
func (s *Session) CanRedo() bool { return s.stack.CanRedo() }
