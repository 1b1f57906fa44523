package strata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strataforge/strata"
	"github.com/strataforge/strata/internal/logging"
	"github.com/strataforge/strata/pkg/domain"
	"github.com/strataforge/strata/pkg/layer"
	"github.com/strataforge/strata/pkg/scene"
	"github.com/strataforge/strata/pkg/stage"
)

func newSession(t *testing.T) *strata.Session {
	t.Helper()
	l := layer.New("shot.yaml")

	cube := domain.NewPrimSpec(domain.SpecifierDef)
	cube.TypeName = "Cube"
	cube.Fields = map[string]any{"size": 2.0}
	require.NoError(t, l.SetSpecAt(domain.MustPath("/World/Cube"), cube))

	chair := domain.NewPrimSpec(domain.SpecifierDef)
	chair.TypeName = "Mesh"
	require.NoError(t, l.SetSpecAt(domain.MustPath("/World/Chair"), chair))

	st, err := stage.New([]*layer.Layer{l}, stage.WithLogger(logging.NewNop()))
	require.NoError(t, err)
	return strata.NewSession(st, strata.WithLogger(logging.NewNop()))
}

func TestSessionRename(t *testing.T) {
	s := newSession(t)

	renamed, err := s.Rename("/World/Cube", "Cylinder")
	require.NoError(t, err)
	assert.Equal(t, "/World/Cylinder", renamed.String())

	assert.False(t, s.Stage().HasPrim(domain.MustPath("/World/Cube")))
	assert.True(t, s.Stage().HasPrim(domain.MustPath("/World/Cylinder")))
	assert.True(t, s.CanUndo())
	assert.False(t, s.CanRedo())
}

func TestSessionRenameRejections(t *testing.T) {
	s := newSession(t)

	t.Run("Malformed path", func(t *testing.T) {
		_, err := s.Rename("World/Cube", "Cylinder")
		assert.ErrorIs(t, err, domain.ErrInvalidPath)
	})

	t.Run("Unknown prim", func(t *testing.T) {
		_, err := s.Rename("/World/Nope", "Cylinder")
		assert.EqualError(t, err, "no prim found at /World/Nope")
	})

	t.Run("Occupied destination", func(t *testing.T) {
		_, err := s.Rename("/World/Cube", "Chair")
		assert.EqualError(t, err, "cannot rename [Cube]: a prim already exists at /World/Chair")
	})

	t.Run("Rejections leave no history", func(t *testing.T) {
		assert.False(t, s.CanUndo())
	})
}

func TestSessionUndoRedoHistory(t *testing.T) {
	s := newSession(t)

	assert.Error(t, s.Undo(), "empty history")
	assert.False(t, s.Redo())

	_, err := s.Rename("/World/Cube", "Cylinder")
	require.NoError(t, err)
	_, err = s.Rename("/World/Cylinder", "Tube")
	require.NoError(t, err)

	require.NoError(t, s.Undo())
	assert.True(t, s.Stage().HasPrim(domain.MustPath("/World/Cylinder")))
	assert.True(t, s.CanRedo())

	require.NoError(t, s.Undo())
	assert.True(t, s.Stage().HasPrim(domain.MustPath("/World/Cube")))

	require.True(t, s.Redo())
	require.True(t, s.Redo())
	assert.True(t, s.Stage().HasPrim(domain.MustPath("/World/Tube")))
	assert.False(t, s.CanRedo())
}

func TestSessionNewEditTruncatesRedo(t *testing.T) {
	s := newSession(t)

	_, err := s.Rename("/World/Cube", "Cylinder")
	require.NoError(t, err)
	require.NoError(t, s.Undo())
	require.True(t, s.CanRedo())

	_, err = s.Rename("/World/Chair", "Stool")
	require.NoError(t, err)
	assert.False(t, s.CanRedo(), "a fresh edit discards the undone history")
}

func TestSessionUndoLimit(t *testing.T) {
	s := newSession(t)
	limited := strata.NewSession(s.Stage(), strata.WithLogger(logging.NewNop()), strata.WithUndoLimit(1))

	_, err := limited.Rename("/World/Cube", "Cylinder")
	require.NoError(t, err)
	_, err = limited.Rename("/World/Cylinder", "Tube")
	require.NoError(t, err)

	require.NoError(t, limited.Undo())
	assert.Error(t, limited.Undo(), "the evicted edit is permanent")
	assert.True(t, limited.Stage().HasPrim(domain.MustPath("/World/Cylinder")))
}

func TestSessionNotifications(t *testing.T) {
	s := newSession(t)

	var events []scene.Renamed
	s.Notifier().SubscribeRenamed(func(ev scene.Renamed) { events = append(events, ev) })

	_, err := s.Rename("/World/Cube", "Cylinder")
	require.NoError(t, err)
	require.NoError(t, s.Undo())
	require.True(t, s.Redo())

	require.Len(t, events, 3, "one notification per applied operation")
	assert.Equal(t, "/World/Cube", events[0].OldPath.String())
	assert.Equal(t, "/World/Cylinder", events[1].OldPath.String())
	assert.Equal(t, "/World/Cube", events[2].OldPath.String())
	assert.True(t, events[2].Item.Valid())
}

func TestSessionRegistryHandles(t *testing.T) {
	s := newSession(t)

	item, err := s.Registry().ItemAtPath(domain.MustPath("/World/Cube"))
	require.NoError(t, err)
	require.True(t, item.Valid())

	_, err = s.Rename("/World/Cube", "Cylinder")
	require.NoError(t, err)
	assert.False(t, item.Valid(), "outstanding handles expire on rename")

	require.NoError(t, s.Undo())
	assert.False(t, item.Valid(), "expired handles are never revived")

	fresh, err := s.Registry().ItemAtPath(domain.MustPath("/World/Cube"))
	require.NoError(t, err)
	assert.True(t, fresh.Valid())
}
