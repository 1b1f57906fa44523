// Package commands implements strata's undoable editing commands and the
// host undo stack that drives their execute/undo/redo lifecycle.
package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/strataforge/strata/pkg/domain"
	"github.com/strataforge/strata/pkg/layer"
	"github.com/strataforge/strata/pkg/ports"
	"github.com/strataforge/strata/pkg/scene"
	"github.com/strataforge/strata/pkg/stage"
)

// RenameCommand renames a prim within its defining layer: it copies the
// authored subtree to the sibling destination path, removes the source,
// and re-mints the external item handle. Redo and Undo are exact inverses
// and may be replayed any number of times by the host undo stack.
//
// All preconditions are validated by NewRenameCommand; an invalid command
// is never constructed, so the undo history only ever holds commands that
// were applicable at creation time. The chosen layer and both paths are
// recorded once at construction and never recomputed.
type RenameCommand struct {
	registry *scene.Registry
	notifier *scene.Notifier
	stage    *stage.Stage
	layer    *layer.Layer

	srcPath domain.Path
	dstPath domain.Path

	// Exactly one of the two items is non-nil at every stable point:
	// srcItem before Redo / after Undo, dstItem after Redo / before Undo.
	// Every rename removes a prim, which expires the handle bound to it,
	// so a fresh item is minted after each operation rather than reused.
	srcItem *scene.Item
	dstItem *scene.Item

	logger *slog.Logger
}

var _ ports.UndoableCommand = (*RenameCommand)(nil)

// NewRenameCommand validates and builds a rename of srcItem to newName
// within its parent. It fails without mutating anything when:
//   - srcItem is nil or expired,
//   - newName is not a legal prim name,
//   - no layer defines the prim,
//   - the stage's edit target holds no opinion on the prim (the error
//     names the strongest layer that does),
//   - more than one layer holds opinions on the prim (the error lists
//     them all by display name),
//   - the destination path is already occupied.
func NewRenameCommand(registry *scene.Registry, notifier *scene.Notifier, srcItem *scene.Item, newName string, logger *slog.Logger) (*RenameCommand, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if srcItem == nil {
		return nil, fmt.Errorf("rename requires a source item")
	}
	if !srcItem.Valid() {
		return nil, fmt.Errorf("cannot rename %s: %w", srcItem.Path().String(), domain.ErrItemExpired)
	}

	st := srcItem.Stage()
	srcPath := srcItem.Path()

	dstPath, err := srcPath.Parent().AppendChild(newName)
	if err != nil {
		return nil, fmt.Errorf("cannot rename %s to %q: %w", srcPath.String(), newName, err)
	}
	if dstPath == srcPath {
		return nil, fmt.Errorf("prim at %s is already named [%s]", srcPath.String(), newName)
	}
	if st.HasPrim(dstPath) {
		return nil, fmt.Errorf("cannot rename [%s]: a prim already exists at %s", srcPath.Name(), dstPath.String())
	}

	defining := st.DefiningLayer(srcPath)
	if defining == nil {
		return nil, fmt.Errorf("no prim found at %s", srcPath.String())
	}

	if !st.EditTargetHasSpec(srcPath) {
		strongest := st.StrongestLayerWithSpec(srcPath)
		return nil, fmt.Errorf("cannot rename [%s] defined on another layer; set [%s] as the edit target to proceed",
			srcPath.Name(), strongest.DisplayName())
	}

	if layers := st.LayersWithSpec(srcPath); len(layers) > 1 {
		names := make([]string, len(layers))
		for i, l := range layers {
			names[i] = "[" + l.DisplayName() + "]"
		}
		return nil, fmt.Errorf("cannot rename [%s] with definitions or opinions on other layers; opinions exist in %s",
			srcPath.Name(), strings.Join(names, ","))
	}

	return &RenameCommand{
		registry: registry,
		notifier: notifier,
		stage:    st,
		layer:    defining,
		srcPath:  srcPath,
		dstPath:  dstPath,
		srcItem:  srcItem,
		logger:   logger,
	}, nil
}

// SourcePath returns the original location of the prim.
func (c *RenameCommand) SourcePath() domain.Path { return c.srcPath }

// DestinationPath returns the renamed location of the prim.
func (c *RenameCommand) DestinationPath() domain.Path { return c.dstPath }

// RenamedItem returns the handle for the prim at its renamed location.
// It is nil before the first successful Redo and after an Undo.
func (c *RenameCommand) RenamedItem() *scene.Item { return c.dstItem }

// Execute performs the initial rename. The host undo engine calls it
// exactly once when the command enters the history.
func (c *RenameCommand) Execute() bool { return c.Redo() }

// Redo applies the forward rename: copy source to destination within the
// chosen layer, remove the source subtree under a scoped edit-target
// override, mint the destination handle, and broadcast one notification.
// Expected failures are logged and reported as false; the recorded paths
// are never altered, so a failed Redo is safe to retry.
func (c *RenameCommand) Redo() bool {
	guard := scene.BeginPathChange()
	defer guard.Release()

	if !c.renameRedo() {
		c.logger.Warn("rename redo failed",
			"src", c.srcPath.String(), "dst", c.dstPath.String())
		return false
	}
	return true
}

// Undo applies the inverse rename. Unlike Redo, failures are returned as
// errors after logging: a failed undo means the document and the undo
// history have diverged, and the host must surface that rather than
// silently continue.
func (c *RenameCommand) Undo() error {
	guard := scene.BeginPathChange()
	defer guard.Release()

	if err := c.renameUndo(); err != nil {
		c.logger.Error("rename undo failed", "err", err,
			"src", c.srcPath.String(), "dst", c.dstPath.String())
		return err
	}
	return nil
}

func (c *RenameCommand) renameRedo() bool {
	// Copy the authored subtree, then remove the source. Sequencing copy
	// before delete means a failed delete leaves duplicated content at
	// both paths rather than lost content.
	if !layer.CopySpec(c.layer, c.srcPath, c.layer, c.dstPath) {
		c.logger.Warn("copy spec failed", "path", c.srcPath.String(),
			"layer", c.layer.Identifier())
		return false
	}

	removed := c.removeInLayer(c.srcPath)
	if !removed {
		c.logger.Warn("source removal failed; content is duplicated at both paths",
			"src", c.srcPath.String(), "dst", c.dstPath.String(),
			"layer", c.layer.Identifier())
		return false
	}

	// The renamed prim is a "sibling" of its original name. The removal
	// above expired the source handle, so mint a fresh one.
	oldPath := c.srcItem.Path()
	item, err := c.registry.CreateSiblingItem(oldPath, c.dstPath.Name())
	if err != nil {
		c.logger.Warn("failed to mint renamed item", "err", err,
			"dst", c.dstPath.String())
		return false
	}
	c.dstItem = item
	c.srcItem = nil
	c.notifier.BroadcastRenamed(c.dstItem, oldPath)
	return true
}

func (c *RenameCommand) renameUndo() error {
	if !layer.CopySpec(c.layer, c.dstPath, c.layer, c.srcPath) {
		return fmt.Errorf("copy spec from %s failed", c.dstPath.String())
	}

	if !c.removeInLayer(c.dstPath) {
		return fmt.Errorf("removal of %s failed; content is duplicated at both paths", c.dstPath.String())
	}

	// Re-define the prim at the source path under the same forced edit
	// target. The copy-back already restored its content, so this only
	// reasserts the "def" specifier.
	ectx, err := stage.NewEditContext(c.stage, c.layer)
	if err != nil {
		return err
	}
	_, err = c.stage.DefinePrim(c.srcPath)
	ectx.Close()
	if err != nil {
		return fmt.Errorf("failed to re-define prim at %s: %w", c.srcPath.String(), err)
	}

	// Handles are never reused after a delete, even though the source
	// path is logically the same prim as before: always mint fresh.
	oldPath := c.dstItem.Path()
	item, err := c.registry.CreateSiblingItem(oldPath, c.srcPath.Name())
	if err != nil {
		return fmt.Errorf("failed to mint restored item at %s: %w", c.srcPath.String(), err)
	}
	c.srcItem = item
	c.dstItem = nil
	c.notifier.BroadcastRenamed(c.srcItem, oldPath)
	return nil
}

// removeInLayer removes the subtree at p from the chosen layer under a
// scoped edit-target override, so the deletion lands on the correct layer
// regardless of the session's ambient edit target.
func (c *RenameCommand) removeInLayer(p domain.Path) bool {
	ectx, err := stage.NewEditContext(c.stage, c.layer)
	if err != nil {
		c.logger.Warn("edit target override failed", "err", err,
			"layer", c.layer.Identifier())
		return false
	}
	defer ectx.Close()
	return c.stage.RemovePrim(p)
}
