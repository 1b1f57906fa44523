package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/strataforge/strata"
	"github.com/strataforge/strata/internal/adapters/file"
	"github.com/strataforge/strata/pkg/scene"
)

func logRenamed(ev scene.Renamed) {
	slog.Debug("prim renamed",
		"new", ev.Item.Path().String(), "old", ev.OldPath.String())
}

var renameCmd = &cobra.Command{
	Use:   "rename <path> <new-name>",
	Short: "Rename a prim within its parent",
	Long: `Rename the prim at <path> to <new-name>, keeping it under the same
parent. The prim must be authored in exactly one layer, and that layer
must be the stage's edit target; otherwise the rename is rejected with
a message naming the layers involved.

Examples:
  strata rename /World/Cube Cylinder
  strata rename --dir ./scene /World/Props/Chair Stool`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		ctx := cmd.Context()

		st, err := file.LoadStage(ctx, dir)
		if err != nil {
			return err
		}

		session := strata.NewSession(st, strata.WithLogger(slog.Default()))
		session.Notifier().SubscribeRenamed(logRenamed)

		renamed, err := session.Rename(args[0], args[1])
		if err != nil {
			return err
		}

		if err := file.SaveStage(ctx, dir, st); err != nil {
			return fmt.Errorf("rename applied but saving the scene failed: %w", err)
		}
		fmt.Printf("renamed %s to %s\n", args[0], renamed.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
