package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/strataforge/strata/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "strata",
	Short: "Strata is a layered scene-description editor",
	Long: `Strata composes a hierarchical scene document from an ordered stack of
authoring layers and applies transactional, undoable edits to it.

A scene directory holds one YAML file per layer plus a stage.yaml
manifest listing the stack order (strongest first) and the edit target.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if v, _ := cmd.Flags().GetString("log-level"); v != "" {
			_ = level.UnmarshalText([]byte(v))
		}
		slog.SetDefault(logging.New(level))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("dir", ".", "Scene directory containing stage.yaml and the layer files")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}
