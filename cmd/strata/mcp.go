package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/strataforge/strata"
	"github.com/strataforge/strata/internal/adapters/file"
	mcpadapter "github.com/strataforge/strata/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the editing session over MCP (stdio)",
	Long: `Expose the editing session as an MCP server on stdin/stdout so agent
hosts can rename prims and walk the undo history. Logs go to stderr to
keep the JSON-RPC channel clean.

Edits are held in memory; the scene directory is written back when the
host closes the connection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		ctx := cmd.Context()

		st, err := file.LoadStage(ctx, dir)
		if err != nil {
			return err
		}

		session := strata.NewSession(st, strata.WithLogger(slog.Default()))
		server := mcpadapter.NewServer(session, strata.Version, slog.Default())

		if err := server.ServeStdio(); err != nil {
			return fmt.Errorf("mcp server failed: %w", err)
		}
		if err := file.SaveStage(ctx, dir, st); err != nil {
			return fmt.Errorf("failed to save scene: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
