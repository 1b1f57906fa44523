package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/strataforge/strata/internal/adapters/file"
	"github.com/strataforge/strata/internal/presentation/graph"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Render the stage as a Mermaid diagram",
	Long: `Render the layer stack and the composed prim hierarchy as Mermaid
flowchart syntax, suitable for embedding in markdown documents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")

		st, err := file.LoadStage(cmd.Context(), dir)
		if err != nil {
			return err
		}
		fmt.Print(graph.GenerateMermaid(st))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
