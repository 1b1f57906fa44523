package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/strataforge/strata/internal/adapters/file"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a scene directory",
	Long: `Check that the scene directory holds a readable stage manifest, that
every listed layer file loads, and that the edit target is a member of
the stack.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")

		st, err := file.LoadStage(cmd.Context(), dir)
		if err != nil {
			return err
		}
		fmt.Printf("ok: %d layers, edit target [%s]\n",
			len(st.Layers()), st.EditTarget().DisplayName())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
