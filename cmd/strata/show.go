package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/strataforge/strata/internal/adapters/file"
	"github.com/strataforge/strata/internal/presentation/outline"
	"github.com/strataforge/strata/internal/presentation/tui"
	"golang.org/x/term"
)

var showPlain bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the composed stage hierarchy",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")

		st, err := file.LoadStage(cmd.Context(), dir)
		if err != nil {
			return err
		}

		markdown := outline.Markdown(st)
		if showPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Print(markdown)
			return nil
		}

		render := tui.NewRenderer()
		out, err := render(markdown)
		if err != nil {
			fmt.Print(markdown)
			return nil
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showPlain, "plain", false, "Print raw markdown without terminal styling")
	rootCmd.AddCommand(showCmd)
}
