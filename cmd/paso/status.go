package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/paso-sh/paso/pkg/input"
	"github.com/paso-sh/paso/pkg/plan"
	"github.com/paso-sh/paso/pkg/runtime"
	"github.com/paso-sh/paso/pkg/step"
	"github.com/paso-sh/paso/pkg/store"
	"github.com/paso-sh/paso/pkg/tui"
	"github.com/paso-sh/paso/pkg/ui"
)

var statusTUI bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the probed status of every step without running anything",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st := store.New(flagStateDir)
		// Probes never prompt; the script prompter is only there to make
		// that a guarantee instead of a convention.
		sc := step.NewContext(st, input.NewScript())
		sc.Facts = runtime.Gather()

		if statusTUI {
			return tui.Run(plan.Stages(), sc)
		}

		printer := ui.NewPrinter(os.Stdout)
		for _, root := range plan.Stages() {
			printer.Banner(root.Title, 0)
			for _, res := range runtime.ProbeAll(root, sc) {
				printer.Report(res.Step.Title, res.Status, res.Msg)
			}
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusTUI, "tui", false, "browse statuses in a full-screen view")
	rootCmd.AddCommand(statusCmd)
}
