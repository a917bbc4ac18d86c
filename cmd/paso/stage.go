package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/paso-sh/paso/pkg/input"
	"github.com/paso-sh/paso/pkg/plan"
	"github.com/paso-sh/paso/pkg/runtime"
	"github.com/paso-sh/paso/pkg/step"
	"github.com/paso-sh/paso/pkg/store"
	"github.com/paso-sh/paso/pkg/ui"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Run the install stage (from the live environment)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStage("install")
	},
}

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Run the configure stage (inside the new system, after chroot)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStage("configure")
	},
}

func init() {
	rootCmd.AddCommand(installCmd, configureCmd)
}

func runStage(name string) error {
	root, ok := plan.ByName(name)
	if !ok {
		return fmt.Errorf("unknown stage %q", name)
	}

	tty, err := input.NewTTY()
	if err != nil {
		return err
	}
	defer tty.Close()

	st := store.New(flagStateDir)
	printer := ui.NewPrinter(os.Stdout)

	// Persistence is opt-in on the first run; an existing state directory
	// means the operator already opted in.
	if !st.Enabled() {
		on, err := tty.AskYesNo(
			fmt.Sprintf("Remember progress and answers between runs (stored in %s)?", st.Dir()),
			input.DefaultYes)
		if err != nil {
			return err
		}
		if on {
			if err := st.SetEnabled(true); err != nil {
				printer.Warnf("cannot enable persistence: %v", err)
				printer.Warnf("continuing without saved progress")
			}
		}
	}

	sc := step.NewContext(st, tty)
	sc.Force = flagRedo
	sc.Facts = runtime.Gather()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = runtime.NewRunner(sc, printer).Run(ctx, root)
	if errors.Is(err, input.ErrAborted) && st.Enabled() {
		fmt.Println("\nProgress so far is saved; run the same command again to resume.")
	}
	return err
}
