package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paso-sh/paso/pkg/input"
)

// Version is set at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

var (
	flagStateDir string
	flagRedo     bool
)

var rootCmd = &cobra.Command{
	Use:   "paso",
	Short: "Guided, resumable Arch Linux installer",
	Long: "paso walks you through an Arch Linux installation step by step.\n" +
		"Each step is probed before it runs, so an interrupted installation\n" +
		"picks up exactly where it left off.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (%s)", version, commit)
	rootCmd.PersistentFlags().StringVar(&flagStateDir, "state-dir", defaultStateDir(),
		"directory holding saved progress and answers")
	rootCmd.PersistentFlags().BoolVar(&flagRedo, "redo", false,
		"run steps again even when they are recorded as done")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})
}

// defaultStateDir is ~/.paso, overridable with PASO_STATE_DIR.
func defaultStateDir() string {
	if dir := os.Getenv("PASO_STATE_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".paso"
	}
	return filepath.Join(home, ".paso")
}

type usageError struct{ err error }

func (u usageError) Error() string { return u.err.Error() }
func (u usageError) Unwrap() error { return u.err }

func isUsage(err error) bool {
	var u usageError
	return errors.As(err, &u) || strings.HasPrefix(err.Error(), "unknown command")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, input.ErrAborted) {
			fmt.Fprintln(os.Stderr, "Aborted.")
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		if isUsage(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
