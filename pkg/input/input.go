// Package input implements the prompt primitives every leaf step body is
// built from: free text with a default, yes/no with a default, and an
// editable command line that is executed once the operator confirms it.
//
// The runner never prompts; only bodies do, through the Prompter contract.
// A scripted implementation (see script.go) stands in for the terminal in
// tests and dry runs.
package input

import (
	"context"
	"errors"
)

// ErrAborted is returned from any prompt when the operator interrupts the
// run (Ctrl-C or EOF). It unwinds the whole walk; the store is already
// durable so nothing is lost.
var ErrAborted = errors.New("aborted by operator")

// Default selects the answer an empty line means for a yes/no prompt.
type Default int

const (
	// DefaultNone forces an explicit answer.
	DefaultNone Default = iota
	// DefaultYes treats an empty line as yes.
	DefaultYes
	// DefaultNo treats an empty line as no.
	DefaultNo
)

// Execution is the outcome of an editable-command prompt.
type Execution struct {
	// Line is the command the operator confirmed, after editing.
	Line string
	// Skipped is true when the operator cleared the line instead of
	// running anything.
	Skipped bool
	// ExitCode is the shell's exit status; 0 when Skipped.
	ExitCode int
}

// Prompter is the contract between step bodies and the operator.
type Prompter interface {
	// AskText reads a free-text answer; an empty line yields def.
	AskText(prompt, def string) (string, error)

	// AskYesNo reads a yes/no answer, re-prompting on anything that is not
	// y/yes/n/no (case-insensitive) or an empty line with a default set.
	// It never fails on bad input, only on abort.
	AskYesNo(prompt string, def Default) (bool, error)

	// AskEditableCommand presents command pre-filled for editing and runs
	// the confirmed line through the shell, wired to the terminal. The
	// operator may clear the line to skip execution. A non-zero exit is
	// reported in the Execution, not as an error.
	AskEditableCommand(ctx context.Context, prompt, command string) (Execution, error)
}

// parseYesNo maps a trimmed, lowercased answer to a decision. ok is false
// when the answer is not recognized and the prompt must loop.
func parseYesNo(answer string, def Default) (value, ok bool) {
	switch answer {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	case "":
		switch def {
		case DefaultYes:
			return true, true
		case DefaultNo:
			return false, true
		}
	}
	return false, false
}
