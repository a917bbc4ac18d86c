package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/chzyer/readline"
)

// TTY prompts on the controlling terminal via readline, which gives the
// operator line editing and history. The editable-command prompt depends
// on it: long mkfs/pacstrap lines get adjusted by hand.
type TTY struct {
	rl *readline.Instance
}

// NewTTY opens the terminal prompter.
func NewTTY() (*TTY, error) {
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		return nil, fmt.Errorf("init readline: %w", err)
	}
	return &TTY{rl: rl}, nil
}

// Close releases the terminal.
func (t *TTY) Close() error { return t.rl.Close() }

func (t *TTY) AskText(prompt, def string) (string, error) {
	if def != "" {
		t.rl.SetPrompt(fmt.Sprintf("%s [%s]: ", prompt, def))
	} else {
		t.rl.SetPrompt(prompt + ": ")
	}
	line, err := t.readLine()
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

func (t *TTY) AskYesNo(prompt string, def Default) (bool, error) {
	suffix := "[y/n]"
	switch def {
	case DefaultYes:
		suffix = "[Y/n]"
	case DefaultNo:
		suffix = "[y/N]"
	}
	for {
		t.rl.SetPrompt(fmt.Sprintf("%s %s ", prompt, suffix))
		line, err := t.readLine()
		if err != nil {
			return false, err
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		if v, ok := parseYesNo(answer, def); ok {
			return v, nil
		}
		fmt.Fprintf(os.Stderr, "Please answer y or n.\n")
	}
}

func (t *TTY) AskEditableCommand(ctx context.Context, prompt, command string) (Execution, error) {
	if prompt != "" {
		fmt.Println(prompt)
	}
	t.rl.SetPrompt("  $ ")
	line, err := t.rl.ReadlineWithDefault(command)
	if err != nil {
		return Execution{}, translate(err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return Execution{Skipped: true}, nil
	}
	return Execution{Line: line, ExitCode: runShell(ctx, line)}, nil
}

// runShell executes one confirmed command line attached to the terminal.
// Output goes straight to the operator; only the exit status comes back.
func runShell(ctx context.Context, line string) int {
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", line)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "sh: %v\n", err)
		return 127
	}
	return 0
}

func (t *TTY) readLine() (string, error) {
	line, err := t.rl.Readline()
	if err != nil {
		return "", translate(err)
	}
	return line, nil
}

// translate folds readline's interrupt and EOF into the abort sentinel.
func translate(err error) error {
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return ErrAborted
	}
	return err
}
