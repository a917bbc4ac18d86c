package input

import (
	"context"
	"strings"
)

// Scripted answer markers for editable-command prompts.
const (
	// Accept confirms the proposed command unchanged.
	Accept = "\x00accept"
	// Abort simulates the operator interrupting at this prompt.
	Abort = "\x00abort"
)

// Script is a deterministic Prompter for tests: answers are consumed in
// order, confirmed commands are recorded instead of executed. When the
// answer queue runs dry every prompt takes its default, which also makes
// Script usable as a non-interactive dry-run prompter.
type Script struct {
	Answers []string

	// Commands collects every line a body confirmed for execution.
	Commands []string
	// ExitCode is reported for every recorded command.
	ExitCode int

	next int
}

// NewScript builds a scripted prompter from ordered answers.
func NewScript(answers ...string) *Script {
	return &Script{Answers: answers}
}

func (s *Script) pop() (string, bool) {
	if s.next >= len(s.Answers) {
		return "", false
	}
	a := s.Answers[s.next]
	s.next++
	return a, true
}

func (s *Script) AskText(prompt, def string) (string, error) {
	a, ok := s.pop()
	if !ok || a == "" {
		return def, nil
	}
	if a == Abort {
		return "", ErrAborted
	}
	return a, nil
}

func (s *Script) AskYesNo(prompt string, def Default) (bool, error) {
	a, ok := s.pop()
	if !ok {
		if v, valid := parseYesNo("", def); valid {
			return v, nil
		}
		return false, nil
	}
	if a == Abort {
		return false, ErrAborted
	}
	if v, valid := parseYesNo(strings.ToLower(strings.TrimSpace(a)), def); valid {
		return v, nil
	}
	// A script with an unparseable answer is a broken test; fail closed.
	return false, nil
}

func (s *Script) AskEditableCommand(ctx context.Context, prompt, command string) (Execution, error) {
	a, ok := s.pop()
	if !ok || a == Accept {
		a = command
	}
	switch a {
	case Abort:
		return Execution{}, ErrAborted
	case "":
		return Execution{Skipped: true}, nil
	}
	s.Commands = append(s.Commands, a)
	return Execution{Line: a, ExitCode: s.ExitCode}, nil
}
