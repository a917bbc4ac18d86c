// Package plan defines paso's two installation stages as static step
// trees: Install (run from the live environment) and Configure (run after
// chrooting into the new system). Everything here is content; the
// decision logic lives in pkg/runtime.
package plan

import (
	"context"
	"errors"
	"fmt"

	"github.com/paso-sh/paso/pkg/input"
	"github.com/paso-sh/paso/pkg/step"
	"github.com/paso-sh/paso/pkg/store"
)

// Stages returns the top-level stages in order.
func Stages() []*step.Step {
	return []*step.Step{Install(), Configure()}
}

// ByName returns the stage whose root step has the given name.
func ByName(name string) (*step.Step, bool) {
	for _, s := range Stages() {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// confirmComplete offers to record a step in the completion log. Declining
// is fine: the step simply stays not-done and is offered again next run.
func confirmComplete(sc *step.Context, name string) error {
	if !sc.Store.Enabled() {
		return nil
	}
	ok, err := sc.In.AskYesNo("Record this step as completed?", input.DefaultYes)
	if err != nil || !ok {
		return err
	}
	return sc.Store.MarkComplete(name)
}

// command is the standard body for a step whose action is one proposed
// shell command: ask permission, let the operator edit and run the
// command, then offer to record completion when the step has no live
// signal (mark=true).
func command(name, question, proposed string, mark bool) step.Body {
	return func(ctx context.Context, sc *step.Context) error {
		ok, err := sc.In.AskYesNo(question, input.DefaultYes)
		if err != nil || !ok {
			return err
		}
		ex, err := sc.In.AskEditableCommand(ctx, "", proposed)
		if err != nil || ex.Skipped {
			return err
		}
		if ex.ExitCode != 0 {
			fmt.Fprintf(sc.Out, "command exited with status %d\n", ex.ExitCode)
			return nil
		}
		if mark {
			return confirmComplete(sc, name)
		}
		return nil
	}
}

// remembered prompts for a value, using the config store as the default so
// the operator is only asked once per install. With persistence disabled
// it degrades to prompting every time.
func remembered(sc *step.Context, key, prompt, fallback string) (string, error) {
	def := fallback
	if v, ok := sc.Store.Get(key); ok {
		def = v
	}
	v, err := sc.In.AskText(prompt, def)
	if err != nil {
		return "", err
	}
	if err := sc.Store.Set(key, v); err != nil && !errors.Is(err, store.ErrDisabled) {
		return "", err
	}
	return v, nil
}

// editor returns the operator's preferred text editor, remembered under
// the text_editor config key.
func editor(sc *step.Context) (string, error) {
	return remembered(sc, "text_editor", "Preferred text editor", "nano")
}
