package plan

import (
	"io"
	"testing"

	"github.com/paso-sh/paso/pkg/input"
	"github.com/paso-sh/paso/pkg/step"
	"github.com/paso-sh/paso/pkg/store"
)

func newTestContext(t *testing.T, answers ...string) (*step.Context, *input.Script) {
	t.Helper()
	script := input.NewScript(answers...)
	sc := step.NewContext(store.New(t.TempDir()), script)
	sc.Out = io.Discard
	return sc, script
}

func TestStagesAreValid(t *testing.T) {
	for _, stage := range Stages() {
		if err := step.Validate(stage); err != nil {
			t.Errorf("stage %s: %v", stage.Name, err)
		}
	}
}

func TestStepNamesUniqueAcrossStages(t *testing.T) {
	seen := make(map[string]string)
	for _, stage := range Stages() {
		step.Walk(stage, func(s *step.Step, _ int) {
			if prev, dup := seen[s.Name]; dup {
				t.Errorf("name %q used in both %s and %s", s.Name, prev, stage.Name)
			}
			seen[s.Name] = stage.Name
		})
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"install", "configure"} {
		stage, ok := ByName(name)
		if !ok || stage.Name != name {
			t.Errorf("ByName(%q) = %v, %v", name, stage, ok)
		}
	}
	if _, ok := ByName("nonsense"); ok {
		t.Error("ByName accepted an unknown stage")
	}
}

func TestRememberedStoresTheAnswer(t *testing.T) {
	sc, _ := newTestContext(t, "de-latin1")
	v, err := remembered(sc, "keymap", "Console keymap", "us")
	if err != nil || v != "de-latin1" {
		t.Fatalf("remembered = %q, %v", v, err)
	}
	if got, _ := sc.Store.Get("keymap"); got != "de-latin1" {
		t.Errorf("answer not stored: %q", got)
	}

	// Next time the stored value is the default, so an empty answer keeps it.
	v, err = remembered(sc, "keymap", "Console keymap", "us")
	if err != nil || v != "de-latin1" {
		t.Errorf("second ask = %q, %v; want the stored value", v, err)
	}
}

func TestRememberedWithPersistenceDisabled(t *testing.T) {
	script := input.NewScript("vim")
	sc := step.NewContext(store.New(t.TempDir()+"/never-created"), script)
	sc.Out = io.Discard

	v, err := remembered(sc, "text_editor", "Preferred text editor", "nano")
	if err != nil || v != "vim" {
		t.Fatalf("remembered = %q, %v; a disabled store must not fail the prompt", v, err)
	}

	// Nothing remembered: the fallback is offered again.
	v, err = remembered(sc, "text_editor", "Preferred text editor", "nano")
	if err != nil || v != "nano" {
		t.Errorf("second ask = %q, %v; want the fallback", v, err)
	}
}

func TestCommandBodyDeclined(t *testing.T) {
	sc, script := newTestContext(t, "n")
	body := command("prepare.clock", "Enable NTP?", "timedatectl set-ntp true", true)

	if err := body(t.Context(), sc); err != nil {
		t.Fatalf("body: %v", err)
	}
	if len(script.Commands) != 0 {
		t.Errorf("declined body still ran %v", script.Commands)
	}
	if sc.Store.IsComplete("prepare.clock") {
		t.Error("declined step was recorded as complete")
	}
}

func TestCommandBodyRunsAndMarks(t *testing.T) {
	sc, script := newTestContext(t, "y", input.Accept, "y")
	body := command("prepare.clock", "Enable NTP?", "timedatectl set-ntp true", true)

	if err := body(t.Context(), sc); err != nil {
		t.Fatalf("body: %v", err)
	}
	if len(script.Commands) != 1 || script.Commands[0] != "timedatectl set-ntp true" {
		t.Fatalf("ran %v, want the proposed command", script.Commands)
	}
	if !sc.Store.IsComplete("prepare.clock") {
		t.Error("confirmed step was not recorded")
	}
}

func TestCommandBodyFailureIsNotRecorded(t *testing.T) {
	sc, script := newTestContext(t, "y", input.Accept)
	script.ExitCode = 1
	body := command("prepare.clock", "Enable NTP?", "timedatectl set-ntp true", true)

	if err := body(t.Context(), sc); err != nil {
		t.Fatalf("body: %v", err)
	}
	if sc.Store.IsComplete("prepare.clock") {
		t.Error("failed command was recorded as complete")
	}
}

func TestConfirmCompleteDeclined(t *testing.T) {
	sc, _ := newTestContext(t, "n")
	if err := confirmComplete(sc, "disks.partition"); err != nil {
		t.Fatalf("confirmComplete: %v", err)
	}
	if sc.Store.IsComplete("disks.partition") {
		t.Error("declined confirmation still recorded the step")
	}
}

func TestConfirmCompleteSkipsPromptWhenDisabled(t *testing.T) {
	script := input.NewScript(input.Abort)
	sc := step.NewContext(store.New(t.TempDir()+"/never-created"), script)
	sc.Out = io.Discard

	// With persistence off there is nothing to record; the prompt must not
	// even be asked, so the abort marker stays unconsumed.
	if err := confirmComplete(sc, "disks.partition"); err != nil {
		t.Fatalf("confirmComplete: %v", err)
	}
}
