package runtime

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/paso-sh/paso/pkg/step"
)

// Marked is the generic completion-log probe for steps with no reliable
// live signal: Done if the log records name, Unknown when persistence is
// disabled. Ambiguity stays visible so the runner offers to run.
func Marked(name string) step.Probe {
	return func(sc *step.Context) (step.Status, string) {
		if !sc.Store.Enabled() {
			return step.StatusUnknown, "progress tracking is disabled, cannot tell whether this was done"
		}
		if sc.Store.IsComplete(name) {
			return step.StatusDone, "recorded in the completion log"
		}
		return step.StatusNotDone, "not recorded as completed yet"
	}
}

// File reports Done when path exists.
func File(path string) step.Probe {
	return func(*step.Context) (step.Status, string) {
		if _, err := os.Stat(path); err == nil {
			return step.StatusDone, path + " exists"
		}
		return step.StatusNotDone, path + " not found"
	}
}

// FileContains reports Done when path exists and contains substr.
func FileContains(path, substr string) step.Probe {
	return func(*step.Context) (step.Status, string) {
		data, err := os.ReadFile(path)
		if err != nil {
			return step.StatusNotDone, path + " not found"
		}
		if strings.Contains(string(data), substr) {
			return step.StatusDone, fmt.Sprintf("%s mentions %q", path, substr)
		}
		return step.StatusNotDone, fmt.Sprintf("%s does not mention %q", path, substr)
	}
}

// Command reports Done when the given command exits zero. The command runs
// silently; it is a probe, not an action.
func Command(doneMsg string, argv ...string) step.Probe {
	return func(*step.Context) (step.Status, string) {
		cmd := exec.Command(argv[0], argv[1:]...)
		cmd.Stdout = nil
		cmd.Stderr = nil
		if err := cmd.Run(); err != nil {
			return step.StatusNotDone, strings.Join(argv, " ") + " reports not done"
		}
		return step.StatusDone, doneMsg
	}
}

// Info builds an always-informational probe: the step reports a fact the
// tool cannot change, so it is never run.
func Info(msg func(*step.Context) string) step.Probe {
	return func(sc *step.Context) (step.Status, string) {
		return step.StatusNeverRun, msg(sc)
	}
}

// Static always reports the same verdict. Useful for steps that must be
// offered every run, such as the final cleanup.
func Static(status step.Status, msg string) step.Probe {
	return func(*step.Context) (step.Status, string) {
		return status, msg
	}
}

// FirstOf probes in order and returns the first verdict that is not
// Unknown, falling back to the last one. It lets a step prefer a live
// signal but still degrade to the completion log.
func FirstOf(probes ...step.Probe) step.Probe {
	return func(sc *step.Context) (step.Status, string) {
		var status step.Status
		var msg string
		for _, p := range probes {
			status, msg = p(sc)
			if status != step.StatusUnknown {
				return status, msg
			}
		}
		return status, msg
	}
}
