package step

// Status is a probe's verdict about a leaf step.
type Status int

const (
	// StatusNotDone means the step's goal has not been reached yet.
	StatusNotDone Status = iota
	// StatusDone means the step's goal is already satisfied.
	StatusDone
	// StatusUnknown means the probe had no live signal and the completion
	// log is unavailable because persistence is disabled.
	StatusUnknown
	// StatusNeverRun marks an informational step that reports a fact about
	// the machine and can never be performed by the tool itself.
	StatusNeverRun
	// StatusInapplicable means the step does not apply to this system.
	StatusInapplicable
)

func (s Status) String() string {
	switch s {
	case StatusNotDone:
		return "not done"
	case StatusDone:
		return "done"
	case StatusUnknown:
		return "unknown"
	case StatusNeverRun:
		return "informational"
	case StatusInapplicable:
		return "not applicable"
	}
	return "invalid"
}

// ShouldRun is the skip/run decision for a probed leaf. Ambiguity defaults
// to running: an Unknown step is always offered to the operator, never
// skipped silently. NeverRun and Inapplicable are terminal regardless of
// force mode because there is nothing the tool could execute.
func (s Status) ShouldRun(force bool) bool {
	switch s {
	case StatusDone:
		return force
	case StatusNeverRun, StatusInapplicable:
		return false
	default:
		return true
	}
}
