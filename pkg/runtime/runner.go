// Package runtime drives the installation walk: it probes each leaf,
// decides whether to run or skip it, invokes the body, reprobes and
// reports. Composite steps only recurse; all decisions happen at leaves.
package runtime

import (
	"context"
	"errors"

	"github.com/paso-sh/paso/pkg/input"
	"github.com/paso-sh/paso/pkg/step"
	"github.com/paso-sh/paso/pkg/ui"
)

// Runner executes a step tree depth-first against one shared context.
type Runner struct {
	Ctx *step.Context
	UI  *ui.Printer
}

// NewRunner builds a runner.
func NewRunner(sc *step.Context, p *ui.Printer) *Runner {
	return &Runner{Ctx: sc, UI: p}
}

// Run walks the tree rooted at root. It returns input.ErrAborted when the
// operator cancels at any prompt; every other condition is absorbed into a
// reported status so the walk continues.
func (r *Runner) Run(ctx context.Context, root *step.Step) error {
	return r.run(ctx, root, 0)
}

func (r *Runner) run(ctx context.Context, s *step.Step, depth int) error {
	if ctx.Err() != nil {
		return input.ErrAborted
	}

	r.UI.Banner(s.Title, depth)

	if s.Kind == step.KindComposite {
		for _, c := range s.Children {
			if err := r.run(ctx, c, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	// Applicability gate: a false When means this machine never needs the
	// step; it is reported, not probed.
	if s.When != "" {
		applies, err := EvalWhen(s.When, r.Ctx.Facts)
		if err != nil {
			// A broken condition must not hide a step; fall through to run.
			r.UI.Warnf("condition for %s: %v", s.Name, err)
		} else if !applies {
			r.UI.Report(s.Title, step.StatusInapplicable, "does not apply to this system")
			return nil
		}
	}

	status, msg := s.Probe(r.Ctx)
	if !status.ShouldRun(r.Ctx.Force) {
		if status == step.StatusDone {
			r.UI.Skipped(s.Title, msg)
		} else {
			r.UI.Report(s.Title, status, msg)
		}
		return nil
	}

	r.UI.Guide(s.Guide)

	if s.Body != nil {
		if err := s.Body(ctx, r.Ctx); err != nil {
			if errors.Is(err, input.ErrAborted) || errors.Is(err, context.Canceled) {
				return input.ErrAborted
			}
			// Body failures are information, not verdicts: the operator saw
			// the command output, and the reprobe below tells the truth.
			r.UI.Warnf("%s: %v", s.Name, err)
		}
	}

	status, msg = s.Probe(r.Ctx)
	r.UI.Report(s.Title, status, msg)
	return nil
}

// Result is one leaf's probed status, used by the status views which never
// run bodies.
type Result struct {
	Step   *step.Step
	Depth  int
	Status step.Status
	Msg    string
}

// ProbeAll probes every leaf of the tree without running anything.
func ProbeAll(root *step.Step, sc *step.Context) []Result {
	var out []Result
	step.Walk(root, func(s *step.Step, depth int) {
		if s.Kind != step.KindLeaf {
			return
		}
		if s.When != "" {
			if applies, err := EvalWhen(s.When, sc.Facts); err == nil && !applies {
				out = append(out, Result{s, depth, step.StatusInapplicable, "does not apply to this system"})
				return
			}
		}
		status, msg := s.Probe(sc)
		out = append(out, Result{s, depth, status, msg})
	})
	return out
}
