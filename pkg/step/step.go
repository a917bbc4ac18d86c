// Package step defines the installation step tree: composite steps that
// group work, leaf steps that probe and perform it, and the shared context
// handed to probes and bodies. Trees are built once at process start and
// never mutated; the runner in pkg/runtime only reads them.
package step

import (
	"context"
	"fmt"
)

// Kind classifies a node in the step tree.
type Kind int

const (
	// KindComposite delegates entirely to ordered children.
	KindComposite Kind = iota
	// KindLeaf carries a probe and a body.
	KindLeaf
)

// Probe determines whether a leaf's goal has already been achieved. It may
// consult the completion log through the context's store or inspect live
// system state directly. Probes must not prompt.
type Probe func(*Context) (Status, string)

// Body performs a leaf's interactive work. Returning input.ErrAborted (or
// a context error) unwinds the whole walk; any other error is reported to
// the operator and absorbed. The reprobe afterwards reflects the truth.
type Body func(context.Context, *Context) error

// Step is one node of the installation tree.
//
// Name is the stable identity: it keys the completion log across versions,
// so a name must never be reused for a different semantic step.
type Step struct {
	Name  string
	Title string
	// Guide is optional markdown shown before the body runs.
	Guide string
	// When is an optional expr condition over the gathered host facts.
	// When it evaluates false the step is Inapplicable on this machine.
	When     string
	Kind     Kind
	Children []*Step
	Probe    Probe
	Body     Body
}

// Leaf builds a leaf step.
func Leaf(name, title string, probe Probe, body Body) *Step {
	return &Step{Name: name, Title: title, Kind: KindLeaf, Probe: probe, Body: body}
}

// Group builds a composite step from ordered children.
func Group(name, title string, children ...*Step) *Step {
	return &Step{Name: name, Title: title, Kind: KindComposite, Children: children}
}

// MaxDepth bounds the shipped trees; the runner itself is depth-agnostic.
const MaxDepth = 4

// Validate checks the structural invariants of a tree: unique names,
// composites with at least one child and no probe or body, leaves with a
// probe and no children, depth within MaxDepth.
func Validate(root *Step) error {
	seen := make(map[string]bool)
	return validate(root, seen, 1)
}

func validate(s *Step, seen map[string]bool, depth int) error {
	if s.Name == "" {
		return fmt.Errorf("step %q has no name", s.Title)
	}
	if seen[s.Name] {
		return fmt.Errorf("duplicate step name %q", s.Name)
	}
	seen[s.Name] = true
	if depth > MaxDepth {
		return fmt.Errorf("step %q exceeds max depth %d", s.Name, MaxDepth)
	}
	switch s.Kind {
	case KindComposite:
		if len(s.Children) == 0 {
			return fmt.Errorf("composite %q has no children", s.Name)
		}
		if s.Probe != nil || s.Body != nil {
			return fmt.Errorf("composite %q must not have a probe or body", s.Name)
		}
		for _, c := range s.Children {
			if err := validate(c, seen, depth+1); err != nil {
				return err
			}
		}
	case KindLeaf:
		if len(s.Children) > 0 {
			return fmt.Errorf("leaf %q has children", s.Name)
		}
		if s.Probe == nil {
			return fmt.Errorf("leaf %q has no probe", s.Name)
		}
	default:
		return fmt.Errorf("step %q has invalid kind %d", s.Name, s.Kind)
	}
	return nil
}

// Walk visits every node depth-first in execution order.
func Walk(root *Step, fn func(s *Step, depth int)) {
	walk(root, 0, fn)
}

func walk(s *Step, depth int, fn func(*Step, int)) {
	fn(s, depth)
	for _, c := range s.Children {
		walk(c, depth+1, fn)
	}
}

// Leaves returns the tree's leaves in execution order.
func Leaves(root *Step) []*Step {
	var out []*Step
	Walk(root, func(s *Step, _ int) {
		if s.Kind == KindLeaf {
			out = append(out, s)
		}
	})
	return out
}
