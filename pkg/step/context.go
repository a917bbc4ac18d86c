package step

import (
	"io"
	"os"

	"github.com/paso-sh/paso/pkg/input"
	"github.com/paso-sh/paso/pkg/store"
)

// Context carries everything probes and bodies are allowed to touch: the
// progress store, the prompter, the gathered host facts and the force-run
// flag. One Context lives for the whole walk; there is no other shared
// state.
type Context struct {
	Store *store.Store
	In    input.Prompter
	Out   io.Writer
	// Facts are host properties gathered once per run (efi, cpu_vendor…),
	// the environment for When conditions.
	Facts map[string]any
	// Force makes completed steps run again.
	Force bool
}

// NewContext builds a context with stdout output and empty facts.
func NewContext(st *store.Store, in input.Prompter) *Context {
	return &Context{
		Store: st,
		In:    in,
		Out:   os.Stdout,
		Facts: make(map[string]any),
	}
}
