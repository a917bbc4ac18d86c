package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// renderer is a package-level glamour renderer for step guidance text.
var renderer *glamour.TermRenderer

func init() {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(76),
	)
	if err == nil {
		renderer = r
	}
}

// Markdown converts a step's guidance markdown to styled terminal output.
// Falls back to the raw text if glamour is unavailable or rendering fails.
func Markdown(md string) string {
	if renderer == nil || strings.TrimSpace(md) == "" {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// Guide prints a step's guidance text.
func (p *Printer) Guide(md string) {
	if strings.TrimSpace(md) == "" {
		return
	}
	p.Out.Write([]byte(Markdown(md) + "\n"))
}
