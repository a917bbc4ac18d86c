// Package ui renders paso's console output: depth-weighted step banners,
// colored status lines and word-wrapped messages. Status glyphs convey
// meaning without relying on color alone.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/paso-sh/paso/pkg/step"
)

// Glyphs per probe status.
const (
	GlyphDone         = "✓"
	GlyphNotDone      = "✗"
	GlyphUnknown      = "?"
	GlyphNeverRun     = "◆"
	GlyphInapplicable = "⏭"
)

var (
	colorGreen   = lipgloss.Color("42")
	colorRed     = lipgloss.Color("196")
	colorYellow  = lipgloss.Color("214")
	colorCyan    = lipgloss.Color("51")
	colorDim     = lipgloss.Color("240")
	colorMagenta = lipgloss.Color("201")
)

var (
	doneStyle         = lipgloss.NewStyle().Foreground(colorGreen)
	notDoneStyle      = lipgloss.NewStyle().Foreground(colorRed)
	unknownStyle      = lipgloss.NewStyle().Foreground(colorYellow)
	neverRunStyle     = lipgloss.NewStyle().Foreground(colorCyan)
	inapplicableStyle = lipgloss.NewStyle().Foreground(colorMagenta).Faint(true)

	stageBannerStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(colorCyan).
				Foreground(colorCyan).
				Bold(true).
				Padding(0, 2)

	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	leafStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	warnStyle    = lipgloss.NewStyle().Foreground(colorYellow)
)

// StatusStyle returns the lipgloss style for a probe status.
func StatusStyle(s step.Status) lipgloss.Style {
	switch s {
	case step.StatusDone:
		return doneStyle
	case step.StatusNotDone:
		return notDoneStyle
	case step.StatusUnknown:
		return unknownStyle
	case step.StatusNeverRun:
		return neverRunStyle
	case step.StatusInapplicable:
		return inapplicableStyle
	}
	return lipgloss.NewStyle()
}

// Glyph returns the status glyph.
func Glyph(s step.Status) string {
	switch s {
	case step.StatusDone:
		return GlyphDone
	case step.StatusNotDone:
		return GlyphNotDone
	case step.StatusUnknown:
		return GlyphUnknown
	case step.StatusNeverRun:
		return GlyphNeverRun
	case step.StatusInapplicable:
		return GlyphInapplicable
	}
	return " "
}

// Printer writes formatted output to a single destination.
type Printer struct {
	Out   io.Writer
	Width int
}

// NewPrinter builds a printer with the default console width.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{Out: out, Width: 76}
}

// Banner announces a step. Depth selects the visual weight only; it has no
// behavioral meaning.
func (p *Printer) Banner(title string, depth int) {
	switch depth {
	case 0:
		fmt.Fprintf(p.Out, "\n%s\n", stageBannerStyle.Render(title))
	case 1:
		rule := strings.Repeat("─", runewidth.StringWidth(title))
		fmt.Fprintf(p.Out, "\n%s\n%s\n", sectionStyle.Render(title), dimStyle.Render(rule))
	default:
		fmt.Fprintf(p.Out, "\n▸ %s\n", leafStyle.Render(title))
	}
}

// Report prints a leaf's final status and message, color-coded and
// word-wrapped.
func (p *Printer) Report(title string, s step.Status, msg string) {
	style := StatusStyle(s)
	line := fmt.Sprintf("%s %s — %s", Glyph(s), title, s)
	fmt.Fprintf(p.Out, "%s\n", style.Render(line))
	if msg != "" {
		for _, l := range strings.Split(Wrap(msg, p.Width-4), "\n") {
			fmt.Fprintf(p.Out, "    %s\n", l)
		}
	}
}

// Skipped notes that a leaf was skipped because it is already done.
func (p *Printer) Skipped(title, msg string) {
	fmt.Fprintf(p.Out, "%s\n", dimStyle.Render(fmt.Sprintf("%s %s — already done, skipping", GlyphDone, title)))
	if msg != "" {
		fmt.Fprintf(p.Out, "    %s\n", dimStyle.Render(msg))
	}
}

// Warnf prints a non-fatal warning.
func (p *Printer) Warnf(format string, args ...any) {
	fmt.Fprintf(p.Out, "%s\n", warnStyle.Render("⚠ "+fmt.Sprintf(format, args...)))
}

// Wrap word-wraps s to the given display width, preserving existing
// newlines. Width is measured with runewidth so CJK and wide glyphs wrap
// correctly.
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	var out []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		w := runewidth.StringWidth(line)
		for _, word := range words[1:] {
			ww := runewidth.StringWidth(word)
			if w+1+ww > width {
				out = append(out, line)
				line, w = word, ww
				continue
			}
			line += " " + word
			w += 1 + ww
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
