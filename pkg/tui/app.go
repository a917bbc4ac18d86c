// Package tui implements the interactive status browser: the whole step
// tree with live probed statuses, navigable without running anything.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/paso-sh/paso/pkg/runtime"
	"github.com/paso-sh/paso/pkg/step"
	"github.com/paso-sh/paso/pkg/ui"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51")).Padding(0, 1)
	groupStyle  = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true)
	keyDescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// row is one rendered line: a group heading or a probed leaf.
type row struct {
	title  string
	depth  int
	leaf   bool
	status step.Status
	msg    string
}

// Model is the bubbletea model for the status browser.
type Model struct {
	rows   []row
	cursor int
	vp     viewport.Model
	ready  bool
	width  int
}

// New probes every leaf of the given stages and builds the browser.
func New(stages []*step.Step, sc *step.Context) Model {
	var rows []row
	for _, root := range stages {
		results := make(map[string]runtime.Result)
		for _, res := range runtime.ProbeAll(root, sc) {
			results[res.Step.Name] = res
		}
		step.Walk(root, func(s *step.Step, depth int) {
			if s.Kind == step.KindComposite {
				rows = append(rows, row{title: s.Title, depth: depth})
				return
			}
			res := results[s.Name]
			rows = append(rows, row{
				title:  s.Title,
				depth:  depth,
				leaf:   true,
				status: res.Status,
				msg:    res.Msg,
			})
		})
	}
	m := Model{rows: rows}
	m.cursor = m.nextLeaf(-1, +1)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.cursor = m.nextLeaf(m.cursor, -1)
		case "down", "j":
			m.cursor = m.nextLeaf(m.cursor, +1)
		case "g", "home":
			m.cursor = m.nextLeaf(-1, +1)
		case "G", "end":
			m.cursor = m.nextLeaf(len(m.rows), -1)
		}
		m.syncViewport()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		// Header, detail panel and key bar take six lines.
		h := msg.Height - 6
		if h < 3 {
			h = 3
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width, h)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = h
		}
		m.syncViewport()
	}
	return m, nil
}

// nextLeaf moves from idx in the given direction to the next leaf row,
// staying put when there is none.
func (m Model) nextLeaf(idx, dir int) int {
	for i := idx + dir; i >= 0 && i < len(m.rows); i += dir {
		if m.rows[i].leaf {
			return i
		}
	}
	if idx >= 0 && idx < len(m.rows) {
		return idx
	}
	return 0
}

func (m *Model) syncViewport() {
	if !m.ready {
		return
	}
	m.vp.SetContent(m.renderRows())
	// Keep the cursor visible.
	if m.cursor < m.vp.YOffset {
		m.vp.SetYOffset(m.cursor)
	} else if m.cursor >= m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(m.cursor - m.vp.Height + 1)
	}
}

func (m Model) renderRows() string {
	var b strings.Builder
	for i, r := range m.rows {
		indent := strings.Repeat("  ", r.depth)
		if !r.leaf {
			b.WriteString(indent + groupStyle.Render(r.title) + "\n")
			continue
		}
		line := fmt.Sprintf("%s%s %s", indent, ui.Glyph(r.status), r.title)
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("▸ "+line) + "\n")
		} else {
			b.WriteString("  " + ui.StatusStyle(r.status).Render(line) + "\n")
		}
	}
	return b.String()
}

func (m Model) View() string {
	if !m.ready {
		return "loading…"
	}
	header := headerStyle.Render("paso — installation status")
	detail := ""
	if m.cursor >= 0 && m.cursor < len(m.rows) && m.rows[m.cursor].leaf {
		r := m.rows[m.cursor]
		detail = fmt.Sprintf("%s — %s", ui.StatusStyle(r.status).Render(r.status.String()), r.msg)
	}
	keys := keyStyle.Render("↑/↓") + keyDescStyle.Render(" move  ") +
		keyStyle.Render("q") + keyDescStyle.Render(" quit")
	width := m.width - 2
	if width < 20 {
		width = 20
	}
	return strings.Join([]string{
		header,
		m.vp.View(),
		detailStyle.Width(width).Render(detail),
		keys,
	}, "\n")
}

// Run opens the browser full-screen and blocks until the operator quits.
func Run(stages []*step.Step, sc *step.Context) error {
	_, err := tea.NewProgram(New(stages, sc), tea.WithAltScreen()).Run()
	return err
}
