// Package help renders the key reference overlay.
package help

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/syllabus/pkg/content"
	"tableflip.dev/syllabus/pkg/glyph"
)

//go:embed help.md
var helpMarkdown string

// Model renders the Glamour-based help overlay inside a bordered viewport.
type Model struct {
	viewport viewport.Model
	width    int
	height   int

	frame lipgloss.Style
	err   error
}

// New constructs a help overlay model sized to the provided bounds.
func New(width, height int) *Model {
	vp := viewport.New(
		viewport.WithWidth(max(width, 1)),
		viewport.WithHeight(max(height, 1)),
	)
	vp.MouseWheelEnabled = true
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Margin(0).
		Padding(0)
	model := &Model{
		viewport: vp,
		frame:    frame,
	}
	model.SetSize(width, height)
	return model
}

// Update forwards scrolling to the viewport.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	vp, cmd := m.viewport.Update(msg)
	m.viewport = vp
	return m, cmd
}

// View renders the help content inside a rounded frame.
func (m *Model) View() string {
	body := m.viewport.View()
	if body == "" && m.err != nil {
		body = "help unavailable: " + m.err.Error()
	}
	return m.frame.Width(m.width).Height(m.height).Render(body)
}

// SetSize configures the overlay dimensions and re-renders the markdown to fit.
func (m *Model) SetSize(width, height int) {
	minWidth, minHeight := 32, 8
	width = max(width, minWidth)
	height = max(height, minHeight)
	if m.width == width && m.height == height {
		return
	}

	m.width = width
	m.height = height

	frameX := m.frame.GetHorizontalFrameSize()
	frameY := m.frame.GetVerticalFrameSize()

	innerWidth := max(width-frameX, 1)
	innerHeight := max(height-frameY, 1)

	m.viewport.SetWidth(innerWidth)
	m.viewport.SetHeight(innerHeight)

	m.renderContent(innerWidth)
}

func (m *Model) renderContent(wrap int) {
	renderer, err := content.NewRenderer(content.StyleDark, wrap)
	if err != nil {
		m.err = err
		m.viewport.SetContent("help unavailable: " + err.Error())
		return
	}

	out, err := renderer.Render(Markdown())
	if err != nil {
		m.err = err
		m.viewport.SetContent("help unavailable: " + err.Error())
		return
	}

	m.err = nil
	m.viewport.SetContent(stripANSI(out))
	m.viewport.SetYOffset(0)
}

// Markdown returns the help source followed by the sidebar legend.
func Markdown() string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(helpMarkdown))
	b.WriteString("\n\n## Legend\n\n| Mark | Meaning |\n| --- | --- |\n")
	for _, g := range glyph.DefaultGlyphs() {
		fmt.Fprintf(&b, "| %s | %s |\n", g.Symbol, g.Meaning)
	}
	return b.String()
}

func stripANSI(s string) string {
	var b strings.Builder
	inSeq := false
	for _, r := range s {
		switch {
		case r == ansi.Marker:
			inSeq = true
		case inSeq:
			if ansi.IsTerminator(r) {
				inSeq = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
