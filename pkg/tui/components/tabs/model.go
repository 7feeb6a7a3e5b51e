// Package tabs renders the subject tab bar.
package tabs

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/syllabus/pkg/catalog"
	"tableflip.dev/syllabus/pkg/tui/events"
	"tableflip.dev/syllabus/pkg/tui/theme"
)

// Model tracks which subject tab is active.
type Model struct {
	id       events.ComponentID
	subjects []catalog.Subject
	active   string
	width    int
	theme    theme.Theme
}

// NewModel builds a tab bar over subjects in catalog order.
func NewModel(id events.ComponentID, subjects []catalog.Subject, th theme.Theme) *Model {
	return &Model{id: id, subjects: subjects, theme: th}
}

// ID returns the component identifier used on emitted events.
func (m *Model) ID() events.ComponentID { return m.id }

// SetActive marks a subject as the active tab.
func (m *Model) SetActive(id string) { m.active = id }

// Active returns the active subject id.
func (m *Model) Active() string { return m.active }

// SetWidth bounds the rendered bar.
func (m *Model) SetWidth(width int) { m.width = width }

func (m *Model) index() int {
	for i, s := range m.subjects {
		if s.ID == m.active {
			return i
		}
	}
	return -1
}

// Step emits a selection of the subject delta tabs away, wrapping around.
func (m *Model) Step(delta int) tea.Cmd {
	n := len(m.subjects)
	if n == 0 {
		return nil
	}
	i := m.index()
	if i < 0 {
		if delta < 0 {
			i = 0
		} else {
			i = -1
		}
	}
	next := ((i+delta)%n + n) % n
	return events.SubjectSelectCmd(m.id, m.subjects[next].ID)
}

// Jump emits a selection of the subject at position pos, counted from one.
func (m *Model) Jump(pos int) tea.Cmd {
	if pos < 1 || pos > len(m.subjects) {
		return nil
	}
	return events.SubjectSelectCmd(m.id, m.subjects[pos-1].ID)
}

// Update handles tab switching keys.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch s := key.String(); s {
	case "tab", "]":
		return m, m.Step(1)
	case "shift+tab", "[":
		return m, m.Step(-1)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return m, m.Jump(int(s[0] - '0'))
	}
	return m, nil
}

// View renders the tabs on a single line.
func (m *Model) View() string {
	parts := make([]string, 0, len(m.subjects))
	for _, s := range m.subjects {
		label := strings.TrimSpace(s.Icon + " " + s.Title)
		if s.ID == m.active {
			parts = append(parts, m.theme.WithAccent(s.Accent()).Tabs.Active.Render(label))
			continue
		}
		parts = append(parts, m.theme.Tabs.Inactive.Render(label))
	}
	bar := m.theme.Tabs.Bar.Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	if m.width > 0 && lipgloss.Width(bar) > m.width {
		bar = truncate.StringWithTail(bar, uint(m.width), "…")
	}
	return bar
}
