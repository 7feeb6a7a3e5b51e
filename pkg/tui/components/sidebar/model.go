// Package sidebar renders the module and topic tree of the active subject.
package sidebar

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/syllabus/pkg/bookmark"
	"tableflip.dev/syllabus/pkg/catalog"
	"tableflip.dev/syllabus/pkg/glyph"
	"tableflip.dev/syllabus/pkg/progress"
	"tableflip.dev/syllabus/pkg/selection"
	"tableflip.dev/syllabus/pkg/tui/events"
	"tableflip.dev/syllabus/pkg/tui/theme"
)

type rowKind int

const (
	rowModule rowKind = iota
	rowTopic
)

type row struct {
	kind   rowKind
	module string
	topic  string
}

// Model is a cursor over the module rows of a subject plus the topic rows of
// the open module. Highlighting is read from the selection controller.
type Model struct {
	id      events.ComponentID
	theme   theme.Theme
	subject catalog.Subject
	ctrl    *selection.Controller
	tracker *progress.Tracker
	marked  map[string]bool

	rows   []row
	cursor int
	offset int
	width  int
	height int
}

// NewModel returns an empty sidebar.
func NewModel(id events.ComponentID, th theme.Theme) *Model {
	return &Model{id: id, theme: th, marked: map[string]bool{}}
}

// ID returns the component identifier used on emitted events.
func (m *Model) ID() events.ComponentID { return m.id }

// SetSubject points the sidebar at a subject and resets the cursor.
func (m *Model) SetSubject(subject catalog.Subject, ctrl *selection.Controller) {
	m.subject = subject
	m.ctrl = ctrl
	m.cursor = 0
	m.offset = 0
	m.theme = m.theme.WithAccent(subject.Accent())
	m.Refresh()
}

// SetProgress attaches the tracker used for completion marks.
func (m *Model) SetProgress(tr *progress.Tracker) { m.tracker = tr }

// SetBookmarks replaces the set of bookmarked topics of the subject.
func (m *Model) SetBookmarks(bookmarks []*bookmark.Bookmark) {
	m.marked = make(map[string]bool, len(bookmarks))
	for _, b := range bookmarks {
		if b.Subject == m.subject.ID {
			m.marked[bookmark.KeyFor(b.Subject, b.Module, b.Topic)] = true
		}
	}
}

// SetSize bounds the rendered tree including its frame.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.scroll()
}

// Refresh rebuilds the rows from the controller state. The cursor stays on
// the same row when it still exists.
func (m *Model) Refresh() {
	var prev row
	hadPrev := m.cursor >= 0 && m.cursor < len(m.rows)
	if hadPrev {
		prev = m.rows[m.cursor]
	}

	m.rows = m.rows[:0]
	for _, mod := range m.subject.Modules {
		m.rows = append(m.rows, row{kind: rowModule, module: mod.Name})
		if m.ctrl == nil || !m.ctrl.IsModuleOpen(mod.Name) {
			continue
		}
		for _, t := range mod.Topics {
			m.rows = append(m.rows, row{kind: rowTopic, module: mod.Name, topic: t})
		}
	}

	if hadPrev {
		for i, r := range m.rows {
			if r == prev {
				m.cursor = i
				m.scroll()
				return
			}
		}
		// A collapsed topic row falls back to its module row.
		for i, r := range m.rows {
			if r.kind == rowModule && r.module == prev.module {
				m.cursor = i
				m.scroll()
				return
			}
		}
	}
	m.cursor = min(max(m.cursor, 0), max(len(m.rows)-1, 0))
	m.scroll()
}

// FocusActive moves the cursor to the active topic, or to its module when
// the topic row is hidden.
func (m *Model) FocusActive() {
	if m.ctrl == nil {
		return
	}
	cur := m.ctrl.Current()
	for i, r := range m.rows {
		if r.kind == rowTopic && m.ctrl.IsTopicActive(r.module, r.topic) {
			m.cursor = i
			m.scroll()
			return
		}
	}
	target := cur.Topic.Module
	if target == "" {
		target = cur.Module
	}
	for i, r := range m.rows {
		if r.kind == rowModule && r.module == target {
			m.cursor = i
			m.scroll()
			return
		}
	}
}

// Cursor returns the module and, for topic rows, the topic under the cursor.
func (m *Model) Cursor() (module, topic string) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return "", ""
	}
	r := m.rows[m.cursor]
	return r.module, r.topic
}

// Update moves the cursor and activates rows.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.rows) == 0 {
		return m, nil
	}
	switch key.String() {
	case "j", "down":
		m.cursor = min(m.cursor+1, len(m.rows)-1)
	case "k", "up":
		m.cursor = max(m.cursor-1, 0)
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = len(m.rows) - 1
	case "enter", "space", " ", "l", "right":
		r := m.rows[m.cursor]
		if r.kind == rowModule {
			return m, events.ModuleToggleCmd(m.id, r.module)
		}
		return m, events.TopicSelectCmd(m.id, r.module, r.topic)
	case "h", "left":
		r := m.rows[m.cursor]
		if r.kind == rowTopic || (m.ctrl != nil && m.ctrl.IsModuleOpen(r.module)) {
			return m, events.ModuleToggleCmd(m.id, r.module)
		}
	default:
		return m, nil
	}
	m.scroll()
	return m, nil
}

func (m *Model) innerSize() (int, int) {
	frame := m.theme.Sidebar.Frame
	w := m.width - frame.GetHorizontalFrameSize()
	h := m.height - frame.GetVerticalFrameSize() - 2 // title and gap
	return max(w, 1), max(h, 1)
}

func (m *Model) scroll() {
	_, h := m.innerSize()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	m.offset = max(m.offset, 0)
}

func (m *Model) moduleLine(r row) string {
	th := m.theme.Sidebar
	marker := glyph.ModuleClosed.Symbol
	style := th.Module
	if m.ctrl != nil && m.ctrl.IsModuleOpen(r.module) {
		marker = glyph.ModuleOpen.Symbol
		style = th.ModuleOpen
	}
	line := style.Render(fmt.Sprintf("%s %s", marker, r.module))
	if m.tracker != nil {
		done, total := m.tracker.ModuleCounts(r.module)
		switch {
		case m.tracker.ModuleComplete(r.module):
			line += " " + th.Done.Render(glyph.Done.Symbol)
		case total == 0:
			line += " " + th.Empty.Render("(empty)")
		case done > 0:
			line += " " + th.Empty.Render(fmt.Sprintf("%d/%d", done, total))
		}
	}
	return line
}

func (m *Model) topicLine(r row) string {
	th := m.theme.Sidebar
	bullet := glyph.Topic.Symbol
	style := th.Topic
	if m.ctrl != nil && m.ctrl.IsTopicActive(r.module, r.topic) {
		bullet = glyph.TopicActive.Symbol
		style = th.TopicActive
	}
	line := "  " + style.Render(fmt.Sprintf("%s %s", bullet, r.topic))
	if m.tracker != nil && m.tracker.IsComplete(selection.TopicRef{Module: r.module, Label: r.topic}) {
		line += " " + th.Done.Render(glyph.Done.Symbol)
	}
	if m.marked[bookmark.KeyFor(m.subject.ID, r.module, r.topic)] {
		line += " " + th.Bookmark.Render(glyph.Bookmark.Symbol)
	}
	return line
}

// View renders the framed tree.
func (m *Model) View() string {
	th := m.theme.Sidebar
	w, h := m.innerSize()

	var b strings.Builder
	b.WriteString(truncate.StringWithTail(th.Title.Render(strings.TrimSpace(m.subject.Icon+" "+m.subject.Title)), uint(w), "…"))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(th.Empty.Render("no modules"))
	}
	end := min(m.offset+h, len(m.rows))
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		var line string
		if r.kind == rowModule {
			line = m.moduleLine(r)
		} else {
			line = m.topicLine(r)
		}
		line = truncate.StringWithTail(line, uint(w), "…")
		if i == m.cursor {
			line = th.Cursor.Render(line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	frame := th.Frame
	if m.width > 0 {
		frame = frame.Width(m.width)
	}
	if m.height > 0 {
		frame = frame.Height(m.height)
	}
	return frame.Render(b.String())
}
