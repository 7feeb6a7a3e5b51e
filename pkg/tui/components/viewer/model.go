// Package viewer renders lessons and milestone screens in a scrollable pane.
package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/syllabus/pkg/catalog"
	"tableflip.dev/syllabus/pkg/content"
	"tableflip.dev/syllabus/pkg/progress"
	"tableflip.dev/syllabus/pkg/tui/theme"
)

// Mode identifies what the viewer is showing.
type Mode int

const (
	ModeWelcome Mode = iota
	ModeLesson
	ModeModuleComplete
	ModeCourseComplete
)

// Model wraps a viewport whose content is rendered from markdown.
type Model struct {
	viewport viewport.Model
	style    string
	renderer *content.Renderer
	theme    theme.Theme

	width  int
	height int

	mode     Mode
	title    string
	markdown string
	err      error
}

// NewModel constructs a viewer using a glamour style name.
func NewModel(style string, th theme.Theme) *Model {
	vp := viewport.New(
		viewport.WithWidth(1),
		viewport.WithHeight(1),
	)
	vp.MouseWheelEnabled = true
	return &Model{viewport: vp, style: style, theme: th}
}

// Mode reports what is currently shown.
func (m *Model) Mode() Mode { return m.mode }

// Title returns the heading of the current screen.
func (m *Model) Title() string { return m.title }

// Markdown returns the unrendered source of the current screen.
func (m *Model) Markdown() string { return m.markdown }

// SetTheme replaces the frame styles, typically with a subject accent.
func (m *Model) SetTheme(th theme.Theme) { m.theme = th }

// SetSize configures the pane dimensions and re-renders to fit.
func (m *Model) SetSize(width, height int) {
	if m.width == width && m.height == height {
		return
	}
	m.width = width
	m.height = height

	frame := m.theme.Viewer.Frame
	innerWidth := max(width-frame.GetHorizontalFrameSize(), 1)
	innerHeight := max(height-frame.GetVerticalFrameSize(), 1)
	m.viewport.SetWidth(innerWidth)
	m.viewport.SetHeight(innerHeight)

	r, err := content.NewRenderer(m.style, innerWidth)
	if err != nil {
		m.err = err
		m.renderer = nil
	} else {
		m.err = nil
		m.renderer = r
	}
	m.render(false)
}

// ShowWelcome introduces a subject and its modules.
func (m *Model) ShowWelcome(subject catalog.Subject) {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", strings.TrimSpace(subject.Icon+" "+subject.Title))
	b.WriteString("Choose a module from the sidebar to begin.\n\n")
	for _, mod := range subject.Modules {
		fmt.Fprintf(&b, "- **%s** (%d topics)\n", mod.Name, len(mod.Topics))
	}
	m.show(ModeWelcome, subject.Title, b.String())
}

// ShowLesson renders a topic lesson under a breadcrumb.
func (m *Model) ShowLesson(c content.Content, breadcrumb ...string) {
	m.show(ModeLesson, c.Title, c.Markdown(breadcrumb...))
}

// ShowModuleComplete congratulates on a finished module. next names the
// module that follows, if any.
func (m *Model) ShowModuleComplete(module, next string) {
	var b strings.Builder
	b.WriteString("# 🎉 Module complete\n\n")
	fmt.Fprintf(&b, "You finished **%s**.\n\n", module)
	if next != "" {
		fmt.Fprintf(&b, "Press `N` to continue with **%s**.\n", next)
	} else {
		b.WriteString("Pick another module from the sidebar.\n")
	}
	m.show(ModeModuleComplete, "Module complete", b.String())
}

// ShowCourseComplete celebrates finishing every module of a subject.
func (m *Model) ShowCourseComplete(subject catalog.Subject, snap progress.Snapshot) {
	var b strings.Builder
	b.WriteString("# 🏆 Course complete\n\n")
	fmt.Fprintf(&b, "You completed every module of **%s**.\n\n", subject.Title)
	fmt.Fprintf(&b, "Topics read: %d of %d (%d%%).\n", snap.Completed, snap.Total, snap.Percent)
	m.show(ModeCourseComplete, "Course complete", b.String())
}

func (m *Model) show(mode Mode, title, markdown string) {
	m.mode = mode
	m.title = title
	m.markdown = markdown
	m.render(true)
}

func (m *Model) render(reset bool) {
	if m.markdown == "" {
		m.viewport.SetContent("")
		return
	}
	if m.renderer == nil {
		if m.err != nil {
			m.viewport.SetContent("content unavailable: " + m.err.Error())
			return
		}
		m.viewport.SetContent(m.markdown)
		return
	}
	out, err := m.renderer.Render(m.markdown)
	if err != nil {
		m.viewport.SetContent("content unavailable: " + err.Error())
		return
	}
	m.viewport.SetContent(strings.TrimRight(out, "\n"))
	if reset {
		m.viewport.GotoTop()
	}
}

// Update forwards scrolling to the viewport.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	vp, cmd := m.viewport.Update(msg)
	m.viewport = vp
	return m, cmd
}

// View renders the framed content.
func (m *Model) View() string {
	frame := m.theme.Viewer.Frame
	if m.width > 0 {
		frame = frame.Width(m.width)
	}
	if m.height > 0 {
		frame = frame.Height(m.height)
	}
	return frame.Render(m.viewport.View())
}
