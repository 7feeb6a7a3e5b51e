// Package teaui hosts the Bubble Tea program for the syllabus TUI.
package teaui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	log "github.com/sirupsen/logrus"

	"tableflip.dev/syllabus/pkg/app"
	"tableflip.dev/syllabus/pkg/bookmark"
	"tableflip.dev/syllabus/pkg/catalog"
	"tableflip.dev/syllabus/pkg/content"
	"tableflip.dev/syllabus/pkg/store"
	"tableflip.dev/syllabus/pkg/tui/components/help"
	"tableflip.dev/syllabus/pkg/tui/components/sidebar"
	"tableflip.dev/syllabus/pkg/tui/components/tabs"
	"tableflip.dev/syllabus/pkg/tui/components/viewer"
	"tableflip.dev/syllabus/pkg/tui/events"
	"tableflip.dev/syllabus/pkg/tui/theme"
)

const (
	progressCells   = 20
	minSidebarWidth = 24
	maxSidebarWidth = 40
	defaultStatus   = "? help · q quit"
)

// Options tune the TUI.
type Options struct {
	// Style is the glamour style used for lessons.
	Style string
	// Subject is activated on start. Empty selects the first subject.
	Subject string
}

// Model composes the tab bar, sidebar, viewer and status line around one
// browsing session.
type Model struct {
	svc   *app.Service
	sess  *app.Session
	ctx   context.Context
	stop  context.CancelFunc
	theme theme.Theme

	tabs    *tabs.Model
	sidebar *sidebar.Model
	viewer  *viewer.Model
	help    *help.Model

	subject       catalog.Subject
	bookmarks     []*bookmark.Bookmark
	watch         <-chan store.Event
	showHelp      bool
	sidebarHidden bool
	status        string

	width  int
	height int
}

// New constructs the root model and activates the starting subject.
func New(ctx context.Context, svc *app.Service, opts Options) (*Model, error) {
	if svc == nil || svc.Catalog == nil || svc.Catalog.Len() == 0 {
		return nil, errors.New("tui: catalog has no subjects")
	}
	sess, err := svc.NewSession()
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := context.WithCancel(ctx)

	th := theme.Default()
	m := &Model{
		svc:     svc,
		sess:    sess,
		ctx:     ctx,
		stop:    stop,
		theme:   th,
		tabs:    tabs.NewModel(events.ComponentID("subject-tabs"), svc.Catalog.Subjects(), th),
		sidebar: sidebar.NewModel(events.ComponentID("module-sidebar"), th),
		viewer:  viewer.NewModel(opts.Style, th),
		status:  defaultStatus,
	}
	sess.OnTopic(m.onTopic)

	start := opts.Subject
	if start == "" {
		start = svc.Catalog.ListSubjects()[0].ID
	}
	if err := m.selectSubject(start); err != nil {
		stop()
		return nil, err
	}
	m.loadBookmarks()
	if svc.Bookmarks != nil {
		ch, err := svc.Watch(ctx)
		if err != nil {
			log.WithError(err).Warn("bookmark watch unavailable")
		} else {
			m.watch = ch
		}
	}
	return m, nil
}

// Run launches the Bubble Tea program.
func Run(ctx context.Context, svc *app.Service, opts Options) error {
	m, err := New(ctx, svc, opts)
	if err != nil {
		return err
	}
	defer m.stop()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// Session exposes the browsing session.
func (m *Model) Session() *app.Session { return m.sess }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return events.WatchBookmarksCmd(m.watch)
}

// onTopic is the content callback. It receives the raw topic label.
func (m *Model) onTopic(label string) {
	cur := m.sess.Current()
	m.viewer.ShowLesson(content.Generate(label), m.subject.Title, cur.Topic.Module)
}

func (m *Model) selectSubject(id string) error {
	if err := m.sess.SelectSubject(id); err != nil {
		return err
	}
	subject, _ := m.sess.Subject()
	m.subject = subject
	accented := m.theme.WithAccent(subject.Accent())
	m.tabs.SetActive(id)
	m.sidebar.SetSubject(subject, m.sess.Controller())
	m.sidebar.SetProgress(m.sess.Tracker())
	m.sidebar.SetBookmarks(m.bookmarks)
	m.viewer.SetTheme(accented)
	m.viewer.ShowWelcome(subject)
	return nil
}

func (m *Model) loadBookmarks() {
	if m.svc.Bookmarks == nil {
		return
	}
	all, err := m.svc.ListBookmarks(m.ctx)
	if err != nil {
		log.WithError(err).Warn("failed to load bookmarks")
		return
	}
	m.bookmarks = all
	m.sidebar.SetBookmarks(all)
}

func (m *Model) sync() {
	m.sidebar.Refresh()
	m.sidebar.SetProgress(m.sess.Tracker())
}

// Update routes Bubble Tea messages to composed components.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.layout()
		return m, nil
	case tea.KeyPressMsg:
		return m.handleKey(v)
	case events.SubjectSelectMsg:
		log.WithField("event", v.Describe()).Debug("subject select")
		if err := m.selectSubject(v.SubjectID); err != nil {
			m.status = err.Error()
		} else {
			m.status = defaultStatus
		}
		return m, nil
	case events.ModuleToggleMsg:
		log.WithField("event", v.Describe()).Debug("module toggle")
		if err := m.sess.ToggleModule(v.Module); err != nil {
			m.status = err.Error()
		}
		m.sync()
		return m, nil
	case events.TopicSelectMsg:
		log.WithField("event", v.Describe()).Debug("topic select")
		var err error
		if m.sess.Current().Module == v.Module {
			err = m.sess.SelectTopic(v.Topic)
		} else {
			err = m.sess.SelectTopicIn(v.Module, v.Topic)
		}
		if err != nil {
			m.status = err.Error()
		}
		m.sync()
		return m, nil
	case events.BookmarksChangedMsg:
		log.WithField("event", v.Describe()).Debug("bookmarks changed")
		m.loadBookmarks()
		return m, events.WatchBookmarksCmd(m.watch)
	}

	var cmd tea.Cmd
	m.viewer, cmd = m.viewer.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(key tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	k := key.String()
	switch k {
	case "ctrl+c", "q":
		m.stop()
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
		m.layout()
		return m, nil
	}

	if m.showHelp {
		if k == "esc" {
			m.showHelp = false
			return m, nil
		}
		if m.help == nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(key)
		return m, cmd
	}

	switch k {
	case "ctrl+s":
		m.sidebarHidden = !m.sidebarHidden
		m.layout()
		return m, nil
	case "tab", "shift+tab", "[", "]", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		var cmd tea.Cmd
		m.tabs, cmd = m.tabs.Update(key)
		return m, cmd
	case "n":
		m.next()
		return m, nil
	case "p":
		m.step(m.sess.Previous)
		return m, nil
	case "N":
		m.step(m.sess.NextModule)
		return m, nil
	case "c":
		if err := m.sess.MarkComplete(); err != nil {
			m.status = err.Error()
		} else {
			m.status = "marked complete"
		}
		m.sync()
		return m, nil
	case "b":
		m.toggleBookmark()
		return m, nil
	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		m.viewer, cmd = m.viewer.Update(key)
		return m, cmd
	}

	if m.sidebarHidden {
		return m, nil
	}
	var cmd tea.Cmd
	m.sidebar, cmd = m.sidebar.Update(key)
	return m, cmd
}

func (m *Model) step(fn func() (app.Outcome, error)) {
	out, err := fn()
	if err != nil {
		m.status = err.Error()
		return
	}
	if out == app.OutcomeNone {
		m.status = "nothing to move to"
	} else {
		m.status = defaultStatus
	}
	m.sync()
	m.sidebar.FocusActive()
}

func (m *Model) next() {
	finishing := m.sess.Current().Topic.Module
	out, err := m.sess.Next()
	if err != nil {
		m.status = err.Error()
		return
	}
	switch out {
	case app.OutcomeNone:
		m.status = "select a topic first"
	case app.OutcomeModuleComplete:
		m.viewer.ShowModuleComplete(finishing, m.followingModule(finishing))
		m.status = fmt.Sprintf("%s complete", finishing)
	case app.OutcomeCourseComplete:
		m.viewer.ShowCourseComplete(m.subject, m.sess.Progress())
		m.status = "course complete"
	default:
		m.status = defaultStatus
	}
	m.sync()
	m.sidebar.FocusActive()
}

func (m *Model) followingModule(name string) string {
	for i := m.subject.ModuleIndex(name) + 1; i < len(m.subject.Modules); i++ {
		if len(m.subject.Modules[i].Topics) > 0 {
			return m.subject.Modules[i].Name
		}
	}
	return ""
}

func (m *Model) toggleBookmark() {
	on, err := m.sess.ToggleBookmark(m.ctx)
	if err != nil {
		m.status = err.Error()
		return
	}
	if on {
		m.status = "bookmarked"
	} else {
		m.status = "bookmark removed"
	}
	m.loadBookmarks()
}

func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	bodyHeight := max(m.height-2, 3)
	m.tabs.SetWidth(m.width)

	viewerWidth := m.width
	if !m.sidebarHidden {
		sw := min(max(m.width/3, minSidebarWidth), maxSidebarWidth)
		sw = min(sw, m.width)
		m.sidebar.SetSize(sw, bodyHeight)
		viewerWidth = max(m.width-sw, 1)
	}
	m.viewer.SetSize(viewerWidth, bodyHeight)

	if m.showHelp {
		if m.help == nil {
			m.help = help.New(m.width, bodyHeight)
		} else {
			m.help.SetSize(m.width, bodyHeight)
		}
	}
}

func (m *Model) progressLine() string {
	snap := m.sess.Progress()
	filled := 0
	if snap.Total > 0 {
		filled = snap.Completed * progressCells / snap.Total
	}
	ft := m.theme.Footer
	bar := ft.ProgressFull.Render(strings.Repeat("█", filled)) +
		ft.ProgressEmpty.Render(strings.Repeat("░", progressCells-filled))
	return fmt.Sprintf("%s %d/%d %d%%", bar, snap.Completed, snap.Total, snap.Percent)
}

// View renders the composed UI.
func (m *Model) View() string {
	if m.width == 0 {
		return "loading…"
	}

	var body string
	switch {
	case m.showHelp && m.help != nil:
		body = m.help.View()
	case m.sidebarHidden:
		body = m.viewer.View()
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), m.viewer.View())
	}

	footer := m.progressLine() + "  " + m.theme.Footer.Status.Render(m.status)
	return lipgloss.JoinVertical(lipgloss.Left, m.tabs.View(), body, footer)
}
