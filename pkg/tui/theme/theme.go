package theme

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Tabs    TabsTheme
	Sidebar SidebarTheme
	Viewer  ViewerTheme
	Footer  FooterTheme
	Modal   ModalTheme
}

// TabsTheme styles the subject tab bar.
type TabsTheme struct {
	Bar      lipgloss.Style
	Active   lipgloss.Style
	Inactive lipgloss.Style
}

// SidebarTheme styles the module and topic tree.
type SidebarTheme struct {
	Frame       lipgloss.Style
	Title       lipgloss.Style
	Module      lipgloss.Style
	ModuleOpen  lipgloss.Style
	Topic       lipgloss.Style
	TopicActive lipgloss.Style
	Cursor      lipgloss.Style
	Done        lipgloss.Style
	Bookmark    lipgloss.Style
	Empty       lipgloss.Style
}

// ViewerTheme styles the content area.
type ViewerTheme struct {
	Frame  lipgloss.Style
	Banner lipgloss.Style
	Hint   lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help          lipgloss.Style
	Status        lipgloss.Style
	ProgressFull  lipgloss.Style
	ProgressEmpty lipgloss.Style
}

// ModalTheme styles centered overlays such as help.
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	muted := lipgloss.Color("244")

	return Theme{
		Tabs: TabsTheme{
			Bar:      lipgloss.NewStyle().Padding(0, 1),
			Active:   lipgloss.NewStyle().Bold(true).Padding(0, 1).Reverse(true),
			Inactive: lipgloss.NewStyle().Padding(0, 1).Foreground(muted),
		},
		Sidebar: SidebarTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title:       lipgloss.NewStyle().Bold(true),
			Module:      lipgloss.NewStyle(),
			ModuleOpen:  lipgloss.NewStyle().Bold(true),
			Topic:       lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			TopicActive: lipgloss.NewStyle().Bold(true),
			Cursor:      lipgloss.NewStyle().Reverse(true),
			Done:        lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
			Bookmark:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
			Empty:       lipgloss.NewStyle().Foreground(muted).Italic(true),
		},
		Viewer: ViewerTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Banner: lipgloss.NewStyle().Bold(true).Padding(1, 2),
			Hint:   lipgloss.NewStyle().Foreground(muted).Italic(true),
		},
		Footer: FooterTheme{
			Help:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status:        lipgloss.NewStyle().Foreground(muted),
			ProgressFull:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
			ProgressEmpty: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
	}
}

// Accent derives the highlight and muted colours for a subject accent. The
// muted colour blends the accent halfway towards grey.
func Accent(c colorful.Color) (highlight, muted color.Color) {
	grey := colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	return c.Clamped(), c.BlendLab(grey, 0.5).Clamped()
}

// WithAccent returns a copy of the theme tinted by a subject colour.
func (t Theme) WithAccent(c colorful.Color) Theme {
	hi, lo := Accent(c)
	t.Tabs.Active = t.Tabs.Active.Foreground(hi)
	t.Sidebar.Frame = t.Sidebar.Frame.BorderForeground(lo)
	t.Sidebar.Title = t.Sidebar.Title.Foreground(hi)
	t.Sidebar.ModuleOpen = t.Sidebar.ModuleOpen.Foreground(hi)
	t.Sidebar.TopicActive = t.Sidebar.TopicActive.Foreground(hi)
	t.Viewer.Frame = t.Viewer.Frame.BorderForeground(lo)
	t.Viewer.Banner = t.Viewer.Banner.Foreground(hi)
	return t
}
