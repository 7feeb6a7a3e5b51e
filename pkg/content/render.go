package content

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// Style names accepted by NewRenderer.
const (
	StyleAuto    = "auto"
	StyleDark    = "dark"
	StyleLight   = "light"
	StyleNoTTY   = "notty"
	minWrapWidth = 10
)

// Renderer turns lesson markdown into terminal output.
type Renderer struct {
	style string
	width int
	tr    *glamour.TermRenderer
}

// NewRenderer builds a renderer wrapping at width. StyleAuto picks dark or
// light from the terminal background.
func NewRenderer(style string, width int) (*Renderer, error) {
	style = ResolveStyle(style)
	width = max(width, minWrapWidth)
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("content: renderer: %w", err)
	}
	return &Renderer{style: style, width: width, tr: tr}, nil
}

// ResolveStyle maps StyleAuto and empty input to a concrete glamour style.
func ResolveStyle(style string) string {
	switch strings.ToLower(strings.TrimSpace(style)) {
	case "", StyleAuto:
		if termenv.HasDarkBackground() {
			return StyleDark
		}
		return StyleLight
	default:
		return style
	}
}

// Width returns the wrap width.
func (r *Renderer) Width() int { return r.width }

// Render renders raw markdown.
func (r *Renderer) Render(markdown string) (string, error) {
	out, err := r.tr.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("content: render: %w", err)
	}
	return out, nil
}

// RenderContent renders a lesson with an optional breadcrumb.
func (r *Renderer) RenderContent(c Content, breadcrumb ...string) (string, error) {
	return r.Render(c.Markdown(breadcrumb...))
}
