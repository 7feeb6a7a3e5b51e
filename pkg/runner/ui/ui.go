package ui

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"

	"tableflip.dev/syllabus/pkg/app"
	teaui "tableflip.dev/syllabus/pkg/tui/app"
)

// UI launches the interactive catalog browser.
type UI struct {
	Service *app.Service
	Style   string
	Subject string
}

// ErrNotTerminal is returned when stdout is not an interactive terminal.
var ErrNotTerminal = errors.New("ui: stdout is not a terminal")

func (u *UI) Do(ctx context.Context) error {
	if u.Service == nil {
		return errors.New("ui: no service configured")
	}
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return ErrNotTerminal
	}
	return teaui.Run(ctx, u.Service, teaui.Options{Style: u.Style, Subject: u.Subject})
}
