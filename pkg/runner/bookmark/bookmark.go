// Package bookmark implements the bookmark subcommands.
package bookmark

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/syllabus/pkg/app"
	"tableflip.dev/syllabus/pkg/printers"
)

var errNoService = errors.New("bookmark: no service configured")

func output(w io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return color.Output
}

// Add saves a bookmark for a topic.
type Add struct {
	Service *app.Service
	Subject string
	Module  string
	Topic   string
	JSON    bool
	Out     io.Writer
}

func (a *Add) Do(ctx context.Context) error {
	if a.Service == nil {
		return errNoService
	}
	b, err := a.Service.AddBookmark(ctx, a.Subject, a.Module, a.Topic)
	if err != nil {
		return err
	}
	if a.JSON {
		return json.NewEncoder(output(a.Out)).Encode(b)
	}
	_, _ = color.New(color.FgGreen).Fprint(output(a.Out), "bookmarked ")
	_, err = fmt.Fprintln(output(a.Out), b.String())
	return err
}

// Remove deletes a bookmark by id.
type Remove struct {
	Service *app.Service
	ID      string
	JSON    bool
	Out     io.Writer
}

func (r *Remove) Do(ctx context.Context) error {
	if r.Service == nil {
		return errNoService
	}
	b, err := r.Service.RemoveBookmark(ctx, r.ID)
	if err != nil {
		return err
	}
	if r.JSON {
		return json.NewEncoder(output(r.Out)).Encode(b)
	}
	_, _ = color.New(color.Faint).Fprint(output(r.Out), "removed ")
	_, err = fmt.Fprintln(output(r.Out), b.String())
	return err
}

// List prints saved bookmarks.
type List struct {
	Service *app.Service
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

func (l *List) Do(ctx context.Context) error {
	if l.Service == nil {
		return errNoService
	}
	all, err := l.Service.ListBookmarks(ctx)
	if err != nil {
		return err
	}
	if l.JSON {
		return json.NewEncoder(output(l.Out)).Encode(map[string]any{"bookmarks": all, "count": len(all)})
	}
	pp := printers.PrettyPrint{ShowID: l.ShowID, Out: l.Out}
	pp.NewLine()
	pp.Bookmarks(all...)
	return nil
}
