// Package list prints catalog subjects, modules and topics.
package list

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/syllabus/pkg/bookmark"
	"tableflip.dev/syllabus/pkg/catalog"
	"tableflip.dev/syllabus/pkg/printers"
	"tableflip.dev/syllabus/pkg/store"
)

var errNoCatalog = errors.New("list: no catalog loaded")

// Subjects lists every subject.
type Subjects struct {
	Catalog *catalog.Catalog
	JSON    bool
	Out     io.Writer
}

func (s *Subjects) Do(_ context.Context) error {
	if s.Catalog == nil {
		return errNoCatalog
	}
	if s.JSON {
		return writeJSON(out(s.Out), map[string]any{"subjects": s.Catalog.ListSubjects()})
	}
	pp := printers.PrettyPrint{Out: s.Out}
	pp.NewLine()
	pp.Subjects(s.Catalog.Subjects()...)
	return nil
}

// Modules lists the modules of one subject.
type Modules struct {
	Catalog   *catalog.Catalog
	Bookmarks store.Persistence
	Subject   string
	JSON      bool
	Out       io.Writer
}

func (m *Modules) Do(ctx context.Context) error {
	if m.Catalog == nil {
		return errNoCatalog
	}
	if m.JSON {
		names, err := m.Catalog.ListModules(m.Subject)
		if err != nil {
			return err
		}
		return writeJSON(out(m.Out), map[string]any{"subject": m.Subject, "modules": names})
	}
	subject, err := m.Catalog.Subject(m.Subject)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: m.Out}
	pp.NewLine()
	pp.Modules(subject, subjectBookmarks(ctx, m.Bookmarks, m.Subject)...)
	return nil
}

// Topics lists the topics of one module.
type Topics struct {
	Catalog   *catalog.Catalog
	Bookmarks store.Persistence
	Subject   string
	Module    string
	JSON      bool
	Out       io.Writer
}

func (t *Topics) Do(ctx context.Context) error {
	if t.Catalog == nil {
		return errNoCatalog
	}
	topics, err := t.Catalog.ListTopics(t.Subject, t.Module)
	if err != nil {
		return err
	}
	if t.JSON {
		return writeJSON(out(t.Out), map[string]any{"subject": t.Subject, "module": t.Module, "topics": topics})
	}
	subject, err := t.Catalog.Subject(t.Subject)
	if err != nil {
		return err
	}
	module, _ := subject.Module(t.Module)
	pp := printers.PrettyPrint{Out: t.Out}
	pp.NewLine()
	pp.Topics(subject, module, subjectBookmarks(ctx, t.Bookmarks, t.Subject)...)
	return nil
}

func subjectBookmarks(ctx context.Context, p store.Persistence, subject string) []*bookmark.Bookmark {
	if p == nil {
		return nil
	}
	return p.ListSubject(ctx, subject)
}

func out(w io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return color.Output
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
