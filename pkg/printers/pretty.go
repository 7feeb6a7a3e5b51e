package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/termenv"

	"tableflip.dev/syllabus/pkg/bookmark"
	"tableflip.dev/syllabus/pkg/catalog"
	"tableflip.dev/syllabus/pkg/glyph"
)

type PrettyPrint struct {
	ShowID bool
	Out    io.Writer
}

var (
	spacing = strings.Repeat(" ", len("171dff69f8b99dca  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s", count, noun)

	if count != 1 {
		_, _ = c.Fprint(pp.out(), "s")
	}
	_, _ = c.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// accent paints s in the subject colour when the terminal supports it.
func accent(s string, subject catalog.Subject) string {
	if subject.Color == "" || color.NoColor {
		return s
	}
	p := termenv.ColorProfile()
	return termenv.String(s).Foreground(p.Color(subject.Color)).Bold().String()
}

// Subjects prints one row per subject with its module and topic counts.
func (pp *PrettyPrint) Subjects(subjects ...catalog.Subject) {
	if len(subjects) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("", bold.Sprint("Subject"), bold.Sprint("Title"), bold.Sprint("Modules"), bold.Sprint("Topics"))
	for _, s := range subjects {
		tbl.AddRow(s.Icon, accent(s.ID, s), s.Title, faint.Sprint(len(s.Modules)), faint.Sprint(s.TopicCount()))
	}
	tbl.RightAlign(3)
	tbl.RightAlign(4)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Modules prints the module outline of a subject. Bookmarked topics are
// counted per module.
func (pp *PrettyPrint) Modules(subject catalog.Subject, bookmarks ...*bookmark.Bookmark) {
	pp.Title(accent(fmt.Sprintf("%s %s", subject.Icon, subject.Title), subject))
	if len(subject.Modules) == 0 {
		pp.none()
		return
	}
	marked := make(map[string]int)
	for _, b := range bookmarks {
		if b.Subject == subject.ID {
			marked[b.Module]++
		}
	}

	faint := color.New(color.Faint)
	star := color.New(color.FgHiYellow)

	tbl := uitable.New()
	tbl.Separator = "  "
	for i, m := range subject.Modules {
		mark := ""
		if n := marked[m.Name]; n > 0 {
			mark = star.Sprintf("%s %d", glyph.Bookmark, n)
		}
		tbl.AddRow(faint.Sprintf("%2d.", i+1), m.Name, faint.Sprintf("%d topics", len(m.Topics)), mark)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Topics prints the topics of a module, starring bookmarked ones.
func (pp *PrettyPrint) Topics(subject catalog.Subject, module catalog.Module, bookmarks ...*bookmark.Bookmark) {
	pp.TitleWithCount(fmt.Sprintf("%s › %s", subject.Title, module.Name), len(module.Topics), "topic")
	if len(module.Topics) == 0 {
		pp.none()
		return
	}
	marked := make(map[string]bool)
	for _, b := range bookmarks {
		if b.Subject == subject.ID && b.Module == module.Name {
			marked[b.Topic] = true
		}
	}

	faint := color.New(color.Faint)
	star := color.New(color.FgHiYellow)
	for i, t := range module.Topics {
		_, _ = faint.Fprintf(pp.out(), "%2d. ", i+1)
		_, _ = fmt.Fprint(pp.out(), t)
		if marked[t] {
			_, _ = star.Fprint(pp.out(), " "+glyph.Bookmark.Symbol)
		}
		pp.NewLine()
	}
	pp.NewLine()
}

// Bookmarks prints saved bookmarks, oldest first.
func (pp *PrettyPrint) Bookmarks(bookmarks ...*bookmark.Bookmark) {
	pp.TitleWithCount("Bookmarks", len(bookmarks), "bookmark")
	if len(bookmarks) == 0 {
		pp.none()
		return
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, b := range bookmarks {
		id := ""
		if pp.ShowID {
			id = y.Sprint(b.ID)
		}
		tbl.AddRow(id, b.Path(), faint.Sprint(b.Created.Local().Format("Jan 2, 2006")))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}
