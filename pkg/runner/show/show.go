// Package show prints the lesson for one topic.
package show

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/syllabus/pkg/app"
	"tableflip.dev/syllabus/pkg/content"
)

const defaultWidth = 80

// Show renders a topic lesson to the terminal.
type Show struct {
	Service *app.Service
	Subject string
	Module  string
	Topic   string
	Style   string
	Width   int
	JSON    bool
	Out     io.Writer
}

func (s *Show) Do(_ context.Context) error {
	if s.Service == nil {
		return errors.New("show: no service configured")
	}
	lesson, err := s.Service.Lesson(s.Subject, s.Module, s.Topic)
	if err != nil {
		return err
	}

	w := s.Out
	if w == nil {
		w = color.Output
	}
	if s.JSON {
		b, err := json.MarshalIndent(lesson, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}

	width := s.Width
	if width <= 0 {
		width = defaultWidth
	}
	r, err := content.NewRenderer(s.Style, width)
	if err != nil {
		return err
	}
	subject, err := s.Service.Catalog.Subject(s.Subject)
	if err != nil {
		return err
	}
	out, err := r.RenderContent(lesson, subject.Title, s.Module)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, out)
	return err
}
