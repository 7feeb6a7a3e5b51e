// Package catalog holds the read-only subject, module and topic tree the
// browser navigates.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrNotFound reports a subject or module key that the catalog does not hold.
	ErrNotFound = errors.New("catalog: not found")
	// ErrInvalidCatalog reports a structural problem found while building a catalog.
	ErrInvalidCatalog = errors.New("catalog: invalid")
)

// Module is a named group of topic labels within a subject.
type Module struct {
	Name   string   `json:"name"`
	Topics []string `json:"topics"`
}

// Subject is a top-level catalog entry, shown as a tab.
type Subject struct {
	ID      string   `json:"id"`
	Title   string   `json:"title,omitempty"`
	Icon    string   `json:"icon,omitempty"`
	Color   string   `json:"color,omitempty"`
	Modules []Module `json:"modules"`
}

// SubjectRef is the (id, title) pair used to render tabs.
type SubjectRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Module returns the named module and whether it exists.
func (s Subject) Module(name string) (Module, bool) {
	for _, m := range s.Modules {
		if m.Name == name {
			return m, true
		}
	}
	return Module{}, false
}

// ModuleIndex returns the position of the named module or -1.
func (s Subject) ModuleIndex(name string) int {
	for i, m := range s.Modules {
		if m.Name == name {
			return i
		}
	}
	return -1
}

// TopicCount returns the number of topics across every module.
func (s Subject) TopicCount() int {
	n := 0
	for _, m := range s.Modules {
		n += len(m.Topics)
	}
	return n
}

// Accent parses the subject colour. Subjects without a colour get a neutral grey.
func (s Subject) Accent() colorful.Color {
	if s.Color == "" {
		return colorful.Color{R: 0.6, G: 0.6, B: 0.6}
	}
	c, err := colorful.Hex(s.Color)
	if err != nil {
		return colorful.Color{R: 0.6, G: 0.6, B: 0.6}
	}
	return c
}

// Index returns the position of label within the module or -1.
func (m Module) Index(label string) int {
	for i, t := range m.Topics {
		if t == label {
			return i
		}
	}
	return -1
}

// Has reports whether the module lists label.
func (m Module) Has(label string) bool {
	return m.Index(label) >= 0
}

var titler = cases.Title(language.English)

func (s Subject) normalized() (Subject, error) {
	out := Subject{
		ID:    strings.TrimSpace(s.ID),
		Title: strings.TrimSpace(s.Title),
		Icon:  s.Icon,
		Color: strings.TrimSpace(s.Color),
	}
	if out.ID == "" {
		return Subject{}, fmt.Errorf("%w: subject with empty id", ErrInvalidCatalog)
	}
	if out.Title == "" {
		out.Title = titler.String(out.ID)
	}
	if out.Color != "" {
		if _, err := colorful.Hex(out.Color); err != nil {
			return Subject{}, fmt.Errorf("%w: subject %q colour %q: %v", ErrInvalidCatalog, out.ID, out.Color, err)
		}
	}

	seen := make(map[string]struct{}, len(s.Modules))
	out.Modules = make([]Module, 0, len(s.Modules))
	for _, m := range s.Modules {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			return Subject{}, fmt.Errorf("%w: subject %q has a module with an empty name", ErrInvalidCatalog, out.ID)
		}
		if _, dup := seen[name]; dup {
			return Subject{}, fmt.Errorf("%w: subject %q lists module %q twice", ErrInvalidCatalog, out.ID, name)
		}
		seen[name] = struct{}{}

		topics := make([]string, 0, len(m.Topics))
		labels := make(map[string]struct{}, len(m.Topics))
		for _, t := range m.Topics {
			if strings.TrimSpace(t) == "" {
				return Subject{}, fmt.Errorf("%w: module %q in %q has an empty topic", ErrInvalidCatalog, name, out.ID)
			}
			if _, dup := labels[t]; dup {
				return Subject{}, fmt.Errorf("%w: module %q in %q lists topic %q twice", ErrInvalidCatalog, name, out.ID, t)
			}
			labels[t] = struct{}{}
			topics = append(topics, t)
		}
		out.Modules = append(out.Modules, Module{Name: name, Topics: topics})
	}
	return out, nil
}

func (s Subject) clone() Subject {
	out := s
	out.Modules = make([]Module, len(s.Modules))
	for i, m := range s.Modules {
		out.Modules[i] = Module{Name: m.Name, Topics: append([]string(nil), m.Topics...)}
	}
	return out
}
