package catalog

import (
	"fmt"
)

// Catalog is the immutable subject tree. It is never mutated after New, so
// any number of goroutines may read it concurrently.
type Catalog struct {
	subjects []Subject
	index    map[string]int
}

// New validates subjects and builds a catalog in the given order.
func New(subjects ...Subject) (*Catalog, error) {
	c := &Catalog{
		subjects: make([]Subject, 0, len(subjects)),
		index:    make(map[string]int, len(subjects)),
	}
	for _, s := range subjects {
		n, err := s.normalized()
		if err != nil {
			return nil, err
		}
		if _, dup := c.index[n.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate subject id %q", ErrInvalidCatalog, n.ID)
		}
		c.index[n.ID] = len(c.subjects)
		c.subjects = append(c.subjects, n)
	}
	return c, nil
}

// MustNew is New for static tables; it panics on invalid input.
func MustNew(subjects ...Subject) *Catalog {
	c, err := New(subjects...)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of subjects.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.subjects)
}

// ListSubjects returns every subject's id and title in tab order.
func (c *Catalog) ListSubjects() []SubjectRef {
	if c == nil {
		return []SubjectRef{}
	}
	refs := make([]SubjectRef, 0, len(c.subjects))
	for _, s := range c.subjects {
		refs = append(refs, SubjectRef{ID: s.ID, Title: s.Title})
	}
	return refs
}

// ListModules returns the module names of a subject in display order.
func (c *Catalog) ListModules(subjectID string) ([]string, error) {
	s, ok := c.lookup(subjectID)
	if !ok {
		return nil, fmt.Errorf("subject %q: %w", subjectID, ErrNotFound)
	}
	names := make([]string, 0, len(s.Modules))
	for _, m := range s.Modules {
		names = append(names, m.Name)
	}
	return names, nil
}

// ListTopics returns the topic labels of a module in display order.
func (c *Catalog) ListTopics(subjectID, moduleName string) ([]string, error) {
	s, ok := c.lookup(subjectID)
	if !ok {
		return nil, fmt.Errorf("subject %q: %w", subjectID, ErrNotFound)
	}
	m, ok := s.Module(moduleName)
	if !ok {
		return nil, fmt.Errorf("module %q in subject %q: %w", moduleName, subjectID, ErrNotFound)
	}
	return append([]string(nil), m.Topics...), nil
}

// Subject returns a copy of the subject with the given id.
func (c *Catalog) Subject(id string) (Subject, error) {
	s, ok := c.lookup(id)
	if !ok {
		return Subject{}, fmt.Errorf("subject %q: %w", id, ErrNotFound)
	}
	return s.clone(), nil
}

// HasSubject reports whether id names a subject.
func (c *Catalog) HasSubject(id string) bool {
	_, ok := c.lookup(id)
	return ok
}

// HasModule reports whether the subject holds the named module.
func (c *Catalog) HasModule(subjectID, moduleName string) bool {
	s, ok := c.lookup(subjectID)
	if !ok {
		return false
	}
	_, ok = s.Module(moduleName)
	return ok
}

// Subjects returns copies of every subject in tab order.
func (c *Catalog) Subjects() []Subject {
	if c == nil {
		return nil
	}
	out := make([]Subject, 0, len(c.subjects))
	for _, s := range c.subjects {
		out = append(out, s.clone())
	}
	return out
}

func (c *Catalog) lookup(id string) (*Subject, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return &c.subjects[i], true
}
