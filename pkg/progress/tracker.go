// Package progress tracks which topics of a subject a session has completed.
package progress

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring"

	"tableflip.dev/syllabus/pkg/catalog"
	"tableflip.dev/syllabus/pkg/selection"
)

// Tracker records completion for one subject. Topics are addressed by their
// ordinal in flattened module order.
type Tracker struct {
	subject  catalog.Subject
	offsets  map[string]uint32
	done     *roaring.Bitmap
	finished map[string]bool
}

// Snapshot is a read-only summary for rendering.
type Snapshot struct {
	SubjectID      string
	Completed      int
	Total          int
	Percent        int
	CourseComplete bool
}

// NewTracker starts an empty tracker over subject.
func NewTracker(subject catalog.Subject) *Tracker {
	t := &Tracker{
		subject:  subject,
		offsets:  make(map[string]uint32, len(subject.Modules)),
		done:     roaring.New(),
		finished: make(map[string]bool),
	}
	var next uint32
	for _, m := range subject.Modules {
		t.offsets[m.Name] = next
		next += uint32(len(m.Topics))
	}
	return t
}

// SubjectID returns the tracked subject's id.
func (t *Tracker) SubjectID() string {
	return t.subject.ID
}

// MarkComplete records ref as done. Refs outside the subject are rejected.
func (t *Tracker) MarkComplete(ref selection.TopicRef) error {
	ord, ok := t.ordinal(ref)
	if !ok {
		return fmt.Errorf("progress: topic %q in module %q: %w", ref.Label, ref.Module, catalog.ErrNotFound)
	}
	t.done.Add(ord)
	return nil
}

// IsComplete reports whether ref is done.
func (t *Tracker) IsComplete(ref selection.TopicRef) bool {
	ord, ok := t.ordinal(ref)
	return ok && t.done.Contains(ord)
}

// ModuleCounts returns completed and total topic counts for a module.
func (t *Tracker) ModuleCounts(name string) (done, total int) {
	m, ok := t.subject.Module(name)
	if !ok {
		return 0, 0
	}
	start := uint64(t.offsets[name])
	end := start + uint64(len(m.Topics))
	r := roaring.New()
	r.AddRange(start, end)
	return int(t.done.AndCardinality(r)), len(m.Topics)
}

// FinishModule marks a module complete regardless of its topic counts. The
// browser does this when the reader walks past the module's last topic.
func (t *Tracker) FinishModule(name string) error {
	if _, ok := t.subject.Module(name); !ok {
		return fmt.Errorf("progress: module %q: %w", name, catalog.ErrNotFound)
	}
	t.finished[name] = true
	return nil
}

// ModuleComplete reports whether the module was finished or every one of its
// topics is done. Modules without topics are never complete.
func (t *Tracker) ModuleComplete(name string) bool {
	done, total := t.ModuleCounts(name)
	if total == 0 {
		return false
	}
	return t.finished[name] || done == total
}

// Completed returns the number of completed topics.
func (t *Tracker) Completed() int {
	return int(t.done.GetCardinality())
}

// Total returns the number of topics in the subject.
func (t *Tracker) Total() int {
	return t.subject.TopicCount()
}

// Percent returns completion rounded to the nearest whole percent.
func (t *Tracker) Percent() int {
	total := t.Total()
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(t.Completed()) * 100 / float64(total)))
}

// CourseComplete reports whether every module with topics is complete.
func (t *Tracker) CourseComplete() bool {
	counted := false
	for _, m := range t.subject.Modules {
		if len(m.Topics) == 0 {
			continue
		}
		counted = true
		if !t.ModuleComplete(m.Name) {
			return false
		}
	}
	return counted
}

// Snapshot summarises the tracker.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		SubjectID:      t.subject.ID,
		Completed:      t.Completed(),
		Total:          t.Total(),
		Percent:        t.Percent(),
		CourseComplete: t.CourseComplete(),
	}
}

func (t *Tracker) ordinal(ref selection.TopicRef) (uint32, bool) {
	m, ok := t.subject.Module(ref.Module)
	if !ok {
		return 0, false
	}
	i := m.Index(ref.Label)
	if i < 0 {
		return 0, false
	}
	return t.offsets[ref.Module] + uint32(i), true
}
