package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"tableflip.dev/syllabus/pkg/bookmark"
	"tableflip.dev/syllabus/pkg/catalog"
	"tableflip.dev/syllabus/pkg/content"
	"tableflip.dev/syllabus/pkg/progress"
	"tableflip.dev/syllabus/pkg/selection"
)

// Outcome describes what a navigation step did.
type Outcome int

const (
	// OutcomeNone means nothing moved.
	OutcomeNone Outcome = iota
	// OutcomeAdvanced means another topic became active.
	OutcomeAdvanced
	// OutcomeModuleComplete means the last topic of a module was finished.
	// The module is collapsed and no topic is active.
	OutcomeModuleComplete
	// OutcomeCourseComplete means every module of the subject is finished.
	OutcomeCourseComplete
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAdvanced:
		return "advanced"
	case OutcomeModuleComplete:
		return "module-complete"
	case OutcomeCourseComplete:
		return "course-complete"
	default:
		return "none"
	}
}

// Session is one browsing session: a selection, its controller and the
// progress made on the active subject. A Session is not safe for concurrent
// use.
type Session struct {
	ID string

	svc          *Service
	state        *selection.State
	ctrl         *selection.Controller
	tracker      *progress.Tracker
	lastFinished string
}

// Controller exposes the session's selection controller.
func (s *Session) Controller() *selection.Controller { return s.ctrl }

// Current returns the current selection.
func (s *Session) Current() selection.Selection { return s.ctrl.Current() }

// OnTopic registers the content callback for this session.
func (s *Session) OnTopic(fn selection.Notifier) { s.ctrl.OnTopic(fn) }

// SelectSubject activates a subject and starts fresh progress for it.
func (s *Session) SelectSubject(id string) error {
	if err := s.ctrl.SelectSubject(id); err != nil {
		return err
	}
	subject, err := s.svc.Catalog.Subject(id)
	if err != nil {
		return err
	}
	s.tracker = progress.NewTracker(subject)
	s.lastFinished = ""
	return nil
}

// ToggleModule opens or collapses a module of the active subject.
func (s *Session) ToggleModule(name string) error { return s.ctrl.ToggleModule(name) }

// SelectTopic records label against the open module.
func (s *Session) SelectTopic(label string) error { return s.ctrl.SelectTopic(label) }

// SelectTopicIn selects a topic that must exist in module.
func (s *Session) SelectTopicIn(module, label string) error {
	return s.ctrl.SelectTopicIn(module, label)
}

// Subject returns the active subject.
func (s *Session) Subject() (catalog.Subject, bool) {
	cur := s.ctrl.Current()
	if !cur.HasSubject() {
		return catalog.Subject{}, false
	}
	subject, err := s.svc.Catalog.Subject(cur.SubjectID)
	if err != nil {
		return catalog.Subject{}, false
	}
	return subject, true
}

// Tracker returns the active subject's progress, or nil without a subject.
func (s *Session) Tracker() *progress.Tracker { return s.tracker }

// Progress summarises the active subject's progress.
func (s *Session) Progress() progress.Snapshot {
	if s.tracker == nil {
		return progress.Snapshot{}
	}
	return s.tracker.Snapshot()
}

// Content returns the generated lesson for the active topic.
func (s *Session) Content() (content.Content, bool) {
	cur := s.ctrl.Current()
	if !cur.HasTopic() {
		return content.Content{}, false
	}
	return content.Generate(cur.Topic.Label), true
}

// position locates the active topic inside its module. ok is false when the
// topic is not one of the module's topics, as can happen after SelectTopic
// with an arbitrary label.
func (s *Session) position() (catalog.Subject, int, int, bool) {
	subject, found := s.Subject()
	if !found {
		return subject, -1, -1, false
	}
	ref := s.ctrl.Current().Topic
	mi := subject.ModuleIndex(ref.Module)
	if mi < 0 {
		return subject, -1, -1, false
	}
	ti := subject.Modules[mi].Index(ref.Label)
	return subject, mi, ti, ti >= 0
}

// MarkComplete records the active topic as done without moving.
func (s *Session) MarkComplete() error {
	cur := s.ctrl.Current()
	if !cur.HasSubject() || s.tracker == nil {
		return fmt.Errorf("app: mark complete: %w", selection.ErrInvalidState)
	}
	if !cur.HasTopic() {
		return fmt.Errorf("app: mark complete: no active topic: %w", selection.ErrNotFound)
	}
	return s.tracker.MarkComplete(cur.Topic)
}

// Next completes the active topic and moves to the following one. Finishing
// the last topic of a module collapses it, or reports the course complete
// when no unfinished module remains.
func (s *Session) Next() (Outcome, error) {
	if !s.ctrl.Current().HasSubject() || s.tracker == nil {
		return OutcomeNone, fmt.Errorf("app: next: %w", selection.ErrInvalidState)
	}
	subject, mi, ti, ok := s.position()
	if !ok {
		return OutcomeNone, nil
	}
	module := subject.Modules[mi]
	ref := selection.TopicRef{Module: module.Name, Label: module.Topics[ti]}
	if err := s.tracker.MarkComplete(ref); err != nil {
		return OutcomeNone, err
	}

	if ti+1 < len(module.Topics) {
		if err := s.ctrl.SelectTopicIn(module.Name, module.Topics[ti+1]); err != nil {
			return OutcomeNone, err
		}
		return OutcomeAdvanced, nil
	}

	if err := s.tracker.FinishModule(module.Name); err != nil {
		return OutcomeNone, err
	}
	s.lastFinished = module.Name
	log.WithFields(log.Fields{"session": s.ID, "subject": subject.ID, "module": module.Name}).Debug("module finished")

	if s.tracker.CourseComplete() {
		return OutcomeCourseComplete, nil
	}
	if s.ctrl.IsModuleOpen(module.Name) {
		if err := s.ctrl.ToggleModule(module.Name); err != nil {
			return OutcomeNone, err
		}
	}
	s.ctrl.ClearTopic()
	return OutcomeModuleComplete, nil
}

// Previous moves to the preceding topic of the same module.
func (s *Session) Previous() (Outcome, error) {
	if !s.ctrl.Current().HasSubject() {
		return OutcomeNone, fmt.Errorf("app: previous: %w", selection.ErrInvalidState)
	}
	subject, mi, ti, ok := s.position()
	if !ok || ti == 0 {
		return OutcomeNone, nil
	}
	module := subject.Modules[mi]
	if err := s.ctrl.SelectTopicIn(module.Name, module.Topics[ti-1]); err != nil {
		return OutcomeNone, err
	}
	return OutcomeAdvanced, nil
}

// NextModule opens the module after the current one and selects its first
// topic. The current module is the active topic's, or the last finished one
// when no topic is active. Empty modules are skipped.
func (s *Session) NextModule() (Outcome, error) {
	cur := s.ctrl.Current()
	if !cur.HasSubject() {
		return OutcomeNone, fmt.Errorf("app: next module: %w", selection.ErrInvalidState)
	}
	subject, _ := s.Subject()
	from := cur.Topic.Module
	if from == "" {
		from = s.lastFinished
	}
	if from == "" {
		from = cur.Module
	}
	start := 0
	if from != "" {
		start = subject.ModuleIndex(from) + 1
	}
	for i := start; i < len(subject.Modules); i++ {
		m := subject.Modules[i]
		if len(m.Topics) == 0 {
			continue
		}
		if err := s.ctrl.SelectTopicIn(m.Name, m.Topics[0]); err != nil {
			return OutcomeNone, err
		}
		return OutcomeAdvanced, nil
	}
	return OutcomeNone, nil
}

// Bookmarked reports whether the active topic is bookmarked.
func (s *Session) Bookmarked(ctx context.Context) bool {
	cur := s.ctrl.Current()
	if s.svc.Bookmarks == nil || !cur.HasTopic() {
		return false
	}
	return s.svc.Bookmarks.Has(ctx, cur.SubjectID, cur.Topic.Module, cur.Topic.Label)
}

// ToggleBookmark saves or removes a bookmark on the active topic and reports
// whether it is now bookmarked.
func (s *Session) ToggleBookmark(ctx context.Context) (bool, error) {
	if s.svc.Bookmarks == nil {
		return false, errNoBookmarks
	}
	cur := s.ctrl.Current()
	if !cur.HasTopic() {
		return false, fmt.Errorf("app: bookmark: %w", selection.ErrInvalidState)
	}
	if s.Bookmarked(ctx) {
		b := &bookmark.Bookmark{Subject: cur.SubjectID, Module: cur.Topic.Module, Topic: cur.Topic.Label}
		return false, s.svc.Bookmarks.Delete(b)
	}
	if _, err := s.svc.Lesson(cur.SubjectID, cur.Topic.Module, cur.Topic.Label); err != nil {
		return false, fmt.Errorf("app: bookmark: %w", err)
	}
	b := bookmark.New(cur.SubjectID, cur.Topic.Module, cur.Topic.Label)
	return true, s.svc.Bookmarks.Store(b)
}
