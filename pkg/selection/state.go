// Package selection implements the browsing state machine: which subject is
// active, which module is expanded and which topic was picked last.
package selection

import (
	"errors"

	"tableflip.dev/syllabus/pkg/catalog"
)

var (
	// ErrInvalidState reports a transition that needs an active subject.
	ErrInvalidState = errors.New("selection: no active subject")
	// ErrNotFound is catalog.ErrNotFound, re-exported for callers that only
	// import this package.
	ErrNotFound = catalog.ErrNotFound
)

// TopicRef identifies a topic by its module and label. Labels repeat across
// modules, so the pair is what decides highlighting.
type TopicRef struct {
	Module string
	Label  string
}

// IsZero reports whether the ref is unset.
func (r TopicRef) IsZero() bool {
	return r.Module == "" && r.Label == ""
}

// Selection is a snapshot of the state tuple. Empty subject and module mean
// unset. A topic is tracked separately so an empty label can still be active.
type Selection struct {
	SubjectID string
	Module    string
	Topic     TopicRef

	picked bool
}

// HasSubject reports whether a subject is active.
func (s Selection) HasSubject() bool { return s.SubjectID != "" }

// HasModule reports whether a module is expanded.
func (s Selection) HasModule() bool { return s.Module != "" }

// HasTopic reports whether a topic is active.
func (s Selection) HasTopic() bool { return s.picked }

// State is the mutable selection owned by one browsing session. It is only
// changed through a Controller and is not safe for concurrent use.
type State struct {
	subject string
	module  string
	topic   TopicRef
	picked  bool
}

// NewState returns an all-unset state.
func NewState() *State {
	return &State{}
}

func (s *State) snapshot() Selection {
	return Selection{SubjectID: s.subject, Module: s.module, Topic: s.topic, picked: s.picked}
}
