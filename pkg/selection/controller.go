package selection

import (
	"fmt"
	"slices"

	log "github.com/sirupsen/logrus"
)

// Tree is the read-only catalog view the controller validates against.
// *catalog.Catalog satisfies it.
type Tree interface {
	HasSubject(id string) bool
	HasModule(subjectID, moduleName string) bool
	ListTopics(subjectID, moduleName string) ([]string, error)
}

// Notifier receives the raw label of every selected topic.
type Notifier func(label string)

// Controller applies validated transitions to a State. A failed transition
// leaves the state untouched.
type Controller struct {
	tree   Tree
	state  *State
	notify Notifier
}

// NewController binds a controller to tree and state. A nil state gets a fresh one.
func NewController(tree Tree, state *State) *Controller {
	if state == nil {
		state = NewState()
	}
	return &Controller{tree: tree, state: state}
}

// OnTopic registers the content callback, replacing any previous one.
// Passing nil unregisters it.
func (c *Controller) OnTopic(fn Notifier) {
	c.notify = fn
}

// Current returns the current selection.
func (c *Controller) Current() Selection {
	return c.state.snapshot()
}

// SelectSubject activates a subject. The open module and active topic are
// always cleared, even when id is already active.
func (c *Controller) SelectSubject(id string) error {
	if !c.tree.HasSubject(id) {
		return fmt.Errorf("select subject %q: %w", id, ErrNotFound)
	}
	c.state.subject = id
	c.state.module = ""
	c.state.topic = TopicRef{}
	c.state.picked = false
	log.WithField("subject", id).Debug("subject selected")
	return nil
}

// ToggleModule collapses name if it is open, otherwise opens it in place of
// whichever module was open. The active topic is kept.
func (c *Controller) ToggleModule(name string) error {
	if c.state.subject == "" {
		return fmt.Errorf("toggle module %q: %w", name, ErrInvalidState)
	}
	if !c.tree.HasModule(c.state.subject, name) {
		return fmt.Errorf("toggle module %q in %q: %w", name, c.state.subject, ErrNotFound)
	}
	if c.state.module == name {
		c.state.module = ""
	} else {
		c.state.module = name
	}
	log.WithFields(log.Fields{"subject": c.state.subject, "module": c.state.module}).Debug("module toggled")
	return nil
}

// SelectTopic records label against the open module and notifies the content
// callback. The label is not checked against the module's topics.
func (c *Controller) SelectTopic(label string) error {
	if c.state.subject == "" {
		return fmt.Errorf("select topic %q: %w", label, ErrInvalidState)
	}
	c.setTopic(TopicRef{Module: c.state.module, Label: label})
	return nil
}

// SelectTopicIn selects a topic that must exist in module. The module is
// opened if it is not already.
func (c *Controller) SelectTopicIn(module, label string) error {
	if c.state.subject == "" {
		return fmt.Errorf("select topic %q: %w", label, ErrInvalidState)
	}
	topics, err := c.tree.ListTopics(c.state.subject, module)
	if err != nil {
		return fmt.Errorf("select topic %q: %w", label, err)
	}
	if !slices.Contains(topics, label) {
		return fmt.Errorf("select topic %q in module %q: %w", label, module, ErrNotFound)
	}
	c.state.module = module
	c.setTopic(TopicRef{Module: module, Label: label})
	return nil
}

// ClearTopic unsets the active topic without notifying.
func (c *Controller) ClearTopic() {
	c.state.topic = TopicRef{}
	c.state.picked = false
}

// IsSubjectActive reports whether id is the active subject.
func (c *Controller) IsSubjectActive(id string) bool {
	return id != "" && c.state.subject == id
}

// IsModuleOpen reports whether name is the expanded module.
func (c *Controller) IsModuleOpen(name string) bool {
	return name != "" && c.state.module == name
}

// IsTopicActive reports whether the topic label inside module is the active one.
func (c *Controller) IsTopicActive(module, label string) bool {
	return c.state.picked && c.state.topic == TopicRef{Module: module, Label: label}
}

func (c *Controller) setTopic(ref TopicRef) {
	c.state.topic = ref
	c.state.picked = true
	log.WithFields(log.Fields{"subject": c.state.subject, "module": ref.Module, "topic": ref.Label}).Debug("topic selected")
	if c.notify != nil {
		c.notify(ref.Label)
	}
}
