package events

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/syllabus/pkg/store"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// SubjectSelectMsg is emitted when the user activates a subject tab.
type SubjectSelectMsg struct {
	Component ComponentID
	SubjectID string
}

// Describe renders the selection in a human-friendly format for logs.
func (m SubjectSelectMsg) Describe() string {
	return fmt.Sprintf(`subject:%q`, m.SubjectID)
}

// ModuleToggleMsg is emitted when the user opens or collapses a module.
type ModuleToggleMsg struct {
	Component ComponentID
	Module    string
}

// Describe implements the logging helper.
func (m ModuleToggleMsg) Describe() string {
	return fmt.Sprintf(`module:%q`, m.Module)
}

// TopicSelectMsg is emitted when the user activates a topic row.
type TopicSelectMsg struct {
	Component ComponentID
	Module    string
	Topic     string
}

// Describe implements the logging helper.
func (m TopicSelectMsg) Describe() string {
	return fmt.Sprintf(`module:%q topic:%q`, m.Module, m.Topic)
}

// BookmarksChangedMsg reports that saved bookmarks changed on disk.
type BookmarksChangedMsg struct {
	Event store.Event
}

// Describe implements the logging helper.
func (m BookmarksChangedMsg) Describe() string {
	return fmt.Sprintf(`subject:%q type:%d`, m.Event.Subject, m.Event.Type)
}

// SubjectSelectCmd wraps SubjectSelectMsg into a tea.Cmd.
func SubjectSelectCmd(component ComponentID, id string) tea.Cmd {
	return func() tea.Msg {
		return SubjectSelectMsg{Component: component, SubjectID: id}
	}
}

// ModuleToggleCmd wraps ModuleToggleMsg into a tea.Cmd.
func ModuleToggleCmd(component ComponentID, module string) tea.Cmd {
	return func() tea.Msg {
		return ModuleToggleMsg{Component: component, Module: module}
	}
}

// TopicSelectCmd wraps TopicSelectMsg into a tea.Cmd.
func TopicSelectCmd(component ComponentID, module, topic string) tea.Cmd {
	return func() tea.Msg {
		return TopicSelectMsg{Component: component, Module: module, Topic: topic}
	}
}

// WatchBookmarksCmd waits for the next event on ch. It returns nil once the
// channel is closed so the subscription ends with it.
func WatchBookmarksCmd(ch <-chan store.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return BookmarksChangedMsg{Event: ev}
	}
}
