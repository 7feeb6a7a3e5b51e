// Package mcp provides the Model Context Protocol server integration for syllabus.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"

	"tableflip.dev/syllabus/pkg/app"
	"tableflip.dev/syllabus/pkg/bookmark"
	"tableflip.dev/syllabus/pkg/catalog"
	"tableflip.dev/syllabus/pkg/content"
	"tableflip.dev/syllabus/pkg/progress"
)

// defaultSessionKey is used when a request carries no client session, as
// with the stdio transport.
const defaultSessionKey = "default"

// Service keeps one browsing session per MCP client session.
type Service struct {
	App *app.Service

	// mu guards the registry only. Each clientSession serialises its own calls.
	mu       sync.Mutex
	sessions map[string]*clientSession
}

type clientSession struct {
	mu   sync.Mutex
	sess *app.Session
	// notified holds the label of the last topic content notification.
	notified string
}

// SubjectDTO is a transport-friendly projection of a subject.
type SubjectDTO struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Icon    string      `json:"icon,omitempty"`
	Color   string      `json:"color,omitempty"`
	Modules []ModuleDTO `json:"modules,omitempty"`
}

// ModuleDTO lists a module's topics.
type ModuleDTO struct {
	Name   string   `json:"name"`
	Topics []string `json:"topics"`
}

// ProgressDTO summarises completion of the active subject.
type ProgressDTO struct {
	Completed      int  `json:"completed"`
	Total          int  `json:"total"`
	Percent        int  `json:"percent"`
	CourseComplete bool `json:"courseComplete"`
}

// SelectionDTO describes a session's selection after an operation.
type SelectionDTO struct {
	Session     string           `json:"session"`
	Subject     string           `json:"subject,omitempty"`
	OpenModule  string           `json:"openModule,omitempty"`
	Topic       string           `json:"topic,omitempty"`
	TopicModule string           `json:"topicModule,omitempty"`
	Outcome     string           `json:"outcome,omitempty"`
	Progress    *ProgressDTO     `json:"progress,omitempty"`
	Content     *content.Content `json:"content,omitempty"`
}

// BookmarkDTO is a transport-friendly projection of a bookmark.
type BookmarkDTO struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	Module  string `json:"module"`
	Topic   string `json:"topic"`
	Created string `json:"created,omitempty"`
}

// NewService builds a service wrapper around the shared app service.
func NewService(a *app.Service) *Service {
	return &Service{App: a, sessions: make(map[string]*clientSession)}
}

func sessionKey(ctx context.Context) string {
	if cs := server.ClientSessionFromContext(ctx); cs != nil {
		if id := strings.TrimSpace(cs.SessionID()); id != "" {
			return id
		}
	}
	return defaultSessionKey
}

// session returns the browsing session for key, creating it on first use.
// Callers must hold s.mu.
func (s *Service) session(key string) (*clientSession, error) {
	if cs, ok := s.sessions[key]; ok {
		return cs, nil
	}
	if s.App == nil {
		return nil, errors.New("mcp: app service is not configured")
	}
	sess, err := s.App.NewSession()
	if err != nil {
		return nil, err
	}
	cs := &clientSession{sess: sess}
	sess.OnTopic(func(label string) { cs.notified = label })
	s.sessions[key] = cs
	log.WithFields(log.Fields{"client": key, "session": sess.ID}).Debug("mcp session opened")
	return cs, nil
}

// acquire returns the locked session for key. Callers must unlock cs.mu.
func (s *Service) acquire(key string) (*clientSession, error) {
	s.mu.Lock()
	cs, err := s.session(key)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	cs.mu.Lock()
	return cs, nil
}

// Forget drops the browsing session for key.
func (s *Service) Forget(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
}

// Sessions reports how many client sessions are tracked.
func (s *Service) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ListSubjects returns every subject without modules.
func (s *Service) ListSubjects() ([]SubjectDTO, error) {
	if s.App == nil || s.App.Catalog == nil {
		return nil, errors.New("mcp: catalog is not configured")
	}
	subjects := s.App.Catalog.Subjects()
	out := make([]SubjectDTO, 0, len(subjects))
	for _, subj := range subjects {
		out = append(out, SubjectDTO{ID: subj.ID, Title: subj.Title, Icon: subj.Icon, Color: subj.Color})
	}
	return out, nil
}

// Subject returns a subject with its modules and topics.
func (s *Service) Subject(id string) (*SubjectDTO, error) {
	if s.App == nil || s.App.Catalog == nil {
		return nil, errors.New("mcp: catalog is not configured")
	}
	subj, err := s.App.Catalog.Subject(id)
	if err != nil {
		return nil, err
	}
	dto := &SubjectDTO{ID: subj.ID, Title: subj.Title, Icon: subj.Icon, Color: subj.Color}
	for _, m := range subj.Modules {
		topics := m.Topics
		if topics == nil {
			topics = []string{}
		}
		dto.Modules = append(dto.Modules, ModuleDTO{Name: m.Name, Topics: topics})
	}
	return dto, nil
}

// with runs fn against the session for key while holding that session's lock.
func (s *Service) with(key string, fn func(cs *clientSession) (app.Outcome, error)) (*SelectionDTO, error) {
	cs, err := s.acquire(key)
	if err != nil {
		return nil, err
	}
	defer cs.mu.Unlock()
	cs.notified = ""
	outcome, err := fn(cs)
	if err != nil {
		return nil, err
	}
	dto := toSelectionDTO(cs)
	if outcome != app.OutcomeNone {
		dto.Outcome = outcome.String()
	}
	return dto, nil
}

// SelectSubject activates a subject for the session.
func (s *Service) SelectSubject(key, id string) (*SelectionDTO, error) {
	return s.with(key, func(cs *clientSession) (app.Outcome, error) {
		return app.OutcomeNone, cs.sess.SelectSubject(id)
	})
}

// ToggleModule opens or collapses a module of the active subject.
func (s *Service) ToggleModule(key, name string) (*SelectionDTO, error) {
	return s.with(key, func(cs *clientSession) (app.Outcome, error) {
		return app.OutcomeNone, cs.sess.ToggleModule(name)
	})
}

// SelectTopic selects a topic. With a module the topic must exist there;
// without one it is recorded against the open module as given.
func (s *Service) SelectTopic(key, module, label string) (*SelectionDTO, error) {
	return s.with(key, func(cs *clientSession) (app.Outcome, error) {
		if strings.TrimSpace(module) == "" {
			return app.OutcomeNone, cs.sess.SelectTopic(label)
		}
		return app.OutcomeNone, cs.sess.SelectTopicIn(module, label)
	})
}

// Current reports the session's selection.
func (s *Service) Current(key string) (*SelectionDTO, error) {
	return s.with(key, func(*clientSession) (app.Outcome, error) {
		return app.OutcomeNone, nil
	})
}

// NextTopic completes the active topic and advances.
func (s *Service) NextTopic(key string) (*SelectionDTO, error) {
	return s.with(key, func(cs *clientSession) (app.Outcome, error) {
		return cs.sess.Next()
	})
}

// PreviousTopic moves back within the open module.
func (s *Service) PreviousTopic(key string) (*SelectionDTO, error) {
	return s.with(key, func(cs *clientSession) (app.Outcome, error) {
		return cs.sess.Previous()
	})
}

// NextModule jumps to the first topic of the following module.
func (s *Service) NextModule(key string) (*SelectionDTO, error) {
	return s.with(key, func(cs *clientSession) (app.Outcome, error) {
		return cs.sess.NextModule()
	})
}

// Content returns the lesson for the session's active topic.
func (s *Service) Content(key string) (*content.Content, error) {
	cs, err := s.acquire(key)
	if err != nil {
		return nil, err
	}
	defer cs.mu.Unlock()
	c, ok := cs.sess.Content()
	if !ok {
		return nil, fmt.Errorf("mcp: no active topic: %w", catalog.ErrNotFound)
	}
	return &c, nil
}

// ListBookmarks returns every saved bookmark.
func (s *Service) ListBookmarks(ctx context.Context) ([]BookmarkDTO, error) {
	if s.App == nil {
		return nil, errors.New("mcp: app service is not configured")
	}
	all, err := s.App.ListBookmarks(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]BookmarkDTO, 0, len(all))
	for _, b := range all {
		out = append(out, toBookmarkDTO(b))
	}
	return out, nil
}

// ToggleBookmark saves or removes a bookmark on the session's active topic.
func (s *Service) ToggleBookmark(ctx context.Context, key string) (bool, *SelectionDTO, error) {
	var on bool
	dto, err := s.with(key, func(cs *clientSession) (app.Outcome, error) {
		var err error
		on, err = cs.sess.ToggleBookmark(ctx)
		return app.OutcomeNone, err
	})
	return on, dto, err
}

func toSelectionDTO(cs *clientSession) *SelectionDTO {
	cur := cs.sess.Current()
	dto := &SelectionDTO{
		Session:     cs.sess.ID,
		Subject:     cur.SubjectID,
		OpenModule:  cur.Module,
		Topic:       cur.Topic.Label,
		TopicModule: cur.Topic.Module,
	}
	if cur.HasSubject() {
		dto.Progress = toProgressDTO(cs.sess.Progress())
	}
	if cs.notified != "" {
		c := content.Generate(cs.notified)
		dto.Content = &c
	}
	return dto
}

func toProgressDTO(snap progress.Snapshot) *ProgressDTO {
	return &ProgressDTO{
		Completed:      snap.Completed,
		Total:          snap.Total,
		Percent:        snap.Percent,
		CourseComplete: snap.CourseComplete,
	}
}

func toBookmarkDTO(b *bookmark.Bookmark) BookmarkDTO {
	dto := BookmarkDTO{ID: b.ID, Subject: b.Subject, Module: b.Module, Topic: b.Topic}
	if !b.Created.IsZero() {
		dto.Created = b.Created.String()
	}
	return dto
}
