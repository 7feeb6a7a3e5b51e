package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"tableflip.dev/syllabus/pkg/bookmark"
	"tableflip.dev/syllabus/pkg/catalog"
	"tableflip.dev/syllabus/pkg/content"
	"tableflip.dev/syllabus/pkg/selection"
	"tableflip.dev/syllabus/pkg/store"
)

// Service provides the catalog and bookmark operations shared by the TUI,
// CLI and MCP surfaces.
type Service struct {
	Catalog   *catalog.Catalog
	Bookmarks store.Persistence
}

var errNoBookmarks = errors.New("app: no bookmark store configured")

// NewSession starts an independent browsing session.
func (s *Service) NewSession() (*Session, error) {
	if s.Catalog == nil {
		return nil, errors.New("app: no catalog configured")
	}
	state := selection.NewState()
	sess := &Session{
		ID:    uuid.NewString(),
		svc:   s,
		state: state,
		ctrl:  selection.NewController(s.Catalog, state),
	}
	log.WithField("session", sess.ID).Debug("session started")
	return sess, nil
}

// Subjects lists the catalog's subjects in tab order.
func (s *Service) Subjects() []catalog.SubjectRef {
	return s.Catalog.ListSubjects()
}

// Modules lists the modules of a subject.
func (s *Service) Modules(subjectID string) ([]string, error) {
	return s.Catalog.ListModules(subjectID)
}

// Topics lists the topics of a subject module.
func (s *Service) Topics(subjectID, module string) ([]string, error) {
	return s.Catalog.ListTopics(subjectID, module)
}

// Lesson validates a subject/module/topic triple and returns its content.
func (s *Service) Lesson(subjectID, module, topic string) (content.Content, error) {
	topics, err := s.Catalog.ListTopics(subjectID, module)
	if err != nil {
		return content.Content{}, err
	}
	for _, t := range topics {
		if t == topic {
			return content.Generate(topic), nil
		}
	}
	return content.Content{}, fmt.Errorf("topic %q in module %q: %w", topic, module, catalog.ErrNotFound)
}

// ListBookmarks returns every saved bookmark.
func (s *Service) ListBookmarks(ctx context.Context) ([]*bookmark.Bookmark, error) {
	if s.Bookmarks == nil {
		return nil, errNoBookmarks
	}
	return s.Bookmarks.List(ctx), nil
}

// AddBookmark saves a bookmark for an existing topic.
func (s *Service) AddBookmark(ctx context.Context, subjectID, module, topic string) (*bookmark.Bookmark, error) {
	if s.Bookmarks == nil {
		return nil, errNoBookmarks
	}
	if _, err := s.Lesson(subjectID, module, topic); err != nil {
		return nil, err
	}
	if s.Bookmarks.Has(ctx, subjectID, module, topic) {
		return s.Bookmarks.Get(ctx, bookmark.KeyFor(subjectID, module, topic))
	}
	b := bookmark.New(subjectID, module, topic)
	if err := s.Bookmarks.Store(b); err != nil {
		return nil, err
	}
	return b, nil
}

// RemoveBookmark deletes a bookmark by id.
func (s *Service) RemoveBookmark(ctx context.Context, id string) (*bookmark.Bookmark, error) {
	if s.Bookmarks == nil {
		return nil, errNoBookmarks
	}
	b, err := s.Bookmarks.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Bookmarks.Delete(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Watch subscribes to bookmark change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Bookmarks == nil {
		return nil, errNoBookmarks
	}
	return s.Bookmarks.Watch(ctx)
}
