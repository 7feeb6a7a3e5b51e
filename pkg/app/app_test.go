package app

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/syllabus/pkg/bookmark"
	"tableflip.dev/syllabus/pkg/catalog"
	"tableflip.dev/syllabus/pkg/progress"
	"tableflip.dev/syllabus/pkg/selection"
	"tableflip.dev/syllabus/pkg/store"
)

type memoryPersistence struct {
	mu    sync.Mutex
	items map[string]*bookmark.Bookmark
}

func newMemoryPersistence() *memoryPersistence {
	return &memoryPersistence{items: make(map[string]*bookmark.Bookmark)}
}

func (m *memoryPersistence) List(_ context.Context) []*bookmark.Bookmark {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*bookmark.Bookmark, 0, len(m.items))
	for _, b := range m.items {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memoryPersistence) ListSubject(ctx context.Context, subject string) []*bookmark.Bookmark {
	var out []*bookmark.Bookmark
	for _, b := range m.List(ctx) {
		if b.Subject == subject {
			out = append(out, b)
		}
	}
	return out
}

func (m *memoryPersistence) Get(_ context.Context, id string) (*bookmark.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memoryPersistence) Has(_ context.Context, subject, module, topic string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.items[bookmark.KeyFor(subject, module, topic)]
	return ok
}

func (m *memoryPersistence) Store(b *bookmark.Bookmark) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *b
	m.items[b.ID] = &cp
	return nil
}

func (m *memoryPersistence) Delete(b *bookmark.Bookmark) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := b.ID
	if id == "" {
		id = bookmark.KeyFor(b.Subject, b.Module, b.Topic)
	}
	if _, ok := m.items[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memoryPersistence) Watch(ctx context.Context) (<-chan store.Event, error) {
	ch := make(chan store.Event)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	c, err := catalog.New(
		catalog.Subject{
			ID: "python",
			Modules: []catalog.Module{
				{Name: "Core Python", Topics: []string{"Variables", "Loops"}},
				{Name: "Empty"},
				{Name: "Backend Development", Topics: []string{"Loops"}},
			},
		},
		catalog.Subject{
			ID:      "mysql",
			Modules: []catalog.Module{{Name: "Basics", Topics: []string{"SELECT Statement"}}},
		},
	)
	require.NoError(t, err)
	return &Service{Catalog: c, Bookmarks: newMemoryPersistence()}
}

func newTestSession(t *testing.T, svc *Service) *Session {
	t.Helper()
	sess, err := svc.NewSession()
	require.NoError(t, err)
	return sess
}

func TestSessionsAreIndependent(t *testing.T) {
	svc := newTestService(t)
	a := newTestSession(t, svc)
	b := newTestSession(t, svc)
	assert.NotEqual(t, a.ID, b.ID)

	require.NoError(t, a.SelectSubject("python"))
	assert.True(t, a.Current().HasSubject())
	assert.False(t, b.Current().HasSubject())
}

func TestNewSessionRequiresCatalog(t *testing.T) {
	_, err := (&Service{}).NewSession()
	assert.Error(t, err)
}

func TestNextWalksThroughModule(t *testing.T) {
	svc := newTestService(t)
	sess := newTestSession(t, svc)
	var seen []string
	sess.OnTopic(func(label string) { seen = append(seen, label) })

	require.NoError(t, sess.SelectSubject("python"))
	require.NoError(t, sess.ToggleModule("Core Python"))
	require.NoError(t, sess.SelectTopic("Variables"))

	out, err := sess.Next()
	require.NoError(t, err)
	assert.Equal(t, OutcomeAdvanced, out)
	assert.Equal(t, selection.TopicRef{Module: "Core Python", Label: "Loops"}, sess.Current().Topic)

	out, err = sess.Next()
	require.NoError(t, err)
	assert.Equal(t, OutcomeModuleComplete, out)
	cur := sess.Current()
	assert.False(t, cur.HasModule())
	assert.False(t, cur.HasTopic())
	assert.Equal(t, []string{"Variables", "Loops"}, seen)

	snap := sess.Progress()
	assert.Equal(t, 2, snap.Completed)
	assert.Equal(t, 3, snap.Total)
	assert.Equal(t, 67, snap.Percent)
	assert.True(t, sess.Tracker().ModuleComplete("Core Python"))
}

func TestNextModuleSkipsEmptyModules(t *testing.T) {
	svc := newTestService(t)
	sess := newTestSession(t, svc)
	require.NoError(t, sess.SelectSubject("python"))
	require.NoError(t, sess.SelectTopicIn("Core Python", "Loops"))

	out, err := sess.Next()
	require.NoError(t, err)
	require.Equal(t, OutcomeModuleComplete, out)

	out, err = sess.NextModule()
	require.NoError(t, err)
	assert.Equal(t, OutcomeAdvanced, out)
	cur := sess.Current()
	assert.Equal(t, "Backend Development", cur.Module)
	assert.Equal(t, selection.TopicRef{Module: "Backend Development", Label: "Loops"}, cur.Topic)
	assert.False(t, sess.Controller().IsTopicActive("Core Python", "Loops"))

	out, err = sess.NextModule()
	require.NoError(t, err)
	assert.Equal(t, OutcomeNone, out)
}

func TestNextModuleFromFreshSubject(t *testing.T) {
	svc := newTestService(t)
	sess := newTestSession(t, svc)
	require.NoError(t, sess.SelectSubject("python"))

	out, err := sess.NextModule()
	require.NoError(t, err)
	assert.Equal(t, OutcomeAdvanced, out)
	assert.Equal(t, selection.TopicRef{Module: "Core Python", Label: "Variables"}, sess.Current().Topic)
}

func TestCourseComplete(t *testing.T) {
	svc := newTestService(t)
	sess := newTestSession(t, svc)
	require.NoError(t, sess.SelectSubject("mysql"))
	require.NoError(t, sess.SelectTopicIn("Basics", "SELECT Statement"))

	out, err := sess.Next()
	require.NoError(t, err)
	assert.Equal(t, OutcomeCourseComplete, out)
	assert.True(t, sess.Progress().CourseComplete)
	assert.Equal(t, 100, sess.Progress().Percent)
}

func TestSelectSubjectResetsProgress(t *testing.T) {
	svc := newTestService(t)
	sess := newTestSession(t, svc)
	require.NoError(t, sess.SelectSubject("python"))
	require.NoError(t, sess.SelectTopicIn("Core Python", "Variables"))
	require.NoError(t, sess.MarkComplete())
	assert.Equal(t, 1, sess.Progress().Completed)

	require.NoError(t, sess.SelectSubject("python"))
	assert.Zero(t, sess.Progress().Completed)

	assert.ErrorIs(t, sess.SelectSubject("rust"), catalog.ErrNotFound)
	assert.Equal(t, "python", sess.Progress().SubjectID)
}

func TestNavigationWithoutSubject(t *testing.T) {
	svc := newTestService(t)
	sess := newTestSession(t, svc)

	_, err := sess.Next()
	assert.ErrorIs(t, err, selection.ErrInvalidState)
	_, err = sess.Previous()
	assert.ErrorIs(t, err, selection.ErrInvalidState)
	_, err = sess.NextModule()
	assert.ErrorIs(t, err, selection.ErrInvalidState)
	assert.ErrorIs(t, sess.MarkComplete(), selection.ErrInvalidState)
	assert.Equal(t, progress.Snapshot{}, sess.Progress())
}

func TestNextOnUnknownLabelIsNoop(t *testing.T) {
	svc := newTestService(t)
	sess := newTestSession(t, svc)
	require.NoError(t, sess.SelectSubject("python"))
	require.NoError(t, sess.ToggleModule("Core Python"))
	require.NoError(t, sess.SelectTopic("Not In Catalog"))

	out, err := sess.Next()
	require.NoError(t, err)
	assert.Equal(t, OutcomeNone, out)
	assert.Equal(t, "Not In Catalog", sess.Current().Topic.Label)
	assert.Zero(t, sess.Progress().Completed)
}

func TestPrevious(t *testing.T) {
	svc := newTestService(t)
	sess := newTestSession(t, svc)
	require.NoError(t, sess.SelectSubject("python"))
	require.NoError(t, sess.SelectTopicIn("Core Python", "Loops"))

	out, err := sess.Previous()
	require.NoError(t, err)
	assert.Equal(t, OutcomeAdvanced, out)
	assert.Equal(t, "Variables", sess.Current().Topic.Label)

	out, err = sess.Previous()
	require.NoError(t, err)
	assert.Equal(t, OutcomeNone, out)
	assert.Equal(t, "Variables", sess.Current().Topic.Label)
}

func TestContentFollowsTopic(t *testing.T) {
	svc := newTestService(t)
	sess := newTestSession(t, svc)
	_, ok := sess.Content()
	assert.False(t, ok)

	require.NoError(t, sess.SelectSubject("python"))
	require.NoError(t, sess.SelectTopicIn("Core Python", "Loops"))
	c, ok := sess.Content()
	require.True(t, ok)
	assert.Equal(t, "Loops", c.Title)
}

func TestToggleBookmark(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	sess := newTestSession(t, svc)

	_, err := sess.ToggleBookmark(ctx)
	assert.ErrorIs(t, err, selection.ErrInvalidState)

	require.NoError(t, sess.SelectSubject("python"))
	require.NoError(t, sess.SelectTopicIn("Backend Development", "Loops"))

	on, err := sess.ToggleBookmark(ctx)
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, sess.Bookmarked(ctx))
	assert.False(t, svc.Bookmarks.Has(ctx, "python", "Core Python", "Loops"))

	on, err = sess.ToggleBookmark(ctx)
	require.NoError(t, err)
	assert.False(t, on)
	assert.False(t, sess.Bookmarked(ctx))
}

func TestToggleBookmarkRejectsUnknownTopic(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	sess := newTestSession(t, svc)
	require.NoError(t, sess.SelectSubject("python"))

	require.NoError(t, sess.SelectTopic("Not A Real Topic"))
	on, err := sess.ToggleBookmark(ctx)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.False(t, on)

	require.NoError(t, sess.ToggleModule("Core Python"))
	require.NoError(t, sess.SelectTopic("Decorators"))
	_, err = sess.ToggleBookmark(ctx)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	all, err := svc.ListBookmarks(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	// A free-text label that does name a topic of the open module is accepted.
	require.NoError(t, sess.SelectTopic("Loops"))
	on, err = sess.ToggleBookmark(ctx)
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, svc.Bookmarks.Has(ctx, "python", "Core Python", "Loops"))
}

func TestToggleBookmarkWithoutStore(t *testing.T) {
	svc := newTestService(t)
	svc.Bookmarks = nil
	sess := newTestSession(t, svc)
	require.NoError(t, sess.SelectSubject("python"))
	require.NoError(t, sess.SelectTopicIn("Core Python", "Loops"))

	_, err := sess.ToggleBookmark(context.Background())
	assert.Error(t, err)
	assert.False(t, sess.Bookmarked(context.Background()))
}

func TestServiceBookmarks(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.AddBookmark(ctx, "python", "Core Python", "Decorators")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	b, err := svc.AddBookmark(ctx, "python", "Core Python", "Loops")
	require.NoError(t, err)
	again, err := svc.AddBookmark(ctx, "python", "Core Python", "Loops")
	require.NoError(t, err)
	assert.Equal(t, b.ID, again.ID)

	all, err := svc.ListBookmarks(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	removed, err := svc.RemoveBookmark(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Loops", removed.Topic)

	_, err = svc.RemoveBookmark(ctx, b.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestLesson(t *testing.T) {
	svc := newTestService(t)
	c, err := svc.Lesson("mysql", "Basics", "SELECT Statement")
	require.NoError(t, err)
	assert.Equal(t, "SELECT Statement", c.Title)

	_, err = svc.Lesson("mysql", "Basics", "JOIN")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	_, err = svc.Lesson("mysql", "Advanced", "JOIN")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "none", OutcomeNone.String())
	assert.Equal(t, "advanced", OutcomeAdvanced.String())
	assert.Equal(t, "module-complete", OutcomeModuleComplete.String())
	assert.Equal(t, "course-complete", OutcomeCourseComplete.String())
}
