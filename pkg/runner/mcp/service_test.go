package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/syllabus/pkg/app"
	"tableflip.dev/syllabus/pkg/catalog"
	"tableflip.dev/syllabus/pkg/selection"
	"tableflip.dev/syllabus/pkg/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	c, err := catalog.New(
		catalog.Subject{
			ID:    "python",
			Title: "Python Programming",
			Color: "#3776ab",
			Modules: []catalog.Module{
				{Name: "Core Python", Topics: []string{"Variables", "Loops"}},
				{Name: "Backend Development", Topics: []string{"Loops"}},
			},
		},
		catalog.Subject{
			ID:      "mysql",
			Modules: []catalog.Module{{Name: "Basics", Topics: []string{"SELECT Statement"}}},
		},
	)
	require.NoError(t, err)
	p, err := store.Load(store.StaticConfig{Path: t.TempDir()})
	require.NoError(t, err)
	return NewService(&app.Service{Catalog: c, Bookmarks: p})
}

func TestListSubjectsAndDetail(t *testing.T) {
	svc := newTestService(t)

	subjects, err := svc.ListSubjects()
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "python", subjects[0].ID)
	assert.Equal(t, "Python Programming", subjects[0].Title)
	assert.Empty(t, subjects[0].Modules)
	assert.Equal(t, "Mysql", subjects[1].Title)

	detail, err := svc.Subject("python")
	require.NoError(t, err)
	require.Len(t, detail.Modules, 2)
	assert.Equal(t, []string{"Variables", "Loops"}, detail.Modules[0].Topics)

	_, err = svc.Subject("rust")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestSelectionFlowCarriesContent(t *testing.T) {
	svc := newTestService(t)

	dto, err := svc.SelectSubject("a", "python")
	require.NoError(t, err)
	assert.Equal(t, "python", dto.Subject)
	assert.Nil(t, dto.Content)
	require.NotNil(t, dto.Progress)
	assert.Equal(t, 3, dto.Progress.Total)

	dto, err = svc.ToggleModule("a", "Core Python")
	require.NoError(t, err)
	assert.Equal(t, "Core Python", dto.OpenModule)

	dto, err = svc.SelectTopic("a", "", "Loops")
	require.NoError(t, err)
	assert.Equal(t, "Loops", dto.Topic)
	assert.Equal(t, "Core Python", dto.TopicModule)
	require.NotNil(t, dto.Content)
	assert.Equal(t, "Loops", dto.Content.Title)

	// Reading the selection does not repeat the notification.
	dto, err = svc.Current("a")
	require.NoError(t, err)
	assert.Nil(t, dto.Content)
	assert.Equal(t, "Loops", dto.Topic)

	c, err := svc.Content("a")
	require.NoError(t, err)
	assert.Equal(t, "Loops", c.Title)
}

func TestSessionsAreIsolatedPerClient(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.SelectSubject("a", "python")
	require.NoError(t, err)
	_, err = svc.SelectSubject("b", "mysql")
	require.NoError(t, err)
	assert.Equal(t, 2, svc.Sessions())

	a, err := svc.Current("a")
	require.NoError(t, err)
	b, err := svc.Current("b")
	require.NoError(t, err)
	assert.Equal(t, "python", a.Subject)
	assert.Equal(t, "mysql", b.Subject)
	assert.NotEqual(t, a.Session, b.Session)

	svc.Forget("a")
	assert.Equal(t, 1, svc.Sessions())
	a, err = svc.Current("a")
	require.NoError(t, err)
	assert.Empty(t, a.Subject)
}

func TestSelectTopicErrors(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.SelectTopic("a", "", "Loops")
	assert.ErrorIs(t, err, selection.ErrInvalidState)

	_, err = svc.SelectSubject("a", "python")
	require.NoError(t, err)
	_, err = svc.SelectTopic("a", "Core Python", "Decorators")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = svc.Content("a")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestNextTopicReportsOutcome(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.SelectSubject("a", "python")
	require.NoError(t, err)
	_, err = svc.SelectTopic("a", "Core Python", "Variables")
	require.NoError(t, err)

	dto, err := svc.NextTopic("a")
	require.NoError(t, err)
	assert.Equal(t, "advanced", dto.Outcome)
	assert.Equal(t, "Loops", dto.Topic)
	require.NotNil(t, dto.Content)

	dto, err = svc.NextTopic("a")
	require.NoError(t, err)
	assert.Equal(t, "module-complete", dto.Outcome)
	assert.Empty(t, dto.Topic)
	assert.Empty(t, dto.OpenModule)

	dto, err = svc.NextModule("a")
	require.NoError(t, err)
	assert.Equal(t, "Backend Development", dto.TopicModule)

	dto, err = svc.NextTopic("a")
	require.NoError(t, err)
	assert.Equal(t, "course-complete", dto.Outcome)
	assert.True(t, dto.Progress.CourseComplete)
}

func TestToggleBookmarkAndList(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	_, err := svc.SelectSubject("a", "python")
	require.NoError(t, err)
	_, err = svc.SelectTopic("a", "Backend Development", "Loops")
	require.NoError(t, err)

	on, _, err := svc.ToggleBookmark(ctx, "a")
	require.NoError(t, err)
	assert.True(t, on)

	bookmarks, err := svc.ListBookmarks(ctx)
	require.NoError(t, err)
	require.Len(t, bookmarks, 1)
	assert.Equal(t, "Backend Development", bookmarks[0].Module)
	assert.NotEmpty(t, bookmarks[0].Created)

	on, _, err = svc.ToggleBookmark(ctx, "a")
	require.NoError(t, err)
	assert.False(t, on)
}

func TestToggleBookmarkRejectsFreeTextTopic(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	_, err := svc.SelectSubject("a", "python")
	require.NoError(t, err)
	dto, err := svc.SelectTopic("a", "", "Not A Real Topic")
	require.NoError(t, err)
	assert.Equal(t, "Not A Real Topic", dto.Topic)
	assert.Empty(t, dto.TopicModule)

	on, _, err := svc.ToggleBookmark(ctx, "a")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.False(t, on)

	bookmarks, err := svc.ListBookmarks(ctx)
	require.NoError(t, err)
	assert.Empty(t, bookmarks)
}

func TestClientsDoNotBlockEachOther(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.SelectSubject("a", "python")
	require.NoError(t, err)

	cs, err := svc.acquire("a")
	require.NoError(t, err)
	defer cs.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		_, err := svc.SelectSubject("b", "mysql")
		done <- err
	}()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("client b waited on client a")
	}
	assert.Equal(t, 2, svc.Sessions())
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (*mcp.CallToolResult, map[string]any) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)

	var text string
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		text = c.Text
	case *mcp.TextContent:
		text = c.Text
	default:
		t.Fatalf("unexpected content %T", c)
	}
	if res.IsError {
		return res, map[string]any{"error": text}
	}
	out := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	return res, out
}

func TestToolHandlers(t *testing.T) {
	svc := newTestService(t)

	res, out := callTool(t, selectSubjectHandler(svc), map[string]any{"subject": "python"})
	assert.False(t, res.IsError)
	assert.Equal(t, "python", out["subject"])

	res, out = callTool(t, selectTopicHandler(svc), map[string]any{"module": "Core Python", "topic": "Loops"})
	assert.False(t, res.IsError)
	assert.Equal(t, "Loops", out["topic"])
	assert.Contains(t, out, "content")

	res, _ = callTool(t, selectSubjectHandler(svc), map[string]any{"subject": "rust"})
	assert.True(t, res.IsError)

	res, _ = callTool(t, selectSubjectHandler(svc), map[string]any{})
	assert.True(t, res.IsError)

	res, out = callTool(t, getContentHandler(svc), map[string]any{"subject": "mysql", "module": "Basics", "topic": "SELECT Statement"})
	assert.False(t, res.IsError)
	assert.Equal(t, "SELECT Statement", out["title"])

	res, _ = callTool(t, getContentHandler(svc), map[string]any{"subject": "mysql"})
	assert.True(t, res.IsError)

	res, out = callTool(t, listSubjectsHandler(svc), nil)
	assert.False(t, res.IsError)
	assert.EqualValues(t, 2, out["count"])
}

func TestTemplateArg(t *testing.T) {
	assert.Equal(t, "python", templateArg("python"))
	assert.Equal(t, "python", templateArg([]string{"python", "mysql"}))
	assert.Equal(t, "", templateArg(nil))
	assert.Equal(t, "", templateArg([]string{}))
}
