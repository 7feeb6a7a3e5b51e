package list

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/syllabus/pkg/catalog"
)

func fixture(t *testing.T) *catalog.Catalog {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	return catalog.MustNew(
		catalog.Subject{
			ID:    "python",
			Title: "Python Programming",
			Modules: []catalog.Module{
				{Name: "Core Python", Topics: []string{"Variables", "Loops"}},
				{Name: "Backend Development", Topics: []string{"Loops"}},
			},
		},
		catalog.Subject{ID: "mysql", Modules: []catalog.Module{{Name: "Basics", Topics: []string{"SELECT Statement"}}}},
	)
}

func TestSubjectsPretty(t *testing.T) {
	var buf bytes.Buffer
	s := Subjects{Catalog: fixture(t), Out: &buf}
	require.NoError(t, s.Do(context.Background()))
	assert.Contains(t, buf.String(), "Python Programming")
	assert.Contains(t, buf.String(), "mysql")
}

func TestSubjectsJSON(t *testing.T) {
	var buf bytes.Buffer
	s := Subjects{Catalog: fixture(t), JSON: true, Out: &buf}
	require.NoError(t, s.Do(context.Background()))

	var got struct {
		Subjects []catalog.SubjectRef `json:"subjects"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Subjects, 2)
	assert.Equal(t, "python", got.Subjects[0].ID)
}

func TestModulesJSON(t *testing.T) {
	var buf bytes.Buffer
	m := Modules{Catalog: fixture(t), Subject: "python", JSON: true, Out: &buf}
	require.NoError(t, m.Do(context.Background()))
	assert.Contains(t, buf.String(), `"Backend Development"`)
}

func TestModulesUnknownSubject(t *testing.T) {
	m := Modules{Catalog: fixture(t), Subject: "rust", Out: &bytes.Buffer{}}
	assert.ErrorIs(t, m.Do(context.Background()), catalog.ErrNotFound)
}

func TestTopicsPretty(t *testing.T) {
	var buf bytes.Buffer
	tp := Topics{Catalog: fixture(t), Subject: "python", Module: "Core Python", Out: &buf}
	require.NoError(t, tp.Do(context.Background()))
	assert.Contains(t, buf.String(), "Variables")
	assert.Contains(t, buf.String(), "Loops")
}

func TestTopicsUnknownModule(t *testing.T) {
	tp := Topics{Catalog: fixture(t), Subject: "python", Module: "Nope", Out: &bytes.Buffer{}}
	assert.ErrorIs(t, tp.Do(context.Background()), catalog.ErrNotFound)
}

func TestNoCatalog(t *testing.T) {
	s := Subjects{}
	assert.Error(t, s.Do(context.Background()))
}
