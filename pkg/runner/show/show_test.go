package show

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/syllabus/pkg/app"
	"tableflip.dev/syllabus/pkg/catalog"
	"tableflip.dev/syllabus/pkg/content"
)

func service() *app.Service {
	return &app.Service{Catalog: catalog.MustNew(catalog.Subject{
		ID:      "python",
		Title:   "Python Programming",
		Modules: []catalog.Module{{Name: "Core Python", Topics: []string{"Variables"}}},
	})}
}

func TestShowRendersLesson(t *testing.T) {
	var buf bytes.Buffer
	s := Show{Service: service(), Subject: "python", Module: "Core Python", Topic: "Variables", Style: content.StyleNoTTY, Out: &buf}
	require.NoError(t, s.Do(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "Variables")
	assert.Contains(t, out, "Practice Exercise")
	assert.Contains(t, out, "Python Programming")
}

func TestShowJSON(t *testing.T) {
	var buf bytes.Buffer
	s := Show{Service: service(), Subject: "python", Module: "Core Python", Topic: "Variables", JSON: true, Out: &buf}
	require.NoError(t, s.Do(context.Background()))

	var got content.Content
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, content.Generate("Variables"), got)
}

func TestShowUnknownTopic(t *testing.T) {
	s := Show{Service: service(), Subject: "python", Module: "Core Python", Topic: "Generators", Out: &bytes.Buffer{}}
	assert.ErrorIs(t, s.Do(context.Background()), catalog.ErrNotFound)
}
