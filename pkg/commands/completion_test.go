package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tableflip.dev/syllabus/pkg/catalog"
)

func TestCatalogCompletions(t *testing.T) {
	c := catalog.MustNew(catalog.Subject{
		ID:      "python",
		Modules: []catalog.Module{{Name: "Core Python", Topics: []string{"Variables", "Loops"}}},
	})

	assert.Equal(t, []string{"python"}, catalogCompletions(c, nil))
	assert.Equal(t, []string{"Core Python"}, catalogCompletions(c, []string{"python"}))
	assert.Equal(t, []string{"Variables", "Loops"}, catalogCompletions(c, []string{"python", "Core Python"}))
	assert.Empty(t, catalogCompletions(c, []string{"rust"}))
	assert.Nil(t, catalogCompletions(c, []string{"python", "Core Python", "Loops"}))
}

func TestCommandTree(t *testing.T) {
	root := New()
	for _, path := range [][]string{
		{"ui"}, {"browse"}, {"subjects"}, {"modules"}, {"topics"}, {"show"},
		{"bookmark", "add"}, {"bookmark", "rm"}, {"bookmark", "ls"},
		{"mcp"}, {"version"}, {"completion"},
	} {
		cmd, _, err := root.Find(path)
		assert.NoError(t, err, path)
		assert.NotNil(t, cmd, path)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("catalog"))
}
