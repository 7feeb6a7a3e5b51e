package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUsesLabelVerbatim(t *testing.T) {
	c := Generate("Loops & Ranges")
	assert.Equal(t, "Loops & Ranges", c.Title)
	assert.Equal(t, "Master Loops & Ranges with hands-on examples and real-world projects.", c.Description)
	require.Len(t, c.Sections, 3)
	assert.Equal(t, []string{"Overview", "Key Concepts", "Practice Exercise"},
		[]string{c.Sections[0].Heading, c.Sections[1].Heading, c.Sections[2].Heading})
}

func TestMarkdownBreadcrumb(t *testing.T) {
	md := Generate("Loops").Markdown("Python", "", "Core Python")
	assert.True(t, strings.HasPrefix(md, "_Python › Core Python_\n\n# Loops\n"), md)
	assert.Contains(t, md, "## Practice Exercise")

	plain := Generate("Loops").Markdown()
	assert.True(t, strings.HasPrefix(plain, "# Loops\n"), plain)
}

func TestRendererRendersHeadings(t *testing.T) {
	r, err := NewRenderer(StyleNoTTY, 4)
	require.NoError(t, err)
	assert.Equal(t, minWrapWidth, r.Width())

	out, err := r.RenderContent(Generate("Loops"), "Python")
	require.NoError(t, err)
	assert.Contains(t, out, "Loops")
	assert.Contains(t, out, "Overview")
}

func TestResolveStyle(t *testing.T) {
	assert.Equal(t, StyleLight, ResolveStyle(StyleLight))
	assert.Contains(t, []string{StyleDark, StyleLight}, ResolveStyle(""))
	assert.Contains(t, []string{StyleDark, StyleLight}, ResolveStyle("AUTO"))
}
