// Package content resolves topic labels into the lesson outline shown by the
// viewer.
package content

import (
	"fmt"
	"strings"
)

// Section is one headed block of a lesson.
type Section struct {
	Heading string `json:"heading"`
	Text    string `json:"text"`
}

// Content is the generated lesson for a topic label.
type Content struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Sections    []Section `json:"sections"`
}

// Generate builds the lesson outline for label. The label is used verbatim.
func Generate(label string) Content {
	return Content{
		Title:       label,
		Description: fmt.Sprintf("Master %s with hands-on examples and real-world projects.", label),
		Sections: []Section{
			{Heading: "Overview", Text: "This topic covers fundamental concepts and practical implementation."},
			{Heading: "Key Concepts", Text: "Understanding the core principles and best practices."},
			{Heading: "Practice Exercise", Text: "Apply what you've learned with coding challenges."},
		},
	}
}

// Markdown renders the lesson. Breadcrumb parts, when given, are joined
// above the title.
func (c Content) Markdown(breadcrumb ...string) string {
	var b strings.Builder
	if crumbs := nonEmpty(breadcrumb); len(crumbs) > 0 {
		b.WriteString("_")
		b.WriteString(strings.Join(crumbs, " › "))
		b.WriteString("_\n\n")
	}
	fmt.Fprintf(&b, "# %s\n\n%s\n", c.Title, c.Description)
	for _, s := range c.Sections {
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", s.Heading, s.Text)
	}
	return b.String()
}

func nonEmpty(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
