package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/syllabus/pkg/runner/list"
	"tableflip.dev/syllabus/pkg/store"
)

func addSubjects(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "subjects",
		Short: "List the subjects of the catalog.",
		Example: `
syllabus subjects
syllabus subjects --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			s := list.Subjects{Catalog: c, JSON: oo.JSON}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}
	topLevel.AddCommand(cmd)
}

func addModules(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "modules <subject>",
		Short: "List the modules of a subject.",
		Example: `
syllabus modules python
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSubjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			m := list.Modules{Catalog: c, Bookmarks: bookmarks(), Subject: args[0], JSON: oo.JSON}
			return oo.HandleError(m.Do(cmd.Context()))
		},
	}
	topLevel.AddCommand(cmd)
}

func addTopics(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "topics <subject> <module>",
		Short: "List the topics of a module.",
		Example: `
syllabus topics python "Core Python"
`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeSubjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			t := list.Topics{Catalog: c, Bookmarks: bookmarks(), Subject: args[0], Module: args[1], JSON: oo.JSON}
			return oo.HandleError(t.Do(cmd.Context()))
		},
	}
	topLevel.AddCommand(cmd)
}

// bookmarks returns the bookmark store, or nil when it cannot be opened.
// Listings still work without it.
func bookmarks() store.Persistence {
	p, err := store.Load(cfg)
	if err != nil {
		return nil
	}
	return p
}
