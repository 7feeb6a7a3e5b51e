package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/syllabus/pkg/app"
	"tableflip.dev/syllabus/pkg/commands/options"
	"tableflip.dev/syllabus/pkg/runner/bookmark"
	"tableflip.dev/syllabus/pkg/store"
)

func addBookmark(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "bookmark",
		Aliases: []string{"bm"},
		Short:   "Manage saved topic bookmarks.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	addBookmarkAdd(cmd)
	addBookmarkRemove(cmd)
	addBookmarkList(cmd)

	topLevel.AddCommand(cmd)
}

func bookmarkService(cmd *cobra.Command) (*app.Service, error) {
	c, err := loadCatalog(cmd.Context())
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	return &app.Service{Catalog: c, Bookmarks: p}, nil
}

func addBookmarkAdd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add <subject> <module> <topic>",
		Short: "Bookmark a topic.",
		Example: `
syllabus bookmark add python "Core Python" Loops
`,
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: completeSubjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := bookmarkService(cmd)
			if err != nil {
				return oo.HandleError(err)
			}
			a := bookmark.Add{Service: svc, Subject: args[0], Module: args[1], Topic: args[2], JSON: oo.JSON}
			return oo.HandleError(a.Do(cmd.Context()))
		},
	}
	parent.AddCommand(cmd)
}

func addBookmarkRemove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a bookmark by id.",
		Example: `
syllabus bookmark ls --show-id
syllabus bookmark rm 3f2a9c
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := bookmarkService(cmd)
			if err != nil {
				return oo.HandleError(err)
			}
			r := bookmark.Remove{Service: svc, ID: args[0], JSON: oo.JSON}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}
	parent.AddCommand(cmd)
}

func addBookmarkList(parent *cobra.Command) {
	ido := &options.IDOptions{}
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List bookmarks.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := bookmarkService(cmd)
			if err != nil {
				return oo.HandleError(err)
			}
			l := bookmark.List{Service: svc, ShowID: ido.ShowID, JSON: oo.JSON}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}
	options.AddShowIDArgs(cmd, ido)
	parent.AddCommand(cmd)
}
