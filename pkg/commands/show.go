package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/syllabus/pkg/commands/options"
	"tableflip.dev/syllabus/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	so := &options.StyleOptions{}
	cmd := &cobra.Command{
		Use:   "show <subject> <module> <topic>",
		Short: "Render the lesson for a topic.",
		Example: `
syllabus show python "Core Python" Variables
syllabus show mysql Basics "SELECT Statement" --style notty
`,
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: completeSubjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService(cmd.Context(), false)
			if err != nil {
				return oo.HandleError(err)
			}
			s := show.Show{
				Service: svc,
				Subject: args[0],
				Module:  args[1],
				Topic:   args[2],
				Style:   contentStyle(so.Style),
				Width:   so.Width,
				JSON:    oo.JSON,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}
	options.AddStyleArgs(cmd, so)
	options.AddWidthArgs(cmd, so)

	topLevel.AddCommand(cmd)
}
