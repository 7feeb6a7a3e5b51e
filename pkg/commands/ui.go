package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/syllabus/pkg/commands/options"
	"tableflip.dev/syllabus/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	so := &options.StyleOptions{}
	subject := ""
	cmd := &cobra.Command{
		Use:     "ui",
		Aliases: []string{"browse"},
		Short:   "open the text-based catalog browser",
		Example: `
syllabus ui
syllabus browse --subject mysql
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService(cmd.Context(), true)
			if err != nil {
				return err
			}
			i := ui.UI{
				Service: svc,
				Style:   contentStyle(so.Style),
				Subject: subject,
			}
			return i.Do(cmd.Context())
		},
	}
	options.AddStyleArgs(cmd, so)
	cmd.Flags().StringVar(&subject, "subject", "", "Subject id to open first.")

	topLevel.AddCommand(cmd)
}
