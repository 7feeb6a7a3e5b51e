package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/syllabus/pkg/catalog"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(syllabus completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(syllabus completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// completeSubjects completes the subject, module and topic positionals in
// that order.
func completeSubjects(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	c, err := catalog.Load(ctx, catalogSource())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return catalogCompletions(c, args), cobra.ShellCompDirectiveNoFileComp
}

func catalogCompletions(c *catalog.Catalog, args []string) []string {
	switch len(args) {
	case 0:
		refs := c.ListSubjects()
		ids := make([]string, 0, len(refs))
		for _, r := range refs {
			ids = append(ids, r.ID)
		}
		return ids
	case 1:
		names, _ := c.ListModules(args[0])
		return names
	case 2:
		topics, _ := c.ListTopics(args[0], args[1])
		return topics
	}
	return nil
}
