package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/facemenu/pkg/commands/options"
)

func addRemove(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a mode, or a group with everything in it",
		Example: `
facemenu rm smile
facemenu rm emotes --yes
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeItems,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			id := args[0]
			if got := e.app.Get(cmd.Context(), e.menu()); got.OK() && got.Menu.ContainsGroup(id) {
				below, err := got.Menu.DescendantIDs(id)
				if err != nil {
					return output.HandleError(err)
				}
				if len(below) > 0 {
					ok, err := co.Confirm(fmt.Sprintf("Remove %s and the %d items in it", id, len(below)))
					if err != nil || !ok {
						return output.HandleError(err)
					}
				}
			}
			return output.HandleError(report(cmd, e.app.RemoveMenuItem(cmd.Context(), e.menu(), id)))
		},
	}
	options.AddConfirmArgs(cmd, co)

	topLevel.AddCommand(cmd)
}
