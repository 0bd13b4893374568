package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/facemenu/pkg/app"
	"tableflip.dev/facemenu/pkg/menu"
)

func addMove(topLevel *cobra.Command) {
	var (
		to    string
		index int
	)

	cmd := &cobra.Command{
		Use:     "mv <id>",
		Aliases: []string{"move"},
		Short:   "Move a mode or group to another list or position",
		Example: `
facemenu mv smile --to emotes
facemenu mv smile --to Registered --index 0
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeItems,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, e *env) app.Result {
				return e.app.MoveMenuItem(ctx, e.menu(), args[0], to, index)
			})
		},
	}
	cmd.Flags().StringVar(&to, "to", menu.RegisteredID, "Destination list or group id.")
	cmd.Flags().IntVar(&index, "index", menu.Append, "Position in the destination, -1 appends.")
	_ = cmd.RegisterFlagCompletionFunc("to", completeItems)

	topLevel.AddCommand(cmd)
}
