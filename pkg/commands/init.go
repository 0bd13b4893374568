package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/facemenu/pkg/app"
)

func addInit(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "init [key]",
		Short: "Create an empty menu",
		Example: `
facemenu init
facemenu init winter
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, e *env) app.Result {
				key := e.menu()
				if len(args) == 1 {
					key = args[0]
				}
				return e.app.CreateMenu(ctx, key)
			})
		},
	}

	topLevel.AddCommand(cmd)
}
