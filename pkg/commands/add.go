package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/facemenu/pkg/app"
	"tableflip.dev/facemenu/pkg/commands/options"
	"tableflip.dev/facemenu/pkg/menu"
)

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a mode or a group",
		Example: `
facemenu add mode Smile
facemenu add group Emotes --id emotes
facemenu add mode Wink --to emotes
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	addItem(cmd, "mode", func(s *app.Service) addFunc { return s.AddMode })
	addItem(cmd, "group", func(s *app.Service) addFunc { return s.AddGroup })
	topLevel.AddCommand(cmd)
}

type addFunc func(ctx context.Context, menuID, destination, id, name string) app.Result

func addItem(parent *cobra.Command, kind string, op func(s *app.Service) addFunc) {
	ido := &options.IDOptions{}
	var to string

	cmd := &cobra.Command{
		Use:   kind + " [name]",
		Short: "Add a " + kind,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, e *env) app.Result {
				return op(e.app)(ctx, e.menu(), to, ido.ID, strings.Join(args, " "))
			})
		},
	}
	options.AddIDArgs(cmd, ido)
	cmd.Flags().StringVar(&to, "to", menu.RegisteredID, "Destination list or group id.")
	_ = cmd.RegisterFlagCompletionFunc("to", completeItems)

	parent.AddCommand(cmd)
}

func addCopy(topLevel *cobra.Command) {
	var to string

	cmd := &cobra.Command{
		Use:   "copy <mode>",
		Short: "Duplicate a mode with its branches",
		Example: `
facemenu copy smile --to emotes
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeItems,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, e *env) app.Result {
				return e.app.CopyMode(ctx, e.menu(), args[0], to)
			})
		},
	}
	cmd.Flags().StringVar(&to, "to", menu.RegisteredID, "Destination list or group id.")
	_ = cmd.RegisterFlagCompletionFunc("to", completeItems)

	topLevel.AddCommand(cmd)
}
