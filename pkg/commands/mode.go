package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/facemenu/pkg/app"
	"tableflip.dev/facemenu/pkg/menu"
)

func addMode(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "mode",
		Short: "Change a mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	addModeSet(cmd)
	topLevel.AddCommand(cmd)
}

func addModeSet(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "set <mode>",
		Short: "Set the name or tracking of a mode",
		Example: `
facemenu mode set smile --name "Big Smile"
facemenu mode set smile --eye animation --mouth tracking
facemenu mode set smile --use-animation-name
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeItems,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, e *env) app.Result {
				return e.app.ModifyMode(ctx, e.menu(), args[0], app.ModeChanges{
					Name:             stringFlag(cmd, "name"),
					UseAnimationName: boolFlag(cmd, "use-animation-name"),
					Eye:              stringFlag(cmd, "eye"),
					Mouth:            stringFlag(cmd, "mouth"),
				})
			})
		},
	}
	cmd.Flags().String("name", "", "Display name.")
	cmd.Flags().Bool("use-animation-name", false, "Show the animation name instead of the display name.")
	cmd.Flags().String("eye", "", "Eye tracking control, tracking or animation.")
	cmd.Flags().String("mouth", "", "Mouth tracking control, tracking or animation.")
	parent.AddCommand(cmd)
}

func addGroup(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Change a group",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	addGroupSet(cmd)
	topLevel.AddCommand(cmd)
}

func addGroupSet(parent *cobra.Command) {
	var name string

	cmd := &cobra.Command{
		Use:   "set <group>",
		Short: "Rename a group",
		Example: `
facemenu group set emotes --name Emotes
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeItems,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, e *env) app.Result {
				var u menu.GroupUpdate
				if cmd.Flags().Changed("name") {
					u.DisplayName = menu.Set(name)
				}
				return e.app.ModifyGroupProperties(ctx, e.menu(), args[0], u)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name.")
	parent.AddCommand(cmd)
}
