package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/facemenu/pkg/app"
	"tableflip.dev/facemenu/pkg/commands/options"
)

func addMenu(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Change menu wide settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	addMenuSet(cmd)
	addMenuDefault(cmd)
	addMenuDelete(cmd)
	topLevel.AddCommand(cmd)
}

func addMenuSet(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set write defaults or the transition duration",
		Example: `
facemenu menu set --write-defaults=false --transition 0.25
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, e *env) app.Result {
				c := app.PropertyChanges{
					WriteDefaults:      boolFlag(cmd, "write-defaults"),
					TransitionDuration: floatFlag(cmd, "transition"),
				}
				return e.app.ModifyMenuProperties(ctx, e.menu(), c.Update())
			})
		},
	}
	cmd.Flags().Bool("write-defaults", false, "Write default values for untouched properties.")
	cmd.Flags().Float64("transition", 0, "Transition duration in seconds.")
	parent.AddCommand(cmd)
}

func addMenuDefault(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "default <mode>",
		Short: "Select the mode the menu starts in",
		Example: `
facemenu menu default smile
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeItems,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, e *env) app.Result {
				return e.app.SetDefaultSelection(ctx, e.menu(), args[0])
			})
		},
	}
	parent.AddCommand(cmd)
}

func addMenuDelete(parent *cobra.Command) {
	co := &options.ConfirmOptions{}
	cmd := &cobra.Command{
		Use:   "delete [key]",
		Short: "Delete a stored menu",
		Example: `
facemenu menu delete winter --yes
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			key := e.menu()
			if len(args) == 1 {
				key = args[0]
			}
			ok, err := co.Confirm(fmt.Sprintf("Delete menu %s", key))
			if err != nil || !ok {
				return output.HandleError(err)
			}
			return output.HandleError(report(cmd, e.app.DeleteMenu(cmd.Context(), key)))
		},
	}
	options.AddConfirmArgs(cmd, co)
	parent.AddCommand(cmd)
}
