package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/facemenu/pkg/app"
	"tableflip.dev/facemenu/pkg/menu"
)

func addAnimation(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "animation",
		Short: "Assign animations to modes and branches",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	addAnimationSet(cmd)
	topLevel.AddCommand(cmd)
}

func addAnimationSet(parent *cobra.Command) {
	var (
		mode   string
		branch int
		slot   string
		guid   string
		unset  bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set or clear the animation of a mode or a branch slot",
		Example: `
facemenu animation set --mode smile --guid 0f1e2d3c
facemenu animation set --mode smile -b 0 --slot left --guid 0f1e2d3c
facemenu animation set --mode smile -b 0 --slot both --clear
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := menu.ParseBranchAnimationType(slot)
			if err != nil {
				return output.HandleError(err)
			}
			if unset == (guid != "") {
				return output.HandleError(errors.New("exactly one of --guid or --clear is required"))
			}
			var a *menu.Animation
			if !unset {
				a = &menu.Animation{GUID: guid}
			}
			return run(cmd, func(ctx context.Context, e *env) app.Result {
				return e.app.SetAnimation(ctx, e.menu(), mode, a, branch, t)
			})
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "Specify the mode id.")
	cmd.Flags().IntVarP(&branch, "branch", "b", menu.NoBranch, "Zero based branch index, -1 targets the mode.")
	cmd.Flags().StringVar(&slot, "slot", "", "Branch slot, one of base, left, right or both.")
	cmd.Flags().StringVar(&guid, "guid", "", "Animation asset guid.")
	cmd.Flags().BoolVar(&unset, "clear", false, "Remove the animation.")
	_ = cmd.MarkFlagRequired("mode")
	_ = cmd.RegisterFlagCompletionFunc("mode", completeItems)
	_ = cmd.RegisterFlagCompletionFunc("slot", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var out []string
		for _, t := range menu.AllBranchAnimationTypes() {
			out = append(out, string(t))
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
	parent.AddCommand(cmd)
}
