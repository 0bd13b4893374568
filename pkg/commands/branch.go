package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/facemenu/pkg/app"
	"tableflip.dev/facemenu/pkg/commands/options"
	"tableflip.dev/facemenu/pkg/runner/key"
)

func addBranch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "branch",
		Short: "Add, change, reorder or remove branches of a mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	addBranchAdd(cmd)
	addBranchSet(cmd)
	addBranchOrder(cmd)
	addBranchRemove(cmd)
	topLevel.AddCommand(cmd)
}

func completeConditions(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return key.Conditions(toComplete), cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

func addBranchAdd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add <mode> [condition...]",
		Short: "Append a branch to a mode",
		Example: `
facemenu branch add smile
facemenu branch add smile left:fist:equals param:Blend:gt:0.5
`,
		Args: cobra.MinimumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return completeItems(cmd, args, toComplete)
			}
			return completeConditions(cmd, args, toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			conditions, err := app.ParseConditions(args[1:])
			if err != nil {
				return output.HandleError(err)
			}
			return run(cmd, func(ctx context.Context, e *env) app.Result {
				return e.app.AddBranch(ctx, e.menu(), args[0], conditions...)
			})
		},
	}
	parent.AddCommand(cmd)
}

func addBranchSet(parent *cobra.Command) {
	bo := &options.BranchOptions{}

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set tracking or trigger use of a branch",
		Example: `
facemenu branch set --mode smile -b 0 --eye animation --left-trigger
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, e *env) app.Result {
				return e.app.ModifyBranch(ctx, e.menu(), bo.Mode, bo.Branch, app.BranchChanges{
					Eye:          stringFlag(cmd, "eye"),
					Mouth:        stringFlag(cmd, "mouth"),
					LeftTrigger:  boolFlag(cmd, "left-trigger"),
					RightTrigger: boolFlag(cmd, "right-trigger"),
				})
			})
		},
	}
	options.AddBranchArgs(cmd, bo)
	_ = cmd.RegisterFlagCompletionFunc("mode", completeItems)
	cmd.Flags().String("eye", "", "Eye tracking control, tracking or animation.")
	cmd.Flags().String("mouth", "", "Mouth tracking control, tracking or animation.")
	cmd.Flags().Bool("left-trigger", false, "Blend the left animation with the left trigger.")
	cmd.Flags().Bool("right-trigger", false, "Blend the right animation with the right trigger.")
	parent.AddCommand(cmd)
}

func addBranchOrder(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "order <mode> <from> <to>",
		Short: "Move a branch to another position",
		Example: `
facemenu branch order smile 2 0
`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := indexPair(args[1], args[2])
			if err != nil {
				return output.HandleError(err)
			}
			return run(cmd, func(ctx context.Context, e *env) app.Result {
				return e.app.ChangeBranchOrder(ctx, e.menu(), args[0], from, to)
			})
		},
	}
	parent.AddCommand(cmd)
}

func addBranchRemove(parent *cobra.Command) {
	bo := &options.BranchOptions{}

	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Remove a branch",
		Example: `
facemenu branch rm --mode smile -b 1
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, e *env) app.Result {
				return e.app.RemoveBranch(ctx, e.menu(), bo.Mode, bo.Branch)
			})
		},
	}
	options.AddBranchArgs(cmd, bo)
	_ = cmd.RegisterFlagCompletionFunc("mode", completeItems)
	parent.AddCommand(cmd)
}

func indexPair(a, b string) (int, int, error) {
	from, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid index %q: %w", a, err)
	}
	to, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid index %q: %w", b, err)
	}
	return from, to, nil
}
