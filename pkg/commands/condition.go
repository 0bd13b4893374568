package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/facemenu/pkg/app"
	"tableflip.dev/facemenu/pkg/commands/options"
	"tableflip.dev/facemenu/pkg/menu"
)

func addCondition(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "condition",
		Short: "Add, change, reorder or remove branch conditions",
		Long: `Conditions are written hand:gesture:operator or param:name:operator:value.
Run "facemenu key" for the accepted values.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	addConditionAdd(cmd)
	addConditionSet(cmd)
	addConditionOrder(cmd)
	addConditionRemove(cmd)
	topLevel.AddCommand(cmd)
}

func addConditionAdd(parent *cobra.Command) {
	bo := &options.BranchOptions{}

	cmd := &cobra.Command{
		Use:   "add <condition>",
		Short: "Append a condition to a branch",
		Example: `
facemenu condition add --mode smile -b 0 right:victory:equals
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeConditions,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := menu.ParseCondition(args[0])
			if err != nil {
				return output.HandleError(err)
			}
			return run(cmd, func(ctx context.Context, e *env) app.Result {
				return e.app.AddCondition(ctx, e.menu(), bo.Mode, bo.Branch, c)
			})
		},
	}
	options.AddBranchArgs(cmd, bo)
	_ = cmd.RegisterFlagCompletionFunc("mode", completeItems)
	parent.AddCommand(cmd)
}

func addConditionSet(parent *cobra.Command) {
	bo := &options.BranchOptions{}
	var index int

	cmd := &cobra.Command{
		Use:   "set <condition>",
		Short: "Replace a condition of a branch",
		Example: `
facemenu condition set --mode smile -b 0 -c 1 param:Blend:lt:0.2
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeConditions,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := menu.ParseCondition(args[0])
			if err != nil {
				return output.HandleError(err)
			}
			return run(cmd, func(ctx context.Context, e *env) app.Result {
				return e.app.ModifyCondition(ctx, e.menu(), bo.Mode, bo.Branch, index, c)
			})
		},
	}
	options.AddBranchArgs(cmd, bo)
	addConditionIndexArg(cmd, &index)
	parent.AddCommand(cmd)
}

func addConditionOrder(parent *cobra.Command) {
	bo := &options.BranchOptions{}

	cmd := &cobra.Command{
		Use:   "order <from> <to>",
		Short: "Move a condition to another position",
		Example: `
facemenu condition order --mode smile -b 0 1 0
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := indexPair(args[0], args[1])
			if err != nil {
				return output.HandleError(err)
			}
			return run(cmd, func(ctx context.Context, e *env) app.Result {
				return e.app.ChangeConditionOrder(ctx, e.menu(), bo.Mode, bo.Branch, from, to)
			})
		},
	}
	options.AddBranchArgs(cmd, bo)
	parent.AddCommand(cmd)
}

func addConditionRemove(parent *cobra.Command) {
	bo := &options.BranchOptions{}
	var index int

	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Remove a condition from a branch",
		Example: `
facemenu condition rm --mode smile -b 0 -c 1
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, e *env) app.Result {
				return e.app.RemoveCondition(ctx, e.menu(), bo.Mode, bo.Branch, index)
			})
		},
	}
	options.AddBranchArgs(cmd, bo)
	addConditionIndexArg(cmd, &index)
	parent.AddCommand(cmd)
}

func addConditionIndexArg(cmd *cobra.Command, index *int) {
	cmd.Flags().IntVarP(index, "condition", "c", 0, "Zero based condition index.")
}
