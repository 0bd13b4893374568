package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/facemenu/pkg/runner/find"
)

func addFind(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "find [query]",
		Short: "Fuzzy search modes and groups by name",
		Example: `
facemenu find smi
facemenu find --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			f := find.Find{
				App:    e.app,
				Menu:   e.menu(),
				Query:  strings.Join(args, " "),
				Format: output.Format(),
				Out:    cmd.OutOrStdout(),
			}
			return output.HandleError(f.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
