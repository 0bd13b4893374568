package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/facemenu/pkg/runner/merge"
)

func addMerge(topLevel *cobra.Command) {
	var (
		existingPath string
		apply        bool
		order        []string
	)

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Lay registered items out among the existing menu items",
		Long: `Merge reads the items another tool already placed on the avatar menu and
shows where the registered modes and groups land between them. With --apply the
positions are saved; --order rearranges the merged ids first.`,
		Example: `
facemenu merge --existing existing.yaml
facemenu merge --apply --order existing:0,smile,existing:1
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			path := existingPath
			if path == "" {
				path = e.settings.Existing
			}
			if path == "" {
				return output.HandleError(errors.New("no existing items file, pass --existing or set existing in .facemenu.yaml"))
			}
			m := merge.Merge{
				App:      e.app,
				Menu:     e.menu(),
				Existing: path,
				Apply:    apply,
				Order:    order,
				Format:   output.Format(),
				Out:      cmd.OutOrStdout(),
			}
			return output.HandleError(m.Do(cmd.Context()))
		},
	}
	cmd.Flags().StringVar(&existingPath, "existing", "", "Existing items file, yaml or json. Defaults to the configured file.")
	cmd.Flags().BoolVar(&apply, "apply", false, "Save the merged positions.")
	cmd.Flags().StringSliceVar(&order, "order", nil, "Merged ids in their new order.")

	topLevel.AddCommand(cmd)
}
