package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/facemenu/pkg/commands/options"
	"tableflip.dev/facemenu/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	var copyOut bool

	cmd := &cobra.Command{
		Use:   "show [item]",
		Short: "Print the menu, or one mode or group",
		Example: `
facemenu show
facemenu show --show-id
facemenu show smile -o yaml
facemenu show emotes --copy
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeItems,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			s := show.Show{
				App:    e.app,
				Menu:   e.menu(),
				ShowID: ido.ShowID,
				Format: output.Format(),
				Copy:   copyOut,
				Out:    cmd.OutOrStdout(),
			}
			if len(args) == 1 {
				s.Item = args[0]
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}
	options.AddShowIDArgs(cmd, ido)
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the JSON document to the clipboard instead of printing it.")

	topLevel.AddCommand(cmd)
}
