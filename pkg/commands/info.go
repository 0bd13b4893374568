package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/facemenu/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about menus and where they are stored.",
		Example: `
facemenu info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			s := info.Info{
				Settings: e.settings,
				App:      e.app,
				Out:      cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
