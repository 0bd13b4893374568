package commands

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"tableflip.dev/facemenu/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	var all bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Report menu changes made by other processes",
		Example: `
facemenu watch
facemenu watch --all
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			w := watch.Watch{App: e.app, Out: cmd.OutOrStdout()}
			if !all {
				w.Menu = e.menu()
			}
			return output.HandleError(w.Do(ctx))
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Report every menu, not only the selected one.")

	topLevel.AddCommand(cmd)
}

