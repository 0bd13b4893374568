package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/facemenu/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print the hands, gestures and operators conditions accept",
		Example: `
facemenu key
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			k := key.Key{Out: cmd.OutOrStdout()}
			err := k.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
