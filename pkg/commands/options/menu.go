// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/facemenu/pkg/store"
)

// MenuOptions selects the stored menu a command works on.
type MenuOptions struct {
	Menu string
}

// AddMenuArgs registers --menu as a persistent flag so every subcommand
// shares it.
func AddMenuArgs(cmd *cobra.Command, o *MenuOptions) {
	cmd.PersistentFlags().StringVarP(&o.Menu, "menu", "m", "",
		"Specify the menu key. Defaults to the configured menu.")
}

// Key returns the flag value, or the configured menu key.
func (o *MenuOptions) Key(s *store.Settings) string {
	if o.Menu != "" {
		return o.Menu
	}
	if s == nil {
		return store.DefaultMenuKey
	}
	return s.MenuKey()
}

// BranchOptions addresses one branch of a mode.
type BranchOptions struct {
	Mode   string
	Branch int
}

func AddBranchArgs(cmd *cobra.Command, o *BranchOptions) {
	cmd.Flags().StringVar(&o.Mode, "mode", "",
		"Specify the mode id.")
	cmd.Flags().IntVarP(&o.Branch, "branch", "b", 0,
		"Specify the zero based branch index.")
	_ = cmd.MarkFlagRequired("mode")
}
