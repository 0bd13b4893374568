package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/facemenu/pkg/app"
	"tableflip.dev/facemenu/pkg/logging"
	"tableflip.dev/facemenu/pkg/store"
)

type Info struct {
	Settings *store.Settings
	App      *app.Service
	Out      io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("FACEMENU_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "FACEMENU_CONFIG_PATH found on env, using ", override)
	} else {
		_, _ = fmt.Fprintln(out, "FACEMENU_CONFIG_PATH env var not set")
	}

	if n.Settings == nil {
		var err error
		n.Settings, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(out, "Config.path: ", n.Settings.BasePath())
	_, _ = fmt.Fprintln(out, "Config.menu: ", n.Settings.MenuKey())
	if n.Settings.Existing != "" {
		_, _ = fmt.Fprintln(out, "Config.existing: ", n.Settings.Existing)
	}
	_, _ = fmt.Fprintln(out, "Log file: ", logging.Path())
	_, _ = fmt.Fprintln(out, "Trace: ", logging.TraceEnabled())

	if n.App == nil {
		return fmt.Errorf("failed to create menu repository")
	}

	keys, err := n.App.Menus(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Menus:\n")
	for _, k := range keys {
		marker := " "
		if k == n.Settings.MenuKey() {
			marker = "*"
		}
		_, _ = fmt.Fprintf(out, " %s %s\n", marker, k)
	}

	if len(keys) == 0 {
		_, _ = fmt.Fprintf(out, "  %s\n", "no menus, run facemenu init")
	}

	return nil
}
