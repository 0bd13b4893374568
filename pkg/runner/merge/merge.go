// Package merge lays the registered items of a menu out among the items
// another tool already placed on the avatar menu.
package merge

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/facemenu/pkg/app"
	"tableflip.dev/facemenu/pkg/existing"
	"tableflip.dev/facemenu/pkg/printers"
)

type Merge struct {
	App  *app.Service
	Menu string
	// Existing is the path of the existing items file.
	Existing string
	// Apply saves the merged order instead of only previewing it.
	Apply bool
	// Order optionally rearranges the merged ids before applying.
	Order []string

	Format string
	Out    io.Writer
}

func (m *Merge) Do(ctx context.Context) error {
	if m.App == nil {
		return app.ErrNoRepository
	}
	items, err := existing.Load(m.Existing)
	if err != nil {
		return err
	}
	if len(m.Order) > 0 && !m.Apply {
		return fmt.Errorf("--order requires --apply")
	}

	var res app.Result
	if m.Apply {
		res = m.App.ApplyMerge(ctx, m.Menu, items, m.Order)
	} else {
		res = m.App.PreviewMerge(ctx, m.Menu, items)
	}
	if !res.OK() {
		return fmt.Errorf("%s: %w", res.Code, res.Err)
	}

	out := m.Out
	if out == nil {
		out = color.Output
	}
	if m.Format != "" {
		p := printers.Structured{Format: m.Format, Out: out}
		return p.Print(map[string]any{
			"menu":          m.Menu,
			"applied":       m.Apply,
			"merged":        res.Merged.Entries(),
			"insertIndices": res.Menu.InsertIndices(),
		})
	}

	pp := printers.PrettyPrint{Out: out}
	pp.Merged(res.Merged)
	if m.Apply {
		_, _ = color.New(color.FgGreen).Fprintf(out, "✓ saved merged order of %s, insert indices %v\n", m.Menu, res.Menu.InsertIndices())
	} else {
		_, _ = color.New(color.Faint).Fprintln(out, "preview only, run with --apply to save")
	}
	return nil
}
