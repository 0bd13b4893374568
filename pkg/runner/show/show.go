// Package show prints a stored menu, or one of its items.
package show

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"

	"tableflip.dev/facemenu/pkg/app"
	"tableflip.dev/facemenu/pkg/menu"
	"tableflip.dev/facemenu/pkg/printers"
)

type Show struct {
	App  *app.Service
	Menu string
	// Item narrows the output to one mode or group.
	Item string

	ShowID bool
	// Format is json or yaml; empty prints the tree.
	Format string
	// Copy places the JSON document on the system clipboard.
	Copy bool
	Out  io.Writer

	// copy defaults to clipboard.WriteAll.
	copy func(string) error
}

func (s *Show) Do(ctx context.Context) error {
	if s.App == nil {
		return app.ErrNoRepository
	}
	res := s.App.Get(ctx, s.Menu)
	if !res.OK() {
		return fmt.Errorf("%s: %w", res.Code, res.Err)
	}

	var doc any = res.Menu.Document()
	if s.Item != "" {
		item, err := s.item(res.Menu)
		if err != nil {
			return err
		}
		doc = item
	}

	if s.Copy {
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		write := s.copy
		if write == nil {
			write = clipboard.WriteAll
		}
		if err := write(string(b)); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		_, _ = color.New(color.FgGreen).Fprintf(s.out(), "✓ %s copied to clipboard\n", s.label())
		return nil
	}

	if s.Format != "" {
		p := printers.Structured{Format: s.Format, Out: s.out()}
		return p.Print(doc)
	}

	pp := printers.PrettyPrint{ShowID: s.ShowID, Out: s.out()}
	switch {
	case s.Item == "":
		pp.Menu(s.Menu, res.Menu)
	case res.Menu.ContainsMode(s.Item):
		mode, _ := res.Menu.Mode(s.Item)
		pp.Mode(mode)
	default:
		group, _ := res.Menu.Group(s.Item)
		pp.Group(res.Menu, group)
	}
	return nil
}

// item returns the document of the selected mode or group.
func (s *Show) item(m *menu.Menu) (any, error) {
	doc := m.Document()
	if mode, ok := doc.Modes[s.Item]; ok {
		return mode, nil
	}
	if group, ok := doc.Groups[s.Item]; ok {
		return group, nil
	}
	return nil, fmt.Errorf("%w: menu item %q", menu.ErrNotFound, s.Item)
}

func (s *Show) label() string {
	if s.Item != "" {
		return fmt.Sprintf("%s/%s", s.Menu, s.Item)
	}
	return s.Menu
}

func (s *Show) out() io.Writer {
	if s.Out == nil {
		return color.Output
	}
	return s.Out
}
