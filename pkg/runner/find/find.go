package find

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/facemenu/pkg/app"
	"tableflip.dev/facemenu/pkg/printers"
)

type Find struct {
	App    *app.Service
	Menu   string
	Query  string
	Format string
	Out    io.Writer
}

func (f *Find) Do(ctx context.Context) error {
	if f.App == nil {
		return app.ErrNoRepository
	}
	res := f.App.Find(ctx, f.Menu, f.Query)
	if !res.OK() {
		return fmt.Errorf("%s: %w", res.Code, res.Err)
	}
	out := f.Out
	if out == nil {
		out = color.Output
	}
	if f.Format != "" {
		p := printers.Structured{Format: f.Format, Out: out}
		return p.Print(res.Matches)
	}
	if len(res.Matches) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprintf(out, " nothing matches %q\n", f.Query)
		return nil
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("KIND"), bold.Sprint("NAME"), bold.Sprint("PATH"))
	for _, m := range res.Matches {
		tbl.AddRow(m.ID, m.Kind, m.Name, m.Path)
	}
	_, _ = fmt.Fprintln(out, tbl)
	return nil
}
