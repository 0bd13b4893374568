// Package watch reports menu changes made by other processes.
package watch

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/facemenu/pkg/app"
	"tableflip.dev/facemenu/pkg/store"
)

type Watch struct {
	App *app.Service
	// Menu limits reporting to one key; empty reports every menu.
	Menu string
	Out  io.Writer
	// Count stops after that many reports when positive.
	Count int
}

func (w *Watch) Do(ctx context.Context) error {
	if w.App == nil {
		return app.ErrNoRepository
	}
	out := w.Out
	if out == nil {
		out = color.Output
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events, err := w.App.Watch(ctx)
	if err != nil {
		return err
	}

	faint := color.New(color.Faint)
	bold := color.New(color.Bold)
	reported := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if w.Menu != "" && ev.Type == store.EventMenuChanged && ev.Key != w.Menu {
				continue
			}
			_, _ = faint.Fprintf(out, "%s ", time.Now().Format(time.TimeOnly))
			switch ev.Type {
			case store.EventMenusInvalidated:
				_, _ = fmt.Fprintln(out, "menus changed, reload")
			default:
				_, _ = bold.Fprint(out, ev.Key)
				_, _ = fmt.Fprintf(out, " %s\n", w.describe(ctx, ev.Key))
			}
			reported++
			if w.Count > 0 && reported >= w.Count {
				return nil
			}
		}
	}
}

func (w *Watch) describe(ctx context.Context, key string) string {
	res := w.App.Get(ctx, key)
	switch res.Code {
	case app.Succeeded:
	case app.MenuDoesNotExist:
		return "deleted"
	default:
		return fmt.Sprintf("unreadable: %v", res.Err)
	}
	summary := fmt.Sprintf("%d registered, %d unregistered", res.Menu.Registered().Len(), res.Menu.Unregistered().Len())
	if rec, err := store.Describe(w.App.Repository, key); err == nil && rec.Operation != "" {
		summary = fmt.Sprintf("%s after %s", summary, rec.Operation)
	}
	return summary
}
