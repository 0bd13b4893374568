package watch

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/facemenu/pkg/app"
	"tableflip.dev/facemenu/pkg/menu"
	"tableflip.dev/facemenu/pkg/store"
)

func TestWatchReportsSaves(t *testing.T) {
	color.NoColor = true
	repo, err := store.Load(&store.Settings{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	svc := &app.Service{Repository: repo}
	svc.CreateMenu(context.Background(), "main")

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var buf bytes.Buffer
	w := Watch{App: svc, Menu: "main", Out: &buf, Count: 1}
	done := make(chan error, 1)
	go func() { done <- w.Do(ctx) }()

	// Allow the watcher to subscribe before saving.
	time.Sleep(100 * time.Millisecond)
	svc.AddMode(context.Background(), "main", menu.RegisteredID, "smile", "")

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watch: %v", err)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for a report")
	}

	got := buf.String()
	if !strings.Contains(got, "menus changed") && !strings.Contains(got, "main 1 registered, 0 unregistered after add-mode") {
		t.Fatalf("unexpected report %q", got)
	}
}
