package find

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/facemenu/pkg/app"
	"tableflip.dev/facemenu/pkg/menu"
	"tableflip.dev/facemenu/pkg/store"
)

func TestFindPrintsMatches(t *testing.T) {
	color.NoColor = true
	repo, err := store.Load(&store.Settings{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	svc := &app.Service{Repository: repo}
	ctx := context.Background()
	svc.CreateMenu(ctx, "main")
	svc.AddGroup(ctx, "main", menu.RegisteredID, "emotes", "Emotes")
	svc.AddMode(ctx, "main", "emotes", "smile", "Smile")

	var buf bytes.Buffer
	f := Find{App: svc, Menu: "main", Query: "smile", Out: &buf}
	if err := f.Do(ctx); err != nil {
		t.Fatalf("do: %v", err)
	}
	if !strings.Contains(buf.String(), "Registered/Emotes") {
		t.Fatalf("expected path in output, got:\n%s", buf.String())
	}

	buf.Reset()
	f.Query = "zzz"
	if err := f.Do(ctx); err != nil {
		t.Fatalf("do: %v", err)
	}
	if !strings.Contains(buf.String(), "nothing matches") {
		t.Fatalf("expected empty hint, got:\n%s", buf.String())
	}
}
