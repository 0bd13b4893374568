package info

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tableflip.dev/facemenu/pkg/app"
	"tableflip.dev/facemenu/pkg/store"
)

func TestInfoListsMenus(t *testing.T) {
	t.Setenv("FACEMENU_CONFIG_PATH", "")
	settings := &store.Settings{Path: t.TempDir(), Menu: "avatar"}
	repo, err := store.Load(settings)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	svc := &app.Service{Repository: repo}
	svc.CreateMenu(context.Background(), "avatar")
	svc.CreateMenu(context.Background(), "spare")

	var buf bytes.Buffer
	n := Info{Settings: settings, App: svc, Out: &buf}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	got := buf.String()
	for _, want := range []string{"env var not set", settings.Path, " * avatar", "   spare"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, got)
		}
	}
}

func TestInfoWithoutMenus(t *testing.T) {
	settings := &store.Settings{Path: t.TempDir()}
	repo, err := store.Load(settings)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var buf bytes.Buffer
	n := Info{Settings: settings, App: &app.Service{Repository: repo}, Out: &buf}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	if !strings.Contains(buf.String(), "no menus") {
		t.Fatalf("expected empty hint, got:\n%s", buf.String())
	}
	if err := (&Info{Settings: settings, Out: &buf}).Do(context.Background()); err == nil {
		t.Fatalf("expected error without a repository")
	}
}
