package merge

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/facemenu/pkg/app"
	"tableflip.dev/facemenu/pkg/menu"
	"tableflip.dev/facemenu/pkg/store"
)

func setup(t *testing.T) (*app.Service, string) {
	t.Helper()
	color.NoColor = true
	repo, err := store.Load(&store.Settings{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	svc := &app.Service{Repository: repo}
	ctx := context.Background()
	svc.CreateMenu(ctx, "main")
	svc.AddMode(ctx, "main", menu.RegisteredID, "smile", "Smile")

	path := filepath.Join(t.TempDir(), "existing.yaml")
	data := "items:\n  - name: Hat\n    type: toggle\n  - name: Dance\n    type: submenu\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return svc, path
}

func TestPreviewDoesNotSave(t *testing.T) {
	svc, path := setup(t)
	var buf bytes.Buffer
	m := Merge{App: svc, Menu: "main", Existing: path, Out: &buf}
	if err := m.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	if !strings.Contains(buf.String(), "Merged - 3/8 items") || !strings.Contains(buf.String(), "preview only") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	if got := svc.Get(context.Background(), "main").Menu.InsertIndices(); len(got) != 0 {
		t.Fatalf("preview must not record indices, got %v", got)
	}
}

func TestApplyWithOrder(t *testing.T) {
	svc, path := setup(t)
	var buf bytes.Buffer
	m := Merge{
		App:      svc,
		Menu:     "main",
		Existing: path,
		Apply:    true,
		Order:    []string{menu.ExistingID(0), "smile", menu.ExistingID(1)},
		Out:      &buf,
	}
	if err := m.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	if got := svc.Get(context.Background(), "main").Menu.InsertIndices(); !slices.Equal(got, []int{1}) {
		t.Fatalf("expected insert indices [1], got %v", got)
	}
}

func TestOrderNeedsApply(t *testing.T) {
	svc, path := setup(t)
	m := Merge{App: svc, Menu: "main", Existing: path, Order: []string{"smile"}, Out: &bytes.Buffer{}}
	if err := m.Do(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestStructuredOutput(t *testing.T) {
	svc, path := setup(t)
	var buf bytes.Buffer
	m := Merge{App: svc, Menu: "main", Existing: path, Format: "yaml", Out: &buf}
	if err := m.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	if !strings.Contains(buf.String(), "id: existing:0") && !strings.Contains(buf.String(), "id: 'existing:0'") {
		t.Fatalf("unexpected yaml:\n%s", buf.String())
	}
}
