package show

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/facemenu/pkg/app"
	"tableflip.dev/facemenu/pkg/menu"
	"tableflip.dev/facemenu/pkg/store"
)

func newTestApp(t *testing.T) *app.Service {
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
	svc.AddGroup(ctx, "main", menu.RegisteredID, "emotes", "Emotes")
	svc.AddMode(ctx, "main", "emotes", "wink", "Wink")
	return svc
}

func TestShowTree(t *testing.T) {
	var buf bytes.Buffer
	s := Show{App: newTestApp(t), Menu: "main", Out: &buf}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	for _, want := range []string{"• Smile", "▸ Emotes/", "  • Wink"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("expected %q in output, got:\n%s", want, buf.String())
		}
	}
}

func TestShowItem(t *testing.T) {
	svc := newTestApp(t)

	var buf bytes.Buffer
	s := Show{App: svc, Menu: "main", Item: "emotes", Out: &buf}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	if !strings.Contains(buf.String(), "Emotes - 1/8 item") || strings.Contains(buf.String(), "Smile") {
		t.Fatalf("expected only the group, got:\n%s", buf.String())
	}

	buf.Reset()
	s = Show{App: svc, Menu: "main", Item: "smile", Format: "json", Out: &buf}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	var mode menu.ModeDocument
	if err := json.Unmarshal(buf.Bytes(), &mode); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if mode.DisplayName != "Smile" {
		t.Fatalf("expected Smile, got %+v", mode)
	}

	s = Show{App: svc, Menu: "main", Item: "ghost", Out: &buf}
	if err := s.Do(context.Background()); !errors.Is(err, menu.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestShowCopy(t *testing.T) {
	var copied string
	var buf bytes.Buffer
	s := Show{App: newTestApp(t), Menu: "main", Copy: true, Out: &buf}
	s.copy = func(text string) error {
		copied = text
		return nil
	}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	var doc menu.Document
	if err := json.Unmarshal([]byte(copied), &doc); err != nil {
		t.Fatalf("clipboard content is not a document: %v", err)
	}
	if len(doc.Registered) != 2 {
		t.Fatalf("expected two registered items, got %v", doc.Registered)
	}
	if !strings.Contains(buf.String(), "main copied to clipboard") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestShowMissingMenu(t *testing.T) {
	s := Show{App: newTestApp(t), Menu: "nope", Out: &bytes.Buffer{}}
	if err := s.Do(context.Background()); !errors.Is(err, store.ErrMenuNotFound) {
		t.Fatalf("expected ErrMenuNotFound, got %v", err)
	}
}
