package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/facemenu/pkg/menu"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func TestRepositoryWatchEmitsMenuChanges(t *testing.T) {
	base := t.TempDir()
	repo, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load repository: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := repo.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before saving.
	time.Sleep(50 * time.Millisecond)

	if err := repo.Save(ctx, "avatar/main", menu.New(), "test"); err != nil {
		t.Fatalf("save menu: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventMenusInvalidated {
				return
			}
			if evt.Type == EventMenuChanged {
				if evt.Key != "avatar/main" {
					t.Fatalf("expected key 'avatar/main', got %q", evt.Key)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for menu change event")
		}
	}
}

func TestCoalescerDeliversEachEventOnce(t *testing.T) {
	got := make(chan Event, 8)
	c := newCoalescer(10*time.Millisecond, func(ev Event) { got <- ev })

	c.add(Event{Type: EventMenuChanged, Key: "b"})
	c.add(Event{Type: EventMenuChanged, Key: "a"})
	c.add(Event{Type: EventMenuChanged, Key: "b"})
	c.add(Event{Type: EventMenusInvalidated})

	want := []Event{
		{Type: EventMenusInvalidated},
		{Type: EventMenuChanged, Key: "a"},
		{Type: EventMenuChanged, Key: "b"},
	}
	for i, w := range want {
		select {
		case ev := <-got:
			if ev != w {
				t.Fatalf("event %d: expected %+v, got %+v", i, w, ev)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}
	select {
	case ev := <-got:
		t.Fatalf("unexpected extra event %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestKeyForPath(t *testing.T) {
	base := t.TempDir()
	r := &repository{basePath: base}
	path := filepath.Join(base, menusDir, toDiskKey("avatar/main")+".json")
	if got := r.keyForPath(path); got != "avatar/main" {
		t.Fatalf("expected avatar/main, got %q", got)
	}
	if got := r.keyForPath(filepath.Join(base, "stray.json")); got != "" {
		t.Fatalf("expected no key outside the menus dir, got %q", got)
	}
	if !r.isTemp(filepath.Join(base, tmpDir, "x")) {
		t.Fatalf("expected temp path to be recognised")
	}
}
