package existing

import (
	"os"
	"path/filepath"
	"testing"

	"tableflip.dev/facemenu/pkg/menu"
)

func TestParseShapes(t *testing.T) {
	tests := map[string]string{
		"mapping": `
items:
  - name: Hat
    type: toggle
    parameter: HatOn
    value: 1
  - name: Emotes
    type: submenu
`,
		"bare list": `
- name: Hat
  type: Toggle
  parameter: HatOn
  value: 1
- name: Emotes
  type: SUBMENU
`,
		"json": `[{"name": "Hat", "type": "toggle", "parameter": "HatOn", "value": 1}, {"name": "Emotes", "type": "submenu"}]`,
	}
	want := []menu.ExistingItem{
		{Name: "Hat", Type: menu.ExistingToggle, Parameter: "HatOn", Value: 1},
		{Name: "Emotes", Type: menu.ExistingSubMenu},
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Parse([]byte(in))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if len(got) != len(want) {
				t.Fatalf("expected %d items, got %d", len(want), len(got))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("item %d: expected %+v, got %+v", i, want[i], got[i])
				}
			}
		})
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	for _, in := range []string{"just a string", "- type: toggle"} {
		if _, err := Parse([]byte(in)); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
	if got, err := Parse([]byte("  \n")); err != nil || got != nil {
		t.Fatalf("expected empty input to yield nothing, got %v %v", got, err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "existing.yaml")
	if err := os.WriteFile(path, []byte("- name: Wave\n  type: button\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].Type != menu.ExistingButton {
		t.Fatalf("unexpected items %+v", got)
	}
	if got, err := Load(""); err != nil || got != nil {
		t.Fatalf("expected no items for empty path, got %v %v", got, err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
