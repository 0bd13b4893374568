package printers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/facemenu/pkg/menu"
)

func init() {
	color.NoColor = true
}

func sampleMenu(t *testing.T) *menu.Menu {
	t.Helper()
	m := menu.New()
	steps := []func() error{
		func() error { _, err := m.AddMode(menu.RegisteredID, "smile"); return err },
		func() error { _, err := m.AddGroup(menu.RegisteredID, "emotes"); return err },
		func() error { _, err := m.AddMode("emotes", "wink"); return err },
		func() error { return m.AddBranch("smile", menu.GestureCondition(menu.HandLeft, menu.GestureFist, menu.OpEquals)) },
		func() error { return m.SetAnimation("smile", &menu.Animation{GUID: "a1"}, 0, menu.BranchAnimationBase) },
		func() error { return m.SetDefaultSelection("smile") },
		func() error {
			return m.ModifyModeProperties("smile", menu.ModeUpdate{DisplayName: menu.Set("Smile")})
		},
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	return m
}

func TestPrettyMenu(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Menu("main", sampleMenu(t))

	got := buf.String()
	for _, want := range []string{
		"menu main",
		"Registered - 2/8 items",
		"• Smile (1 branch) default",
		"▸ " + menu.DefaultGroupName + "/",
		"  • " + menu.DefaultModeName,
		"UnRegistered - 0 items",
		" none",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestPrettyMenuShowID(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, ShowID: true}
	pp.Menu("", sampleMenu(t))
	if !strings.Contains(buf.String(), "emotes ") {
		t.Fatalf("expected ids in output, got:\n%s", buf.String())
	}
}

func TestPrettyMode(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	mode, _ := sampleMenu(t).Mode("smile")
	pp.Mode(mode)

	got := buf.String()
	for _, want := range []string{"Smile", "CONDITIONS", "left:fist:equals", "base=a1"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestPrettyMerged(t *testing.T) {
	m := sampleMenu(t)
	merged, err := m.GetMergedMenu([]menu.ExistingItem{{Name: "Hat", Type: menu.ExistingToggle}})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Merged(merged)
	got := buf.String()
	for _, want := range []string{"Merged - 3/8 items", menu.ExistingID(0), "existing (toggle)", "Hat", "smile"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestStructured(t *testing.T) {
	doc := sampleMenu(t).Document()

	var js bytes.Buffer
	if err := (&Structured{Format: FormatJSON, Out: &js}).Print(doc); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(js.String(), `"defaultSelection": "smile"`) {
		t.Fatalf("unexpected json:\n%s", js.String())
	}

	var ym bytes.Buffer
	if err := (&Structured{Format: "YAML", Out: &ym}).Print(doc); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(ym.String(), "defaultSelection: smile") {
		t.Fatalf("unexpected yaml:\n%s", ym.String())
	}

	if err := (&Structured{Format: "xml", Out: &ym}).Print(doc); err == nil {
		t.Fatalf("expected unknown format error")
	}
}
