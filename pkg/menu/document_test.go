package menu

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func sampleMenu(t *testing.T) *Menu {
	t.Helper()
	m := newTestMenu()
	smile := mustAddMode(t, m, RegisteredID, "smile")
	g := mustAddGroup(t, m, RegisteredID, "faces")
	mustAddMode(t, m, g, "wink")
	mustAddMode(t, m, UnregisteredID, "spare")

	if err := m.AddBranch(smile, GestureCondition(HandEither, GestureVictory, OpEquals), ParameterCondition("Weight", OpLessThan, 0.25)); err != nil {
		t.Fatalf("add branch: %v", err)
	}
	if err := m.SetAnimation(smile, &Animation{GUID: "base"}, NoBranch, BranchAnimationNone); err != nil {
		t.Fatalf("set animation: %v", err)
	}
	if err := m.SetAnimation(smile, &Animation{GUID: "left"}, 0, BranchAnimationLeft); err != nil {
		t.Fatalf("set branch animation: %v", err)
	}
	if err := m.ModifyBranchProperties(smile, 0, BranchUpdate{IsRightTriggerUsed: Set(true)}); err != nil {
		t.Fatalf("modify branch: %v", err)
	}
	if err := m.SetDefaultSelection(smile); err != nil {
		t.Fatalf("set default: %v", err)
	}
	if err := m.ModifyProperties(PropertiesUpdate{WriteDefaults: Set(true), TransitionDurationSeconds: Set(0.25)}); err != nil {
		t.Fatalf("modify properties: %v", err)
	}
	m.SetInsertIndices([]int{0, 3})
	return m
}

func TestDocumentRoundTrip(t *testing.T) {
	m := sampleMenu(t)
	doc := m.Document()

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded Document
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	restored, err := FromDocument(decoded)
	if err != nil {
		t.Fatalf("from document: %v", err)
	}
	if got := restored.Document(); !reflect.DeepEqual(got, doc) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", doc, got)
	}
	if wink, ok := restored.Mode("wink"); !ok || wink.Parent() != "faces" {
		t.Fatalf("expected wink to be restored under faces")
	}
}

func TestFromDocumentRejectsBrokenTrees(t *testing.T) {
	base := func() Document {
		return Document{
			Schema:     CurrentSchema,
			Registered: []string{"a"},
			Modes:      map[string]ModeDocument{"a": {DisplayName: "A"}, "b": {DisplayName: "B"}},
			Groups:     map[string]GroupDocument{"g": {DisplayName: "G", Order: []string{"b"}}},
		}
	}

	cases := map[string]struct {
		mutate func(*Document)
		want   error
	}{
		"unknown id": {
			mutate: func(d *Document) { d.Unregistered = []string{"g", "ghost"} },
			want:   ErrNotFound,
		},
		"listed twice": {
			mutate: func(d *Document) { d.Unregistered = []string{"g", "a"} },
			want:   ErrIDInUse,
		},
		"over capacity": {
			mutate: func(d *Document) {
				d.Unregistered = []string{"g"}
				for _, id := range []string{"c", "d", "e", "f", "h", "i", "j", "k"} {
					d.Modes[id] = ModeDocument{DisplayName: id}
					d.Registered = append(d.Registered, id)
				}
			},
			want: ErrCapacityExceeded,
		},
		"missing default": {
			mutate: func(d *Document) {
				d.Unregistered = []string{"g"}
				d.DefaultSelection = "ghost"
			},
			want: ErrNotFound,
		},
		"invalid condition": {
			mutate: func(d *Document) {
				d.Unregistered = []string{"g"}
				d.Modes["a"] = ModeDocument{DisplayName: "A", Branches: []BranchDocument{{
					Conditions: []Condition{{Hand: HandLeft, HandGesture: GestureFist, ComparisonOperator: OpGreaterThan}},
				}}}
			},
			want: ErrInvalidCondition,
		},
		"more insert indices than registered": {
			mutate: func(d *Document) {
				d.Unregistered = []string{"g"}
				d.InsertIndices = []int{0, 2}
			},
			want: ErrInvalidMergeState,
		},
		"insert indices out of order": {
			mutate: func(d *Document) {
				d.Unregistered = []string{"g"}
				d.Registered = []string{"a", "b"}
				d.Groups["g"] = GroupDocument{DisplayName: "G"}
				d.InsertIndices = []int{3, 1}
			},
			want: ErrInvalidMergeState,
		},
		"reserved id": {
			mutate: func(d *Document) { d.Groups[RegisteredID] = GroupDocument{} },
			want:   ErrIDInUse,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			doc := base()
			tc.mutate(&doc)
			if _, err := FromDocument(doc); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	doc := base()
	if _, err := FromDocument(doc); err == nil {
		t.Fatalf("expected unreachable group to be reported")
	}
	doc.Unregistered = []string{"g"}
	if _, err := FromDocument(doc); err != nil {
		t.Fatalf("expected valid document, got %v", err)
	}
}
