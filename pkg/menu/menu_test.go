package menu

import (
	"errors"
	"fmt"
	"slices"
	"testing"
)

func newTestMenu() *Menu {
	m := New()
	n := 0
	m.newID = func() string {
		n++
		return fmt.Sprintf("gen%d", n)
	}
	return m
}

func mustAddMode(t *testing.T, m *Menu, destination, id string) string {
	t.Helper()
	got, err := m.AddMode(destination, id)
	if err != nil {
		t.Fatalf("add mode %q to %q: %v", id, destination, err)
	}
	return got
}

func mustAddGroup(t *testing.T, m *Menu, destination, id string) string {
	t.Helper()
	got, err := m.AddGroup(destination, id)
	if err != nil {
		t.Fatalf("add group %q to %q: %v", id, destination, err)
	}
	return got
}

func TestAddModeRespectsRegisteredCapacity(t *testing.T) {
	m := newTestMenu()
	for i := 0; i < RegisteredCapacity; i++ {
		mustAddMode(t, m, RegisteredID, "")
	}
	if m.CanAddModeTo(RegisteredID) {
		t.Fatalf("expected full Registered to refuse new modes")
	}
	_, err := m.AddMode(RegisteredID, "")
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	if got := m.Registered().Len(); got != RegisteredCapacity {
		t.Fatalf("expected %d registered items, got %d", RegisteredCapacity, got)
	}
	if got := len(m.ModeIDs()); got != RegisteredCapacity {
		t.Fatalf("failed add must not create a mode, have %d", got)
	}
}

func TestUnregisteredIsUnbounded(t *testing.T) {
	m := newTestMenu()
	for i := 0; i < 3*RegisteredCapacity; i++ {
		mustAddMode(t, m, UnregisteredID, "")
	}
	if m.Unregistered().IsFull() {
		t.Fatalf("Unregistered must never be full")
	}
}

func TestAddModeDefaults(t *testing.T) {
	m := newTestMenu()
	id := mustAddMode(t, m, RegisteredID, "")
	if id != "gen1" {
		t.Fatalf("expected generated id gen1, got %q", id)
	}
	mode, ok := m.Mode(id)
	if !ok {
		t.Fatalf("mode %q missing", id)
	}
	if mode.DisplayName() != DefaultModeName {
		t.Fatalf("expected name %q, got %q", DefaultModeName, mode.DisplayName())
	}
	if mode.Parent() != RegisteredID {
		t.Fatalf("expected parent Registered, got %q", mode.Parent())
	}
	if mode.EyeTrackingControl() != EyeTracking || mode.MouthTrackingControl() != MouthTracking {
		t.Fatalf("unexpected tracking defaults %q/%q", mode.EyeTrackingControl(), mode.MouthTrackingControl())
	}
}

func TestAddModeRejectsBadInput(t *testing.T) {
	m := newTestMenu()
	mustAddMode(t, m, RegisteredID, "smile")

	if _, err := m.AddMode(RegisteredID, "smile"); !errors.Is(err, ErrIDInUse) {
		t.Fatalf("expected ErrIDInUse, got %v", err)
	}
	if _, err := m.AddGroup(RegisteredID, RegisteredID); !errors.Is(err, ErrIDInUse) {
		t.Fatalf("expected root id to be reserved, got %v", err)
	}
	if _, err := m.AddMode(RegisteredID, ExistingID(0)); !errors.Is(err, ErrIDInUse) {
		t.Fatalf("expected existing ids to be reserved, got %v", err)
	}
	if _, err := m.AddMode("nowhere", ""); !errors.Is(err, ErrInvalidDestination) {
		t.Fatalf("expected ErrInvalidDestination, got %v", err)
	}
	if _, err := m.AddMode("smile", ""); !errors.Is(err, ErrInvalidDestination) {
		t.Fatalf("a mode is not a destination, got %v", err)
	}
	if _, err := m.AddMode("", ""); !errors.Is(err, ErrArgumentNull) {
		t.Fatalf("expected ErrArgumentNull, got %v", err)
	}
}

func TestGroupCapacity(t *testing.T) {
	m := newTestMenu()
	g := mustAddGroup(t, m, UnregisteredID, "g")
	for i := 0; i < GroupCapacity; i++ {
		mustAddMode(t, m, g, "")
	}
	if _, err := m.AddGroup(g, ""); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
}

func TestBranchAddRemove(t *testing.T) {
	m := newTestMenu()
	id := mustAddMode(t, m, RegisteredID, "")
	if err := m.AddBranch(id); err != nil {
		t.Fatalf("add branch: %v", err)
	}
	if !m.ContainsBranch(id, 0) {
		t.Fatalf("expected branch 0")
	}
	if err := m.RemoveBranch(id, 0); err != nil {
		t.Fatalf("remove branch: %v", err)
	}
	mode, _ := m.Mode(id)
	if n := len(mode.Branches()); n != 0 {
		t.Fatalf("expected no branches, got %d", n)
	}
	if err := m.RemoveBranch(id, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestChangeBranchOrder(t *testing.T) {
	m := newTestMenu()
	id := mustAddMode(t, m, RegisteredID, "")
	for _, g := range []HandGesture{GestureFist, GestureVictory, GestureThumbsUp} {
		if err := m.AddBranch(id, GestureCondition(HandLeft, g, OpEquals)); err != nil {
			t.Fatalf("add branch: %v", err)
		}
	}
	if err := m.ChangeBranchOrder(id, 0, 2); err != nil {
		t.Fatalf("change branch order: %v", err)
	}
	mode, _ := m.Mode(id)
	var got []HandGesture
	for _, b := range mode.Branches() {
		got = append(got, b.Conditions()[0].HandGesture)
	}
	want := []HandGesture{GestureVictory, GestureThumbsUp, GestureFist}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if err := m.ChangeBranchOrder(id, 0, 3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestBranchProperties(t *testing.T) {
	m := newTestMenu()
	id := mustAddMode(t, m, RegisteredID, "")
	if err := m.AddBranch(id); err != nil {
		t.Fatalf("add branch: %v", err)
	}
	err := m.ModifyBranchProperties(id, 0, BranchUpdate{
		EyeTrackingControl: Set(EyeAnimation),
		IsLeftTriggerUsed:  Set(true),
	})
	if err != nil {
		t.Fatalf("modify branch: %v", err)
	}
	mode, _ := m.Mode(id)
	b, _ := mode.Branch(0)
	if b.EyeTrackingControl() != EyeAnimation || !b.IsLeftTriggerUsed() {
		t.Fatalf("branch update not applied")
	}
	if b.MouthTrackingControl() != MouthTracking || b.IsRightTriggerUsed() {
		t.Fatalf("unset fields must keep their values")
	}
}

func TestConditionLifecycle(t *testing.T) {
	m := newTestMenu()
	id := mustAddMode(t, m, RegisteredID, "")
	if err := m.AddBranch(id); err != nil {
		t.Fatalf("add branch: %v", err)
	}
	first := GestureCondition(HandLeft, GestureFist, OpEquals)
	second := ParameterCondition("Weight", OpGreaterThan, 0.5)
	for _, c := range []Condition{first, second} {
		if err := m.AddCondition(id, 0, c); err != nil {
			t.Fatalf("add condition: %v", err)
		}
	}
	if err := m.AddCondition(id, 0, GestureCondition(HandLeft, GestureFist, OpGreaterThan)); !errors.Is(err, ErrInvalidCondition) {
		t.Fatalf("expected ErrInvalidCondition, got %v", err)
	}
	if err := m.ChangeConditionOrder(id, 0, 1, 0); err != nil {
		t.Fatalf("change condition order: %v", err)
	}
	replacement := GestureCondition(HandRight, GestureVictory, OpNotEqual)
	if err := m.ModifyCondition(id, 0, 1, replacement); err != nil {
		t.Fatalf("modify condition: %v", err)
	}
	mode, _ := m.Mode(id)
	b, _ := mode.Branch(0)
	want := []Condition{second, replacement}
	if !slices.Equal(b.Conditions(), want) {
		t.Fatalf("expected %v, got %v", want, b.Conditions())
	}
	if err := m.RemoveCondition(id, 0, 0); err != nil {
		t.Fatalf("remove condition: %v", err)
	}
	if m.ContainsCondition(id, 0, 1) {
		t.Fatalf("expected one condition left")
	}
	if err := m.RemoveCondition(id, 0, 5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestSetAnimation(t *testing.T) {
	m := newTestMenu()
	id := mustAddMode(t, m, RegisteredID, "")
	if err := m.AddBranch(id); err != nil {
		t.Fatalf("add branch: %v", err)
	}
	smile := &Animation{GUID: "smile"}
	if err := m.SetAnimation(id, smile, NoBranch, BranchAnimationNone); err != nil {
		t.Fatalf("set mode animation: %v", err)
	}
	if err := m.SetAnimation(id, smile, 0, BranchAnimationLeft); err != nil {
		t.Fatalf("set branch animation: %v", err)
	}
	if err := m.SetAnimation(id, smile, 0, BranchAnimationNone); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget for missing slot, got %v", err)
	}
	if err := m.SetAnimation(id, smile, 4, BranchAnimationBase); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget for missing branch, got %v", err)
	}

	mode, _ := m.Mode(id)
	if a, ok := mode.Animation(); !ok || a.GUID != "smile" {
		t.Fatalf("mode animation not set: %v %v", a, ok)
	}
	b, _ := mode.Branch(0)
	if _, ok := b.Animation(BranchAnimationLeft); !ok {
		t.Fatalf("branch animation not set")
	}

	if err := m.SetAnimation(id, nil, 0, BranchAnimationLeft); err != nil {
		t.Fatalf("clear branch animation: %v", err)
	}
	if _, ok := b.Animation(BranchAnimationLeft); ok {
		t.Fatalf("expected cleared slot")
	}
}

func TestRemoveGroupCascades(t *testing.T) {
	m := newTestMenu()
	keep := mustAddMode(t, m, RegisteredID, "keep")
	g := mustAddGroup(t, m, RegisteredID, "g")
	mustAddMode(t, m, g, "m1")
	inner := mustAddGroup(t, m, g, "inner")
	mustAddMode(t, m, inner, "m2")
	mustAddMode(t, m, inner, "m3")
	if err := m.SetDefaultSelection("m2"); err != nil {
		t.Fatalf("set default: %v", err)
	}

	descendants, err := m.DescendantIDs(g)
	if err != nil {
		t.Fatalf("descendants: %v", err)
	}
	want := []string{"m1", "inner", "m2", "m3"}
	if !slices.Equal(descendants, want) {
		t.Fatalf("expected descendants %v, got %v", want, descendants)
	}

	if err := m.RemoveMenuItem(g); err != nil {
		t.Fatalf("remove group: %v", err)
	}
	if got := m.ModeIDs(); !slices.Equal(got, []string{keep}) {
		t.Fatalf("expected only %q to remain, got %v", keep, got)
	}
	if got := m.GroupIDs(); len(got) != 0 {
		t.Fatalf("expected no groups, got %v", got)
	}
	if got := m.Registered().Order(); !slices.Equal(got, []string{keep}) {
		t.Fatalf("unexpected registered order %v", got)
	}
	if m.DefaultSelection() != "" {
		t.Fatalf("default selection must be cleared with its mode")
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("menu invalid after cascade: %v", err)
	}
	if err := m.RemoveMenuItem(g); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMoveRoundTrip(t *testing.T) {
	m := newTestMenu()
	for _, id := range []string{"a", "m", "b"} {
		mustAddMode(t, m, RegisteredID, id)
	}
	if err := m.MoveMenuItem("m", UnregisteredID, Append); err != nil {
		t.Fatalf("move out: %v", err)
	}
	if mode, _ := m.Mode("m"); mode.Parent() != UnregisteredID {
		t.Fatalf("expected parent UnRegistered, got %q", mode.Parent())
	}
	if err := m.MoveMenuItem("m", RegisteredID, 1); err != nil {
		t.Fatalf("move back: %v", err)
	}
	if got := m.Registered().Order(); !slices.Equal(got, []string{"a", "m", "b"}) {
		t.Fatalf("expected original order, got %v", got)
	}
	if mode, _ := m.Mode("m"); mode.Parent() != RegisteredID {
		t.Fatalf("expected parent Registered, got %q", mode.Parent())
	}
	if m.Unregistered().Len() != 0 {
		t.Fatalf("expected Unregistered to be empty")
	}
}

func TestMoveWithinFullList(t *testing.T) {
	m := newTestMenu()
	for i := 0; i < RegisteredCapacity; i++ {
		mustAddMode(t, m, RegisteredID, fmt.Sprintf("m%d", i))
	}
	if err := m.MoveMenuItem("m7", RegisteredID, 0); err != nil {
		t.Fatalf("reposition in full list: %v", err)
	}
	if got := m.Registered().Order()[0]; got != "m7" {
		t.Fatalf("expected m7 first, got %q", got)
	}

	mustAddMode(t, m, UnregisteredID, "extra")
	if m.CanMoveMenuItemTo("extra", RegisteredID) {
		t.Fatalf("expected full Registered to refuse a move")
	}
	if err := m.MoveMenuItem("extra", RegisteredID, Append); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	if mode, _ := m.Mode("extra"); mode.Parent() != UnregisteredID {
		t.Fatalf("failed move must leave the item in place")
	}
}

func TestMoveRejectsCycles(t *testing.T) {
	m := newTestMenu()
	outer := mustAddGroup(t, m, RegisteredID, "outer")
	inner := mustAddGroup(t, m, outer, "inner")

	if err := m.MoveMenuItem(outer, outer, Append); !errors.Is(err, ErrInvalidDestination) {
		t.Fatalf("expected ErrInvalidDestination moving into itself, got %v", err)
	}
	if err := m.MoveMenuItem(outer, inner, Append); !errors.Is(err, ErrInvalidDestination) {
		t.Fatalf("expected ErrInvalidDestination moving into a descendant, got %v", err)
	}
	if err := m.MoveMenuItem(inner, RegisteredID, Append); err != nil {
		t.Fatalf("move inner out: %v", err)
	}
	if err := m.MoveMenuItem(outer, inner, Append); err != nil {
		t.Fatalf("move outer under former child: %v", err)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("menu invalid after moves: %v", err)
	}
}

func TestCopyModeIsDeep(t *testing.T) {
	m := newTestMenu()
	src := mustAddMode(t, m, RegisteredID, "src")
	if err := m.AddBranch(src, GestureCondition(HandLeft, GestureFist, OpEquals)); err != nil {
		t.Fatalf("add branch: %v", err)
	}
	dup, err := m.CopyMode(src, UnregisteredID)
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if dup == src {
		t.Fatalf("copy must get a new id")
	}
	if err := m.RemoveCondition(dup, 0, 0); err != nil {
		t.Fatalf("remove condition from copy: %v", err)
	}
	if !m.ContainsCondition(src, 0, 0) {
		t.Fatalf("editing the copy changed the source")
	}
	if mode, _ := m.Mode(dup); mode.Parent() != UnregisteredID {
		t.Fatalf("expected copy in UnRegistered, got %q", mode.Parent())
	}
}

func TestModifyProperties(t *testing.T) {
	m := newTestMenu()
	if err := m.ModifyProperties(PropertiesUpdate{TransitionDurationSeconds: Set(-1.0)}); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	if m.TransitionDurationSeconds() != DefaultTransitionDurationSeconds {
		t.Fatalf("failed update must not change the duration")
	}
	if err := m.ModifyProperties(PropertiesUpdate{WriteDefaults: Set(true)}); err != nil {
		t.Fatalf("modify: %v", err)
	}
	if !m.WriteDefaults() || m.TransitionDurationSeconds() != DefaultTransitionDurationSeconds {
		t.Fatalf("unexpected properties %v/%v", m.WriteDefaults(), m.TransitionDurationSeconds())
	}

	id := mustAddMode(t, m, RegisteredID, "")
	if err := m.ModifyModeProperties(id, ModeUpdate{DisplayName: Set("Smile")}); err != nil {
		t.Fatalf("modify mode: %v", err)
	}
	if mode, _ := m.Mode(id); mode.DisplayName() != "Smile" {
		t.Fatalf("expected renamed mode, got %q", mode.DisplayName())
	}
	if err := m.ModifyGroupProperties(id, GroupUpdate{DisplayName: Set("x")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a mode id, got %v", err)
	}
}
