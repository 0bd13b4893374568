package menu

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ExistingItemType describes a control written by another tool.
type ExistingItemType string

const (
	ExistingToggle  ExistingItemType = "toggle"
	ExistingButton  ExistingItemType = "button"
	ExistingSubMenu ExistingItemType = "submenu"
	ExistingRadial  ExistingItemType = "radial"
	ExistingOther   ExistingItemType = "other"
)

// ParseExistingItemType converts a string to an ExistingItemType. Empty and
// unknown values map to ExistingOther.
func ParseExistingItemType(raw string) ExistingItemType {
	switch t := ExistingItemType(normalize(raw)); t {
	case ExistingToggle, ExistingButton, ExistingSubMenu, ExistingRadial:
		return t
	default:
		return ExistingOther
	}
}

// ExistingItem is a control already present in the physical menu. It has no
// id of its own and is identified by its content.
type ExistingItem struct {
	Name      string           `json:"name" yaml:"name"`
	Type      ExistingItemType `json:"type,omitempty" yaml:"type,omitempty"`
	Parameter string           `json:"parameter,omitempty" yaml:"parameter,omitempty"`
	Value     float64          `json:"value,omitempty" yaml:"value,omitempty"`
}

// existingPrefix cannot collide with generated ids, which are hex only.
const existingPrefix = "existing:"

// ExistingID is the id an existing item receives at position i of the
// supplied list.
func ExistingID(i int) string { return existingPrefix + strconv.Itoa(i) }

// IsExistingID reports whether id was assigned by ExistingID.
func IsExistingID(id string) bool { return strings.HasPrefix(id, existingPrefix) }

// MergedEntry is one slot of a MergedList.
type MergedEntry struct {
	ID       string        `json:"id" yaml:"id"`
	Kind     string        `json:"kind" yaml:"kind"`
	Name     string        `json:"name" yaml:"name"`
	Existing *ExistingItem `json:"existing,omitempty" yaml:"existing,omitempty"`
}

const (
	mergedMode     = "mode"
	mergedGroup    = "group"
	mergedExisting = "existing"
)

// MergedList is the combined ordering of Registered and existing items.
type MergedList struct {
	order   []string
	entries map[string]MergedEntry
}

func newMergedList() *MergedList {
	return &MergedList{entries: make(map[string]MergedEntry)}
}

// NewMergedList builds a merged list from entries in order, for example one
// reordered by a caller before UpdateOrderAndInsertIndices.
func NewMergedList(entries []MergedEntry) (*MergedList, error) {
	l := newMergedList()
	for _, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("%w: merged entry id", ErrArgumentNull)
		}
		if _, dup := l.entries[e.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate merged entry %q", ErrInvalidMergeState, e.ID)
		}
		switch e.Kind {
		case mergedMode, mergedGroup, mergedExisting:
		default:
			return nil, fmt.Errorf("%w: merged entry %q has kind %q", ErrInvalidMergeState, e.ID, e.Kind)
		}
		l.insert(e, Append)
	}
	return l, nil
}

func (l *MergedList) insert(e MergedEntry, index int) {
	if index < 0 || index > len(l.order) {
		index = len(l.order)
	}
	l.order = slices.Insert(l.order, index, e.ID)
	l.entries[e.ID] = e
}

// Order returns the ids in merged order.
func (l *MergedList) Order() []string { return slices.Clone(l.order) }

func (l *MergedList) Len() int { return len(l.order) }

// Entries returns the slots in merged order.
func (l *MergedList) Entries() []MergedEntry {
	out := make([]MergedEntry, len(l.order))
	for i, id := range l.order {
		out[i] = l.entries[id]
	}
	return out
}

func (l *MergedList) ContainsMode(id string) bool     { return l.entries[id].Kind == mergedMode }
func (l *MergedList) ContainsGroup(id string) bool    { return l.entries[id].Kind == mergedGroup }
func (l *MergedList) ContainsExisting(id string) bool { return l.entries[id].Kind == mergedExisting }

// Existing returns the external item stored under id.
func (l *MergedList) Existing(id string) (ExistingItem, bool) {
	e, ok := l.entries[id]
	if !ok || e.Existing == nil {
		return ExistingItem{}, false
	}
	return *e.Existing, true
}

// owned returns the mode and group ids in merged order.
func (l *MergedList) owned() []string {
	var out []string
	for _, id := range l.order {
		if l.ContainsMode(id) || l.ContainsGroup(id) {
			out = append(out, id)
		}
	}
	return out
}

// CanGetMergedMenu reports whether Registered and existing fit together on
// one physical menu page.
func (m *Menu) CanGetMergedMenu(existing []ExistingItem) bool {
	return m.registered.Len()+len(existing) <= RegisteredCapacity
}

// GetMergedMenu lays out existing items in their supplied order and places
// each Registered item at the position recorded by the previous merge, or at
// the end when nothing is recorded.
func (m *Menu) GetMergedMenu(existing []ExistingItem) (*MergedList, error) {
	if !m.CanGetMergedMenu(existing) {
		return nil, fmt.Errorf("%w: %d registered and %d existing items exceed %d",
			ErrCapacityExceeded, m.registered.Len(), len(existing), RegisteredCapacity)
	}
	merged := newMergedList()
	for i := range existing {
		item := existing[i]
		merged.insert(MergedEntry{ID: ExistingID(i), Kind: mergedExisting, Name: item.Name, Existing: &item}, Append)
	}
	for i, id := range m.registered.order {
		index := Append
		if i < len(m.insertIndices) {
			index = m.insertIndices[i]
		}
		e := MergedEntry{ID: id}
		switch m.registered.members[id] {
		case KindMode:
			e.Kind, e.Name = mergedMode, m.modes[id].name
		case KindGroup:
			e.Kind, e.Name = mergedGroup, m.groups[id].name
		}
		merged.insert(e, index)
	}
	return merged, nil
}

// CanUpdateOrderAndInsertIndices reports whether merged holds exactly the ids
// of Registered, plus any number of existing items.
func (m *Menu) CanUpdateOrderAndInsertIndices(merged *MergedList) bool {
	return m.checkMerged(merged) == nil
}

func (m *Menu) checkMerged(merged *MergedList) error {
	if merged == nil {
		return fmt.Errorf("%w: merged list", ErrArgumentNull)
	}
	owned := merged.owned()
	for _, id := range owned {
		if !m.registered.Contains(id) {
			return fmt.Errorf("%w: %q is not registered", ErrInvalidMergeState, id)
		}
		want := mergedMode
		if m.registered.members[id] == KindGroup {
			want = mergedGroup
		}
		if merged.entries[id].Kind != want {
			return fmt.Errorf("%w: %q is a %s", ErrInvalidMergeState, id, m.registered.members[id])
		}
	}
	if len(owned) != m.registered.Len() {
		return fmt.Errorf("%w: merged list holds %d of %d registered items",
			ErrInvalidMergeState, len(owned), m.registered.Len())
	}
	return nil
}

// UpdateOrderAndInsertIndices reorders Registered to follow merged and
// records the merged position of each Registered item for the next merge.
func (m *Menu) UpdateOrderAndInsertIndices(merged *MergedList) error {
	if err := m.checkMerged(merged); err != nil {
		return err
	}
	indices := make([]int, 0, m.registered.Len())
	for i, id := range merged.order {
		if merged.ContainsMode(id) || merged.ContainsGroup(id) {
			indices = append(indices, i)
		}
	}
	for rank, id := range merged.owned() {
		if err := m.registered.Insert(id, m.registered.members[id], rank); err != nil {
			return err
		}
	}
	m.insertIndices = indices
	return nil
}
