// Package menu holds the facial expression menu tree: modes and groups placed
// in the Registered and Unregistered lists, their branches and conditions,
// and the merge with menu items authored by other tools.
package menu

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/google/uuid"
)

const (
	RegisteredID   = "Registered"
	UnregisteredID = "UnRegistered"

	DefaultModeName  = "NewMode"
	DefaultGroupName = "NewGroup"

	DefaultTransitionDurationSeconds = 0.1
)

// Menu is the aggregate root. The modes and groups maps own every item; the
// lists only order ids.
type Menu struct {
	writeDefaults      bool
	transitionDuration float64
	defaultSelection   string

	registered    *List
	unregistered  *List
	insertIndices []int

	modes  map[string]*Mode
	groups map[string]*Group

	newID func() string
}

// New returns an empty menu.
func New() *Menu {
	return &Menu{
		transitionDuration: DefaultTransitionDurationSeconds,
		registered:         newList(RegisteredID, RegisteredCapacity),
		unregistered:       newList(UnregisteredID, Unlimited),
		modes:              make(map[string]*Mode),
		groups:             make(map[string]*Group),
		newID:              randomID,
	}
}

func randomID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (m *Menu) WriteDefaults() bool                { return m.writeDefaults }
func (m *Menu) TransitionDurationSeconds() float64 { return m.transitionDuration }

// DefaultSelection returns the id of the mode selected on first load, or "".
func (m *Menu) DefaultSelection() string { return m.defaultSelection }

func (m *Menu) Registered() ItemList   { return m.registered }
func (m *Menu) Unregistered() ItemList { return m.unregistered }

// InsertIndices returns the merge positions recorded for Registered.
func (m *Menu) InsertIndices() []int { return slices.Clone(m.insertIndices) }

func (m *Menu) ContainsMode(id string) bool {
	_, ok := m.modes[id]
	return ok
}

func (m *Menu) ContainsGroup(id string) bool {
	_, ok := m.groups[id]
	return ok
}

// IsUsedID reports whether id names an item, one of the root lists, or is
// reserved for existing items in a merge.
func (m *Menu) IsUsedID(id string) bool {
	switch {
	case id == RegisteredID, id == UnregisteredID, IsExistingID(id):
		return true
	}
	return m.ContainsMode(id) || m.ContainsGroup(id)
}

func (m *Menu) Mode(id string) (*Mode, bool) {
	mode, ok := m.modes[id]
	return mode, ok
}

func (m *Menu) Group(id string) (*Group, bool) {
	g, ok := m.groups[id]
	return g, ok
}

// Item returns the mode or group with the given id.
func (m *Menu) Item(id string) (Item, bool) {
	if mode, ok := m.modes[id]; ok {
		return mode, true
	}
	if g, ok := m.groups[id]; ok {
		return g, true
	}
	return nil, false
}

// List resolves a destination id to Registered, Unregistered or a group.
func (m *Menu) List(id string) (ItemList, bool) {
	l, ok := m.list(id)
	if !ok {
		return nil, false
	}
	if g, ok := m.groups[id]; ok {
		return g, true
	}
	return l, true
}

func (m *Menu) list(id string) (*List, bool) {
	switch id {
	case RegisteredID:
		return m.registered, true
	case UnregisteredID:
		return m.unregistered, true
	}
	if g, ok := m.groups[id]; ok {
		return g.children, true
	}
	return nil, false
}

// ModeIDs returns every mode id in sorted order.
func (m *Menu) ModeIDs() []string { return sortedKeys(m.modes) }

// GroupIDs returns every group id in sorted order.
func (m *Menu) GroupIDs() []string { return sortedKeys(m.groups) }

func sortedKeys[V any](items map[string]V) []string {
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PropertiesUpdate lists the menu wide properties to change.
type PropertiesUpdate struct {
	WriteDefaults             Field[bool]
	TransitionDurationSeconds Field[float64]
}

// ModifyProperties applies u to the menu.
func (m *Menu) ModifyProperties(u PropertiesUpdate) error {
	if d, ok := u.TransitionDurationSeconds.Get(); ok && d < 0 {
		return fmt.Errorf("%w: transition duration %v", ErrInvalidValue, d)
	}
	u.WriteDefaults.apply(&m.writeDefaults)
	u.TransitionDurationSeconds.apply(&m.transitionDuration)
	return nil
}

// ModifyModeProperties applies u to the mode id.
func (m *Menu) ModifyModeProperties(id string, u ModeUpdate) error {
	mode, ok := m.modes[id]
	if !ok {
		return fmt.Errorf("%w: mode %q", ErrNotFound, id)
	}
	mode.modify(u)
	return nil
}

// ModifyGroupProperties applies u to the group id.
func (m *Menu) ModifyGroupProperties(id string, u GroupUpdate) error {
	g, ok := m.groups[id]
	if !ok {
		return fmt.Errorf("%w: group %q", ErrNotFound, id)
	}
	u.DisplayName.apply(&g.name)
	return nil
}

// SetDefaultSelection selects the mode shown on first load. An empty id
// clears the selection.
func (m *Menu) SetDefaultSelection(modeID string) error {
	if modeID != "" && !m.ContainsMode(modeID) {
		return fmt.Errorf("%w: mode %q", ErrNotFound, modeID)
	}
	m.defaultSelection = modeID
	return nil
}

// CanAddModeTo reports whether destination can take one more item.
func (m *Menu) CanAddModeTo(destination string) bool {
	l, ok := m.list(destination)
	return ok && !l.IsFull()
}

// CanAddGroupTo reports whether destination can take one more item.
func (m *Menu) CanAddGroupTo(destination string) bool { return m.CanAddModeTo(destination) }

// AddMode creates a mode in destination and returns its id. An empty id
// requests a generated one.
func (m *Menu) AddMode(destination, id string) (string, error) {
	l, id, err := m.prepareAdd(destination, id)
	if err != nil {
		return "", err
	}
	if err := l.Insert(id, KindMode, Append); err != nil {
		return "", err
	}
	m.modes[id] = newMode(id, DefaultModeName, destination)
	return id, nil
}

// AddGroup creates a group in destination and returns its id.
func (m *Menu) AddGroup(destination, id string) (string, error) {
	l, id, err := m.prepareAdd(destination, id)
	if err != nil {
		return "", err
	}
	if err := l.Insert(id, KindGroup, Append); err != nil {
		return "", err
	}
	m.groups[id] = newGroup(id, DefaultGroupName, destination)
	return id, nil
}

// CopyMode duplicates mode id, branches included, into destination.
func (m *Menu) CopyMode(id, destination string) (string, error) {
	src, ok := m.modes[id]
	if !ok {
		return "", fmt.Errorf("%w: mode %q", ErrNotFound, id)
	}
	l, newID, err := m.prepareAdd(destination, "")
	if err != nil {
		return "", err
	}
	if err := l.Insert(newID, KindMode, Append); err != nil {
		return "", err
	}
	m.modes[newID] = src.clone(newID, destination)
	return newID, nil
}

func (m *Menu) prepareAdd(destination, id string) (*List, string, error) {
	if destination == "" {
		return nil, "", fmt.Errorf("%w: destination", ErrArgumentNull)
	}
	if id != "" && m.IsUsedID(id) {
		return nil, "", fmt.Errorf("%w: %q", ErrIDInUse, id)
	}
	l, ok := m.list(destination)
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", ErrInvalidDestination, destination)
	}
	if l.IsFull() {
		return nil, "", fmt.Errorf("%w: %s holds %d items", ErrCapacityExceeded, destination, l.Capacity())
	}
	if id == "" {
		id = m.generateID()
	}
	return l, id, nil
}

func (m *Menu) generateID() string {
	id := m.newID()
	for m.IsUsedID(id) {
		id = m.newID()
	}
	return id
}

// CanRemoveMenuItem reports whether id names a mode or group.
func (m *Menu) CanRemoveMenuItem(id string) bool { return m.ContainsMode(id) || m.ContainsGroup(id) }

// DescendantIDs lists every id below group id, excluding the group itself.
func (m *Menu) DescendantIDs(id string) ([]string, error) {
	g, ok := m.groups[id]
	if !ok {
		return nil, fmt.Errorf("%w: group %q", ErrNotFound, id)
	}
	return g.descendantIDs(m.groups), nil
}

// RemoveMenuItem deletes id. Removing a group deletes its whole subtree and
// clears every nested list on the way.
func (m *Menu) RemoveMenuItem(id string) error {
	if id == "" {
		return fmt.Errorf("%w: id", ErrArgumentNull)
	}
	item, ok := m.Item(id)
	if !ok {
		return fmt.Errorf("%w: menu item %q", ErrNotFound, id)
	}
	parent, ok := m.list(item.Parent())
	if !ok || !parent.Contains(id) {
		return fmt.Errorf("%w: parent %q of %q", ErrNotFound, item.Parent(), id)
	}
	k := parent.IndexOf(id)
	if err := parent.Remove(id); err != nil {
		return err
	}
	if parent == m.registered {
		m.dropInsertIndex(k)
	}

	if _, ok := m.modes[id]; ok {
		m.deleteMode(id)
		return nil
	}

	g := m.groups[id]
	for _, d := range g.descendantIDs(m.groups) {
		if child, ok := m.groups[d]; ok {
			child.children.clear()
			delete(m.groups, d)
			continue
		}
		m.deleteMode(d)
	}
	g.children.clear()
	delete(m.groups, id)
	return nil
}

func (m *Menu) deleteMode(id string) {
	delete(m.modes, id)
	if m.defaultSelection == id {
		m.defaultSelection = ""
	}
}

// CanMoveMenuItemFrom reports whether id can be moved at all.
func (m *Menu) CanMoveMenuItemFrom(id string) bool { return m.CanRemoveMenuItem(id) }

// CanMoveMenuItemTo reports whether MoveMenuItem(id, destination, ...) would
// succeed.
func (m *Menu) CanMoveMenuItemTo(id, destination string) bool {
	return m.checkMove(id, destination) == nil
}

func (m *Menu) checkMove(id, destination string) error {
	if id == "" || destination == "" {
		return fmt.Errorf("%w: id and destination", ErrArgumentNull)
	}
	if !m.CanMoveMenuItemFrom(id) {
		return fmt.Errorf("%w: menu item %q", ErrNotFound, id)
	}
	if id == destination {
		return fmt.Errorf("%w: %q cannot contain itself", ErrInvalidDestination, id)
	}
	dst, ok := m.list(destination)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidDestination, destination)
	}
	if m.ContainsGroup(id) && m.isAncestor(id, destination) {
		return fmt.Errorf("%w: %q is inside %q", ErrInvalidDestination, destination, id)
	}
	if !dst.CanInsert(id) {
		return fmt.Errorf("%w: %s holds %d items", ErrCapacityExceeded, destination, dst.Capacity())
	}
	return nil
}

// isAncestor reports whether group ancestor contains list id at any depth.
func (m *Menu) isAncestor(ancestor, id string) bool {
	for hops := 0; hops <= len(m.groups); hops++ {
		g, ok := m.groups[id]
		if !ok {
			return false
		}
		if g.parent == ancestor {
			return true
		}
		id = g.parent
	}
	return false
}

// MoveMenuItem relocates id into destination at index (Append for the end).
// Moving within the same list repositions the item.
func (m *Menu) MoveMenuItem(id, destination string, index int) error {
	if err := m.checkMove(id, destination); err != nil {
		return err
	}
	item, _ := m.Item(id)
	src, ok := m.list(item.Parent())
	if !ok {
		return fmt.Errorf("%w: parent %q of %q", ErrNotFound, item.Parent(), id)
	}
	dst, _ := m.list(destination)
	k := src.IndexOf(id)
	if err := src.Remove(id); err != nil {
		return err
	}
	if src == m.registered {
		m.dropInsertIndex(k)
	}
	if err := dst.Insert(id, item.Kind(), index); err != nil {
		return err
	}
	if dst == m.registered {
		m.openInsertIndex(dst.IndexOf(id))
	}
	switch v := item.(type) {
	case *Mode:
		v.parent = destination
	case *Group:
		v.parent = destination
	}
	return nil
}

// dropInsertIndex forgets the merge slot of the item that was at position k
// of Registered. Later slots move up by one so they keep their place relative
// to the existing items.
func (m *Menu) dropInsertIndex(k int) {
	if k < 0 || k >= len(m.insertIndices) {
		return
	}
	removed := m.insertIndices[k]
	m.insertIndices = slices.Delete(m.insertIndices, k, k+1)
	for i := k; i < len(m.insertIndices); i++ {
		if m.insertIndices[i] > removed {
			m.insertIndices[i]--
		}
	}
}

// openInsertIndex records a slot for an item placed at position k of
// Registered, directly after its predecessor in the merged layout. Positions
// past the recorded slots need nothing, they are appended on merge.
func (m *Menu) openInsertIndex(k int) {
	if k < 0 || k >= len(m.insertIndices) {
		return
	}
	slot := 0
	if k > 0 {
		slot = m.insertIndices[k-1] + 1
	}
	for i := k; i < len(m.insertIndices); i++ {
		if m.insertIndices[i] >= slot {
			m.insertIndices[i]++
		}
	}
	m.insertIndices = slices.Insert(m.insertIndices, k, slot)
}

// SetInsertIndices restores merge bookkeeping, typically after loading.
func (m *Menu) SetInsertIndices(indices []int) {
	m.insertIndices = slices.Clone(indices)
}

func (m *Menu) CanAddBranchTo(modeID string) bool { return m.ContainsMode(modeID) }

// AddBranch appends a branch to mode modeID.
func (m *Menu) AddBranch(modeID string, conditions ...Condition) error {
	mode, ok := m.modes[modeID]
	if !ok {
		return fmt.Errorf("%w: mode %q", ErrNotFound, modeID)
	}
	for _, c := range conditions {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	mode.AddBranch(conditions...)
	return nil
}

// ContainsBranch reports whether the mode and branch index exist.
func (m *Menu) ContainsBranch(modeID string, branch int) bool {
	mode, ok := m.modes[modeID]
	return ok && mode.ContainsBranch(branch)
}

// ContainsCondition reports whether the mode, branch and condition exist.
func (m *Menu) ContainsCondition(modeID string, branch, condition int) bool {
	mode, ok := m.modes[modeID]
	return ok && mode.ContainsCondition(branch, condition)
}

func (m *Menu) CanModifyBranchProperties(modeID string, branch int) bool {
	return m.ContainsBranch(modeID, branch)
}

func (m *Menu) ModifyBranchProperties(modeID string, branch int, u BranchUpdate) error {
	mode, err := m.branchMode(modeID, branch)
	if err != nil {
		return err
	}
	return mode.ModifyBranchProperties(branch, u)
}

func (m *Menu) CanChangeBranchOrder(modeID string, from int) bool {
	return m.ContainsBranch(modeID, from)
}

func (m *Menu) ChangeBranchOrder(modeID string, from, to int) error {
	mode, err := m.branchMode(modeID, from)
	if err != nil {
		return err
	}
	return mode.ChangeBranchOrder(from, to)
}

func (m *Menu) CanRemoveBranch(modeID string, branch int) bool {
	return m.ContainsBranch(modeID, branch)
}

func (m *Menu) RemoveBranch(modeID string, branch int) error {
	mode, err := m.branchMode(modeID, branch)
	if err != nil {
		return err
	}
	return mode.RemoveBranch(branch)
}

func (m *Menu) CanAddConditionTo(modeID string, branch int) bool {
	return m.ContainsBranch(modeID, branch)
}

func (m *Menu) AddCondition(modeID string, branch int, c Condition) error {
	mode, err := m.branchMode(modeID, branch)
	if err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	return mode.AddCondition(branch, c)
}

func (m *Menu) CanModifyCondition(modeID string, branch, condition int) bool {
	return m.ContainsCondition(modeID, branch, condition)
}

func (m *Menu) ModifyCondition(modeID string, branch, condition int, c Condition) error {
	mode, err := m.branchMode(modeID, branch)
	if err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	return mode.ModifyCondition(branch, condition, c)
}

func (m *Menu) CanChangeConditionOrder(modeID string, branch, from int) bool {
	return m.ContainsCondition(modeID, branch, from)
}

func (m *Menu) ChangeConditionOrder(modeID string, branch, from, to int) error {
	mode, err := m.branchMode(modeID, branch)
	if err != nil {
		return err
	}
	return mode.ChangeConditionOrder(branch, from, to)
}

func (m *Menu) CanRemoveCondition(modeID string, branch, condition int) bool {
	return m.ContainsCondition(modeID, branch, condition)
}

func (m *Menu) RemoveCondition(modeID string, branch, condition int) error {
	mode, err := m.branchMode(modeID, branch)
	if err != nil {
		return err
	}
	return mode.RemoveCondition(branch, condition)
}

// CanSetAnimationTo reports whether SetAnimation would accept the target.
func (m *Menu) CanSetAnimationTo(modeID string, branch int, slot BranchAnimationType) bool {
	mode, ok := m.modes[modeID]
	return ok && mode.CanSetAnimation(branch, slot)
}

// SetAnimation assigns a to the mode (branch == NoBranch) or to a branch slot.
func (m *Menu) SetAnimation(modeID string, a *Animation, branch int, slot BranchAnimationType) error {
	mode, ok := m.modes[modeID]
	if !ok {
		return fmt.Errorf("%w: mode %q", ErrNotFound, modeID)
	}
	return mode.SetAnimation(a, branch, slot)
}

func (m *Menu) branchMode(modeID string, branch int) (*Mode, error) {
	mode, ok := m.modes[modeID]
	if !ok {
		return nil, fmt.Errorf("%w: mode %q", ErrNotFound, modeID)
	}
	if !mode.ContainsBranch(branch) {
		return nil, fmt.Errorf("%w: branch %d of mode %q", ErrIndexOutOfRange, branch, modeID)
	}
	return mode, nil
}
