package menu

import (
	"fmt"
	"slices"
)

const (
	// RegisteredCapacity is the number of controls a physical expression menu
	// page can hold.
	RegisteredCapacity = 8
	// GroupCapacity mirrors RegisteredCapacity, a group is a submenu page.
	GroupCapacity = RegisteredCapacity
	// Unlimited marks a list without a capacity bound.
	Unlimited = -1
	// Append inserts at the end of a list.
	Append = -1
)

// Kind distinguishes the two menu item variants.
type Kind int

const (
	KindMode Kind = iota + 1
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindMode:
		return "mode"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Item is anything placed in the menu tree.
type Item interface {
	ID() string
	DisplayName() string
	// Parent is the id of the list holding the item: RegisteredID,
	// UnregisteredID or a group id.
	Parent() string
	Kind() Kind
}

// List is an ordered, id keyed view over items owned by the Menu arena.
type List struct {
	id       string
	capacity int
	order    []string
	members  map[string]Kind
}

func newList(id string, capacity int) *List {
	return &List{id: id, capacity: capacity, members: make(map[string]Kind)}
}

// ID returns the id addressing this list as a destination.
func (l *List) ID() string { return l.id }

// Capacity returns the bound of the list or Unlimited.
func (l *List) Capacity() int { return l.capacity }

// Order returns a copy of the ids in display order.
func (l *List) Order() []string { return slices.Clone(l.order) }

// Len returns the number of direct children.
func (l *List) Len() int { return len(l.order) }

// IsFull reports whether a new id would exceed the capacity.
func (l *List) IsFull() bool {
	return l.capacity != Unlimited && len(l.order) >= l.capacity
}

// Contains reports whether id is a direct child.
func (l *List) Contains(id string) bool {
	_, ok := l.members[id]
	return ok
}

// IndexOf returns the position of id or -1.
func (l *List) IndexOf(id string) int {
	return slices.Index(l.order, id)
}

// CanInsert reports whether Insert(id, ...) would succeed.
func (l *List) CanInsert(id string) bool {
	return l.Contains(id) || !l.IsFull()
}

// Insert places id at index, appending when index is negative or past the
// end. An id already present is repositioned.
func (l *List) Insert(id string, kind Kind, index int) error {
	if id == "" {
		return ErrArgumentNull
	}
	if !l.CanInsert(id) {
		return fmt.Errorf("%w: %s holds %d items", ErrCapacityExceeded, l.id, l.capacity)
	}
	if i := l.IndexOf(id); i >= 0 {
		l.order = slices.Delete(l.order, i, i+1)
	}
	if index < 0 || index > len(l.order) {
		index = len(l.order)
	}
	l.order = slices.Insert(l.order, index, id)
	l.members[id] = kind
	return nil
}

// Remove unlinks id from the list.
func (l *List) Remove(id string) error {
	i := l.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s is not in %s", ErrNotFound, id, l.id)
	}
	l.order = slices.Delete(l.order, i, i+1)
	delete(l.members, id)
	return nil
}

func (l *List) clear() {
	l.order = nil
	l.members = make(map[string]Kind)
}

// ItemList is the read side of an ordered container. It is implemented by
// *List and *Group.
type ItemList interface {
	ID() string
	Capacity() int
	Order() []string
	Len() int
	IsFull() bool
	Contains(id string) bool
	IndexOf(id string) int
	CanInsert(id string) bool
}
