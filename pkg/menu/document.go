package menu

import (
	"errors"
	"fmt"
	"slices"
)

// CurrentSchema versions the Document layout.
const CurrentSchema = "v1"

// Document is the serialisable form of a Menu. Parent links are implied by
// the order lists.
type Document struct {
	Schema                    string                   `json:"schema" yaml:"schema"`
	WriteDefaults             bool                     `json:"writeDefaults" yaml:"writeDefaults"`
	TransitionDurationSeconds float64                  `json:"transitionDurationSeconds" yaml:"transitionDurationSeconds"`
	DefaultSelection          string                   `json:"defaultSelection,omitempty" yaml:"defaultSelection,omitempty"`
	Registered                []string                 `json:"registered" yaml:"registered"`
	Unregistered              []string                 `json:"unregistered" yaml:"unregistered"`
	InsertIndices             []int                    `json:"insertIndices,omitempty" yaml:"insertIndices,omitempty"`
	Modes                     map[string]ModeDocument  `json:"modes" yaml:"modes"`
	Groups                    map[string]GroupDocument `json:"groups" yaml:"groups"`
}

type ModeDocument struct {
	DisplayName                   string               `json:"displayName" yaml:"displayName"`
	UseAnimationNameAsDisplayName bool                 `json:"useAnimationNameAsDisplayName,omitempty" yaml:"useAnimationNameAsDisplayName,omitempty"`
	EyeTrackingControl            EyeTrackingControl   `json:"eyeTrackingControl" yaml:"eyeTrackingControl"`
	MouthTrackingControl          MouthTrackingControl `json:"mouthTrackingControl" yaml:"mouthTrackingControl"`
	Animation                     *Animation           `json:"animation,omitempty" yaml:"animation,omitempty"`
	Branches                      []BranchDocument     `json:"branches,omitempty" yaml:"branches,omitempty"`
}

type BranchDocument struct {
	EyeTrackingControl   EyeTrackingControl                `json:"eyeTrackingControl" yaml:"eyeTrackingControl"`
	MouthTrackingControl MouthTrackingControl              `json:"mouthTrackingControl" yaml:"mouthTrackingControl"`
	IsLeftTriggerUsed    bool                              `json:"isLeftTriggerUsed,omitempty" yaml:"isLeftTriggerUsed,omitempty"`
	IsRightTriggerUsed   bool                              `json:"isRightTriggerUsed,omitempty" yaml:"isRightTriggerUsed,omitempty"`
	Conditions           []Condition                       `json:"conditions,omitempty" yaml:"conditions,omitempty"`
	Animations           map[BranchAnimationType]Animation `json:"animations,omitempty" yaml:"animations,omitempty"`
}

type GroupDocument struct {
	DisplayName string   `json:"displayName" yaml:"displayName"`
	Order       []string `json:"order" yaml:"order"`
}

// Document snapshots the menu.
func (m *Menu) Document() Document {
	doc := Document{
		Schema:                    CurrentSchema,
		WriteDefaults:             m.writeDefaults,
		TransitionDurationSeconds: m.transitionDuration,
		DefaultSelection:          m.defaultSelection,
		Registered:                m.registered.Order(),
		Unregistered:              m.unregistered.Order(),
		InsertIndices:             m.InsertIndices(),
		Modes:                     make(map[string]ModeDocument, len(m.modes)),
		Groups:                    make(map[string]GroupDocument, len(m.groups)),
	}
	for id, mode := range m.modes {
		md := ModeDocument{
			DisplayName:                   mode.name,
			UseAnimationNameAsDisplayName: mode.useAnimationName,
			EyeTrackingControl:            mode.eye,
			MouthTrackingControl:          mode.mouth,
		}
		if a, ok := mode.Animation(); ok {
			md.Animation = &a
		}
		for _, b := range mode.branches {
			bd := BranchDocument{
				EyeTrackingControl:   b.eye,
				MouthTrackingControl: b.mouth,
				IsLeftTriggerUsed:    b.leftTrigger,
				IsRightTriggerUsed:   b.rightTrigger,
				Conditions:           b.Conditions(),
			}
			if len(b.animations) > 0 {
				bd.Animations = make(map[BranchAnimationType]Animation, len(b.animations))
				for k, v := range b.animations {
					bd.Animations[k] = v
				}
			}
			md.Branches = append(md.Branches, bd)
		}
		doc.Modes[id] = md
	}
	for id, g := range m.groups {
		doc.Groups[id] = GroupDocument{DisplayName: g.name, Order: g.Order()}
	}
	return doc
}

// FromDocument rebuilds a menu and checks its invariants.
func FromDocument(doc Document) (*Menu, error) {
	if doc.Schema != "" && doc.Schema != CurrentSchema {
		return nil, fmt.Errorf("menu: unsupported schema %q", doc.Schema)
	}
	m := New()
	m.writeDefaults = doc.WriteDefaults
	m.transitionDuration = doc.TransitionDurationSeconds
	m.insertIndices = slices.Clone(doc.InsertIndices)

	for id, md := range doc.Modes {
		if id == RegisteredID || id == UnregisteredID || IsExistingID(id) || id == "" {
			return nil, fmt.Errorf("%w: reserved id %q", ErrIDInUse, id)
		}
		mode := newMode(id, md.DisplayName, "")
		mode.useAnimationName = md.UseAnimationNameAsDisplayName
		mode.eye = orDefault(md.EyeTrackingControl, EyeTracking)
		mode.mouth = orDefault(md.MouthTrackingControl, MouthTracking)
		if md.Animation != nil {
			a := *md.Animation
			mode.animation = &a
		}
		for _, bd := range md.Branches {
			b := newBranch(bd.Conditions)
			b.eye = orDefault(bd.EyeTrackingControl, EyeTracking)
			b.mouth = orDefault(bd.MouthTrackingControl, MouthTracking)
			b.leftTrigger = bd.IsLeftTriggerUsed
			b.rightTrigger = bd.IsRightTriggerUsed
			for k, v := range bd.Animations {
				b.animations[k] = v
			}
			mode.branches = append(mode.branches, b)
		}
		m.modes[id] = mode
	}
	for id, gd := range doc.Groups {
		if id == RegisteredID || id == UnregisteredID || IsExistingID(id) || id == "" {
			return nil, fmt.Errorf("%w: reserved id %q", ErrIDInUse, id)
		}
		if _, dup := m.modes[id]; dup {
			return nil, fmt.Errorf("%w: %q is both a mode and a group", ErrIDInUse, id)
		}
		m.groups[id] = newGroup(id, gd.DisplayName, "")
	}

	link := func(l *List, order []string) error {
		for _, id := range order {
			item, ok := m.Item(id)
			if !ok {
				return fmt.Errorf("%w: %s lists unknown id %q", ErrNotFound, l.id, id)
			}
			if item.Parent() != "" {
				return fmt.Errorf("%w: %q is listed by %s and %s", ErrIDInUse, id, item.Parent(), l.id)
			}
			if err := l.Insert(id, item.Kind(), Append); err != nil {
				return err
			}
			switch v := item.(type) {
			case *Mode:
				v.parent = l.id
			case *Group:
				v.parent = l.id
			}
		}
		return nil
	}
	if err := link(m.registered, doc.Registered); err != nil {
		return nil, err
	}
	if err := link(m.unregistered, doc.Unregistered); err != nil {
		return nil, err
	}
	for _, id := range sortedKeys(doc.Groups) {
		if err := link(m.groups[id].children, doc.Groups[id].Order); err != nil {
			return nil, err
		}
	}
	if err := m.SetDefaultSelection(doc.DefaultSelection); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func orDefault[T ~string](v, fallback T) T {
	if v == "" {
		return fallback
	}
	return v
}

// Validate checks that every item hangs off exactly one list, that every list
// entry resolves to an item of the recorded kind, and that every item is
// reachable from Registered or Unregistered. Conditions and merge insert
// indices are checked too.
func (m *Menu) Validate() error {
	var errs []error
	reached := make(map[string]struct{}, len(m.modes)+len(m.groups))

	var stack []*List
	stack = append(stack, m.unregistered, m.registered)
	for len(stack) > 0 {
		l := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(l.order) != len(l.members) {
			errs = append(errs, fmt.Errorf("menu: %s orders %d ids but holds %d", l.id, len(l.order), len(l.members)))
		}
		if l.capacity != Unlimited && len(l.order) > l.capacity {
			errs = append(errs, fmt.Errorf("%w: %s holds %d items", ErrCapacityExceeded, l.id, len(l.order)))
		}
		for _, id := range l.order {
			if _, seen := reached[id]; seen {
				errs = append(errs, fmt.Errorf("menu: %q is reachable more than once", id))
				continue
			}
			reached[id] = struct{}{}
			item, ok := m.Item(id)
			if !ok {
				errs = append(errs, fmt.Errorf("%w: %s lists unknown id %q", ErrNotFound, l.id, id))
				continue
			}
			if item.Kind() != l.members[id] {
				errs = append(errs, fmt.Errorf("menu: %s records %q as %s", l.id, id, l.members[id]))
			}
			if item.Parent() != l.id {
				errs = append(errs, fmt.Errorf("menu: %q has parent %q but is listed by %s", id, item.Parent(), l.id))
			}
			if g, ok := item.(*Group); ok {
				stack = append(stack, g.children)
			}
		}
	}
	for _, id := range m.ModeIDs() {
		if _, ok := reached[id]; !ok {
			errs = append(errs, fmt.Errorf("menu: mode %q is not reachable", id))
		}
	}
	for _, id := range m.GroupIDs() {
		if _, ok := reached[id]; !ok {
			errs = append(errs, fmt.Errorf("menu: group %q is not reachable", id))
		}
		if m.ContainsMode(id) {
			errs = append(errs, fmt.Errorf("%w: %q is both a mode and a group", ErrIDInUse, id))
		}
	}
	if m.defaultSelection != "" && !m.ContainsMode(m.defaultSelection) {
		errs = append(errs, fmt.Errorf("%w: default selection %q", ErrNotFound, m.defaultSelection))
	}
	for _, id := range m.ModeIDs() {
		for b, branch := range m.modes[id].branches {
			for c, cond := range branch.conditions {
				if err := cond.Validate(); err != nil {
					errs = append(errs, fmt.Errorf("mode %q branch %d condition %d: %w", id, b, c, err))
				}
			}
		}
	}
	errs = append(errs, m.validateInsertIndices()...)
	return errors.Join(errs...)
}

// validateInsertIndices checks the merge bookkeeping: at most one slot per
// Registered item, each non-negative and strictly after the previous one.
func (m *Menu) validateInsertIndices() []error {
	var errs []error
	if n, limit := len(m.insertIndices), m.registered.Len(); n > limit {
		errs = append(errs, fmt.Errorf("%w: %d insert indices for %d registered items", ErrInvalidMergeState, n, limit))
	}
	for i, v := range m.insertIndices {
		switch {
		case v < 0:
			errs = append(errs, fmt.Errorf("%w: insert index %d is negative", ErrInvalidMergeState, i))
		case i > 0 && v <= m.insertIndices[i-1]:
			errs = append(errs, fmt.Errorf("%w: insert index %d does not follow %d", ErrInvalidMergeState, v, m.insertIndices[i-1]))
		}
	}
	return errs
}
