package menu

import (
	"fmt"
	"slices"
)

// NoBranch addresses the mode's own animation rather than a branch slot.
const NoBranch = -1

// Branch selects alternate animations while all of its conditions hold.
type Branch struct {
	eye          EyeTrackingControl
	mouth        MouthTrackingControl
	leftTrigger  bool
	rightTrigger bool
	conditions   []Condition
	animations   map[BranchAnimationType]Animation
}

func newBranch(conditions []Condition) *Branch {
	return &Branch{
		eye:        EyeTracking,
		mouth:      MouthTracking,
		conditions: slices.Clone(conditions),
		animations: make(map[BranchAnimationType]Animation),
	}
}

func (b *Branch) EyeTrackingControl() EyeTrackingControl     { return b.eye }
func (b *Branch) MouthTrackingControl() MouthTrackingControl { return b.mouth }
func (b *Branch) IsLeftTriggerUsed() bool                    { return b.leftTrigger }
func (b *Branch) IsRightTriggerUsed() bool                   { return b.rightTrigger }

// Conditions returns a copy of the branch conditions in evaluation order.
func (b *Branch) Conditions() []Condition { return slices.Clone(b.conditions) }

// Animation returns the animation assigned to slot.
func (b *Branch) Animation(slot BranchAnimationType) (Animation, bool) {
	a, ok := b.animations[slot]
	return a, ok
}

func (b *Branch) clone() *Branch {
	c := *b
	c.conditions = slices.Clone(b.conditions)
	c.animations = make(map[BranchAnimationType]Animation, len(b.animations))
	for k, v := range b.animations {
		c.animations[k] = v
	}
	return &c
}

func (b *Branch) containsCondition(i int) bool {
	return i >= 0 && i < len(b.conditions)
}

// BranchUpdate lists the branch properties to change.
type BranchUpdate struct {
	EyeTrackingControl   Field[EyeTrackingControl]
	MouthTrackingControl Field[MouthTrackingControl]
	IsLeftTriggerUsed    Field[bool]
	IsRightTriggerUsed   Field[bool]
}

// ModeUpdate lists the mode properties to change.
type ModeUpdate struct {
	DisplayName                   Field[string]
	UseAnimationNameAsDisplayName Field[bool]
	EyeTrackingControl            Field[EyeTrackingControl]
	MouthTrackingControl          Field[MouthTrackingControl]
}

// Mode is a selectable expression with optional conditional branches.
type Mode struct {
	id     string
	name   string
	parent string

	useAnimationName bool
	eye              EyeTrackingControl
	mouth            MouthTrackingControl

	animation *Animation
	branches  []*Branch
}

func newMode(id, name, parent string) *Mode {
	return &Mode{
		id:     id,
		name:   name,
		parent: parent,
		eye:    EyeTracking,
		mouth:  MouthTracking,
	}
}

func (m *Mode) ID() string          { return m.id }
func (m *Mode) DisplayName() string { return m.name }
func (m *Mode) Parent() string      { return m.parent }
func (m *Mode) Kind() Kind          { return KindMode }

// UseAnimationNameAsDisplayName reports whether the menu label follows the
// default animation's asset name.
func (m *Mode) UseAnimationNameAsDisplayName() bool        { return m.useAnimationName }
func (m *Mode) EyeTrackingControl() EyeTrackingControl     { return m.eye }
func (m *Mode) MouthTrackingControl() MouthTrackingControl { return m.mouth }

// Animation returns the mode's default animation.
func (m *Mode) Animation() (Animation, bool) {
	if m.animation == nil {
		return Animation{}, false
	}
	return *m.animation, true
}

// Branches returns the branches in evaluation order. The returned branches
// are shared with the mode and must be treated as read only.
func (m *Mode) Branches() []*Branch { return slices.Clone(m.branches) }

// Branch returns the branch at index i.
func (m *Mode) Branch(i int) (*Branch, bool) {
	if !m.ContainsBranch(i) {
		return nil, false
	}
	return m.branches[i], true
}

// ContainsBranch reports whether i addresses a branch.
func (m *Mode) ContainsBranch(i int) bool {
	return i >= 0 && i < len(m.branches)
}

// ContainsCondition reports whether the pair addresses a condition.
func (m *Mode) ContainsCondition(branch, condition int) bool {
	return m.ContainsBranch(branch) && m.branches[branch].containsCondition(condition)
}

// AddBranch appends a branch holding conditions.
func (m *Mode) AddBranch(conditions ...Condition) {
	m.branches = append(m.branches, newBranch(conditions))
}

// ChangeBranchOrder moves the branch at from to position to.
func (m *Mode) ChangeBranchOrder(from, to int) error {
	if !m.ContainsBranch(from) || !m.ContainsBranch(to) {
		return fmt.Errorf("%w: branch %d -> %d of %d", ErrIndexOutOfRange, from, to, len(m.branches))
	}
	m.branches = move(m.branches, from, to)
	return nil
}

// RemoveBranch deletes the branch at i.
func (m *Mode) RemoveBranch(i int) error {
	if !m.ContainsBranch(i) {
		return fmt.Errorf("%w: branch %d of %d", ErrIndexOutOfRange, i, len(m.branches))
	}
	m.branches = slices.Delete(m.branches, i, i+1)
	return nil
}

// ModifyBranchProperties applies u to the branch at i.
func (m *Mode) ModifyBranchProperties(i int, u BranchUpdate) error {
	if !m.ContainsBranch(i) {
		return fmt.Errorf("%w: branch %d of %d", ErrIndexOutOfRange, i, len(m.branches))
	}
	b := m.branches[i]
	u.EyeTrackingControl.apply(&b.eye)
	u.MouthTrackingControl.apply(&b.mouth)
	u.IsLeftTriggerUsed.apply(&b.leftTrigger)
	u.IsRightTriggerUsed.apply(&b.rightTrigger)
	return nil
}

// AddCondition appends c to the branch at i.
func (m *Mode) AddCondition(branch int, c Condition) error {
	if !m.ContainsBranch(branch) {
		return fmt.Errorf("%w: branch %d of %d", ErrIndexOutOfRange, branch, len(m.branches))
	}
	b := m.branches[branch]
	b.conditions = append(b.conditions, c)
	return nil
}

// ModifyCondition replaces the addressed condition.
func (m *Mode) ModifyCondition(branch, condition int, c Condition) error {
	if !m.ContainsCondition(branch, condition) {
		return fmt.Errorf("%w: condition %d/%d", ErrIndexOutOfRange, branch, condition)
	}
	m.branches[branch].conditions[condition] = c
	return nil
}

// ChangeConditionOrder moves a condition within its branch.
func (m *Mode) ChangeConditionOrder(branch, from, to int) error {
	if !m.ContainsCondition(branch, from) || !m.ContainsCondition(branch, to) {
		return fmt.Errorf("%w: condition %d/%d -> %d", ErrIndexOutOfRange, branch, from, to)
	}
	b := m.branches[branch]
	b.conditions = move(b.conditions, from, to)
	return nil
}

// RemoveCondition deletes the addressed condition.
func (m *Mode) RemoveCondition(branch, condition int) error {
	if !m.ContainsCondition(branch, condition) {
		return fmt.Errorf("%w: condition %d/%d", ErrIndexOutOfRange, branch, condition)
	}
	b := m.branches[branch]
	b.conditions = slices.Delete(b.conditions, condition, condition+1)
	return nil
}

// CanSetAnimation reports whether SetAnimation would accept the target.
func (m *Mode) CanSetAnimation(branch int, slot BranchAnimationType) bool {
	if branch == NoBranch {
		return true
	}
	return slot != BranchAnimationNone && m.ContainsBranch(branch)
}

// SetAnimation assigns a to the mode itself when branch is NoBranch, or to the
// slot of the addressed branch. A nil animation clears the target.
func (m *Mode) SetAnimation(a *Animation, branch int, slot BranchAnimationType) error {
	if !m.CanSetAnimation(branch, slot) {
		return fmt.Errorf("%w: branch %d slot %q", ErrInvalidTarget, branch, slot)
	}
	if branch == NoBranch {
		if a == nil {
			m.animation = nil
		} else {
			v := *a
			m.animation = &v
		}
		return nil
	}
	b := m.branches[branch]
	if a == nil {
		delete(b.animations, slot)
	} else {
		b.animations[slot] = *a
	}
	return nil
}

func (m *Mode) modify(u ModeUpdate) {
	u.DisplayName.apply(&m.name)
	u.UseAnimationNameAsDisplayName.apply(&m.useAnimationName)
	u.EyeTrackingControl.apply(&m.eye)
	u.MouthTrackingControl.apply(&m.mouth)
}

func (m *Mode) clone(id, parent string) *Mode {
	c := *m
	c.id = id
	c.parent = parent
	if m.animation != nil {
		a := *m.animation
		c.animation = &a
	}
	c.branches = make([]*Branch, len(m.branches))
	for i, b := range m.branches {
		c.branches[i] = b.clone()
	}
	return &c
}

// move relocates s[from] to index to, shifting the elements in between.
func move[T any](s []T, from, to int) []T {
	if from == to {
		return s
	}
	v := s[from]
	s = slices.Delete(s, from, from+1)
	return slices.Insert(s, to, v)
}
