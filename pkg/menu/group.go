package menu

// Group is a submenu holding modes and nested groups.
type Group struct {
	name     string
	parent   string
	children *List
}

func newGroup(id, name, parent string) *Group {
	return &Group{name: name, parent: parent, children: newList(id, GroupCapacity)}
}

func (g *Group) ID() string          { return g.children.ID() }
func (g *Group) DisplayName() string { return g.name }
func (g *Group) Parent() string      { return g.parent }
func (g *Group) Kind() Kind          { return KindGroup }

func (g *Group) Capacity() int            { return g.children.Capacity() }
func (g *Group) Order() []string          { return g.children.Order() }
func (g *Group) Len() int                 { return g.children.Len() }
func (g *Group) IsFull() bool             { return g.children.IsFull() }
func (g *Group) Contains(id string) bool  { return g.children.Contains(id) }
func (g *Group) IndexOf(id string) int    { return g.children.IndexOf(id) }
func (g *Group) CanInsert(id string) bool { return g.children.CanInsert(id) }

// GroupUpdate lists the group properties to change.
type GroupUpdate struct {
	DisplayName Field[string]
}

// descendantIDs lists every id below g in depth first pre-order, excluding
// g itself. The walk keeps its own stack so tree depth is not bounded by the
// call stack, and each id is emitted once even if the arena is corrupt.
func (g *Group) descendantIDs(groups map[string]*Group) []string {
	var out []string
	seen := map[string]struct{}{g.ID(): {}}
	stack := reversed(g.children.order)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
		if child, ok := groups[id]; ok {
			stack = append(stack, reversed(child.children.order)...)
		}
	}
	return out
}

func reversed(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}
	return out
}
