package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/facemenu/pkg/menu"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

var (
	spacing = strings.Repeat(" ", len("0123456789abcdef0123456789abcdef  "))
	indent  = "  "
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

// TitleWithCount prints title followed by a faint count, and the capacity
// when the list is bounded.
func (pp *PrettyPrint) TitleWithCount(title string, count, capacity int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	if capacity == menu.Unlimited {
		_, _ = c.Fprintf(pp.out(), " - %d", count)
	} else {
		_, _ = c.Fprintf(pp.out(), " - %d/%d", count, capacity)
	}

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " item")
	default:
		_, _ = c.Fprintln(pp.out(), " items")
	}
}

// Menu prints the Registered and UnRegistered trees of m.
func (pp *PrettyPrint) Menu(key string, m *menu.Menu) {
	if key != "" {
		f := color.New(color.Faint)
		_, _ = f.Fprintf(pp.out(), "menu %s, transition %gs, write defaults %t\n\n",
			key, m.TransitionDurationSeconds(), m.WriteDefaults())
	}
	for _, list := range []menu.ItemList{m.Registered(), m.Unregistered()} {
		pp.TitleWithCount(list.ID(), list.Len(), list.Capacity())
		pp.list(m, list, 0)
		pp.NewLine()
	}
}

// Group prints the subtree of g.
func (pp *PrettyPrint) Group(m *menu.Menu, g *menu.Group) {
	pp.TitleWithCount(g.DisplayName(), g.Len(), g.Capacity())
	pp.list(m, g, 0)
}

func (pp *PrettyPrint) list(m *menu.Menu, list menu.ItemList, depth int) {
	if list.Len() == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(pp.out(), spacing)
		}
		_, _ = f.Fprintf(pp.out(), "%s none\n", strings.Repeat(indent, depth))
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	g := color.New(color.Bold)
	d := color.New(color.FgHiGreen)
	t := color.New()

	for _, id := range list.Order() {
		item, ok := m.Item(id)
		if !ok {
			continue
		}
		if pp.ShowID {
			pp.id(y, id)
		}
		pad := strings.Repeat(indent, depth)
		switch item.Kind() {
		case menu.KindGroup:
			group, _ := m.Group(id)
			_, _ = g.Fprintf(pp.out(), "%s▸ %s/\n", pad, group.DisplayName())
			pp.list(m, group, depth+1)
		case menu.KindMode:
			mode, _ := m.Mode(id)
			_, _ = t.Fprintf(pp.out(), "%s• %s", pad, mode.DisplayName())
			if n := len(mode.Branches()); n > 0 {
				_, _ = color.New(color.Faint).Fprintf(pp.out(), " (%d %s)", n, plural(n, "branch", "branches"))
			}
			if m.DefaultSelection() == id {
				_, _ = d.Fprint(pp.out(), " default")
			}
			_, _ = t.Fprintln(pp.out(), "")
		}
	}
}

func (pp *PrettyPrint) id(c *color.Color, id string) {
	_, _ = c.Fprint(pp.out(), id)
	if n := len(spacing) - len(id); n > 0 {
		_, _ = c.Fprint(pp.out(), strings.Repeat(" ", n))
	} else {
		_, _ = c.Fprint(pp.out(), " ")
	}
}

// Mode prints a mode with a table of its branches.
func (pp *PrettyPrint) Mode(mode *menu.Mode) {
	pp.Title(mode.DisplayName())
	f := color.New(color.Faint)
	_, _ = f.Fprintf(pp.out(), "id %s, parent %s, eye %s, mouth %s", mode.ID(), mode.Parent(), mode.EyeTrackingControl(), mode.MouthTrackingControl())
	if a, ok := mode.Animation(); ok {
		_, _ = f.Fprintf(pp.out(), ", animation %s", a.GUID)
	}
	_, _ = f.Fprintln(pp.out(), "")

	branches := mode.Branches()
	if len(branches) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(pp.out(), " no branches")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 60
	bold := color.New(color.Bold)
	tbl.AddRow(bold.Sprint("#"), bold.Sprint("CONDITIONS"), bold.Sprint("ANIMATIONS"), bold.Sprint("EYE"), bold.Sprint("MOUTH"), bold.Sprint("TRIGGERS"))
	for i, b := range branches {
		tbl.AddRow(i, conditions(b.Conditions()), animations(b), b.EyeTrackingControl(), b.MouthTrackingControl(), triggers(b))
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Merged prints a merged layout, marking the items owned by facemenu.
func (pp *PrettyPrint) Merged(l *menu.MergedList) {
	pp.TitleWithCount("Merged", l.Len(), menu.RegisteredCapacity)

	tbl := uitable.New()
	tbl.Separator = "  "
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	tbl.AddRow(bold.Sprint("#"), bold.Sprint("ID"), bold.Sprint("KIND"), bold.Sprint("NAME"))
	for i, e := range l.Entries() {
		kind := e.Kind
		if e.Existing != nil {
			kind = faint.Sprintf("%s (%s)", e.Kind, e.Existing.Type)
		}
		tbl.AddRow(i, e.ID, kind, e.Name)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

func conditions(cs []menu.Condition) string {
	if len(cs) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " && ")
}

func animations(b *menu.Branch) string {
	var parts []string
	for _, slot := range menu.AllBranchAnimationTypes() {
		if a, ok := b.Animation(slot); ok {
			parts = append(parts, fmt.Sprintf("%s=%s", slot, a.GUID))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func triggers(b *menu.Branch) string {
	switch {
	case b.IsLeftTriggerUsed() && b.IsRightTriggerUsed():
		return "left right"
	case b.IsLeftTriggerUsed():
		return "left"
	case b.IsRightTriggerUsed():
		return "right"
	default:
		return "-"
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
