// Package key prints the vocabulary accepted in conditions and flags.
package key

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/facemenu/pkg/menu"
)

// Key prints the condition legend.
type Key struct {
	// Out defaults to color.Output.
	Out io.Writer
}

type row struct {
	Value   string
	Meaning string
}

// Do renders the hands, gestures, operators and animation slots tables.
func (k *Key) Do(ctx context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	_, _ = fmt.Fprintln(out, "")

	hands := make([]row, 0, len(menu.AllHands()))
	for _, h := range menu.AllHands() {
		hands = append(hands, row{string(h), handMeanings[h]})
	}
	k.Key(ctx, out, "Hands", hands)

	gestures := make([]row, 0, len(menu.AllGestures()))
	for i, g := range menu.AllGestures() {
		gestures = append(gestures, row{string(g), fmt.Sprintf("gesture value %d", i)})
	}
	k.Key(ctx, out, "Gestures", gestures)

	operators := make([]row, 0, len(menu.AllOperators()))
	for _, op := range menu.AllOperators() {
		operators = append(operators, row{string(op), operatorMeanings[op]})
	}
	k.Key(ctx, out, "Operators", operators)

	slots := make([]row, 0, len(menu.AllBranchAnimationTypes()))
	for _, s := range menu.AllBranchAnimationTypes() {
		slots = append(slots, row{string(s), slotMeanings[s]})
	}
	k.Key(ctx, out, "Slots", slots)

	b := color.New(color.Bold)
	_, _ = b.Fprintln(out, "Conditions")
	for _, example := range []string{"left:fist", "either:victory:notequal", "param:GestureWeight:gt:0.5"} {
		_, _ = fmt.Fprintf(out, "  %s\n", example)
	}
	_, _ = fmt.Fprintln(out, "")
	return nil
}

// Key renders one legend table.
func (k *Key) Key(_ context.Context, out io.Writer, title string, rows []row) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint(fmt.Sprintf("%12s", title)), bold.Sprint("Meaning"))
	for _, r := range rows {
		tbl.AddRow(r.Value, r.Meaning)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(out, tbl)
	_, _ = fmt.Fprintln(out, "")
}

var handMeanings = map[menu.Hand]string{
	menu.HandLeft:    "left hand shows the gesture",
	menu.HandRight:   "right hand shows the gesture",
	menu.HandEither:  "at least one hand shows the gesture",
	menu.HandBoth:    "both hands show the gesture",
	menu.HandOneSide: "exactly one hand shows the gesture",
}

var operatorMeanings = map[menu.ComparisonOperator]string{
	menu.OpEquals:      "equal to",
	menu.OpNotEqual:    "not equal to",
	menu.OpGreaterThan: "greater than (parameters only)",
	menu.OpLessThan:    "less than (parameters only)",
}

var slotMeanings = map[menu.BranchAnimationType]string{
	menu.BranchAnimationBase:  "played while the branch is active",
	menu.BranchAnimationLeft:  "blended by the left trigger",
	menu.BranchAnimationRight: "blended by the right trigger",
	menu.BranchAnimationBoth:  "blended when both triggers are held",
}

// Conditions suggests condition prefixes for toComplete.
func Conditions(toComplete string) []string {
	parts := strings.Split(toComplete, ":")
	var out []string
	switch len(parts) {
	case 1:
		for _, h := range menu.AllHands() {
			out = append(out, string(h)+":")
		}
		out = append(out, "param:")
	case 2:
		if parts[0] == "param" {
			return nil
		}
		for _, g := range menu.AllGestures() {
			out = append(out, parts[0]+":"+string(g))
		}
	case 3:
		for _, op := range menu.AllOperators() {
			out = append(out, parts[0]+":"+parts[1]+":"+string(op))
		}
	}
	filtered := out[:0]
	for _, s := range out {
		if strings.HasPrefix(s, toComplete) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
