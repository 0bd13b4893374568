package key

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestKeyDo(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	k := Key{Out: &buf}
	if err := k.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	for _, want := range []string{"Hands", "oneside", "rocknroll", "gesture value 7", "notequal", "blended by the left trigger", "param:GestureWeight:gt:0.5"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("expected legend to contain %q, got:\n%s", want, buf.String())
		}
	}
}

func TestConditions(t *testing.T) {
	tests := map[string][]string{
		"ei":              {"either:"},
		"left:f":          {"left:fingerpoint", "left:fist"},
		"left:fist:not":   {"left:fist:notequal"},
		"param:Something": nil,
	}
	for in, want := range tests {
		got := Conditions(in)
		slices.Sort(got)
		if !slices.Equal(got, want) {
			t.Fatalf("%q: expected %v, got %v", in, want, got)
		}
	}
}
