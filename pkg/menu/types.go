package menu

import (
	"fmt"
	"strings"
)

// Hand selects which hand a gesture condition observes.
type Hand string

const (
	HandLeft    Hand = "left"
	HandRight   Hand = "right"
	HandEither  Hand = "either"
	HandBoth    Hand = "both"
	HandOneSide Hand = "oneside"
)

// AllHands returns the supported hands in display order.
func AllHands() []Hand {
	return []Hand{HandLeft, HandRight, HandEither, HandBoth, HandOneSide}
}

// ParseHand converts a string to a Hand.
func ParseHand(raw string) (Hand, error) {
	h := Hand(normalize(raw))
	for _, candidate := range AllHands() {
		if candidate == h {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("menu: unknown hand %q", raw)
}

// HandGesture is one of the eight gestures reported by the avatar runtime.
type HandGesture string

const (
	GestureNeutral     HandGesture = "neutral"
	GestureFist        HandGesture = "fist"
	GestureHandOpen    HandGesture = "handopen"
	GestureFingerpoint HandGesture = "fingerpoint"
	GestureVictory     HandGesture = "victory"
	GestureRockNRoll   HandGesture = "rocknroll"
	GestureHandGun     HandGesture = "handgun"
	GestureThumbsUp    HandGesture = "thumbsup"
)

// AllGestures returns the gestures in the order of their runtime values.
func AllGestures() []HandGesture {
	return []HandGesture{
		GestureNeutral,
		GestureFist,
		GestureHandOpen,
		GestureFingerpoint,
		GestureVictory,
		GestureRockNRoll,
		GestureHandGun,
		GestureThumbsUp,
	}
}

// ParseHandGesture converts a string to a HandGesture.
func ParseHandGesture(raw string) (HandGesture, error) {
	g := HandGesture(normalize(raw))
	for _, candidate := range AllGestures() {
		if candidate == g {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("menu: unknown hand gesture %q", raw)
}

// ComparisonOperator compares observed state against a condition.
type ComparisonOperator string

const (
	OpEquals      ComparisonOperator = "equals"
	OpNotEqual    ComparisonOperator = "notequal"
	OpGreaterThan ComparisonOperator = "gt"
	OpLessThan    ComparisonOperator = "lt"
)

// AllOperators returns the supported comparison operators.
func AllOperators() []ComparisonOperator {
	return []ComparisonOperator{OpEquals, OpNotEqual, OpGreaterThan, OpLessThan}
}

var operatorAliases = map[string]ComparisonOperator{
	"eq": OpEquals,
	"==": OpEquals,
	"ne": OpNotEqual,
	"!=": OpNotEqual,
	">":  OpGreaterThan,
	"<":  OpLessThan,

	"greaterthan": OpGreaterThan,
	"lessthan":    OpLessThan,
}

// ParseOperator converts a string or one of its aliases to a ComparisonOperator.
func ParseOperator(raw string) (ComparisonOperator, error) {
	n := normalize(raw)
	if op, ok := operatorAliases[n]; ok {
		return op, nil
	}
	for _, candidate := range AllOperators() {
		if string(candidate) == n {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("menu: unknown comparison operator %q", raw)
}

// EyeTrackingControl decides whether eyes follow tracking or the animation.
type EyeTrackingControl string

const (
	EyeTracking  EyeTrackingControl = "tracking"
	EyeAnimation EyeTrackingControl = "animation"
)

// ParseEyeTrackingControl converts a string to an EyeTrackingControl.
func ParseEyeTrackingControl(raw string) (EyeTrackingControl, error) {
	switch EyeTrackingControl(normalize(raw)) {
	case EyeTracking:
		return EyeTracking, nil
	case EyeAnimation:
		return EyeAnimation, nil
	}
	return "", fmt.Errorf("menu: unknown eye tracking control %q", raw)
}

// MouthTrackingControl decides whether the mouth follows lip sync or the animation.
type MouthTrackingControl string

const (
	MouthTracking  MouthTrackingControl = "tracking"
	MouthAnimation MouthTrackingControl = "animation"
)

// ParseMouthTrackingControl converts a string to a MouthTrackingControl.
func ParseMouthTrackingControl(raw string) (MouthTrackingControl, error) {
	switch MouthTrackingControl(normalize(raw)) {
	case MouthTracking:
		return MouthTracking, nil
	case MouthAnimation:
		return MouthAnimation, nil
	}
	return "", fmt.Errorf("menu: unknown mouth tracking control %q", raw)
}

// BranchAnimationType addresses one of the animation slots of a branch. The
// zero value means no slot was selected.
type BranchAnimationType string

const (
	BranchAnimationNone  BranchAnimationType = ""
	BranchAnimationBase  BranchAnimationType = "base"
	BranchAnimationLeft  BranchAnimationType = "left"
	BranchAnimationRight BranchAnimationType = "right"
	BranchAnimationBoth  BranchAnimationType = "both"
)

// AllBranchAnimationTypes returns the addressable branch slots.
func AllBranchAnimationTypes() []BranchAnimationType {
	return []BranchAnimationType{BranchAnimationBase, BranchAnimationLeft, BranchAnimationRight, BranchAnimationBoth}
}

// ParseBranchAnimationType converts a string to a BranchAnimationType. Empty
// input yields BranchAnimationNone.
func ParseBranchAnimationType(raw string) (BranchAnimationType, error) {
	t := BranchAnimationType(normalize(raw))
	if t == BranchAnimationNone {
		return BranchAnimationNone, nil
	}
	for _, candidate := range AllBranchAnimationTypes() {
		if candidate == t {
			return candidate, nil
		}
	}
	return BranchAnimationNone, fmt.Errorf("menu: unknown branch animation type %q", raw)
}

// Animation is an opaque reference to an animation asset.
type Animation struct {
	GUID string `json:"guid" yaml:"guid"`
}

func normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "_", "")
	return strings.ReplaceAll(s, "-", "")
}

// Field is one entry of an update set. The zero value leaves the target
// unchanged.
type Field[T any] struct {
	value T
	set   bool
}

// Set returns a Field that assigns v.
func Set[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

// Get returns the value and whether it was set.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.set
}

// IsSet reports whether the field carries a value.
func (f Field[T]) IsSet() bool {
	return f.set
}

func (f Field[T]) apply(dst *T) {
	if f.set {
		*dst = f.value
	}
}
