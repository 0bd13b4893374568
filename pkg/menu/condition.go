package menu

import (
	"fmt"
	"strconv"
	"strings"
)

// Condition is an atomic predicate over hand gesture or parameter state. A
// condition with a Parameter name is a parameter condition, otherwise it is a
// gesture condition.
type Condition struct {
	Hand               Hand               `json:"hand,omitempty" yaml:"hand,omitempty"`
	HandGesture        HandGesture        `json:"handGesture,omitempty" yaml:"handGesture,omitempty"`
	ComparisonOperator ComparisonOperator `json:"operator" yaml:"operator"`
	Parameter          string             `json:"parameter,omitempty" yaml:"parameter,omitempty"`
	Value              float64            `json:"value,omitempty" yaml:"value,omitempty"`
}

// GestureCondition builds a hand gesture condition.
func GestureCondition(hand Hand, gesture HandGesture, op ComparisonOperator) Condition {
	return Condition{Hand: hand, HandGesture: gesture, ComparisonOperator: op}
}

// ParameterCondition builds a parameter condition.
func ParameterCondition(parameter string, op ComparisonOperator, value float64) Condition {
	return Condition{Parameter: parameter, ComparisonOperator: op, Value: value}
}

// IsParameter reports whether the condition compares an avatar parameter.
func (c Condition) IsParameter() bool { return c.Parameter != "" }

// Validate checks that the condition is well formed.
func (c Condition) Validate() error {
	if c.IsParameter() {
		if c.Hand != "" || c.HandGesture != "" {
			return fmt.Errorf("%w: parameter condition %q also names a gesture", ErrInvalidCondition, c.Parameter)
		}
		if _, err := ParseOperator(string(c.ComparisonOperator)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidCondition, err)
		}
		return nil
	}
	if _, err := ParseHand(string(c.Hand)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCondition, err)
	}
	if _, err := ParseHandGesture(string(c.HandGesture)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCondition, err)
	}
	switch c.ComparisonOperator {
	case OpEquals, OpNotEqual:
		return nil
	default:
		return fmt.Errorf("%w: gesture conditions only compare with equals or notequal, got %q", ErrInvalidCondition, c.ComparisonOperator)
	}
}

func (c Condition) String() string {
	if c.IsParameter() {
		return fmt.Sprintf("param:%s:%s:%s", c.Parameter, c.ComparisonOperator, strconv.FormatFloat(c.Value, 'g', -1, 64))
	}
	return fmt.Sprintf("%s:%s:%s", c.Hand, c.HandGesture, c.ComparisonOperator)
}

// ParseCondition reads the textual form produced by Condition.String:
//
//	left:fist:equals
//	either:victory            (operator defaults to equals)
//	param:GestureWeight:gt:0.5
func ParseCondition(raw string) (Condition, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) > 0 && normalize(parts[0]) == "param" {
		if len(parts) != 4 || strings.TrimSpace(parts[1]) == "" {
			return Condition{}, fmt.Errorf("%w: expected param:<name>:<op>:<value>, got %q", ErrInvalidCondition, raw)
		}
		op, err := ParseOperator(parts[2])
		if err != nil {
			return Condition{}, fmt.Errorf("%w: %v", ErrInvalidCondition, err)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return Condition{}, fmt.Errorf("%w: value %q: %v", ErrInvalidCondition, parts[3], err)
		}
		return ParameterCondition(strings.TrimSpace(parts[1]), op, v), nil
	}
	if len(parts) < 2 || len(parts) > 3 {
		return Condition{}, fmt.Errorf("%w: expected <hand>:<gesture>[:<op>], got %q", ErrInvalidCondition, raw)
	}
	hand, err := ParseHand(parts[0])
	if err != nil {
		return Condition{}, fmt.Errorf("%w: %v", ErrInvalidCondition, err)
	}
	gesture, err := ParseHandGesture(parts[1])
	if err != nil {
		return Condition{}, fmt.Errorf("%w: %v", ErrInvalidCondition, err)
	}
	op := OpEquals
	if len(parts) == 3 {
		if op, err = ParseOperator(parts[2]); err != nil {
			return Condition{}, fmt.Errorf("%w: %v", ErrInvalidCondition, err)
		}
	}
	c := GestureCondition(hand, gesture, op)
	if err := c.Validate(); err != nil {
		return Condition{}, err
	}
	return c, nil
}
