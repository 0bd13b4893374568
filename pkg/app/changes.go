package app

import (
	"context"
	"fmt"

	"tableflip.dev/facemenu/pkg/menu"
)

// ModeChanges is the textual form of a menu.ModeUpdate. Nil fields are left
// unchanged.
type ModeChanges struct {
	Name             *string `json:"name,omitempty"`
	UseAnimationName *bool   `json:"useAnimationName,omitempty"`
	Eye              *string `json:"eye,omitempty"`
	Mouth            *string `json:"mouth,omitempty"`
}

func (c ModeChanges) Update() (menu.ModeUpdate, error) {
	var u menu.ModeUpdate
	if c.Name != nil {
		u.DisplayName = menu.Set(*c.Name)
	}
	if c.UseAnimationName != nil {
		u.UseAnimationNameAsDisplayName = menu.Set(*c.UseAnimationName)
	}
	if c.Eye != nil {
		eye, err := menu.ParseEyeTrackingControl(*c.Eye)
		if err != nil {
			return u, fmt.Errorf("%w: %v", menu.ErrInvalidValue, err)
		}
		u.EyeTrackingControl = menu.Set(eye)
	}
	if c.Mouth != nil {
		mouth, err := menu.ParseMouthTrackingControl(*c.Mouth)
		if err != nil {
			return u, fmt.Errorf("%w: %v", menu.ErrInvalidValue, err)
		}
		u.MouthTrackingControl = menu.Set(mouth)
	}
	return u, nil
}

// BranchChanges is the textual form of a menu.BranchUpdate.
type BranchChanges struct {
	Eye          *string `json:"eye,omitempty"`
	Mouth        *string `json:"mouth,omitempty"`
	LeftTrigger  *bool   `json:"leftTrigger,omitempty"`
	RightTrigger *bool   `json:"rightTrigger,omitempty"`
}

func (c BranchChanges) Update() (menu.BranchUpdate, error) {
	var u menu.BranchUpdate
	if c.Eye != nil {
		eye, err := menu.ParseEyeTrackingControl(*c.Eye)
		if err != nil {
			return u, fmt.Errorf("%w: %v", menu.ErrInvalidValue, err)
		}
		u.EyeTrackingControl = menu.Set(eye)
	}
	if c.Mouth != nil {
		mouth, err := menu.ParseMouthTrackingControl(*c.Mouth)
		if err != nil {
			return u, fmt.Errorf("%w: %v", menu.ErrInvalidValue, err)
		}
		u.MouthTrackingControl = menu.Set(mouth)
	}
	if c.LeftTrigger != nil {
		u.IsLeftTriggerUsed = menu.Set(*c.LeftTrigger)
	}
	if c.RightTrigger != nil {
		u.IsRightTriggerUsed = menu.Set(*c.RightTrigger)
	}
	return u, nil
}

// PropertyChanges is the textual form of a menu.PropertiesUpdate.
type PropertyChanges struct {
	WriteDefaults      *bool    `json:"writeDefaults,omitempty"`
	TransitionDuration *float64 `json:"transitionDuration,omitempty"`
}

func (c PropertyChanges) Update() menu.PropertiesUpdate {
	var u menu.PropertiesUpdate
	if c.WriteDefaults != nil {
		u.WriteDefaults = menu.Set(*c.WriteDefaults)
	}
	if c.TransitionDuration != nil {
		u.TransitionDurationSeconds = menu.Set(*c.TransitionDuration)
	}
	return u
}

// ParseConditions parses each entry with menu.ParseCondition.
func ParseConditions(raw []string) ([]menu.Condition, error) {
	out := make([]menu.Condition, 0, len(raw))
	for _, r := range raw {
		c, err := menu.ParseCondition(r)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// invalid reports a parse failure through the Presenter.
func (s *Service) invalid(op, menuID string, err error) Result {
	return s.complete(Result{Operation: op, MenuID: menuID, Code: codeFor(err, InvalidValue), Err: err})
}

// ModifyMode parses c and applies it to modeID.
func (s *Service) ModifyMode(ctx context.Context, menuID, modeID string, c ModeChanges) Result {
	u, err := c.Update()
	if err != nil {
		return s.invalid("modify-mode-properties", menuID, err)
	}
	return s.ModifyModeProperties(ctx, menuID, modeID, u)
}

// ModifyBranch parses c and applies it to the branch.
func (s *Service) ModifyBranch(ctx context.Context, menuID, modeID string, branch int, c BranchChanges) Result {
	u, err := c.Update()
	if err != nil {
		return s.invalid("modify-branch-properties", menuID, err)
	}
	return s.ModifyBranchProperties(ctx, menuID, modeID, branch, u)
}
