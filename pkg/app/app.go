package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/facemenu/pkg/logging"
	"tableflip.dev/facemenu/pkg/menu"
	"tableflip.dev/facemenu/pkg/store"
)

// Service runs menu operations against a repository. Each operation loads the
// menu, checks and applies one change, saves it and reports a Result to the
// Presenter. CLIs, the MCP server and tests share it.
type Service struct {
	Repository store.Repository
	Presenter  Presenter
}

var ErrNoRepository = errors.New("app: no repository configured")

// mutation changes m. It may fill in ID or Merged on res.
type mutation func(m *menu.Menu, res *Result) error

type traceEntry struct {
	Menu  string `json:"menu"`
	Code  string `json:"code"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

func (s *Service) complete(r Result) Result {
	entry := traceEntry{Menu: r.MenuID, Code: r.Code.String(), ID: r.ID}
	if r.Err != nil {
		entry.Error = r.Err.Error()
	}
	logging.Trace("app."+r.Operation, entry)
	if r.Code == Error {
		logging.Error(fmt.Errorf("%s %s: %w", r.Operation, r.MenuID, r.Err))
	}
	if s.Presenter != nil {
		s.Presenter.Complete(r)
	}
	return r
}

// run is the shared load, mutate, save sequence. A panic inside mutate
// becomes an Error result and nothing is saved.
func (s *Service) run(ctx context.Context, op, menuID string, fallback Code, mutate mutation) (res Result) {
	res = Result{Operation: op, MenuID: menuID}
	defer func() {
		if p := recover(); p != nil {
			res = s.complete(Result{Operation: op, MenuID: menuID, Code: Error, Err: fmt.Errorf("app: %s panicked: %v", op, p)})
		}
	}()

	m, code, err := s.load(ctx, menuID)
	if err != nil {
		res.Code, res.Err = code, err
		return s.complete(res)
	}
	res.Menu = m

	if err := mutate(m, &res); err != nil {
		res.Code, res.Err = codeFor(err, fallback), err
		return s.complete(res)
	}

	if err := s.Repository.Save(ctx, menuID, m, op); err != nil {
		res.Code, res.Err = Error, err
		return s.complete(res)
	}
	res.Code = Succeeded
	return s.complete(res)
}

func (s *Service) load(ctx context.Context, menuID string) (*menu.Menu, Code, error) {
	if s.Repository == nil {
		return nil, Error, ErrNoRepository
	}
	if strings.TrimSpace(menuID) == "" {
		return nil, ArgumentNull, fmt.Errorf("%w: menu id", menu.ErrArgumentNull)
	}
	if !s.Repository.Exists(ctx, menuID) {
		return nil, MenuDoesNotExist, fmt.Errorf("%w: %q", store.ErrMenuNotFound, menuID)
	}
	m, err := s.Repository.Load(ctx, menuID)
	if err != nil {
		return nil, codeFor(err, Error), err
	}
	return m, Succeeded, nil
}

func required(names ...string) error {
	for i := 0; i+1 < len(names); i += 2 {
		if strings.TrimSpace(names[i+1]) == "" {
			return fmt.Errorf("%w: %s", menu.ErrArgumentNull, names[i])
		}
	}
	return nil
}

// Menus lists the stored menu keys.
func (s *Service) Menus(ctx context.Context) ([]string, error) {
	if s.Repository == nil {
		return nil, ErrNoRepository
	}
	return s.Repository.Keys(ctx), nil
}

// Watch subscribes to repository change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Repository == nil {
		return nil, ErrNoRepository
	}
	return s.Repository.Watch(ctx)
}

// Get loads a menu without changing it.
func (s *Service) Get(ctx context.Context, menuID string) Result {
	m, code, err := s.load(ctx, menuID)
	return s.complete(Result{Operation: "get", MenuID: menuID, Menu: m, Code: code, Err: err})
}

// Find searches menuID for items matching query.
func (s *Service) Find(ctx context.Context, menuID, query string) Result {
	m, code, err := s.load(ctx, menuID)
	res := Result{Operation: "find", MenuID: menuID, Menu: m, Code: code, Err: err}
	if err == nil {
		res.Matches = Find(m, query)
	}
	return s.complete(res)
}

// CreateMenu stores an empty menu under menuID.
func (s *Service) CreateMenu(ctx context.Context, menuID string) Result {
	res := Result{Operation: "create-menu", MenuID: menuID}
	switch {
	case s.Repository == nil:
		res.Code, res.Err = Error, ErrNoRepository
	case strings.TrimSpace(menuID) == "":
		res.Code, res.Err = ArgumentNull, fmt.Errorf("%w: menu id", menu.ErrArgumentNull)
	case s.Repository.Exists(ctx, menuID):
		res.Code, res.Err = MenuAlreadyExists, fmt.Errorf("app: menu %q already exists", menuID)
	default:
		m := menu.New()
		if err := s.Repository.Save(ctx, menuID, m, res.Operation); err != nil {
			res.Code, res.Err = Error, err
		} else {
			res.Code, res.Menu = Succeeded, m
		}
	}
	return s.complete(res)
}

// DeleteMenu erases the menu stored under menuID.
func (s *Service) DeleteMenu(ctx context.Context, menuID string) Result {
	res := Result{Operation: "delete-menu", MenuID: menuID}
	if _, code, err := s.load(ctx, menuID); err != nil {
		res.Code, res.Err = code, err
		return s.complete(res)
	}
	if err := s.Repository.Delete(ctx, menuID); err != nil {
		res.Code, res.Err = codeFor(err, Error), err
		return s.complete(res)
	}
	res.Code = Succeeded
	return s.complete(res)
}

// AddMode creates a mode in destination. Empty id generates one; a non
// empty name replaces the default display name.
func (s *Service) AddMode(ctx context.Context, menuID, destination, id, name string) Result {
	return s.run(ctx, "add-mode", menuID, InvalidDestination, func(m *menu.Menu, res *Result) error {
		if err := required("destination", destination); err != nil {
			return err
		}
		created, err := m.AddMode(destination, id)
		if err != nil {
			return err
		}
		res.ID = created
		if name != "" {
			return m.ModifyModeProperties(created, menu.ModeUpdate{DisplayName: menu.Set(name)})
		}
		return nil
	})
}

// AddGroup creates a group in destination.
func (s *Service) AddGroup(ctx context.Context, menuID, destination, id, name string) Result {
	return s.run(ctx, "add-group", menuID, InvalidDestination, func(m *menu.Menu, res *Result) error {
		if err := required("destination", destination); err != nil {
			return err
		}
		created, err := m.AddGroup(destination, id)
		if err != nil {
			return err
		}
		res.ID = created
		if name != "" {
			return m.ModifyGroupProperties(created, menu.GroupUpdate{DisplayName: menu.Set(name)})
		}
		return nil
	})
}

// CopyMode duplicates modeID into destination.
func (s *Service) CopyMode(ctx context.Context, menuID, modeID, destination string) Result {
	return s.run(ctx, "copy-mode", menuID, InvalidMode, func(m *menu.Menu, res *Result) error {
		if err := required("mode id", modeID, "destination", destination); err != nil {
			return err
		}
		created, err := m.CopyMode(modeID, destination)
		res.ID = created
		return err
	})
}

// RemoveMenuItem deletes a mode or a group with its subtree.
func (s *Service) RemoveMenuItem(ctx context.Context, menuID, id string) Result {
	return s.run(ctx, "remove-menu-item", menuID, InvalidMenuItem, func(m *menu.Menu, res *Result) error {
		if err := required("menu item id", id); err != nil {
			return err
		}
		if !m.CanRemoveMenuItem(id) {
			return fmt.Errorf("%w: menu item %q", menu.ErrNotFound, id)
		}
		return m.RemoveMenuItem(id)
	})
}

// MoveMenuItem relocates id into destination at index.
func (s *Service) MoveMenuItem(ctx context.Context, menuID, id, destination string, index int) Result {
	return s.run(ctx, "move-menu-item", menuID, InvalidMenuItem, func(m *menu.Menu, res *Result) error {
		if err := required("menu item id", id, "destination", destination); err != nil {
			return err
		}
		if !m.CanMoveMenuItemFrom(id) {
			return fmt.Errorf("%w: menu item %q", menu.ErrNotFound, id)
		}
		return m.MoveMenuItem(id, destination, index)
	})
}

func (s *Service) ModifyMenuProperties(ctx context.Context, menuID string, u menu.PropertiesUpdate) Result {
	return s.run(ctx, "modify-menu-properties", menuID, Error, func(m *menu.Menu, res *Result) error {
		return m.ModifyProperties(u)
	})
}

func (s *Service) ModifyModeProperties(ctx context.Context, menuID, modeID string, u menu.ModeUpdate) Result {
	return s.run(ctx, "modify-mode-properties", menuID, InvalidMode, func(m *menu.Menu, res *Result) error {
		if err := required("mode id", modeID); err != nil {
			return err
		}
		return m.ModifyModeProperties(modeID, u)
	})
}

func (s *Service) ModifyGroupProperties(ctx context.Context, menuID, groupID string, u menu.GroupUpdate) Result {
	return s.run(ctx, "modify-group-properties", menuID, InvalidGroup, func(m *menu.Menu, res *Result) error {
		if err := required("group id", groupID); err != nil {
			return err
		}
		return m.ModifyGroupProperties(groupID, u)
	})
}

// SetDefaultSelection selects modeID on first load; empty clears it.
func (s *Service) SetDefaultSelection(ctx context.Context, menuID, modeID string) Result {
	return s.run(ctx, "set-default-selection", menuID, InvalidMode, func(m *menu.Menu, res *Result) error {
		return m.SetDefaultSelection(modeID)
	})
}

func (s *Service) AddBranch(ctx context.Context, menuID, modeID string, conditions ...menu.Condition) Result {
	return s.run(ctx, "add-branch", menuID, InvalidMode, func(m *menu.Menu, res *Result) error {
		if err := required("mode id", modeID); err != nil {
			return err
		}
		if !m.CanAddBranchTo(modeID) {
			return fmt.Errorf("%w: mode %q", menu.ErrNotFound, modeID)
		}
		return m.AddBranch(modeID, conditions...)
	})
}

func (s *Service) ModifyBranchProperties(ctx context.Context, menuID, modeID string, branch int, u menu.BranchUpdate) Result {
	return s.run(ctx, "modify-branch-properties", menuID, InvalidBranch, func(m *menu.Menu, res *Result) error {
		if err := required("mode id", modeID); err != nil {
			return err
		}
		return m.ModifyBranchProperties(modeID, branch, u)
	})
}

func (s *Service) ChangeBranchOrder(ctx context.Context, menuID, modeID string, from, to int) Result {
	return s.run(ctx, "change-branch-order", menuID, InvalidBranch, func(m *menu.Menu, res *Result) error {
		if err := required("mode id", modeID); err != nil {
			return err
		}
		return m.ChangeBranchOrder(modeID, from, to)
	})
}

func (s *Service) RemoveBranch(ctx context.Context, menuID, modeID string, branch int) Result {
	return s.run(ctx, "remove-branch", menuID, InvalidBranch, func(m *menu.Menu, res *Result) error {
		if err := required("mode id", modeID); err != nil {
			return err
		}
		return m.RemoveBranch(modeID, branch)
	})
}

func (s *Service) AddCondition(ctx context.Context, menuID, modeID string, branch int, c menu.Condition) Result {
	return s.run(ctx, "add-condition", menuID, InvalidBranch, func(m *menu.Menu, res *Result) error {
		if err := required("mode id", modeID); err != nil {
			return err
		}
		return m.AddCondition(modeID, branch, c)
	})
}

func (s *Service) ModifyCondition(ctx context.Context, menuID, modeID string, branch, condition int, c menu.Condition) Result {
	return s.run(ctx, "modify-condition", menuID, InvalidCondition, func(m *menu.Menu, res *Result) error {
		if err := required("mode id", modeID); err != nil {
			return err
		}
		return m.ModifyCondition(modeID, branch, condition, c)
	})
}

func (s *Service) ChangeConditionOrder(ctx context.Context, menuID, modeID string, branch, from, to int) Result {
	return s.run(ctx, "change-condition-order", menuID, InvalidCondition, func(m *menu.Menu, res *Result) error {
		if err := required("mode id", modeID); err != nil {
			return err
		}
		return m.ChangeConditionOrder(modeID, branch, from, to)
	})
}

func (s *Service) RemoveCondition(ctx context.Context, menuID, modeID string, branch, condition int) Result {
	return s.run(ctx, "remove-condition", menuID, InvalidCondition, func(m *menu.Menu, res *Result) error {
		if err := required("mode id", modeID); err != nil {
			return err
		}
		return m.RemoveCondition(modeID, branch, condition)
	})
}

// SetAnimation assigns a, or clears the target when a is nil.
func (s *Service) SetAnimation(ctx context.Context, menuID, modeID string, a *menu.Animation, branch int, slot menu.BranchAnimationType) Result {
	return s.run(ctx, "set-animation", menuID, InvalidTarget, func(m *menu.Menu, res *Result) error {
		if err := required("mode id", modeID); err != nil {
			return err
		}
		if !m.CanSetAnimationTo(modeID, branch, slot) {
			return fmt.Errorf("%w: mode %q branch %d slot %q", menu.ErrInvalidTarget, modeID, branch, slot)
		}
		return m.SetAnimation(modeID, a, branch, slot)
	})
}

// PreviewMerge lays Registered out among existing without saving.
func (s *Service) PreviewMerge(ctx context.Context, menuID string, existing []menu.ExistingItem) Result {
	res := Result{Operation: "preview-merge", MenuID: menuID}
	m, code, err := s.load(ctx, menuID)
	if err != nil {
		res.Code, res.Err = code, err
		return s.complete(res)
	}
	res.Menu = m
	merged, err := m.GetMergedMenu(existing)
	if err != nil {
		res.Code, res.Err = codeFor(err, InvalidMergeState), err
		return s.complete(res)
	}
	res.Code, res.Merged = Succeeded, merged
	return s.complete(res)
}

// ApplyMerge merges Registered with existing, optionally rearranges the
// result to order (merged ids, see menu.ExistingID), and records it.
func (s *Service) ApplyMerge(ctx context.Context, menuID string, existing []menu.ExistingItem, order []string) Result {
	return s.run(ctx, "apply-merge", menuID, InvalidMergeState, func(m *menu.Menu, res *Result) error {
		merged, err := m.GetMergedMenu(existing)
		if err != nil {
			return err
		}
		if len(order) > 0 {
			if merged, err = rearrange(merged, order); err != nil {
				return err
			}
		}
		if !m.CanUpdateOrderAndInsertIndices(merged) {
			return fmt.Errorf("%w: merged order does not match Registered", menu.ErrInvalidMergeState)
		}
		if err := m.UpdateOrderAndInsertIndices(merged); err != nil {
			return err
		}
		res.Merged = merged
		return nil
	})
}

func rearrange(merged *menu.MergedList, order []string) (*menu.MergedList, error) {
	byID := make(map[string]menu.MergedEntry, merged.Len())
	for _, e := range merged.Entries() {
		byID[e.ID] = e
	}
	if len(order) != len(byID) {
		return nil, fmt.Errorf("%w: order names %d of %d merged items", menu.ErrInvalidMergeState, len(order), len(byID))
	}
	entries := make([]menu.MergedEntry, 0, len(order))
	for _, id := range order {
		e, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q is not in the merged menu", menu.ErrInvalidMergeState, id)
		}
		entries = append(entries, e)
	}
	return menu.NewMergedList(entries)
}
