// Package mcp provides the Model Context Protocol server integration for facemenu.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/facemenu/pkg/app"
	"tableflip.dev/facemenu/pkg/menu"
)

// Service adapts the app Service to MCP payloads.
type Service struct {
	App *app.Service
}

// ErrNoService is returned when the runner was built without an app Service.
var ErrNoService = errors.New("mcp: app service is not configured")

// MenuSummary describes a stored menu.
type MenuSummary struct {
	Key              string `json:"key"`
	Modes            int    `json:"modes"`
	Groups           int    `json:"groups"`
	Registered       int    `json:"registered"`
	Unregistered     int    `json:"unregistered"`
	DefaultSelection string `json:"defaultSelection,omitempty"`
}

// ResultDTO is a transport-friendly projection of an app.Result.
type ResultDTO struct {
	Operation string             `json:"operation"`
	Code      string             `json:"code"`
	Menu      string             `json:"menu"`
	ID        string             `json:"id,omitempty"`
	Error     string             `json:"error,omitempty"`
	Document  *menu.Document     `json:"document,omitempty"`
	Merged    []menu.MergedEntry `json:"merged,omitempty"`
}

// NewService builds a service wrapper around a.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

// ListMenus summarises every stored menu.
func (s *Service) ListMenus(ctx context.Context) ([]MenuSummary, error) {
	if s.App == nil {
		return nil, ErrNoService
	}
	keys, err := s.App.Menus(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]MenuSummary, 0, len(keys))
	for _, key := range keys {
		res := s.App.Get(ctx, key)
		if !res.OK() {
			return nil, resultError(res)
		}
		out = append(out, summarize(key, res.Menu))
	}
	return out, nil
}

// Menu loads the document stored under key.
func (s *Service) Menu(ctx context.Context, key string) (ResultDTO, error) {
	if s.App == nil {
		return ResultDTO{}, ErrNoService
	}
	res := s.App.Get(ctx, key)
	if !res.OK() {
		return ResultDTO{}, resultError(res)
	}
	return toDTO(res), nil
}

func summarize(key string, m *menu.Menu) MenuSummary {
	return MenuSummary{
		Key:              key,
		Modes:            len(m.ModeIDs()),
		Groups:           len(m.GroupIDs()),
		Registered:       m.Registered().Len(),
		Unregistered:     m.Unregistered().Len(),
		DefaultSelection: m.DefaultSelection(),
	}
}

func toDTO(r app.Result) ResultDTO {
	dto := ResultDTO{
		Operation: r.Operation,
		Code:      r.Code.String(),
		Menu:      r.MenuID,
		ID:        r.ID,
	}
	if r.Err != nil {
		dto.Error = r.Err.Error()
	}
	if r.Menu != nil && r.OK() {
		doc := r.Menu.Document()
		dto.Document = &doc
	}
	if r.Merged != nil {
		dto.Merged = r.Merged.Entries()
	}
	return dto
}

func resultError(r app.Result) error {
	if r.Err != nil {
		return fmt.Errorf("%s %s: %s: %w", r.Operation, r.MenuID, r.Code, r.Err)
	}
	return fmt.Errorf("%s %s: %s", r.Operation, r.MenuID, r.Code)
}
