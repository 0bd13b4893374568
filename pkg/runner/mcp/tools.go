package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/facemenu/pkg/app"
	"tableflip.dev/facemenu/pkg/menu"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerMenuTools(srv, svc)
	registerItemTools(srv, svc)
	registerBranchTools(srv, svc)
	registerMergeTools(srv, svc)
}

func menuArg() mcp.ToolOption {
	return mcp.WithString("menu",
		mcp.Required(),
		mcp.Description("Key of the stored menu."),
	)
}

func modeArg() mcp.ToolOption {
	return mcp.WithString("mode",
		mcp.Required(),
		mcp.Description("Mode identifier."),
	)
}

func registerMenuTools(srv *server.MCPServer, svc *Service) {
	srv.AddTool(mcp.NewTool(
		"list_menus",
		mcp.WithDescription("List stored menus with item counts."),
	), svc.listMenus)

	srv.AddTool(mcp.NewTool(
		"get_menu",
		mcp.WithDescription("Fetch the full document of a menu."),
		menuArg(),
	), svc.getMenu)

	srv.AddTool(mcp.NewTool(
		"find_items",
		mcp.WithDescription("Find modes and groups by fuzzy display name or id."),
		menuArg(),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Text to match against display names and ids."),
		),
	), svc.findItems)

	srv.AddTool(mcp.NewTool(
		"create_menu",
		mcp.WithDescription("Create an empty menu."),
		menuArg(),
	), svc.createMenu)

	srv.AddTool(mcp.NewTool(
		"delete_menu",
		mcp.WithDescription("Delete a stored menu."),
		menuArg(),
	), svc.deleteMenu)

	srv.AddTool(mcp.NewTool(
		"modify_menu",
		mcp.WithDescription("Change menu wide settings."),
		menuArg(),
		mcp.WithBoolean("writeDefaults",
			mcp.Description("Whether generated states write default values."),
		),
		mcp.WithNumber("transitionDuration",
			mcp.Description("Transition duration between expressions, in seconds."),
		),
	), svc.modifyMenu)

	srv.AddTool(mcp.NewTool(
		"set_default_selection",
		mcp.WithDescription("Select the mode active on first load. An empty mode clears it."),
		menuArg(),
		mcp.WithString("mode",
			mcp.Description("Mode identifier, or empty to clear."),
		),
	), svc.setDefaultSelection)
}

func registerItemTools(srv *server.MCPServer, svc *Service) {
	for _, kind := range []string{"mode", "group"} {
		handler := svc.addMode
		if kind == "group" {
			handler = svc.addGroup
		}
		srv.AddTool(mcp.NewTool(
			"add_"+kind,
			mcp.WithDescription(fmt.Sprintf("Add a %s to Registered, UnRegistered or a group.", kind)),
			menuArg(),
			mcp.WithString("destination",
				mcp.Required(),
				mcp.Description("Registered, UnRegistered or a group id."),
			),
			mcp.WithString("id",
				mcp.Description("Identifier for the new item. Generated when empty."),
			),
			mcp.WithString("name",
				mcp.Description("Display name."),
			),
		), handler)
	}

	srv.AddTool(mcp.NewTool(
		"copy_mode",
		mcp.WithDescription("Duplicate a mode with its branches into a destination."),
		menuArg(),
		modeArg(),
		mcp.WithString("destination",
			mcp.Required(),
			mcp.Description("Registered, UnRegistered or a group id."),
		),
	), svc.copyMode)

	srv.AddTool(mcp.NewTool(
		"remove_menu_item",
		mcp.WithDescription("Remove a mode, or a group with everything in it."),
		menuArg(),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Mode or group identifier."),
		),
	), svc.removeMenuItem)

	srv.AddTool(mcp.NewTool(
		"move_menu_item",
		mcp.WithDescription("Move a mode or group into a destination list."),
		menuArg(),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Mode or group identifier."),
		),
		mcp.WithString("destination",
			mcp.Required(),
			mcp.Description("Registered, UnRegistered or a group id."),
		),
		mcp.WithNumber("index",
			mcp.Description("Position in the destination. Appends when omitted."),
		),
	), svc.moveMenuItem)

	srv.AddTool(mcp.NewTool(
		"modify_mode",
		mcp.WithDescription("Change mode properties. Omitted properties are kept."),
		menuArg(),
		modeArg(),
		mcp.WithString("name", mcp.Description("Display name.")),
		mcp.WithBoolean("useAnimationName", mcp.Description("Show the animation name instead of the display name.")),
		mcp.WithString("eye", mcp.Description("Eye tracking control."), mcp.Enum("tracking", "animation")),
		mcp.WithString("mouth", mcp.Description("Mouth tracking control."), mcp.Enum("tracking", "animation")),
	), svc.modifyMode)

	srv.AddTool(mcp.NewTool(
		"modify_group",
		mcp.WithDescription("Rename a group."),
		menuArg(),
		mcp.WithString("group",
			mcp.Required(),
			mcp.Description("Group identifier."),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Display name."),
		),
	), svc.modifyGroup)
}

func (s *Service) listMenus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summaries, err := s.ListMenus(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toJSONResult(map[string]any{
		"menus": summaries,
		"count": len(summaries),
	})
}

func (s *Service) getMenu(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("menu")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dto, err := s.Menu(ctx, key)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toJSONResult(dto)
}

func (s *Service) findItems(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Menu  string `json:"menu"`
		Query string `json:"query"`
	}
	if failed := bind(request, &args); failed != nil {
		return failed, nil
	}
	if s.App == nil {
		return mcp.NewToolResultError(ErrNoService.Error()), nil
	}
	res := s.App.Find(ctx, args.Menu, args.Query)
	if !res.OK() {
		return mcp.NewToolResultError(resultError(res).Error()), nil
	}
	return toJSONResult(map[string]any{
		"query":   args.Query,
		"results": res.Matches,
		"count":   len(res.Matches),
	})
}

func (s *Service) createMenu(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("menu")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.respond(func(a *app.Service) app.Result { return a.CreateMenu(ctx, key) })
}

func (s *Service) deleteMenu(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("menu")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.respond(func(a *app.Service) app.Result { return a.DeleteMenu(ctx, key) })
}

func (s *Service) modifyMenu(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Menu string `json:"menu"`
		app.PropertyChanges
	}
	if failed := bind(request, &args); failed != nil {
		return failed, nil
	}
	return s.respond(func(a *app.Service) app.Result {
		return a.ModifyMenuProperties(ctx, args.Menu, args.PropertyChanges.Update())
	})
}

func (s *Service) setDefaultSelection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("menu")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mode := request.GetString("mode", "")
	return s.respond(func(a *app.Service) app.Result { return a.SetDefaultSelection(ctx, key, mode) })
}

type addArgs struct {
	Menu        string `json:"menu"`
	Destination string `json:"destination"`
	ID          string `json:"id"`
	Name        string `json:"name"`
}

func (s *Service) addMode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args addArgs
	if failed := bind(request, &args); failed != nil {
		return failed, nil
	}
	return s.respond(func(a *app.Service) app.Result {
		return a.AddMode(ctx, args.Menu, args.Destination, args.ID, args.Name)
	})
}

func (s *Service) addGroup(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args addArgs
	if failed := bind(request, &args); failed != nil {
		return failed, nil
	}
	return s.respond(func(a *app.Service) app.Result {
		return a.AddGroup(ctx, args.Menu, args.Destination, args.ID, args.Name)
	})
}

func (s *Service) copyMode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Menu        string `json:"menu"`
		Mode        string `json:"mode"`
		Destination string `json:"destination"`
	}
	if failed := bind(request, &args); failed != nil {
		return failed, nil
	}
	return s.respond(func(a *app.Service) app.Result {
		return a.CopyMode(ctx, args.Menu, args.Mode, args.Destination)
	})
}

func (s *Service) removeMenuItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Menu string `json:"menu"`
		ID   string `json:"id"`
	}
	if failed := bind(request, &args); failed != nil {
		return failed, nil
	}
	return s.respond(func(a *app.Service) app.Result { return a.RemoveMenuItem(ctx, args.Menu, args.ID) })
}

func (s *Service) moveMenuItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Menu        string `json:"menu"`
		ID          string `json:"id"`
		Destination string `json:"destination"`
		Index       *int   `json:"index"`
	}
	if failed := bind(request, &args); failed != nil {
		return failed, nil
	}
	index := menu.Append
	if args.Index != nil {
		index = *args.Index
	}
	return s.respond(func(a *app.Service) app.Result {
		return a.MoveMenuItem(ctx, args.Menu, args.ID, args.Destination, index)
	})
}

func (s *Service) modifyMode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Menu string `json:"menu"`
		Mode string `json:"mode"`
		app.ModeChanges
	}
	if failed := bind(request, &args); failed != nil {
		return failed, nil
	}
	return s.respond(func(a *app.Service) app.Result {
		return a.ModifyMode(ctx, args.Menu, args.Mode, args.ModeChanges)
	})
}

func (s *Service) modifyGroup(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Menu  string `json:"menu"`
		Group string `json:"group"`
		Name  string `json:"name"`
	}
	if failed := bind(request, &args); failed != nil {
		return failed, nil
	}
	return s.respond(func(a *app.Service) app.Result {
		return a.ModifyGroupProperties(ctx, args.Menu, args.Group, menu.GroupUpdate{DisplayName: menu.Set(args.Name)})
	})
}

// respond runs op and converts its Result into a tool result. Failed
// operations become tool errors carrying the result code.
func (s *Service) respond(op func(a *app.Service) app.Result) (*mcp.CallToolResult, error) {
	if s.App == nil {
		return mcp.NewToolResultError(ErrNoService.Error()), nil
	}
	res := op(s.App)
	if !res.OK() {
		return mcp.NewToolResultError(resultError(res).Error()), nil
	}
	return toJSONResult(toDTO(res))
}

func bind(request mcp.CallToolRequest, args any) *mcp.CallToolResult {
	if err := request.BindArguments(args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err))
	}
	return nil
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}
