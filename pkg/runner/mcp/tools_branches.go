package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/facemenu/pkg/app"
	"tableflip.dev/facemenu/pkg/menu"
)

const conditionHelp = "Condition such as left:fist, either:victory:notequal or param:GestureWeight:gt:0.5."

func branchArg() mcp.ToolOption {
	return mcp.WithNumber("branch",
		mcp.Required(),
		mcp.Description("Zero based branch index."),
	)
}

func registerBranchTools(srv *server.MCPServer, svc *Service) {
	srv.AddTool(mcp.NewTool(
		"add_branch",
		mcp.WithDescription("Append a conditional branch to a mode."),
		menuArg(),
		modeArg(),
		mcp.WithArray("conditions",
			mcp.Description("Initial conditions. "+conditionHelp),
			mcp.Items(map[string]any{"type": "string"}),
		),
	), svc.addBranch)

	srv.AddTool(mcp.NewTool(
		"modify_branch",
		mcp.WithDescription("Change branch properties. Omitted properties are kept."),
		menuArg(),
		modeArg(),
		branchArg(),
		mcp.WithString("eye", mcp.Description("Eye tracking control."), mcp.Enum("tracking", "animation")),
		mcp.WithString("mouth", mcp.Description("Mouth tracking control."), mcp.Enum("tracking", "animation")),
		mcp.WithBoolean("leftTrigger", mcp.Description("Blend the left hand animation by trigger pressure.")),
		mcp.WithBoolean("rightTrigger", mcp.Description("Blend the right hand animation by trigger pressure.")),
	), svc.modifyBranch)

	srv.AddTool(mcp.NewTool(
		"change_branch_order",
		mcp.WithDescription("Move a branch to another position. Earlier branches take priority."),
		menuArg(),
		modeArg(),
		mcp.WithNumber("from", mcp.Required(), mcp.Description("Current index.")),
		mcp.WithNumber("to", mcp.Required(), mcp.Description("New index.")),
	), svc.changeBranchOrder)

	srv.AddTool(mcp.NewTool(
		"remove_branch",
		mcp.WithDescription("Remove a branch from a mode."),
		menuArg(),
		modeArg(),
		branchArg(),
	), svc.removeBranch)

	srv.AddTool(mcp.NewTool(
		"add_condition",
		mcp.WithDescription("Append a condition to a branch."),
		menuArg(),
		modeArg(),
		branchArg(),
		mcp.WithString("condition", mcp.Required(), mcp.Description(conditionHelp)),
	), svc.addCondition)

	srv.AddTool(mcp.NewTool(
		"modify_condition",
		mcp.WithDescription("Replace a condition of a branch."),
		menuArg(),
		modeArg(),
		branchArg(),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Condition index.")),
		mcp.WithString("condition", mcp.Required(), mcp.Description(conditionHelp)),
	), svc.modifyCondition)

	srv.AddTool(mcp.NewTool(
		"change_condition_order",
		mcp.WithDescription("Move a condition to another position within its branch."),
		menuArg(),
		modeArg(),
		branchArg(),
		mcp.WithNumber("from", mcp.Required(), mcp.Description("Current index.")),
		mcp.WithNumber("to", mcp.Required(), mcp.Description("New index.")),
	), svc.changeConditionOrder)

	srv.AddTool(mcp.NewTool(
		"remove_condition",
		mcp.WithDescription("Remove a condition from a branch."),
		menuArg(),
		modeArg(),
		branchArg(),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Condition index.")),
	), svc.removeCondition)

	srv.AddTool(mcp.NewTool(
		"set_animation",
		mcp.WithDescription("Assign an animation to a mode or to a branch slot. An empty guid clears it."),
		menuArg(),
		modeArg(),
		mcp.WithNumber("branch", mcp.Description("Branch index. Omit to target the mode itself.")),
		mcp.WithString("slot",
			mcp.Description("Branch animation slot."),
			mcp.Enum("base", "left", "right", "both"),
		),
		mcp.WithString("guid", mcp.Description("Animation asset identifier.")),
	), svc.setAnimation)
}

type branchArgs struct {
	Menu   string `json:"menu"`
	Mode   string `json:"mode"`
	Branch int    `json:"branch"`
}

func (s *Service) addBranch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Menu       string   `json:"menu"`
		Mode       string   `json:"mode"`
		Conditions []string `json:"conditions"`
	}
	if failed := bind(request, &args); failed != nil {
		return failed, nil
	}
	conditions, err := app.ParseConditions(args.Conditions)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.respond(func(a *app.Service) app.Result {
		return a.AddBranch(ctx, args.Menu, args.Mode, conditions...)
	})
}

func (s *Service) modifyBranch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		branchArgs
		app.BranchChanges
	}
	if failed := bind(request, &args); failed != nil {
		return failed, nil
	}
	return s.respond(func(a *app.Service) app.Result {
		return a.ModifyBranch(ctx, args.Menu, args.Mode, args.Branch, args.BranchChanges)
	})
}

func (s *Service) changeBranchOrder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Menu string `json:"menu"`
		Mode string `json:"mode"`
		From int    `json:"from"`
		To   int    `json:"to"`
	}
	if failed := bind(request, &args); failed != nil {
		return failed, nil
	}
	return s.respond(func(a *app.Service) app.Result {
		return a.ChangeBranchOrder(ctx, args.Menu, args.Mode, args.From, args.To)
	})
}

func (s *Service) removeBranch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args branchArgs
	if failed := bind(request, &args); failed != nil {
		return failed, nil
	}
	return s.respond(func(a *app.Service) app.Result {
		return a.RemoveBranch(ctx, args.Menu, args.Mode, args.Branch)
	})
}

func (s *Service) addCondition(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		branchArgs
		Condition string `json:"condition"`
	}
	if failed := bind(request, &args); failed != nil {
		return failed, nil
	}
	c, err := menu.ParseCondition(args.Condition)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.respond(func(a *app.Service) app.Result {
		return a.AddCondition(ctx, args.Menu, args.Mode, args.Branch, c)
	})
}

func (s *Service) modifyCondition(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		branchArgs
		Index     int    `json:"index"`
		Condition string `json:"condition"`
	}
	if failed := bind(request, &args); failed != nil {
		return failed, nil
	}
	c, err := menu.ParseCondition(args.Condition)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.respond(func(a *app.Service) app.Result {
		return a.ModifyCondition(ctx, args.Menu, args.Mode, args.Branch, args.Index, c)
	})
}

func (s *Service) changeConditionOrder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		branchArgs
		From int `json:"from"`
		To   int `json:"to"`
	}
	if failed := bind(request, &args); failed != nil {
		return failed, nil
	}
	return s.respond(func(a *app.Service) app.Result {
		return a.ChangeConditionOrder(ctx, args.Menu, args.Mode, args.Branch, args.From, args.To)
	})
}

func (s *Service) removeCondition(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		branchArgs
		Index int `json:"index"`
	}
	if failed := bind(request, &args); failed != nil {
		return failed, nil
	}
	return s.respond(func(a *app.Service) app.Result {
		return a.RemoveCondition(ctx, args.Menu, args.Mode, args.Branch, args.Index)
	})
}

func (s *Service) setAnimation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Menu   string `json:"menu"`
		Mode   string `json:"mode"`
		Branch *int   `json:"branch"`
		Slot   string `json:"slot"`
		GUID   string `json:"guid"`
	}
	if failed := bind(request, &args); failed != nil {
		return failed, nil
	}
	slot, err := menu.ParseBranchAnimationType(args.Slot)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	branch := menu.NoBranch
	if args.Branch != nil {
		branch = *args.Branch
	}
	var animation *menu.Animation
	if guid := strings.TrimSpace(args.GUID); guid != "" {
		animation = &menu.Animation{GUID: guid}
	}
	return s.respond(func(a *app.Service) app.Result {
		return a.SetAnimation(ctx, args.Menu, args.Mode, animation, branch, slot)
	})
}
