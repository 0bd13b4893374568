package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/facemenu/pkg/app"
	"tableflip.dev/facemenu/pkg/existing"
	"tableflip.dev/facemenu/pkg/menu"
)

const existingHelp = "Items already on the avatar menu, as a list of {name, type, parameter, value} objects or the same list as YAML text."

func registerMergeTools(srv *server.MCPServer, svc *Service) {
	srv.AddTool(mcp.NewTool(
		"preview_merge",
		mcp.WithDescription("Show how Registered items would be laid out among existing avatar menu items."),
		menuArg(),
		mcp.WithArray("existing", mcp.Description(existingHelp)),
	), svc.previewMerge)

	srv.AddTool(mcp.NewTool(
		"apply_merge",
		mcp.WithDescription("Merge Registered items with existing avatar menu items and save the resulting order."),
		menuArg(),
		mcp.WithArray("existing", mcp.Description(existingHelp)),
		mcp.WithArray("order",
			mcp.Description("Optional merged ids in their new order, as returned by preview_merge."),
			mcp.Items(map[string]any{"type": "string"}),
		),
	), svc.applyMerge)
}

type mergeArgs struct {
	Menu     string          `json:"menu"`
	Existing json.RawMessage `json:"existing"`
	Order    []string        `json:"order"`
}

func (a mergeArgs) existingItems() ([]menu.ExistingItem, error) {
	if len(a.Existing) == 0 {
		return nil, nil
	}
	var text string
	if err := json.Unmarshal(a.Existing, &text); err == nil {
		return existing.Parse([]byte(text))
	}
	// JSON is valid YAML, so structured input goes through the same parser.
	return existing.Parse(a.Existing)
}

func (s *Service) previewMerge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args mergeArgs
	if failed := bind(request, &args); failed != nil {
		return failed, nil
	}
	items, err := args.existingItems()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid existing items: %v", err)), nil
	}
	return s.respond(func(a *app.Service) app.Result { return a.PreviewMerge(ctx, args.Menu, items) })
}

func (s *Service) applyMerge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args mergeArgs
	if failed := bind(request, &args); failed != nil {
		return failed, nil
	}
	items, err := args.existingItems()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid existing items: %v", err)), nil
	}
	return s.respond(func(a *app.Service) app.Result { return a.ApplyMerge(ctx, args.Menu, items, args.Order) })
}
