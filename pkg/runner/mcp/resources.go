package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerMenusResource(srv, svc)
	registerMenuTemplate(srv, svc)
}

func registerMenusResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"facemenu://menus",
		"Menus",
		mcp.WithResourceDescription("Every stored expression menu with item counts."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		summaries, err := svc.ListMenus(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"menus": summaries,
			"count": len(summaries),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerMenuTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"facemenu://menus/{key}",
		"Menu Document",
		mcp.WithTemplateDescription("The full document of one expression menu."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		key := templateArgument(request.Params.Arguments, "key")
		if key == "" {
			return nil, fmt.Errorf("menu key is required")
		}

		dto, err := svc.Menu(ctx, key)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, dto)
	})
}

// templateArgument reads a URI template variable, which may arrive as a
// string or as a list of path segments.
func templateArgument(args map[string]any, name string) string {
	switch v := args[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	case []any:
		if len(v) > 0 {
			s, _ := v[0].(string)
			return s
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
