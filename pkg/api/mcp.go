package api

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hazyhaar/americana/pkg/demo"
	"github.com/hazyhaar/americana/pkg/kit"
	"github.com/hazyhaar/americana/pkg/store"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func mcpContext(ctx context.Context) context.Context {
	return kit.WithTransport(ctx, "mcp_stdio")
}

// RegisterMCPTools registers the profile MCP tools on the server.
func RegisterMCPTools(srv *server.MCPServer, s *store.Store) {
	registerGetProfile(srv, s)
	registerGetTable(srv, s)
	registerListYears(srv, s)
}

func registerGetProfile(srv *server.MCPServer, s *store.Store) {
	tool := mcp.NewTool("get_profile",
		mcp.WithDescription("Composite demographic profile (gender, age, most popular birth-cohort name) of the average American for a year."),
		mcp.WithString("year", mcp.Description("Calendar year (e.g. 2024); omit for the latest covered year")),
		mcp.WithString("gender", mcp.Description("Fix the gender to 'male' or 'female' instead of deriving it")),
	)

	kit.RegisterMCPTool(srv, tool, profileEndpoint(s), func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		out := &profileReq{}
		if v, _ := args["year"].(string); v != "" {
			year, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("invalid year %q", v)
			}
			out.Year = year
		}
		if v, _ := args["gender"].(string); v != "" {
			g, err := demo.ParseGender(v)
			if err != nil {
				return nil, err
			}
			out.Gender = &g
		}
		return &kit.MCPDecodeResult{Request: out, EnrichCtx: mcpContext}, nil
	})
}

func registerGetTable(srv *server.MCPServer, s *store.Store) {
	tool := mcp.NewTool("get_profile_table",
		mcp.WithDescription("Year-by-year table of composite profiles: unconditional, male-conditioned and female-conditioned per year."),
		mcp.WithString("from", mcp.Description("First year to include (inclusive)")),
		mcp.WithString("to", mcp.Description("Last year to include (inclusive)")),
	)

	kit.RegisterMCPTool(srv, tool, tableEndpoint(s), func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		out := &tableReq{}
		for name, dst := range map[string]*int{"from": &out.From, "to": &out.To} {
			if v, _ := args[name].(string); v != "" {
				n, err := strconv.Atoi(strings.TrimSpace(v))
				if err != nil {
					return nil, fmt.Errorf("invalid %s %q", name, v)
				}
				*dst = n
			}
		}
		return &kit.MCPDecodeResult{Request: out, EnrichCtx: mcpContext}, nil
	})
}

func registerListYears(srv *server.MCPServer, s *store.Store) {
	tool := mcp.NewTool("list_years",
		mcp.WithDescription("List the calendar years covered by the demographic dataset."),
	)

	kit.RegisterMCPTool(srv, tool, yearsEndpoint(s), func(mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil, EnrichCtx: mcpContext}, nil
	})
}
