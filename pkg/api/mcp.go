package api

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/opencoc/pitpipe/pkg/kit"
	"github.com/opencoc/pitpipe/pkg/region"
	"github.com/opencoc/pitpipe/pkg/runstore"
)

// RegisterMCPTools registers the PIT pipeline MCP tools on the server.
func RegisterMCPTools(srv *server.MCPServer, reg *region.Registry, store *runstore.Store) {
	registerDetectRegion(srv, reg)
	registerListRuns(srv, store)
	registerRunSummary(srv, store)
}

func mcpCtx(ctx context.Context) context.Context {
	return kit.WithTransport(ctx, "mcp")
}

func registerDetectRegion(srv *server.MCPServer, reg *region.Registry) {
	tool := mcp.NewTool("detect_region",
		mcp.WithDescription("Detect which regional survey layout a spreadsheet header belongs to, with a confidence score."),
		mcp.WithString("columns", mcp.Required(), mcp.Description("Comma-separated column headings from the uploaded sheet")),
	)

	kit.RegisterMCPTool(srv, tool, detectEndpoint(reg), func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		cols, _ := req.GetArguments()["columns"].(string)
		header := strings.Split(cols, ",")
		for i := range header {
			header[i] = strings.TrimSpace(header[i])
		}
		return &kit.MCPDecodeResult{
			Request:   &detectReq{Header: header},
			EnrichCtx: mcpCtx,
		}, nil
	})
}

func registerListRuns(srv *server.MCPServer, store *runstore.Store) {
	tool := mcp.NewTool("list_runs",
		mcp.WithDescription("List recent processing runs, newest first."),
		mcp.WithString("limit", mcp.Description("Maximum number of runs to return (default 50)")),
	)

	kit.RegisterMCPTool(srv, tool, listRunsEndpoint(store), func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		limit := 50
		if v, _ := req.GetArguments()["limit"].(string); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid limit %q", v)
			}
			limit = n
		}
		return &kit.MCPDecodeResult{
			Request:   &runsReq{Limit: limit},
			EnrichCtx: mcpCtx,
		}, nil
	})
}

func registerRunSummary(srv *server.MCPServer, store *runstore.Store) {
	tool := mcp.NewTool("run_summary",
		mcp.WithDescription("Fetch one processing run by id: detected region, counts, duplicate statistics and status."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Run id as returned by list_runs")),
	)

	kit.RegisterMCPTool(srv, tool, getRunEndpoint(store), func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		id, _ := req.GetArguments()["id"].(string)
		return &kit.MCPDecodeResult{
			Request:   &runReq{ID: id},
			EnrichCtx: mcpCtx,
		}, nil
	})
}
