package server

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/almartin82/sdschooldata/internal/contract"
	"github.com/almartin82/sdschooldata/internal/report"
	"github.com/almartin82/sdschooldata/internal/surface"
)

// Name and Version identify the server during the MCP handshake.
const (
	Name    = "surfcheck"
	Version = "0.1.0"
)

// New creates the MCP server and registers its tools. Protocol concerns stay
// here; the work happens in handler.
func New(handler *SurfaceHandler) *server.MCPServer {
	s := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(false),
	)

	verifyTool := mcp.NewTool("verify_surface",
		mcp.WithDescription("Verify that a Go package exposes the symbols listed in a surface contract: each symbol must exist, symbols of kind function must be callable, and values must satisfy their predicate ("+strings.Join(surface.PredicateNames(), ", ")+")."),
		mcp.WithString("project_path",
			mcp.Required(),
			mcp.Description("Absolute path of the project holding the contract"),
		),
		mcp.WithString("contract",
			mcp.Required(),
			mcp.Description("Contract YAML file, relative to project_path"),
		),
		mcp.WithString("loader",
			mcp.Description("Loader for contracts that do not name one"),
			mcp.Enum(contract.LoaderPackages, contract.LoaderAST),
		),
		mcp.WithString("format",
			mcp.Description("Report format. Default: text"),
			mcp.Enum(report.FormatText, report.FormatJSON),
		),
	)

	findTool := mcp.NewTool("find_symbol",
		mcp.WithDescription("Find where a function, method, type, var or const is defined, as path:line:column relative to project_path."),
		mcp.WithString("project_path",
			mcp.Required(),
			mcp.Description("Absolute path of the project to search"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Symbol name, for example FetchEnr"),
		),
	)

	s.AddTool(verifyTool, handler.HandleVerify)
	s.AddTool(findTool, handler.HandleFindSymbol)

	return s
}
