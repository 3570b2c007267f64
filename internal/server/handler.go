package server

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"

	"github.com/almartin82/sdschooldata/internal/contract"
	"github.com/almartin82/sdschooldata/internal/report"
	"github.com/almartin82/sdschooldata/internal/surface"
	"github.com/almartin82/sdschooldata/internal/symbol"
	"github.com/almartin82/sdschooldata/internal/workspace"
)

// SurfaceHandler turns MCP tool calls into verifier and resolver calls.
type SurfaceHandler struct {
	defaultLoader string
	log           *zerolog.Logger
}

// NewSurfaceHandler creates a SurfaceHandler.
func NewSurfaceHandler(defaultLoader string, log *zerolog.Logger) *SurfaceHandler {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &SurfaceHandler{
		defaultLoader: defaultLoader,
		log:           log,
	}
}

// HandleVerify runs the verify_surface tool. The contract path is relative
// to project_path and may not leave it. Failing checks are a normal result;
// only unusable input is reported as a tool error.
func (h *SurfaceHandler) HandleVerify(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectPath, errResult := requireProject(req)
	if errResult != nil {
		return errResult, nil
	}
	contractPath, err := req.RequireString("contract")
	if err != nil {
		return mcp.NewToolResultError("contract is required"), nil
	}
	loaderName := req.GetString("loader", h.defaultLoader)
	format := req.GetString("format", report.FormatText)

	c, err := contract.LoadFrom(workspace.NewFSReader(projectPath), projectPath, contractPath)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	job, err := c.Job(loaderName)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("contract %s: %v", contractPath, err)), nil
	}

	h.log.Info().Str("project", projectPath).Str("contract", contractPath).Str("loader", job.Loader.Name()).Msg("verify_surface")
	r := surface.NewVerifier(job.Loader, h.log).Verify(ctx, job.Ref, job.Descriptors)

	var buf bytes.Buffer
	if err := report.Write(&buf, format, []*surface.Report{r}, false); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	passed, failed := r.Counts()
	summary := fmt.Sprintf("PASS: %d checks passed", passed)
	if !r.Passed() {
		summary = fmt.Sprintf("FAIL: %d passed, %d failed", passed, failed)
		if r.LoadErr != nil {
			summary = "FAIL: " + r.LoadErr.Error()
		}
	}
	if format == report.FormatJSON {
		return mcp.NewToolResultText(buf.String()), nil
	}
	return mcp.NewToolResultText(summary + "\n" + buf.String()), nil
}

// HandleFindSymbol runs the find_symbol tool.
func (h *SurfaceHandler) HandleFindSymbol(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectPath, errResult := requireProject(req)
	if errResult != nil {
		return errResult, nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}

	locations, err := symbol.NewASTResolver(projectPath).FindSymbol(name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("find symbol %q: %v", name, err)), nil
	}
	h.log.Debug().Str("project", projectPath).Str("symbol", name).Int("matches", len(locations)).Msg("find_symbol")
	if len(locations) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("Symbol %q not found.", name)), nil
	}

	result := make([]string, 0, len(locations))
	for _, loc := range locations {
		result = append(result, fmt.Sprintf("%s:%d:%d", loc.FilePath, loc.Line, loc.Character))
	}
	return mcp.NewToolResultText(fmt.Sprintf("Found symbol %q at:\n%s", name, strings.Join(result, "\n"))), nil
}

func requireProject(req mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	rawPath, err := req.RequireString("project_path")
	if err != nil {
		return "", mcp.NewToolResultError("project_path is required")
	}
	projectPath, err := filepath.Abs(rawPath)
	if err != nil {
		return "", mcp.NewToolResultError(fmt.Sprintf("invalid project_path: %v", err))
	}
	return projectPath, nil
}
