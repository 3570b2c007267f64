package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: surfcheck-mcp-client <project_path> <contract.yaml> [loader]")
		os.Exit(2)
	}

	args := map[string]any{
		"project_path": os.Args[1],
		"contract":     os.Args[2],
	}
	if len(os.Args) >= 4 {
		args["loader"] = os.Args[3]
	}

	serverBin := os.Getenv("MCP_SERVER_BIN")
	if serverBin == "" {
		serverBin = "surfcheck-mcp"
	}

	c, err := client.NewStdioMCPClient(
		serverBin,
		os.Environ(),
	)
	if err != nil {
		log.Fatalf("failed to create MCP client: %v", err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "surfcheck-client",
		Version: "0.1.0",
	}

	initResult, err := c.Initialize(ctx, initReq)
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}
	fmt.Fprintf(os.Stderr, "Connected to: %s %s\n", initResult.ServerInfo.Name, initResult.ServerInfo.Version)

	toolReq := mcp.CallToolRequest{}
	toolReq.Params.Name = "verify_surface"
	toolReq.Params.Arguments = args

	result, err := c.CallTool(ctx, toolReq)
	if err != nil {
		log.Fatalf("tool call failed: %v", err)
	}

	failed := false
	for _, content := range result.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			fmt.Println(tc.Text)
			failed = failed || strings.HasPrefix(tc.Text, "FAIL")
		}
	}
	switch {
	case result.IsError:
		os.Exit(2)
	case failed:
		os.Exit(1)
	}
}
