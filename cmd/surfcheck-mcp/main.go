package main

import (
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/almartin82/sdschooldata/internal/logger"
	"github.com/almartin82/sdschooldata/internal/server"
)

func main() {
	l := logger.GetLogger()

	// --- configuration from SURFCHECK_* ---
	cfg, err := server.LoadConfig()
	if err != nil {
		l.Fatal().Err(err).Send()
	}
	if err := logger.SetLevelName(cfg.LogLevel); err != nil {
		l.Fatal().Err(err).Send()
	}

	handler := server.NewSurfaceHandler(cfg.DefaultLoader, l)
	s := server.New(handler)

	// stdout carries the protocol; logs go to stderr.
	l.Info().Str("loader", cfg.DefaultLoader).Msg("surfcheck MCP server starting")
	if err := mcpserver.ServeStdio(s); err != nil {
		l.Error().Err(err).Msg("server error")
		os.Exit(1)
	}
}
