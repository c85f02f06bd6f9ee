package main

import (
	"flag"

	"github.com/hazyhaar/americana/pkg/api"
	"github.com/hazyhaar/americana/pkg/store"
	"github.com/mark3labs/mcp-go/server"
)

// cmdMCP serves the profile tools over MCP stdio, for use as a local tool
// provider. Logs would corrupt the JSON-RPC stream, so errors surface only
// through the protocol.
func cmdMCP(args []string) {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	dataDir := fs.String("data-dir", defaultDataDir, "dataset directory")
	fs.Parse(args)

	s, err := store.Open(*dataDir)
	if err != nil {
		fatal(err)
	}

	srv := server.NewMCPServer("americana", "1.0.0")
	api.RegisterMCPTools(srv, s)

	if err := server.ServeStdio(srv); err != nil {
		fatal(err)
	}
}
