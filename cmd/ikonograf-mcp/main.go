package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"ikonograf/internal/adapters/catalogjson"
	"ikonograf/internal/adapters/descriptor"
	"ikonograf/internal/adapters/filesystem"
	mcpadapter "ikonograf/internal/adapters/mcp"
	"ikonograf/internal/adapters/sqlite"
	"ikonograf/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("ikonograf-mcp: %v", err)
	}

	rootFlag := flag.String("root", cfg.Root, "catalog root")
	flag.Parse()
	root := config.ExpandHome(*rootFlag)

	idx := sqlite.NewIndex()
	if err := idx.Open(root); err != nil {
		log.Fatalf("ikonograf-mcp: %v", err)
	}
	defer idx.Close()

	deps := mcpadapter.Deps{
		Store:  catalogjson.NewStore(root),
		Parser: descriptor.New(),
		Hasher: filesystem.NewHasher(cfg.Workers),
		Index:  idx,
	}

	mcpServer := server.NewMCPServer(
		"ikonograf-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, deps)
	mcpadapter.RegisterWriteTools(mcpServer, deps)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("ikonograf-mcp: %v", err)
	}
}
