package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"cardcore/internal/card"
	cardmcp "cardcore/internal/mcp"
)

func main() {
	catalogFile := flag.String("catalog", "catalog.yaml", "path to card catalog YAML file")
	flag.Parse()

	catalog, err := card.LoadCatalog(*catalogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load catalog: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the MCP protocol; operational logs go to stderr.
	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{"stderr"}
	logger, err := logCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cardmcp.SetCatalog(catalog)
	cardmcp.SetLogger(logger)

	s := server.NewMCPServer("cardcore", "1.0.0")
	cardmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
