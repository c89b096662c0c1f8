package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	stackedmcp "github.com/toocheesy/stacked/internal/mcp"
)

func main() {
	modesFile := flag.String("modes", "", "path to modes YAML file (empty for built-ins)")
	flag.Parse()

	stackedmcp.SetModesFile(*modesFile)

	s := server.NewMCPServer("stacked", "1.0.0")
	stackedmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
