package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/oas2mcp/oas2mcp"
	"github.com/oas2mcp/oas2mcp/cmd/oas2mcp/commands"
	"github.com/oas2mcp/oas2mcp/internal/cliutil"
)

// validCommands lists all valid command names for typo suggestions.
var validCommands = []string{"serve", "version", "help"}

// levenshteinDistance calculates the minimum edit distance between two strings.
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := range len(b) + 1 {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}

	return matrix[len(a)][len(b)]
}

// suggestCommand returns the closest matching command if the edit distance is <= 2.
func suggestCommand(input string) string {
	var bestMatch string
	bestDistance := 3

	for _, cmd := range validCommands {
		dist := levenshteinDistance(input, cmd)
		if dist < bestDistance {
			bestDistance = dist
			bestMatch = cmd
		}
	}

	return bestMatch
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Println(oas2mcp.BuildInfo())
	case "help", "-h", "--help":
		printUsage()
	case "serve":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := commands.HandleServe(ctx, os.Args[2:], "oas2mcp", oas2mcp.Version()); err != nil {
			cliutil.Writef(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		cliutil.Writef(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			cliutil.Writef(os.Stderr, "Did you mean: %s?\n", suggestion)
		}
		cliutil.Writef(os.Stderr, "\n")
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`oas2mcp - OpenAPI to MCP bridge

Usage:
  oas2mcp <command> [options]

Commands:
  serve       Bridge an OpenAPI document into a running MCP server
  version     Show version information
  help        Show this help message

Examples:
  oas2mcp serve --openapi-spec petstore.yaml
  oas2mcp serve --openapi-spec petstore.yaml --transport http --port 8080
  cat petstore.yaml | oas2mcp serve --spec-from-stdin
  oas2mcp serve --openapi-spec https://example.com/api/openapi.yaml --tools dynamic

Run 'oas2mcp serve --help' for the full list of serve flags.`)
}
