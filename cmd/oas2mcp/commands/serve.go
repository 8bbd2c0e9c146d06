package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/oas2mcp/oas2mcp/internal/cliutil"
	"github.com/oas2mcp/oas2mcp/internal/options"
	"github.com/oas2mcp/oas2mcp/internal/server"
	"github.com/oas2mcp/oas2mcp/toolsynth"
)

// stringSliceFlag collects repeated occurrences of a flag into a slice
// (--tool, --tag, --resource, --operation each take multiple values this
// way).
type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	if s == nil {
		return ""
	}
	return strings.Join(*s, ",")
}

func (s *stringSliceFlag) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// headerMapFlag collects repeated --headers "Name=Value" occurrences into
// a map.
type headerMapFlag map[string]string

func (h headerMapFlag) String() string {
	if h == nil {
		return ""
	}
	pairs := make([]string, 0, len(h))
	for k, v := range h {
		pairs = append(pairs, k+"="+v)
	}
	return strings.Join(pairs, ",")
}

func (h *headerMapFlag) Set(value string) error {
	name, val, ok := strings.Cut(value, "=")
	if !ok {
		return fmt.Errorf("invalid header format: %q (expected Name=Value)", value)
	}
	name, val = strings.TrimSpace(name), strings.TrimSpace(val)
	if name == "" {
		return fmt.Errorf("header name must not be empty: %q", value)
	}
	if *h == nil {
		*h = headerMapFlag{}
	}
	(*h)[name] = val
	return nil
}

// ServeFlags holds every flag spec.md §6.3 lists for the serve command.
type ServeFlags struct {
	Transport     string
	Port          int
	Host          string
	Path          string
	APIBaseURL    string
	OpenAPISpec   string
	SpecFromStdin bool
	SpecInline    string
	Headers       headerMapFlag
	Tools         string
	Tool          stringSliceFlag
	Tag           stringSliceFlag
	Resource      stringSliceFlag
	Operation     stringSliceFlag

	DisableAbbreviation bool
}

// SetupServeFlags creates and configures a FlagSet for the serve command.
func SetupServeFlags() (*flag.FlagSet, *ServeFlags) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	flags := &ServeFlags{}

	fs.StringVar(&flags.Transport, "transport", "", "transport to serve over: stdio or http (default from OAS2MCP_TRANSPORT, else stdio)")
	fs.IntVar(&flags.Port, "port", 0, "streamable HTTP listen port (default from OAS2MCP_PORT, else 8080)")
	fs.StringVar(&flags.Host, "host", "", "streamable HTTP listen host (default from OAS2MCP_HOST, else 127.0.0.1)")
	fs.StringVar(&flags.Path, "path", "", "streamable HTTP base path (default from OAS2MCP_PATH, else /mcp)")
	fs.StringVar(&flags.APIBaseURL, "api-base-url", "", "override the target API's base URL instead of using the spec's first server entry")
	fs.StringVar(&flags.OpenAPISpec, "openapi-spec", "", "path or URL to the OpenAPI document to bridge")
	fs.BoolVar(&flags.SpecFromStdin, "spec-from-stdin", false, "read the OpenAPI document from stdin")
	fs.StringVar(&flags.SpecInline, "spec-inline", "", "the OpenAPI document itself, given inline")
	fs.Var(&flags.Headers, "headers", "static header to send with every upstream request, Name=Value (repeatable)")
	fs.StringVar(&flags.Tools, "tools", "all", "tool synthesis mode: all, dynamic, or explicit")
	fs.Var(&flags.Tool, "tool", "tool name or id to include in explicit mode (repeatable)")
	fs.Var(&flags.Tag, "tag", "first-tag filter to include in all mode (repeatable)")
	fs.Var(&flags.Resource, "resource", "originalPath prefix filter to include in all mode (repeatable)")
	fs.Var(&flags.Operation, "operation", "operationId filter to include in all mode (repeatable)")
	fs.BoolVar(&flags.DisableAbbreviation, "disable-abbreviation", false, "keep full operation-derived tool names instead of abbreviating them")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oas2mcp serve [flags]\n\n")
		cliutil.Writef(fs.Output(), "Bridge an OpenAPI document into an MCP server over stdio or streamable HTTP.\n\n")
		cliutil.Writef(fs.Output(), "Exactly one of --openapi-spec, --spec-from-stdin, --spec-inline must be given.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oas2mcp serve --openapi-spec petstore.yaml\n")
		cliutil.Writef(fs.Output(), "  oas2mcp serve --openapi-spec petstore.yaml --transport http --port 8080\n")
		cliutil.Writef(fs.Output(), "  cat petstore.yaml | oas2mcp serve --spec-from-stdin\n")
		cliutil.Writef(fs.Output(), "  oas2mcp serve --openapi-spec petstore.yaml --headers Authorization=\"Bearer token\"\n")
		cliutil.Writef(fs.Output(), "  oas2mcp serve --openapi-spec petstore.yaml --tools dynamic\n")
	}

	return fs, flags
}

// HandleServe executes the serve command: parses flags, merges them over
// the env-loaded Config, and blocks running the bridge until ctx is
// cancelled or the client disconnects.
func HandleServe(ctx context.Context, args []string, serverName, serverVersion string) error {
	fs, flags := SetupServeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	mode, err := parseToolsMode(flags.Tools)
	if err != nil {
		return err
	}

	if err := options.ValidateSingleInputSource(
		"exactly one of --openapi-spec, --spec-from-stdin, --spec-inline is required",
		"only one of --openapi-spec, --spec-from-stdin, --spec-inline may be given",
		flags.OpenAPISpec != "", flags.SpecFromStdin, flags.SpecInline != "",
	); err != nil {
		return err
	}

	cfg := server.Load()
	if flags.Transport != "" {
		cfg.Transport = flags.Transport
	}
	if flags.Port != 0 {
		cfg.Port = flags.Port
	}
	if flags.Host != "" {
		cfg.Host = flags.Host
	}
	if flags.Path != "" {
		cfg.Path = flags.Path
	}

	opts := server.ServeOptions{
		Config: cfg,
		Spec: server.SpecSource{
			Path:       flags.OpenAPISpec,
			FromStdin:  flags.SpecFromStdin,
			InlineJSON: []byte(flags.SpecInline),
		},
		APIBaseURL:    flags.APIBaseURL,
		Headers:       flags.Headers,
		ToolsMode:     mode,
		ToolNames:     flags.Tool,
		Tags:          flags.Tag,
		Resources:     flags.Resource,
		Operations:    flags.Operation,
		DisableAbbrev: flags.DisableAbbreviation,
		ServerName:    serverName,
		ServerVersion: serverVersion,
	}

	logger := server.NewLogger(cfg)
	return server.Run(ctx, opts, logger)
}

func parseToolsMode(value string) (toolsynth.FilterMode, error) {
	switch toolsynth.FilterMode(value) {
	case toolsynth.ModeAll, toolsynth.ModeDynamic, toolsynth.ModeExplicit:
		return toolsynth.FilterMode(value), nil
	default:
		return "", fmt.Errorf("invalid --tools value %q: must be all, dynamic, or explicit", value)
	}
}
