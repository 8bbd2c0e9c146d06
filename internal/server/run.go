package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/oas2mcp/oas2mcp/executor"
	"github.com/oas2mcp/oas2mcp/mcpdispatch"
	"github.com/oas2mcp/oas2mcp/openapi"
	"github.com/oas2mcp/oas2mcp/promptstore"
	"github.com/oas2mcp/oas2mcp/resourcestore"
	"github.com/oas2mcp/oas2mcp/toolsynth"
	"github.com/oas2mcp/oas2mcp/transport/httpstream"
	"github.com/oas2mcp/oas2mcp/transport/stdio"
)

// SpecSource picks exactly one of the three ways a document can be
// supplied, mirroring spec.md §6.3's --openapi-spec/--spec-from-stdin/
// --spec-inline trio.
type SpecSource struct {
	Path       string // --openapi-spec <path|url>
	FromStdin  bool   // --spec-from-stdin
	InlineJSON []byte // --spec-inline
}

// ServeOptions is the fully-resolved configuration for one serve
// invocation: Config's env-driven defaults overridden by whatever the CLI
// flags in cmd/oas2mcp actually set.
type ServeOptions struct {
	Config *Config

	Spec          SpecSource
	APIBaseURL    string
	Headers       map[string]string
	ToolsMode     toolsynth.FilterMode
	ToolNames     []string
	Tags          []string
	Resources     []string
	Operations    []string
	DisableAbbrev bool

	ServerName    string
	ServerVersion string
}

// NewLogger builds the process-wide structured logger from cfg's
// LogFormat/LogLevel, the same text-or-json handler choice the teacher's
// CLI would make if it exposed one.
func NewLogger(cfg *Config) *slog.Logger {
	level := parseLevel(cfg.LogLevel)
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Run loads opts.Spec, synthesizes its tool registry, and serves it over
// the configured transport until ctx is cancelled (http) or the client
// disconnects (stdio).
func Run(ctx context.Context, opts ServeOptions, logger *slog.Logger) error {
	doc, err := loadSpec(opts.Spec)
	if err != nil {
		return fmt.Errorf("loading spec: %w", err)
	}
	if opts.APIBaseURL != "" {
		doc.Servers = []*openapi.Server{{URL: opts.APIBaseURL}}
	}

	reg, err := toolsynth.Synthesize(doc, toolsynth.Options{
		Mode:                opts.ToolsMode,
		IncludeTools:        opts.ToolNames,
		IncludeOperations:   opts.Operations,
		IncludeResources:    opts.Resources,
		IncludeTags:         opts.Tags,
		DisableAbbreviation: opts.DisableAbbrev,
	})
	if err != nil {
		return fmt.Errorf("synthesizing tools: %w", err)
	}
	logger.Info("synthesized tool registry", "tools", len(reg.Tools), "mode", string(opts.ToolsMode))

	var auth executor.AuthProvider
	if len(opts.Headers) > 0 {
		auth = executor.StaticHeaders(opts.Headers)
	}
	exec := executor.NewExecutor(doc, auth, opts.Config.AllowPrivateIPs)
	exec.Client.Timeout = opts.Config.RequestTimeout

	prompts := promptstore.New()
	resources := resourcestore.New()

	switch opts.Config.Transport {
	case "http":
		return runHTTP(ctx, opts, reg, exec, prompts, resources, logger)
	default:
		return stdio.Run(ctx, reg, exec, prompts, resources, opts.ServerName, opts.ServerVersion)
	}
}

func runHTTP(ctx context.Context, opts ServeOptions, reg *toolsynth.Registry, exec *executor.Executor, prompts *promptstore.Store, resources *resourcestore.Store, logger *slog.Logger) error {
	dispatcher := mcpdispatch.New(reg, exec, prompts, resources, opts.ServerName, opts.ServerVersion)
	handler := httpstream.New(dispatcher, httpstream.Options{
		AllowedOrigins: opts.Config.AllowedOrigins,
		IdleTTL:        opts.Config.SessionIdleTTL,
		BasePath:       opts.Config.Path,
	})
	defer handler.Close()

	addr := fmt.Sprintf("%s:%d", opts.Config.Host, opts.Config.Port)
	srv := &http.Server{Addr: addr, Handler: handler}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving streamable HTTP", "addr", addr, "path", opts.Config.Path)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

func loadSpec(src SpecSource) (*openapi.Document, error) {
	switch {
	case strings.HasPrefix(src.Path, "http://") || strings.HasPrefix(src.Path, "https://"):
		return openapi.Load(openapi.WithURL(src.Path), openapi.WithResolveHTTPRefs(true))
	case src.Path != "":
		return openapi.Load(openapi.WithFilePath(src.Path))
	case src.FromStdin:
		return openapi.Load(openapi.WithReader(io.Reader(os.Stdin)))
	case len(src.InlineJSON) > 0:
		return openapi.Load(openapi.WithBytes(src.InlineJSON))
	default:
		return nil, fmt.Errorf("no spec source given: exactly one of --openapi-spec, --spec-from-stdin, --spec-inline is required")
	}
}
