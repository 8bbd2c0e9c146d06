// Package server holds the bridge's environment-driven configuration:
// transport defaults, the streamable HTTP listener, and the SSRF/session
// knobs every serve invocation needs regardless of which CLI flags the
// caller passed. CLI flags parsed in cmd/oas2mcp override whatever these
// env vars resolved to.
package server

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configurable server defaults, loaded once at startup
// from OAS2MCP_* environment variables via Load.
type Config struct {
	// Transport selects the default transport when --transport is not
	// given on the command line: "stdio" or "http".
	Transport string

	// HTTP listener defaults for the streamable HTTP transport.
	Host string
	Port int
	Path string

	// AllowedOrigins is the streamable HTTP transport's Origin allow-list.
	// Empty disables the check (no browser client expected).
	AllowedOrigins []string

	// SessionIdleTTL bounds how long an idle streamable-HTTP session is
	// kept before the sweeper reclaims it.
	SessionIdleTTL time.Duration

	// AllowPrivateIPs disables the SSRF guard on the tool-invocation HTTP
	// client. Fetching the spec from a URL always uses the guarded client.
	// Intended only for local development against a loopback API.
	AllowPrivateIPs bool

	// RequestTimeout bounds a single outbound tool-invocation HTTP call.
	RequestTimeout time.Duration

	// LogFormat selects the slog handler: "text" or "json".
	LogFormat string
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string
}

// Load reads configuration from OAS2MCP_* environment variables. Invalid
// values log a warning and fall back to the hardcoded default.
func Load() *Config {
	return &Config{
		Transport:       envChoice("OAS2MCP_TRANSPORT", "stdio", "stdio", "http"),
		Host:            envString("OAS2MCP_HOST", "127.0.0.1"),
		Port:            envInt("OAS2MCP_PORT", 8080),
		Path:            envString("OAS2MCP_PATH", "/mcp"),
		AllowedOrigins:  envList("OAS2MCP_ALLOWED_ORIGINS"),
		SessionIdleTTL:  envDuration("OAS2MCP_SESSION_IDLE_TTL", 15*time.Minute),
		AllowPrivateIPs: envBool("OAS2MCP_ALLOW_PRIVATE_IPS", false),
		RequestTimeout:  envDuration("OAS2MCP_REQUEST_TIMEOUT", 30*time.Second),
		LogFormat:       envChoice("OAS2MCP_LOG_FORMAT", "text", "text", "json"),
		LogLevel:        envChoice("OAS2MCP_LOG_LEVEL", "info", "debug", "info", "warn", "error"),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

func envChoice(key, fallback string, valid ...string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	for _, ok := range valid {
		if v == ok {
			return v
		}
	}
	slog.Warn("invalid choice env var, using default", "key", key, "value", v, "default", fallback)
	return fallback
}

// envList splits a comma-separated env var into a trimmed, non-empty
// string slice. Returns nil (not an empty slice) when unset, so callers
// can tell "not configured" apart from "configured empty".
func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
