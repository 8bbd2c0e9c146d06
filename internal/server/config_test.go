package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearOAS2MCPEnv clears all OAS2MCP_* env vars to isolate tests from the
// ambient environment.
func clearOAS2MCPEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OAS2MCP_TRANSPORT", "OAS2MCP_HOST", "OAS2MCP_PORT", "OAS2MCP_PATH",
		"OAS2MCP_ALLOWED_ORIGINS", "OAS2MCP_SESSION_IDLE_TTL",
		"OAS2MCP_ALLOW_PRIVATE_IPS", "OAS2MCP_REQUEST_TIMEOUT",
		"OAS2MCP_LOG_FORMAT", "OAS2MCP_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearOAS2MCPEnv(t)

	c := Load()

	assert.Equal(t, "stdio", c.Transport)
	assert.Equal(t, "127.0.0.1", c.Host)
	assert.Equal(t, 8080, c.Port)
	assert.Equal(t, "/mcp", c.Path)
	assert.Nil(t, c.AllowedOrigins)
	assert.Equal(t, 15*time.Minute, c.SessionIdleTTL)
	assert.False(t, c.AllowPrivateIPs)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, "text", c.LogFormat)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearOAS2MCPEnv(t)
	t.Setenv("OAS2MCP_TRANSPORT", "http")
	t.Setenv("OAS2MCP_HOST", "0.0.0.0")
	t.Setenv("OAS2MCP_PORT", "9090")
	t.Setenv("OAS2MCP_PATH", "/bridge")
	t.Setenv("OAS2MCP_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("OAS2MCP_SESSION_IDLE_TTL", "5m")
	t.Setenv("OAS2MCP_ALLOW_PRIVATE_IPS", "true")
	t.Setenv("OAS2MCP_REQUEST_TIMEOUT", "10s")
	t.Setenv("OAS2MCP_LOG_FORMAT", "json")
	t.Setenv("OAS2MCP_LOG_LEVEL", "debug")

	c := Load()

	assert.Equal(t, "http", c.Transport)
	assert.Equal(t, "0.0.0.0", c.Host)
	assert.Equal(t, 9090, c.Port)
	assert.Equal(t, "/bridge", c.Path)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.AllowedOrigins)
	assert.Equal(t, 5*time.Minute, c.SessionIdleTTL)
	assert.True(t, c.AllowPrivateIPs)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, "json", c.LogFormat)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoad_InvalidValues_UseDefaults(t *testing.T) {
	clearOAS2MCPEnv(t)
	t.Setenv("OAS2MCP_TRANSPORT", "carrier-pigeon")
	t.Setenv("OAS2MCP_PORT", "not-a-number")
	t.Setenv("OAS2MCP_SESSION_IDLE_TTL", "eventually")
	t.Setenv("OAS2MCP_ALLOW_PRIVATE_IPS", "maybe")
	t.Setenv("OAS2MCP_LOG_FORMAT", "xml")
	t.Setenv("OAS2MCP_LOG_LEVEL", "screaming")

	c := Load()

	assert.Equal(t, "stdio", c.Transport, "invalid transport should fall back to default")
	assert.Equal(t, 8080, c.Port)
	assert.Equal(t, 15*time.Minute, c.SessionIdleTTL)
	assert.False(t, c.AllowPrivateIPs)
	assert.Equal(t, "text", c.LogFormat)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoad_PartialOverrides(t *testing.T) {
	clearOAS2MCPEnv(t)
	t.Setenv("OAS2MCP_PORT", "1234")
	t.Setenv("OAS2MCP_LOG_LEVEL", "warn")

	c := Load()

	assert.Equal(t, 1234, c.Port)
	assert.Equal(t, "warn", c.LogLevel)
	// Unchanged defaults:
	assert.Equal(t, "stdio", c.Transport)
	assert.Equal(t, "127.0.0.1", c.Host)
	assert.Equal(t, "/mcp", c.Path)
}

func TestEnvList_EmptyIsNilNotEmptySlice(t *testing.T) {
	clearOAS2MCPEnv(t)
	assert.Nil(t, envList("OAS2MCP_ALLOWED_ORIGINS"))
}

func TestEnvList_TrimsAndDropsBlanks(t *testing.T) {
	t.Setenv("OAS2MCP_ALLOWED_ORIGINS", " https://a.example ,, https://b.example")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, envList("OAS2MCP_ALLOWED_ORIGINS"))
}
