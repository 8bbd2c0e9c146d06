package executor

import (
	"errors"
	"testing"

	"github.com/oas2mcp/oas2mcp/oaserr"
	"github.com/oas2mcp/oas2mcp/toolsynth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func widgetTool() *toolsynth.Tool {
	return &toolsynth.Tool{
		ID:           "GET::widgets__---id",
		Name:         "get-widget",
		HTTPMethod:   "GET",
		OriginalPath: "/widgets/{id}",
		ParametersMeta: []toolsynth.ParamMeta{
			{Name: "id", In: toolsynth.LocationPath, Required: true},
			{Name: "verbose", In: toolsynth.LocationQuery, Required: false},
			{Name: "X-Trace-Id", In: toolsynth.LocationHeader, Required: false},
		},
	}
}

func TestBindSubstitutesPathParam(t *testing.T) {
	bound, err := Bind(widgetTool(), map[string]any{"id": "abc-123"})
	require.NoError(t, err)
	assert.Equal(t, "/widgets/abc-123", bound.Path)
}

func TestBindMissingRequiredPathParam(t *testing.T) {
	_, err := Bind(widgetTool(), map[string]any{})
	var mpErr *oaserr.MissingParameterError
	assert.True(t, errors.As(err, &mpErr))
}

func TestBindQueryParamGoesToQueryString(t *testing.T) {
	bound, err := Bind(widgetTool(), map[string]any{"id": "1", "verbose": true})
	require.NoError(t, err)
	assert.Equal(t, "true", bound.Query.Get("verbose"))
}

func TestBindHeaderParamRejectsCRLF(t *testing.T) {
	_, err := Bind(widgetTool(), map[string]any{"id": "1", "X-Trace-Id": "a\r\nEvil: true"})
	var hiErr *oaserr.HeaderInjectionError
	assert.True(t, errors.As(err, &hiErr))
}

func TestBindUndeclaredArgsOnGETGoToQuery(t *testing.T) {
	bound, err := Bind(widgetTool(), map[string]any{"id": "1", "extra": "value"})
	require.NoError(t, err)
	assert.Equal(t, "value", bound.Query.Get("extra"))
	assert.Empty(t, bound.Body)
}

func TestBindUndeclaredArgsOnPOSTGoToBody(t *testing.T) {
	tool := widgetTool()
	tool.HTTPMethod = "POST"
	bound, err := Bind(tool, map[string]any{"id": "1", "note": "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", bound.Body["note"])
}

func TestBindDeclaredBodyParamAccumulates(t *testing.T) {
	tool := widgetTool()
	tool.HTTPMethod = "POST"
	tool.ParametersMeta = append(tool.ParametersMeta, toolsynth.ParamMeta{Name: "name", WireName: "name", In: toolsynth.LocationBody})
	bound, err := Bind(tool, map[string]any{"id": "1", "name": "widget-1"})
	require.NoError(t, err)
	assert.Equal(t, "widget-1", bound.Body["name"])
}

func TestBindCollidedBodyParamWritesOriginalWireName(t *testing.T) {
	tool := widgetTool()
	tool.HTTPMethod = "POST"
	// "id" collides with the path parameter of the same name, so the
	// MCP-facing argument is disambiguated to "body_id" while the wire
	// body must still carry the original OpenAPI property name "id".
	tool.ParametersMeta = append(tool.ParametersMeta, toolsynth.ParamMeta{Name: "body_id", WireName: "id", In: toolsynth.LocationBody})
	bound, err := Bind(tool, map[string]any{"id": "1", "body_id": "widget-1"})
	require.NoError(t, err)
	assert.Equal(t, "widget-1", bound.Body["id"])
	assert.NotContains(t, bound.Body, "body_id")
}

func TestBindCookieParamAccumulatesAsKVPair(t *testing.T) {
	tool := widgetTool()
	tool.ParametersMeta = append(tool.ParametersMeta, toolsynth.ParamMeta{Name: "session", In: toolsynth.LocationCookie})
	bound, err := Bind(tool, map[string]any{"id": "1", "session": "abc"})
	require.NoError(t, err)
	require.Len(t, bound.Cookies, 1)
	assert.Equal(t, "session=abc", bound.Cookies[0])
}
