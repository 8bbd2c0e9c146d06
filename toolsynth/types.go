package toolsynth

import "github.com/oas2mcp/oas2mcp/openapi"

// ParamLocation identifies where a tool parameter is bound on the wire.
type ParamLocation string

const (
	LocationPath   ParamLocation = "path"
	LocationQuery  ParamLocation = "query"
	LocationHeader ParamLocation = "header"
	LocationCookie ParamLocation = "cookie"
	LocationBody   ParamLocation = "body"
)

// ParamMeta is the per-property record the executor uses to decide how to
// serialize an argument value onto the wire.
type ParamMeta struct {
	Name string // MCP-facing argument name; may carry a "body_" collision prefix

	// WireName is the property name actually sent on the wire. For path/
	// query/header/cookie parameters this is always equal to Name. For a
	// body property it is the OpenAPI schema's original property name
	// (e.g. "id"), even when Name was disambiguated to "body_id" because
	// it collided with a path/query/header/cookie parameter of the same
	// name — the prefix is an argument-naming alias only, never a rename
	// of the JSON field the upstream API expects.
	WireName string

	In       ParamLocation
	Required bool
	Style    string
	Explode  bool
	Schema   *openapi.Schema
}

// Tool is a single synthesised, invocable MCP tool bound to exactly one
// OpenAPI operation.
type Tool struct {
	ID             string
	Name           string
	Description    string
	InputSchema    map[string]any
	HTTPMethod     string
	OriginalPath   string
	ParametersMeta []ParamMeta
	Tags           []string
	ResourceName   string

	// RequestBodyContentType is the media type the executor should encode
	// the bound body properties as: "application/json",
	// "multipart/form-data" or "application/x-www-form-urlencoded" when the
	// request body declares one of them, otherwise one of its other
	// declared media types. Empty when the operation declares no request
	// body.
	RequestBodyContentType string

	operationID string // internal: drives --operation filtering in "all" mode
}

// CustomToolHandler executes a registered custom tool call and returns its
// result, or an error if the call failed.
type CustomToolHandler func(ctx any, args map[string]any) (any, error)

// CustomTool is a tool registered outside of OpenAPI synthesis: a fixed
// name/description/inputSchema with a direct handler function, never
// overwritten once registered.
type CustomTool struct {
	Name        string
	Description string
	InputSchema map[string]any
	Handler     CustomToolHandler
}

// Registry holds every tool a server instance exposes after synthesis and
// filtering: the OpenAPI-derived tools, any custom tools, and (in dynamic
// mode) the source document the three meta-tools operate against.
type Registry struct {
	Doc    *openapi.Document
	Mode   FilterMode
	Tools  []*Tool
	ByID   map[string]*Tool
	ByName map[string]*Tool
	Custom map[string]*CustomTool
}

func newRegistry(doc *openapi.Document, mode FilterMode) *Registry {
	return &Registry{
		Doc:    doc,
		Mode:   mode,
		ByID:   map[string]*Tool{},
		ByName: map[string]*Tool{},
		Custom: map[string]*CustomTool{},
	}
}

func (r *Registry) add(t *Tool) {
	r.Tools = append(r.Tools, t)
	r.ByID[t.ID] = t
	r.ByName[t.Name] = t
}

// RegisterCustomTool adds a custom tool to the registry. A name already
// registered (by synthesis or an earlier custom registration) is left
// untouched: custom tools are never overwritten.
func (r *Registry) RegisterCustomTool(t *CustomTool) bool {
	if _, exists := r.Custom[t.Name]; exists {
		return false
	}
	r.Custom[t.Name] = t
	return true
}

// Lookup finds a tool by id or name, case-insensitively, preferring
// OpenAPI-synthesised tools over custom tools on a collision.
func (r *Registry) Lookup(nameOrID string) (tool *Tool, custom *CustomTool, ok bool) {
	lower := asciiLower(nameOrID)
	for id, t := range r.ByID {
		if asciiLower(id) == lower {
			return t, nil, true
		}
	}
	for name, t := range r.ByName {
		if asciiLower(name) == lower {
			return t, nil, true
		}
	}
	for name, c := range r.Custom {
		if asciiLower(name) == lower {
			return nil, c, true
		}
	}
	return nil, nil, false
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
