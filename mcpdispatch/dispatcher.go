package mcpdispatch

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/oas2mcp/oas2mcp/executor"
	"github.com/oas2mcp/oas2mcp/oaserr"
	"github.com/oas2mcp/oas2mcp/promptstore"
	"github.com/oas2mcp/oas2mcp/resourcestore"
	"github.com/oas2mcp/oas2mcp/toolsynth"
)

const protocolVersion = "2024-11-05"

// Limits configures tools/list pagination, mirroring the teacher's
// cfg.WalkLimit/cfg.MaxLimit pair.
type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
}

var defaultLimits = Limits{DefaultPageSize: 100, MaxPageSize: 1000}

// Dispatcher answers the seven MCP JSON-RPC methods against one tool
// registry and one executor. ServerName/ServerVersion populate the
// initialize response's serverInfo.
type Dispatcher struct {
	Registry      *toolsynth.Registry
	Executor      *executor.Executor
	Prompts       *promptstore.Store
	Resources     *resourcestore.Store
	ServerName    string
	ServerVersion string
	Limits        Limits
}

func New(reg *toolsynth.Registry, exec *executor.Executor, prompts *promptstore.Store, resources *resourcestore.Store, serverName, serverVersion string) *Dispatcher {
	return &Dispatcher{
		Registry:      reg,
		Executor:      exec,
		Prompts:       prompts,
		Resources:     resources,
		ServerName:    serverName,
		ServerVersion: serverVersion,
		Limits:        defaultLimits,
	}
}

type initializeParams struct {
	ProtocolVersion string          `json:"protocolVersion"`
	Capabilities    json.RawMessage `json:"capabilities"`
	ClientInfo      json.RawMessage `json:"clientInfo"`
}

type capabilities struct {
	Tools     map[string]any `json:"tools"`
	Prompts   map[string]any `json:"prompts,omitempty"`
	Resources map[string]any `json:"resources,omitempty"`
}

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type initializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	Capabilities    capabilities `json:"capabilities"`
	ServerInfo      serverInfo   `json:"serverInfo"`
}

func (d *Dispatcher) handleInitialize(req *Request) *Response {
	var params initializeParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, codeInvalidParams, "malformed initialize params: "+err.Error())
		}
	}
	caps := capabilities{Tools: map[string]any{}}
	if d.Prompts != nil {
		caps.Prompts = map[string]any{}
	}
	if d.Resources != nil {
		caps.Resources = map[string]any{}
	}
	return resultResponse(req.ID, initializeResult{
		ProtocolVersion: protocolVersion,
		Capabilities:    caps,
		ServerInfo:      serverInfo{Name: d.ServerName, Version: d.ServerVersion},
	})
}

// ToolDescriptor is the wire shape of one tools/list entry.
type ToolDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	InputSchema map[string]any `json:"inputSchema"`
}

type toolsListParams struct {
	Cursor string `json:"cursor,omitempty"`
}

type toolsListResult struct {
	Tools      []ToolDescriptor `json:"tools"`
	NextCursor string           `json:"nextCursor,omitempty"`
}

// allToolDescriptors merges OpenAPI-synthesised tools with custom tools,
// sorted by name so pagination cursors are stable across calls.
func (d *Dispatcher) allToolDescriptors() []ToolDescriptor {
	var out []ToolDescriptor
	if d.Registry != nil {
		for _, t := range d.Registry.Tools {
			out = append(out, ToolDescriptor{Name: t.Name, Description: t.Description, InputSchema: t.InputSchema})
		}
		for _, c := range d.Registry.Custom {
			out = append(out, ToolDescriptor{Name: c.Name, Description: c.Description, InputSchema: c.InputSchema})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (d *Dispatcher) handleToolsList(req *Request) *Response {
	var params toolsListParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, codeInvalidParams, "malformed tools/list params: "+err.Error())
		}
	}
	all := d.allToolDescriptors()
	offset := decodeCursor(params.Cursor)
	page := paginate(all, offset, d.Limits.DefaultPageSize, d.Limits.MaxPageSize)

	result := toolsListResult{Tools: page}
	if next := offset + len(page); next < len(all) {
		result.NextCursor = encodeCursor(next)
	}
	return resultResponse(req.ID, result)
}

type toolsCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// CallToolResult is the MCP content envelope every tools/call reply uses.
type CallToolResult struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

// ContentBlock is a single MCP content item; this bridge only ever emits
// type "text" per spec.md §4.5.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func textResult(text string, isError bool) *CallToolResult {
	return &CallToolResult{Content: []ContentBlock{{Type: "text", Text: text}}, IsError: isError}
}

func (d *Dispatcher) handleToolsCall(ctx context.Context, req *Request) *Response {
	var params toolsCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "malformed tools/call params: "+err.Error())
	}
	if params.Name == "" {
		return errorResponse(req.ID, codeInvalidParams, "tools/call requires a name")
	}

	tool, custom, ok := d.Registry.Lookup(params.Name)
	if !ok {
		return errorResponse(req.ID, codeMethodNotFound, (&oaserr.ToolNotFoundError{NameOrID: params.Name}).Error())
	}

	if custom != nil {
		result, err := custom.Handler(ctx, params.Arguments)
		if err != nil {
			return resultResponse(req.ID, textResult(sanitizeErrorText(err), true))
		}
		return resultResponse(req.ID, textResult(toText(result), false))
	}

	invokeResult, err := d.Executor.Invoke(ctx, tool, params.Arguments)
	if err != nil {
		return resultResponse(req.ID, textResult(sanitizeErrorText(err), true))
	}
	return resultResponse(req.ID, textResult(toText(invokeResult.Body), false))
}

func toText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(encoded)
}
