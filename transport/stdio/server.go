// Package stdio runs the MCP bridge over the stdio transport, the
// single-client mode a local MCP client (e.g. an IDE or desktop app)
// launches as a subprocess.
package stdio

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oas2mcp/oas2mcp/executor"
	"github.com/oas2mcp/oas2mcp/oaserr"
	"github.com/oas2mcp/oas2mcp/promptstore"
	"github.com/oas2mcp/oas2mcp/resourcestore"
	"github.com/oas2mcp/oas2mcp/toolsynth"
)

const serverInstructions = `oas2mcp bridges a single OpenAPI document into MCP tools, one per operation (or three meta-tools in dynamic mode: list-api-endpoints, get-api-endpoint-schema, invoke-api-endpoint).

Configuration: all defaults are configurable via OAS2MCP_* environment variables; see the serve command's help for the full list.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or ctx is cancelled.
func Run(ctx context.Context, reg *toolsynth.Registry, exec *executor.Executor, prompts *promptstore.Store, resources *resourcestore.Store, serverName, serverVersion string) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: serverName, Version: serverVersion},
		&mcp.ServerOptions{Instructions: serverInstructions},
	)
	registerAllTools(server, reg, exec)
	registerPrompts(server, prompts)
	registerResources(server, resources)
	return server.Run(ctx, &mcp.StdioTransport{})
}

// toSchema converts a synthesised tool's map-shaped JSON schema into the
// SDK's typed schema representation, round-tripping through JSON since
// toolsynth builds schemas as plain maps so they can be composed without
// a dependency on the SDK's schema package.
func toSchema(raw map[string]any) *jsonschema.Schema {
	if raw == nil {
		return &jsonschema.Schema{Type: "object"}
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return &jsonschema.Schema{Type: "object"}
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(encoded, &schema); err != nil {
		return &jsonschema.Schema{Type: "object"}
	}
	return &schema
}

func registerAllTools(server *mcp.Server, reg *toolsynth.Registry, exec *executor.Executor) {
	for _, tool := range reg.Tools {
		tool := tool
		mcp.AddTool(server, &mcp.Tool{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: toSchema(tool.InputSchema),
		}, func(ctx context.Context, _ *mcp.CallToolRequest, input map[string]any) (*mcp.CallToolResult, any, error) {
			result, err := exec.Invoke(ctx, tool, input)
			if err != nil {
				return errResult(err), nil, nil
			}
			return successResult(result.Body), result.Body, nil
		})
	}
	for _, custom := range reg.Custom {
		custom := custom
		mcp.AddTool(server, &mcp.Tool{
			Name:        custom.Name,
			Description: custom.Description,
			InputSchema: toSchema(custom.InputSchema),
		}, func(ctx context.Context, _ *mcp.CallToolRequest, input map[string]any) (*mcp.CallToolResult, any, error) {
			output, err := custom.Handler(ctx, input)
			if err != nil {
				return errResult(err), nil, nil
			}
			return successResult(output), output, nil
		})
	}
}

func registerPrompts(server *mcp.Server, prompts *promptstore.Store) {
	if prompts == nil {
		return
	}
	for _, p := range prompts.List() {
		p := p
		var args []*mcp.PromptArgument
		for _, a := range p.Arguments {
			args = append(args, &mcp.PromptArgument{Name: a.Name, Description: a.Description, Required: a.Required})
		}
		server.AddPrompt(&mcp.Prompt{
			Name:        p.Name,
			Description: p.Description,
			Arguments:   args,
		}, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
			text, err := prompts.Get(p.Name, req.Params.Arguments)
			if err != nil {
				return nil, err
			}
			return &mcp.GetPromptResult{
				Messages: []*mcp.PromptMessage{{
					Role:    "user",
					Content: &mcp.TextContent{Text: text},
				}},
			}, nil
		})
	}
}

func registerResources(server *mcp.Server, resources *resourcestore.Store) {
	if resources == nil {
		return
	}
	for _, r := range resources.List() {
		r := r
		server.AddResource(&mcp.Resource{
			URI:         r.URI,
			Name:        r.Name,
			Description: r.Description,
			MIMEType:    r.MIMEType,
		}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
			res, err := resources.Read(r.URI)
			if err != nil {
				return nil, err
			}
			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{{URI: res.URI, MIMEType: res.MIMEType, Text: res.Content}},
			}, nil
		})
	}
}

func successResult(body any) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: toText(body)}}}
}

func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: oaserr.Sanitize(err)}},
	}
}

func toText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(encoded)
}
