package executor

import (
	"context"
	"sort"
	"strings"

	"github.com/oas2mcp/oas2mcp/oaserr"
	"github.com/oas2mcp/oas2mcp/openapi"
	"github.com/oas2mcp/oas2mcp/toolid"
	"github.com/oas2mcp/oas2mcp/toolsynth"
)

// Endpoint is one (originalPath, httpMethod, summary) triple as returned
// by the list-api-endpoints meta-tool.
type Endpoint struct {
	OriginalPath string `json:"originalPath"`
	HTTPMethod   string `json:"httpMethod"`
	Summary      string `json:"summary"`
}

// ListAPIEndpoints implements the dynamic-mode list-api-endpoints
// meta-tool: every operation in doc, sorted by path then method.
func ListAPIEndpoints(doc *openapi.Document) []Endpoint {
	var out []Endpoint
	for _, path := range sortedPathsOf(doc) {
		item := doc.Paths[path]
		for _, entry := range item.Operations() {
			out = append(out, Endpoint{
				OriginalPath: path,
				HTTPMethod:   strings.ToUpper(entry.Method),
				Summary:      entry.Op.Summary,
			})
		}
	}
	return out
}

// GetAPIEndpointSchema implements get-api-endpoint-schema({endpoint}): the
// same inputSchema that would have been synthesised for that operation if
// the registry had run in "all" mode.
func GetAPIEndpointSchema(doc *openapi.Document, endpoint string) (map[string]any, error) {
	method, path, item, op, err := resolveEndpoint(doc, endpoint, "")
	if err != nil {
		return nil, err
	}
	tool, err := toolsynth.SynthesizeOne(path, method, item, op)
	if err != nil {
		return nil, err
	}
	return tool.InputSchema, nil
}

// InvokeAPIEndpoint implements invoke-api-endpoint({endpoint, method?,
// params}): resolves the operation named by endpoint (optionally
// disambiguated by method when a path supports more than one), binds
// params against its synthesised schema, and executes through e.
func (e *Executor) InvokeAPIEndpoint(ctx context.Context, doc *openapi.Document, endpoint, method string, params map[string]any) (*Result, error) {
	resolvedMethod, path, item, op, err := resolveEndpoint(doc, endpoint, method)
	if err != nil {
		return nil, err
	}
	tool, err := toolsynth.SynthesizeOne(path, resolvedMethod, item, op)
	if err != nil {
		return nil, err
	}
	return e.Invoke(ctx, tool, params)
}

// resolveEndpoint accepts either a tool id ("METHOD::path") as produced by
// toolid.Encode, or a bare originalPath disambiguated by the method
// argument when the path item declares more than one operation.
func resolveEndpoint(doc *openapi.Document, endpoint, method string) (resolvedMethod, path string, item *openapi.PathItem, op *openapi.Operation, err error) {
	if m, p, decodeErr := toolid.Decode(endpoint); decodeErr == nil {
		resolvedMethod, path = m, p
	} else {
		resolvedMethod, path = strings.ToUpper(method), endpoint
	}

	item, ok := doc.Paths[path]
	if !ok {
		return "", "", nil, nil, &oaserr.SpecShapeError{Path: path, Message: "no such endpoint"}
	}

	if resolvedMethod == "" {
		ops := item.Operations()
		if len(ops) != 1 {
			return "", "", nil, nil, &oaserr.SpecShapeError{Path: path, Message: "endpoint has more than one method, method must be specified"}
		}
		resolvedMethod = strings.ToUpper(ops[0].Method)
		op = ops[0].Op
		return resolvedMethod, path, item, op, nil
	}

	for _, entry := range item.Operations() {
		if strings.EqualFold(entry.Method, resolvedMethod) {
			return strings.ToUpper(entry.Method), path, item, entry.Op, nil
		}
	}
	return "", "", nil, nil, &oaserr.SpecShapeError{Path: path, Message: "no such method on endpoint: " + resolvedMethod}
}

func sortedPathsOf(doc *openapi.Document) []string {
	keys := make([]string, 0, len(doc.Paths))
	for k := range doc.Paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
