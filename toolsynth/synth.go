package toolsynth

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oas2mcp/oas2mcp/abbrev"
	"github.com/oas2mcp/oas2mcp/oaserr"
	"github.com/oas2mcp/oas2mcp/openapi"
	"github.com/oas2mcp/oas2mcp/toolid"
)

// Options configures Synthesize: the filtering mode and the per-mode
// include lists from the CLI surface (spec.md §6.3's --tools/--tool/--tag/
// --resource/--operation flags).
type Options struct {
	Mode                FilterMode
	IncludeTools        []string // id or name: the whole list in explicit mode, an override in all mode
	IncludeOperations   []string // operationId, all mode
	IncludeResources    []string // originalPath prefix, all mode
	IncludeTags         []string // first tag, all mode
	DisableAbbreviation bool
}

// Synthesize builds one Tool per (path, method, operation) in doc, then
// applies opts.Mode's filtering. In dynamic mode the synthesised tools are
// discarded from the returned Registry; Registry.Doc still holds the
// document. No meta-tools are added to the Registry in that mode.
func Synthesize(doc *openapi.Document, opts Options) (*Registry, error) {
	if doc == nil {
		return nil, &oaserr.SpecShapeError{Message: "cannot synthesize tools from a nil document"}
	}
	reg := newRegistry(doc, opts.Mode)

	paths := sortedPathKeys(doc.Paths)
	usedNames := map[string]int{}

	for _, path := range paths {
		item := doc.Paths[path]
		for _, entry := range item.Operations() {
			tool, err := synthesizeOne(path, entry.Method, item, entry.Op, opts.DisableAbbreviation, usedNames)
			if err != nil {
				return nil, err
			}
			reg.add(tool)
		}
	}

	applyFilter(reg, opts)
	return reg, nil
}

// SynthesizeOne builds a single Tool for one (path, method, operation),
// outside of a full Synthesize pass and its name-collision bookkeeping.
// Used by the dynamic-mode meta-tools (executor.GetAPIEndpointSchema,
// executor.InvokeAPIEndpoint) to derive the same inputSchema/binding shape
// an "all"-mode registry would have synthesised for that operation.
func SynthesizeOne(path, method string, item *openapi.PathItem, op *openapi.Operation) (*Tool, error) {
	return synthesizeOne(path, method, item, op, false, map[string]int{})
}

func synthesizeOne(path, method string, item *openapi.PathItem, op *openapi.Operation, disableAbbrev bool, usedNames map[string]int) (*Tool, error) {
	id, err := toolid.Encode(method, path)
	if err != nil {
		return nil, err
	}

	params := mergeParameters(item.Parameters, op.Parameters)
	properties := map[string]any{}
	var required []string
	var meta []ParamMeta

	for _, p := range params {
		if p.Name == "" {
			continue
		}
		schema := toJSONSchema(p.Schema)
		schema["x-parameter-location"] = ParamLocation(p.In)
		properties[p.Name] = schema
		if p.Required {
			required = append(required, p.Name)
		}
		meta = append(meta, ParamMeta{
			Name:     p.Name,
			WireName: p.Name,
			In:       ParamLocation(p.In),
			Required: p.Required,
			Style:    p.Style,
			Explode:  explodeOf(p),
			Schema:   p.Schema,
		})
	}

	var bodyContentType string
	if op.RequestBody != nil {
		bodySchema, mediaType := bodySchemaAndTypeOf(op.RequestBody)
		bodyContentType = mediaType
		if bodySchema != nil {
			if isObjectSchema(bodySchema) {
				merged := bodySchema.MergeAllOf()
				for name, prop := range merged.Properties {
					propName := name
					if _, collide := properties[propName]; collide {
						propName = "body_" + name
					}
					js := toJSONSchema(prop)
					js["x-parameter-location"] = LocationBody
					properties[propName] = js
					if containsString(merged.Required, name) {
						required = append(required, propName)
					}
					meta = append(meta, ParamMeta{Name: propName, WireName: name, In: LocationBody, Required: containsString(merged.Required, name), Schema: prop})
				}
			} else {
				js := toJSONSchema(bodySchema)
				js["x-parameter-location"] = LocationBody
				properties["body"] = js
				if op.RequestBody.Required {
					required = append(required, "body")
				}
				meta = append(meta, ParamMeta{Name: "body", WireName: "body", In: LocationBody, Required: op.RequestBody.Required, Schema: bodySchema})
			}
		}
	}

	inputSchema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		inputSchema["required"] = required
	}

	base := op.OperationID
	if base == "" {
		base = fallbackOperationID(method, path)
	}
	name, err := uniqueName(base, disableAbbrev, usedNames)
	if err != nil {
		return nil, err
	}

	var tags []string
	if len(op.Tags) > 0 {
		tags = []string{op.Tags[0]}
	}

	return &Tool{
		ID:             id,
		Name:           name,
		Description:    toolDescription(op),
		InputSchema:    inputSchema,
		HTTPMethod:     strings.ToUpper(method),
		OriginalPath:   path,
		ParametersMeta: meta,
		Tags:                   tags,
		ResourceName:           resourceNameOf(path),
		RequestBodyContentType: bodyContentType,
		operationID:            op.OperationID,
	}, nil
}

func toolDescription(op *openapi.Operation) string {
	if op.Summary != "" {
		return op.Summary
	}
	return op.Description
}

func explodeOf(p *openapi.Parameter) bool {
	if p.Explode != nil {
		return *p.Explode
	}
	return p.In == "query"
}

// preferredBodyMediaTypes orders content types the executor knows how to
// encode; the first one present in the request body wins.
var preferredBodyMediaTypes = []string{
	"application/json",
	"multipart/form-data",
	"application/x-www-form-urlencoded",
}

func bodySchemaAndTypeOf(body *openapi.RequestBody) (*openapi.Schema, string) {
	if body == nil || len(body.Content) == 0 {
		return nil, ""
	}
	for _, mt := range preferredBodyMediaTypes {
		if entry, ok := body.Content[mt]; ok {
			return entry.Schema, mt
		}
	}
	for mt, entry := range body.Content {
		return entry.Schema, mt
	}
	return nil, ""
}

// mergeParameters combines path-level parameters with operation-level ones,
// the latter overriding the former on a matching (name, in) pair.
func mergeParameters(pathParams, opParams []*openapi.Parameter) []*openapi.Parameter {
	type key struct{ name, in string }
	merged := map[key]*openapi.Parameter{}
	var order []key
	for _, p := range pathParams {
		k := key{p.Name, p.In}
		if _, seen := merged[k]; !seen {
			order = append(order, k)
		}
		merged[k] = p
	}
	for _, p := range opParams {
		k := key{p.Name, p.In}
		if _, seen := merged[k]; !seen {
			order = append(order, k)
		}
		merged[k] = p
	}
	out := make([]*openapi.Parameter, 0, len(order))
	for _, k := range order {
		out = append(out, merged[k])
	}
	return out
}

func fallbackOperationID(method, path string) string {
	sanitized := strings.NewReplacer("/", "-", "{", "", "}", "").Replace(strings.Trim(path, "/"))
	return strings.ToLower(method) + "-" + sanitized
}

func uniqueName(base string, disableAbbrev bool, used map[string]int) (string, error) {
	name, err := abbrev.Abbreviate(base, disableAbbrev)
	if err != nil {
		return "", err
	}
	if used[name] == 0 {
		used[name]++
		return name, nil
	}
	for suffix := 2; ; suffix++ {
		candidate := fmt.Sprintf("%s-%d", name, suffix)
		if len(candidate) > 64 {
			candidate = candidate[:64]
		}
		if used[candidate] == 0 {
			used[name]++
			used[candidate]++
			return candidate, nil
		}
	}
}

func resourceNameOf(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return ""
	}
	return strings.SplitN(trimmed, "/", 2)[0]
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func sortedPathKeys(paths openapi.Paths) []string {
	keys := make([]string, 0, len(paths))
	for k := range paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
