package openapi

import (
	"strings"
)

// normalizeOAS2 gives best-effort support for a Swagger 2.0 document by
// reshaping its tree into the OAS3 shape the rest of this package expects,
// before $ref resolution runs. This is a supplemented feature beyond the
// OpenAPI 3.x scope the loader otherwise targets: a caller pointing the
// bridge at a legacy Swagger 2.0 document gets a workable, if imperfect,
// translation rather than an outright rejection. tree is returned
// unmodified when it does not look like a Swagger 2.0 document.
func normalizeOAS2(tree map[string]any) map[string]any {
	swaggerVersion, _ := tree["swagger"].(string)
	if !strings.HasPrefix(swaggerVersion, "2.") {
		return tree
	}

	out := map[string]any{
		"openapi": "3.0.3",
		"info":    tree["info"],
		"tags":    tree["tags"],
	}
	if security, ok := tree["security"]; ok {
		out["security"] = security
	}

	out["servers"] = oas2Servers(tree)

	components := map[string]any{}
	if defs, ok := tree["definitions"].(map[string]any); ok {
		components["schemas"] = rewriteOAS2Refs(defs)
	}
	if params, ok := tree["parameters"].(map[string]any); ok {
		components["parameters"] = rewriteOAS2Refs(params)
	}
	if resps, ok := tree["responses"].(map[string]any); ok {
		components["responses"] = rewriteOAS2Refs(resps)
	}
	if schemes, ok := tree["securityDefinitions"].(map[string]any); ok {
		components["securitySchemes"] = rewriteOAS2Refs(oas2SecuritySchemes(schemes))
	}
	out["components"] = components

	consumes, _ := tree["consumes"].([]any)
	produces, _ := tree["produces"].([]any)

	paths, _ := tree["paths"].(map[string]any)
	newPaths := map[string]any{}
	for path, rawItem := range paths {
		item, ok := rawItem.(map[string]any)
		if !ok {
			continue
		}
		newPaths[path] = oas2PathItem(item, consumes, produces)
	}
	out["paths"] = newPaths

	return out
}

func oas2Servers(tree map[string]any) []any {
	host, _ := tree["host"].(string)
	basePath, _ := tree["basePath"].(string)
	schemes, _ := tree["schemes"].([]any)
	if host == "" {
		host = "localhost"
	}
	scheme := "https"
	if len(schemes) > 0 {
		if s, ok := schemes[0].(string); ok {
			scheme = s
		}
	}
	return []any{
		map[string]any{"url": scheme + "://" + host + basePath},
	}
}

func oas2SecuritySchemes(schemes map[string]any) map[string]any {
	out := map[string]any{}
	for name, rawDef := range schemes {
		def, ok := rawDef.(map[string]any)
		if !ok {
			continue
		}
		switch def["type"] {
		case "basic":
			out[name] = map[string]any{"type": "http", "scheme": "basic"}
		case "apiKey":
			out[name] = map[string]any{"type": "apiKey", "name": def["name"], "in": def["in"]}
		case "oauth2":
			out[name] = map[string]any{"type": "oauth2"}
		default:
			out[name] = def
		}
	}
	return out
}

var oas2Methods = []string{"get", "put", "post", "delete", "options", "head", "patch"}

func oas2PathItem(item map[string]any, defaultConsumes, defaultProduces []any) map[string]any {
	out := map[string]any{}
	if ref, ok := item["$ref"]; ok {
		out["$ref"] = rewriteOAS2Ref(ref)
	}
	if params, ok := item["parameters"]; ok {
		out["parameters"] = oas2Parameters(params, defaultConsumes)
	}
	for _, method := range oas2Methods {
		rawOp, ok := item[method].(map[string]any)
		if !ok {
			continue
		}
		out[method] = oas2Operation(rawOp, defaultConsumes, defaultProduces)
	}
	return out
}

// oas2Operation translates a single Swagger 2.0 operation object, folding
// its "in: body"/"in: formData" parameters into an OAS3 requestBody and its
// response "schema" fields into response "content" media types.
func oas2Operation(op map[string]any, defaultConsumes, defaultProduces []any) map[string]any {
	out := map[string]any{
		"tags":        op["tags"],
		"summary":     op["summary"],
		"description": op["description"],
		"operationId": op["operationId"],
		"deprecated":  op["deprecated"],
	}
	if sec, ok := op["security"]; ok {
		out["security"] = sec
	}

	consumes, _ := op["consumes"].([]any)
	if len(consumes) == 0 {
		consumes = defaultConsumes
	}
	produces, _ := op["produces"].([]any)
	if len(produces) == 0 {
		produces = defaultProduces
	}

	rawParams, _ := op["parameters"].([]any)
	var pathParams []any
	for _, rawParam := range rawParams {
		param, ok := rawParam.(map[string]any)
		if !ok {
			continue
		}
		switch param["in"] {
		case "body":
			out["requestBody"] = oas2BodyToRequestBody(param, consumes)
		case "formData":
			out["requestBody"] = oas2FormDataToRequestBody(rawParams, consumes)
		default:
			pathParams = append(pathParams, oas2NonBodyParam(param))
		}
	}
	if len(pathParams) > 0 {
		out["parameters"] = pathParams
	}

	rawResponses, _ := op["responses"].(map[string]any)
	out["responses"] = oas2Responses(rawResponses, produces)
	return out
}

func oas2Parameters(params any, defaultConsumes []any) any {
	list, ok := params.([]any)
	if !ok {
		return params
	}
	out := make([]any, 0, len(list))
	for _, rawParam := range list {
		param, ok := rawParam.(map[string]any)
		if !ok {
			continue
		}
		if param["in"] == "body" || param["in"] == "formData" {
			continue // folded into requestBody at the operation level
		}
		out = append(out, oas2NonBodyParam(param))
	}
	return out
}

// oas2NonBodyParam converts a Swagger 2.0 non-body parameter, which carries
// "type"/"format"/"items"/"enum" directly on the parameter object, into the
// OAS3 shape where those fields live under a nested "schema".
var oas2SchemaFields = []string{"type", "format", "items", "enum", "default", "minimum", "maximum", "pattern"}

func oas2NonBodyParam(param map[string]any) map[string]any {
	if ref, ok := param["$ref"]; ok {
		return map[string]any{"$ref": rewriteOAS2Ref(ref)}
	}
	schema := map[string]any{}
	for _, field := range oas2SchemaFields {
		if v, ok := param[field]; ok {
			schema[field] = rewriteOAS2Refs(v)
		}
	}
	out := map[string]any{
		"name":        param["name"],
		"in":          param["in"],
		"description": param["description"],
		"required":    param["required"],
	}
	if len(schema) > 0 {
		out["schema"] = schema
	}
	return out
}

func oas2BodyToRequestBody(param map[string]any, consumes []any) map[string]any {
	schema := rewriteOAS2Refs(param["schema"])
	content := map[string]any{}
	for _, mt := range oas2MediaTypesOrDefault(consumes) {
		content[mt] = map[string]any{"schema": schema}
	}
	return map[string]any{
		"description": param["description"],
		"required":    param["required"],
		"content":     content,
	}
}

func oas2FormDataToRequestBody(params []any, consumes []any) map[string]any {
	properties := map[string]any{}
	var required []any
	for _, rawParam := range params {
		param, ok := rawParam.(map[string]any)
		if !ok || param["in"] != "formData" {
			continue
		}
		name, _ := param["name"].(string)
		prop := map[string]any{"type": param["type"]}
		if param["type"] == "file" {
			prop = map[string]any{"type": "string", "format": "binary"}
		}
		properties[name] = prop
		if req, _ := param["required"].(bool); req {
			required = append(required, name)
		}
	}
	schema := map[string]any{"type": "object", "properties": properties}
	if len(required) > 0 {
		schema["required"] = required
	}
	mediaType := "application/x-www-form-urlencoded"
	for _, c := range consumes {
		if s, ok := c.(string); ok && s == "multipart/form-data" {
			mediaType = s
			break
		}
	}
	return map[string]any{
		"content": map[string]any{
			mediaType: map[string]any{"schema": schema},
		},
	}
}

func oas2MediaTypesOrDefault(consumes []any) []string {
	if len(consumes) == 0 {
		return []string{"application/json"}
	}
	out := make([]string, 0, len(consumes))
	for _, c := range consumes {
		if s, ok := c.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func oas2Responses(responses map[string]any, produces []any) map[string]any {
	out := map[string]any{}
	mediaTypes := oas2MediaTypesOrDefault(produces)
	for status, rawResp := range responses {
		resp, ok := rawResp.(map[string]any)
		if !ok {
			continue
		}
		newResp := map[string]any{"description": resp["description"]}
		if schema, ok := resp["schema"]; ok {
			content := map[string]any{}
			for _, mt := range mediaTypes {
				content[mt] = map[string]any{"schema": rewriteOAS2Refs(schema)}
			}
			newResp["content"] = content
		}
		out[status] = newResp
	}
	if len(out) == 0 {
		out["default"] = map[string]any{"description": "default response"}
	}
	return out
}

// rewriteOAS2Refs walks node rewriting every "$ref" string from Swagger
// 2.0's "#/definitions/X", "#/parameters/X", "#/responses/X" shape into the
// "#/components/schemas|parameters|responses/X" shape the rest of this
// package resolves.
func rewriteOAS2Refs(node any) any {
	switch v := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			if key == "$ref" {
				out[key] = rewriteOAS2Ref(val)
				continue
			}
			out[key] = rewriteOAS2Refs(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = rewriteOAS2Refs(val)
		}
		return out
	default:
		return v
	}
}

func rewriteOAS2Ref(ref any) any {
	s, ok := ref.(string)
	if !ok {
		return ref
	}
	switch {
	case strings.HasPrefix(s, "#/definitions/"):
		return "#/components/schemas/" + strings.TrimPrefix(s, "#/definitions/")
	case strings.HasPrefix(s, "#/parameters/"):
		return "#/components/parameters/" + strings.TrimPrefix(s, "#/parameters/")
	case strings.HasPrefix(s, "#/responses/"):
		return "#/components/responses/" + strings.TrimPrefix(s, "#/responses/")
	default:
		return s
	}
}
