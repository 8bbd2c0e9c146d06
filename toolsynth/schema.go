package toolsynth

import "github.com/oas2mcp/oas2mcp/openapi"

// toJSONSchema projects a trimmed openapi.Schema into a plain JSON Schema
// document (map[string]any), the shape an MCP inputSchema is expressed in.
// allOf branches are folded first via MergeAllOf; oneOf/anyOf/not pass
// through as nested JSON Schema themselves.
func toJSONSchema(s *openapi.Schema) map[string]any {
	if s == nil {
		return map[string]any{}
	}
	s = s.MergeAllOf()
	out := map[string]any{}

	if s.Title != "" {
		out["title"] = s.Title
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if s.Type != nil {
		out["type"] = s.Type
	}
	if s.Format != "" {
		out["format"] = s.Format
	}
	if len(s.Enum) > 0 {
		out["enum"] = s.Enum
	}
	if s.Const != nil {
		out["const"] = s.Const
	}
	if s.Default != nil {
		out["default"] = s.Default
	}
	if s.Pattern != "" {
		out["pattern"] = s.Pattern
	}
	if s.MultipleOf != nil {
		out["multipleOf"] = *s.MultipleOf
	}
	if s.Maximum != nil {
		out["maximum"] = *s.Maximum
	}
	if s.ExclusiveMaximum != nil {
		out["exclusiveMaximum"] = s.ExclusiveMaximum
	}
	if s.Minimum != nil {
		out["minimum"] = *s.Minimum
	}
	if s.ExclusiveMinimum != nil {
		out["exclusiveMinimum"] = s.ExclusiveMinimum
	}
	if s.MaxLength != nil {
		out["maxLength"] = *s.MaxLength
	}
	if s.MinLength != nil {
		out["minLength"] = *s.MinLength
	}
	if s.MaxItems != nil {
		out["maxItems"] = *s.MaxItems
	}
	if s.MinItems != nil {
		out["minItems"] = *s.MinItems
	}
	if s.UniqueItems {
		out["uniqueItems"] = true
	}
	if s.MaxProperties != nil {
		out["maxProperties"] = *s.MaxProperties
	}
	if s.MinProperties != nil {
		out["minProperties"] = *s.MinProperties
	}
	if s.Items != nil {
		out["items"] = toJSONSchema(s.Items)
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = toJSONSchema(prop)
		}
		out["properties"] = props
	}
	if len(s.Required) > 0 {
		out["required"] = s.Required
	}
	switch ap := s.AdditionalProperties.(type) {
	case nil:
	case bool:
		out["additionalProperties"] = ap
	case *openapi.Schema:
		out["additionalProperties"] = toJSONSchema(ap)
	default:
		out["additionalProperties"] = ap
	}
	if len(s.AnyOf) > 0 {
		out["anyOf"] = schemaList(s.AnyOf)
	}
	if len(s.OneOf) > 0 {
		out["oneOf"] = schemaList(s.OneOf)
	}
	if s.Not != nil {
		out["not"] = toJSONSchema(s.Not)
	}
	if s.Nullable {
		out["nullable"] = true
	}
	return out
}

func schemaList(schemas []*openapi.Schema) []any {
	out := make([]any, len(schemas))
	for i, s := range schemas {
		out[i] = toJSONSchema(s)
	}
	return out
}

// isObjectSchema reports whether s should be treated as an object body
// whose properties merge directly into a tool's inputSchema, as opposed to
// a primitive/array body synthesised under a single "body" property.
func isObjectSchema(s *openapi.Schema) bool {
	if s == nil {
		return false
	}
	if t, ok := s.Type.(string); ok {
		return t == "object"
	}
	return s.Type == nil && (len(s.Properties) > 0 || len(s.AllOf) > 0)
}
