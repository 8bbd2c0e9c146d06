package toolsynth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oas2mcp/oas2mcp/openapi"
)

func TestToJSONSchemaBasicFields(t *testing.T) {
	minLen := 3
	s := &openapi.Schema{
		Type:        "string",
		Description: "a widget name",
		MinLength:   &minLen,
	}
	js := toJSONSchema(s)
	assert.Equal(t, "string", js["type"])
	assert.Equal(t, "a widget name", js["description"])
	assert.Equal(t, 3, js["minLength"])
}

func TestToJSONSchemaNestedObject(t *testing.T) {
	s := &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id": {Type: "string"},
		},
		Required: []string{"id"},
	}
	js := toJSONSchema(s)
	props := js["properties"].(map[string]any)
	idSchema := props["id"].(map[string]any)
	assert.Equal(t, "string", idSchema["type"])
	assert.Equal(t, []string{"id"}, js["required"])
}

func TestToJSONSchemaMergesAllOf(t *testing.T) {
	s := &openapi.Schema{
		AllOf: []*openapi.Schema{
			{Properties: map[string]*openapi.Schema{"a": {Type: "string"}}},
			{Properties: map[string]*openapi.Schema{"b": {Type: "integer"}}},
		},
	}
	js := toJSONSchema(s)
	props := js["properties"].(map[string]any)
	assert.Contains(t, props, "a")
	assert.Contains(t, props, "b")
}

func TestToJSONSchemaNilIsEmptyObject(t *testing.T) {
	js := toJSONSchema(nil)
	assert.Empty(t, js)
}

func TestIsObjectSchema(t *testing.T) {
	assert.True(t, isObjectSchema(&openapi.Schema{Type: "object"}))
	assert.True(t, isObjectSchema(&openapi.Schema{Properties: map[string]*openapi.Schema{"x": {}}}))
	assert.False(t, isObjectSchema(&openapi.Schema{Type: "string"}))
	assert.False(t, isObjectSchema(nil))
}
