package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverResolvesComponentRef(t *testing.T) {
	root := map[string]any{
		"components": map[string]any{
			"schemas": map[string]any{
				"Widget": map[string]any{"type": "object"},
			},
		},
		"target": map[string]any{"$ref": "#/components/schemas/Widget"},
	}
	r := newRefResolver(root, 0)
	resolved, err := r.Resolve(root, 0)
	require.NoError(t, err)
	tree := resolved.(map[string]any)
	target := tree["target"].(map[string]any)
	assert.Equal(t, "object", target["type"])
}

func TestResolverIgnoresNonComponentRef(t *testing.T) {
	root := map[string]any{
		"target": map[string]any{"$ref": "#/definitions/Widget"},
	}
	r := newRefResolver(root, 0)
	resolved, err := r.Resolve(root, 0)
	require.NoError(t, err)
	tree := resolved.(map[string]any)
	target := tree["target"].(map[string]any)
	assert.Equal(t, "#/definitions/Widget", target["$ref"])
}

func TestResolverBreaksCycle(t *testing.T) {
	root := map[string]any{
		"components": map[string]any{
			"schemas": map[string]any{
				"A": map[string]any{
					"type":       "object",
					"properties": map[string]any{"b": map[string]any{"$ref": "#/components/schemas/B"}},
				},
				"B": map[string]any{
					"type":       "object",
					"properties": map[string]any{"a": map[string]any{"$ref": "#/components/schemas/A"}},
				},
			},
		},
		"target": map[string]any{"$ref": "#/components/schemas/A"},
	}
	r := newRefResolver(root, 0)
	resolved, err := r.Resolve(root, 0)
	require.NoError(t, err)
	tree := resolved.(map[string]any)
	target := tree["target"].(map[string]any)
	props := target["properties"].(map[string]any)
	b := props["b"].(map[string]any)
	bProps := b["properties"].(map[string]any)
	a := bProps["a"].(map[string]any)
	assert.Empty(t, a)
}

func TestResolverUnresolvableRefErrors(t *testing.T) {
	root := map[string]any{
		"target": map[string]any{"$ref": "#/components/schemas/Missing"},
	}
	r := newRefResolver(root, 0)
	_, err := r.Resolve(root, 0)
	require.Error(t, err)
}

func TestResolverMaxDepthExceeded(t *testing.T) {
	root := map[string]any{
		"components": map[string]any{
			"schemas": map[string]any{
				"A": map[string]any{"next": map[string]any{"$ref": "#/components/schemas/B"}},
				"B": map[string]any{"next": map[string]any{"$ref": "#/components/schemas/C"}},
				"C": map[string]any{"type": "string"},
			},
		},
	}
	r := newRefResolver(root, 2)
	_, err := r.Resolve(map[string]any{"$ref": "#/components/schemas/A"}, 0)
	require.Error(t, err)
}

func TestLookupPointerUnescapesSegments(t *testing.T) {
	root := map[string]any{
		"components": map[string]any{
			"schemas": map[string]any{
				"a/b~c": map[string]any{"type": "string"},
			},
		},
	}
	val, err := lookupPointer(root, "#/components/schemas/a~1b~0c")
	require.NoError(t, err)
	m := val.(map[string]any)
	assert.Equal(t, "string", m["type"])
}
