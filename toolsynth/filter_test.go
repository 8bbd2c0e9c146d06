package toolsynth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oas2mcp/oas2mcp/openapi"
)

func taggedDoc() *openapi.Document {
	return &openapi.Document{
		OpenAPI: "3.0.3",
		Info:    &openapi.Info{Title: "x", Version: "1"},
		Paths: openapi.Paths{
			"/widgets": &openapi.PathItem{
				Get: &openapi.Operation{OperationID: "listWidgets", Tags: []string{"widgets"}, Responses: map[string]*openapi.Response{"200": {}}},
			},
			"/gadgets": &openapi.PathItem{
				Get: &openapi.Operation{OperationID: "listGadgets", Tags: []string{"gadgets"}, Responses: map[string]*openapi.Response{"200": {}}},
			},
		},
	}
}

func TestFilterDynamicDiscardsTools(t *testing.T) {
	reg, err := Synthesize(taggedDoc(), Options{Mode: ModeDynamic})
	require.NoError(t, err)
	assert.Empty(t, reg.Tools)
	assert.NotNil(t, reg.Doc)
}

func TestFilterExplicitKeepsOnlyListed(t *testing.T) {
	reg, err := Synthesize(taggedDoc(), Options{Mode: ModeExplicit, IncludeTools: []string{"lst-widgets"}})
	require.NoError(t, err)
	require.Len(t, reg.Tools, 1)
	assert.Equal(t, "lst-widgets", reg.Tools[0].Name)
}

func TestFilterExplicitEmptyYieldsEmptyRegistry(t *testing.T) {
	reg, err := Synthesize(taggedDoc(), Options{Mode: ModeExplicit})
	require.NoError(t, err)
	assert.Empty(t, reg.Tools)
}

func TestFilterAllByTag(t *testing.T) {
	reg, err := Synthesize(taggedDoc(), Options{Mode: ModeAll, IncludeTags: []string{"gadgets"}})
	require.NoError(t, err)
	require.Len(t, reg.Tools, 1)
	assert.Equal(t, "lst-gadgets", reg.Tools[0].Name)
}

func TestFilterAllByResourcePrefix(t *testing.T) {
	reg, err := Synthesize(taggedDoc(), Options{Mode: ModeAll, IncludeResources: []string{"/widgets"}})
	require.NoError(t, err)
	require.Len(t, reg.Tools, 1)
	assert.Equal(t, "/widgets", reg.Tools[0].OriginalPath)
}

func TestFilterAllIncludeToolsBypassesOtherFilters(t *testing.T) {
	reg, err := Synthesize(taggedDoc(), Options{
		Mode:         ModeAll,
		IncludeTools: []string{"lst-gadgets"},
		IncludeTags:  []string{"widgets"}, // would otherwise exclude lst-gadgets
	})
	require.NoError(t, err)
	names := map[string]bool{}
	for _, tool := range reg.Tools {
		names[tool.Name] = true
	}
	assert.True(t, names["lst-widgets"]) // matched by tag
	assert.True(t, names["lst-gadgets"]) // matched by includeTools override
}

func TestFilterAllNoFiltersKeepsEverything(t *testing.T) {
	reg, err := Synthesize(taggedDoc(), Options{Mode: ModeAll})
	require.NoError(t, err)
	assert.Len(t, reg.Tools, 2)
}
