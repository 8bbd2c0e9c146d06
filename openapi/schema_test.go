package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeAllOfUnionsProperties(t *testing.T) {
	s := &Schema{
		AllOf: []*Schema{
			{Properties: map[string]*Schema{"id": {Type: "string"}}, Required: []string{"id"}},
			{Properties: map[string]*Schema{"name": {Type: "string"}}, Required: []string{"name"}},
		},
	}
	merged := s.MergeAllOf()
	assert.Contains(t, merged.Properties, "id")
	assert.Contains(t, merged.Properties, "name")
	assert.ElementsMatch(t, []string{"id", "name"}, merged.Required)
}

func TestMergeAllOfDedupesRequired(t *testing.T) {
	s := &Schema{
		Required: []string{"id"},
		AllOf: []*Schema{
			{Required: []string{"id"}},
			{Required: []string{"id", "name"}},
		},
	}
	merged := s.MergeAllOf()
	assert.ElementsMatch(t, []string{"id", "name"}, merged.Required)
}

func TestMergeAllOfLaterBranchWinsOnCollision(t *testing.T) {
	s := &Schema{
		AllOf: []*Schema{
			{Properties: map[string]*Schema{"x": {Type: "string"}}},
			{Properties: map[string]*Schema{"x": {Type: "integer"}}},
		},
	}
	merged := s.MergeAllOf()
	assert.Equal(t, "integer", merged.Properties["x"].Type)
}

func TestMergeAllOfNoOpWithoutAllOf(t *testing.T) {
	s := &Schema{Type: "string"}
	assert.Same(t, s, s.MergeAllOf())
}

func TestMergeAllOfNilReceiver(t *testing.T) {
	var s *Schema
	assert.Nil(t, s.MergeAllOf())
}

func TestMergeAllOfLeavesOneOfUntouched(t *testing.T) {
	oneOf := []*Schema{{Type: "string"}, {Type: "integer"}}
	s := &Schema{
		OneOf: oneOf,
		AllOf: []*Schema{{Properties: map[string]*Schema{"x": {Type: "string"}}}},
	}
	merged := s.MergeAllOf()
	assert.Equal(t, oneOf, merged.OneOf)
}
