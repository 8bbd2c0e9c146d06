package openapi

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/oas2mcp/oas2mcp/oaserr"
)

// decodeToTree parses raw spec bytes into a generic JSON-like tree
// (map[string]any / []any / scalars), trying JSON first since it is a
// strict subset of what go.yaml.in/yaml/v4 accepts, then falling back to a
// restricted YAML decode. "Restricted" means: no custom (non-core) tags,
// and no YAML merge keys ("<<") — both are rejected outright rather than
// silently expanded, since a spec fetched from a caller-supplied URL is
// untrusted input and YAML's tag/merge-key machinery is a known vector for
// surprising or resource-exhausting documents.
func decodeToTree(data []byte) (map[string]any, error) {
	trimmed := strings.TrimSpace(string(data))
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		var tree map[string]any
		if err := json.Unmarshal(data, &tree); err == nil {
			return tree, nil
		}
		// fall through to YAML; some JSON-like documents are not valid
		// top-level JSON objects (rare), and YAML is a JSON superset anyway.
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &oaserr.SpecLoadError{Message: "invalid YAML", Cause: err}
	}
	if len(root.Content) == 0 {
		return nil, &oaserr.SpecLoadError{Message: "empty document"}
	}
	if err := rejectUnsafeNode(root.Content[0]); err != nil {
		return nil, err
	}

	var tree map[string]any
	if err := root.Content[0].Decode(&tree); err != nil {
		return nil, &oaserr.SpecLoadError{Message: "failed to decode YAML document", Cause: err}
	}
	return tree, nil
}

// coreTags mirrors the YAML 1.2 core schema's resolved tags. Anything else
// (a custom "!!python/object" style tag, for instance) is rejected.
var coreTags = map[string]bool{
	"": true, "!!map": true, "!!seq": true, "!!str": true, "!!int": true,
	"!!float": true, "!!bool": true, "!!null": true, "!!timestamp": true, "!!merge": false,
}

func rejectUnsafeNode(n *yaml.Node) error {
	if n == nil {
		return nil
	}
	if !coreTags[n.Tag] {
		return &oaserr.SpecLoadError{Message: fmt.Sprintf("rejected custom YAML tag %q", n.Tag)}
	}
	if n.Kind == yaml.MappingNode {
		for i := 0; i < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Value == "<<" {
				return &oaserr.SpecLoadError{Message: "YAML merge keys (\"<<\") are not permitted in an OpenAPI document"}
			}
		}
	}
	for _, child := range n.Content {
		if err := rejectUnsafeNode(child); err != nil {
			return err
		}
	}
	return nil
}
