package openapi

import (
	"strconv"
	"strings"

	"github.com/oas2mcp/oas2mcp/oaserr"
)

// refResolver walks a generic document tree and replaces every
// "#/components/**" $ref node with a deep copy of its target, in place.
// It is a direct generalization of the teacher's parser.RefResolver: same
// visited/resolving map-based cycle defense and "emit empty object on
// re-entry" cycle break, scoped here to local component refs only — this
// bridge never resolves external file or HTTP refs while synthesizing
// tools, since by the time Load reaches this step the whole document is
// already a single in-memory tree.
type refResolver struct {
	root      map[string]any
	resolving map[string]bool
	maxDepth  int
}

func newRefResolver(root map[string]any, maxDepth int) *refResolver {
	if maxDepth <= 0 {
		maxDepth = 100
	}
	return &refResolver{root: root, resolving: map[string]bool{}, maxDepth: maxDepth}
}

// Resolve walks node, returning a new tree with every "#/components/**"
// $ref replaced by a deep copy of its resolved target.
func (r *refResolver) Resolve(node any, depth int) (any, error) {
	if depth > r.maxDepth {
		return nil, &oaserr.SpecShapeError{Message: "maximum $ref depth exceeded"}
	}
	switch v := node.(type) {
	case map[string]any:
		if ref, ok := v["$ref"].(string); ok && strings.HasPrefix(ref, "#/components/") {
			return r.resolveRef(ref, depth)
		}
		out := make(map[string]any, len(v))
		for key, val := range v {
			resolved, err := r.Resolve(val, depth+1)
			if err != nil {
				return nil, err
			}
			out[key] = resolved
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			resolved, err := r.Resolve(val, depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	default:
		return v, nil
	}
}

// resolveRef looks up ref against the root tree and resolves it
// recursively. A ref re-entered while already on the resolution stack
// (a cycle) resolves to an empty object rather than recursing forever.
func (r *refResolver) resolveRef(ref string, depth int) (any, error) {
	if r.resolving[ref] {
		return map[string]any{}, nil
	}
	target, err := lookupPointer(r.root, ref)
	if err != nil {
		return nil, err
	}
	r.resolving[ref] = true
	defer delete(r.resolving, ref)
	return r.Resolve(target, depth+1)
}

// lookupPointer navigates a JSON-Pointer-style "#/a/b/c" reference against
// root, unescaping "~1" and "~0" per RFC 6901.
func lookupPointer(root map[string]any, ref string) (any, error) {
	pointer := strings.TrimPrefix(ref, "#/")
	if pointer == ref {
		return nil, &oaserr.SpecShapeError{Path: ref, Message: "only local \"#/...\" refs are supported"}
	}
	var cur any = root
	for _, rawSeg := range strings.Split(pointer, "/") {
		seg := unescapePointerSegment(rawSeg)
		switch c := cur.(type) {
		case map[string]any:
			next, ok := c[seg]
			if !ok {
				return nil, &oaserr.SpecShapeError{Path: ref, Message: "unresolvable $ref"}
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(c) {
				return nil, &oaserr.SpecShapeError{Path: ref, Message: "unresolvable $ref index"}
			}
			cur = c[idx]
		default:
			return nil, &oaserr.SpecShapeError{Path: ref, Message: "unresolvable $ref"}
		}
	}
	return cur, nil
}

func unescapePointerSegment(s string) string {
	s = strings.ReplaceAll(s, "~1", "/")
	s = strings.ReplaceAll(s, "~0", "~")
	return s
}
