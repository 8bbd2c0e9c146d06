package toolsynth

import "strings"

// FilterMode selects how the synthesised registry is pared down before a
// server instance exposes it, per spec.md §4.3's three modes.
type FilterMode string

const (
	ModeAll      FilterMode = "all"
	ModeDynamic  FilterMode = "dynamic"
	ModeExplicit FilterMode = "explicit"
)

// applyFilter mutates reg.Tools (and the derived ByID/ByName indices) in
// place according to opts.Mode.
func applyFilter(reg *Registry, opts Options) {
	switch opts.Mode {
	case ModeDynamic:
		reg.Tools = nil
		reg.ByID = map[string]*Tool{}
		reg.ByName = map[string]*Tool{}
	case ModeExplicit:
		reg.Tools = filterExplicit(reg.Tools, opts.IncludeTools)
		reindex(reg)
	default: // ModeAll, and the zero value
		reg.Tools = filterAll(reg.Tools, opts)
		reindex(reg)
	}
}

func reindex(reg *Registry) {
	reg.ByID = map[string]*Tool{}
	reg.ByName = map[string]*Tool{}
	for _, t := range reg.Tools {
		reg.ByID[t.ID] = t
		reg.ByName[t.Name] = t
	}
}

// filterExplicit keeps only tools whose id or name (case-insensitive)
// appears in includeTools. An empty includeTools yields an empty registry.
func filterExplicit(tools []*Tool, includeTools []string) []*Tool {
	if len(includeTools) == 0 {
		return nil
	}
	allowed := toLowerSet(includeTools)
	var out []*Tool
	for _, t := range tools {
		if allowed[asciiLower(t.ID)] || allowed[asciiLower(t.Name)] {
			out = append(out, t)
		}
	}
	return out
}

// filterAll applies includeTools as a highest-priority override (a tool it
// matches is always kept, bypassing the other filters), then AND-combines
// whatever remains of includeOperations/includeResources/includeTags.
func filterAll(tools []*Tool, opts Options) []*Tool {
	if len(opts.IncludeTools) == 0 && len(opts.IncludeOperations) == 0 &&
		len(opts.IncludeResources) == 0 && len(opts.IncludeTags) == 0 {
		return tools
	}
	includeTools := toLowerSet(opts.IncludeTools)
	var out []*Tool
	for _, t := range tools {
		if includeTools[asciiLower(t.ID)] || includeTools[asciiLower(t.Name)] {
			out = append(out, t)
			continue
		}
		if matchesOperation(t, opts.IncludeOperations) &&
			matchesResource(t, opts.IncludeResources) &&
			matchesTag(t, opts.IncludeTags) {
			out = append(out, t)
		}
	}
	return out
}

func matchesOperation(t *Tool, includeOperations []string) bool {
	if len(includeOperations) == 0 {
		return true
	}
	for _, op := range includeOperations {
		if t.operationID == op {
			return true
		}
	}
	return false
}

func matchesResource(t *Tool, includeResources []string) bool {
	if len(includeResources) == 0 {
		return true
	}
	for _, prefix := range includeResources {
		if strings.HasPrefix(t.OriginalPath, prefix) {
			return true
		}
	}
	return false
}

func matchesTag(t *Tool, includeTags []string) bool {
	if len(includeTags) == 0 {
		return true
	}
	for _, tag := range t.Tags {
		for _, want := range includeTags {
			if tag == want {
				return true
			}
		}
	}
	return false
}

func toLowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[asciiLower(v)] = true
	}
	return set
}
