package toolid

import "strings"

// InterpolateOne substitutes a single path parameter's value into path,
// recognising three placeholder spellings so the function works equally
// well against a decoded template (the "{name}" form an OpenAPI path
// naturally uses) and against an encoded tool id's body (the "---name"
// form introduced by Encode, or a Google-RPC-style ":name" prefix some
// specs use). Go's regexp package is RE2 and cannot express the
// trailing-boundary lookahead the grammar needs, so the scan below
// reimplements it by hand.
//
// A placeholder that does not match name is left untouched, including
// other parameters' placeholders in the same path.
func InterpolateOne(path, name, value string) string {
	if name == "" {
		return path
	}
	var sb strings.Builder
	i := 0
	n := len(path)
	for i < n {
		switch {
		case path[i] == '{':
			if end := strings.IndexByte(path[i:], '}'); end != -1 && path[i+1:i+end] == name {
				sb.WriteString(value)
				i += end + 1
				continue
			}
		case path[i] == ':':
			if rest := path[i+1:]; strings.HasPrefix(rest, name) {
				after := i + 1 + len(name)
				if after == n || path[after] == '/' {
					sb.WriteString(value)
					i = after
					continue
				}
			}
		case strings.HasPrefix(path[i:], "---"+name):
			after := i + 3 + len(name)
			if after == n || path[after] == '/' || path[after] == ':' || strings.HasPrefix(path[after:], "__") {
				sb.WriteString(value)
				i = after
				continue
			}
		}
		sb.WriteByte(path[i])
		i++
	}
	return sb.String()
}

// Interpolate applies InterpolateOne once per entry in values. Order is
// irrelevant: distinct parameter names never overlap in the placeholders
// they match, since a placeholder is only consumed when its captured name
// equals the name being substituted.
func Interpolate(path string, values map[string]string) string {
	for name, value := range values {
		path = InterpolateOne(path, name, value)
	}
	return path
}
