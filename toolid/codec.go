package toolid

import (
	"strings"

	"github.com/oas2mcp/oas2mcp/oaserr"
)

// Encode folds an OpenAPI (method, path) pair into a single opaque token:
// uppercase method, "::", then the path with "/" replaced by "__" and every
// "{param}" placeholder replaced by "---param". A lone ":" — the Google-RPC
// action suffix seen in paths like "/widgets/{id}:activate" — passes
// through untouched, since "::" is reserved exclusively for the method
// separator and is rejected if it appears anywhere in the path itself.
//
// Arbitrary characters outside [A-Za-z0-9_:\-] are replaced by "-" (runs
// collapsed) rather than dropped, so that the only way Encode loses
// information is on input that was already outside the conventional REST
// path charset.
func Encode(method, path string) (string, error) {
	if method == "" {
		return "", &oaserr.ToolIDFormatError{Method: method, Path: path, Message: "method must not be empty"}
	}
	if strings.Contains(path, "::") {
		return "", &oaserr.ToolIDFormatError{Method: method, Path: path, Message: "path must not contain '::', it collides with the method separator"}
	}
	body := encodeBody(strings.TrimPrefix(path, "/"))
	return strings.ToUpper(method) + "::" + body, nil
}

// encodeBody walks the path once, treating "/" and "{name}" as structural
// markers and sanitizing everything else. Sanitization happens per literal
// run, before the structural replacements are written, so that the
// "__" and "---" markers introduced below are never themselves collapsed
// by the disallowed-character cleanup.
func encodeBody(p string) string {
	var sb strings.Builder
	i := 0
	n := len(p)
	for i < n {
		switch p[i] {
		case '/':
			sb.WriteString("__")
			i++
		case '{':
			end := strings.IndexByte(p[i:], '}')
			if end == -1 {
				sb.WriteString(sanitizeRun(p[i:]))
				i = n
				continue
			}
			name := p[i+1 : i+end]
			sb.WriteString("---")
			sb.WriteString(sanitizeRun(name))
			i += end + 1
		default:
			j := i
			for j < n && p[j] != '/' && p[j] != '{' {
				j++
			}
			sb.WriteString(sanitizeRun(p[i:j]))
			i = j
		}
	}
	return sb.String()
}

// sanitizeRun replaces characters outside [A-Za-z0-9_:\-] with "-",
// collapses consecutive "-", and trims leading/trailing "-".
func sanitizeRun(s string) string {
	if s == "" {
		return s
	}
	var sb strings.Builder
	prevDash := false
	for _, r := range s {
		allowed := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == ':' || r == '-'
		if allowed {
			sb.WriteRune(r)
			prevDash = r == '-'
			continue
		}
		if !prevDash {
			sb.WriteByte('-')
			prevDash = true
		}
	}
	return strings.Trim(sb.String(), "-")
}

// Decode recovers (method, path) from a token produced by Encode. It is the
// exact inverse for any path that does not contain "::" and stays within
// the conventional REST path charset.
func Decode(id string) (method, path string, err error) {
	idx := strings.Index(id, "::")
	if idx == -1 {
		return "", "", &oaserr.ToolIDFormatError{Message: "tool id missing '::' method separator"}
	}
	method = id[:idx]
	if method == "" {
		return "", "", &oaserr.ToolIDFormatError{Message: "tool id has empty method"}
	}
	rest := id[idx+2:]
	if strings.Contains(rest, "::") {
		return "", "", &oaserr.ToolIDFormatError{Message: "tool id body must not contain a second '::'"}
	}
	return method, decodeBody(rest), nil
}

// decodeBody reverses encodeBody: "__" becomes "/", "---name" becomes
// "{name}", and a leading "/" is restored.
func decodeBody(body string) string {
	var sb strings.Builder
	sb.WriteByte('/')
	i := 0
	n := len(body)
	for i < n {
		if strings.HasPrefix(body[i:], "__") {
			sb.WriteByte('/')
			i += 2
			continue
		}
		if strings.HasPrefix(body[i:], "---") {
			j := i + 3
			for j < n && !strings.HasPrefix(body[j:], "__") && body[j] != ':' {
				j++
			}
			sb.WriteByte('{')
			sb.WriteString(body[i+3 : j])
			sb.WriteByte('}')
			i = j
			continue
		}
		sb.WriteByte(body[i])
		i++
	}
	return sb.String()
}
