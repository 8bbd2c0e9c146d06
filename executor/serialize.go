package executor

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/oas2mcp/oas2mcp/toolsynth"
)

// ParamSerializer turns a bound Go value back into its OAS3 wire
// representation for a given parameter location and style. It is the
// mirror image of the teacher's ParamDeserializer: that type reads a
// request's wire-format parameter into a Go value for server-side
// validation; this type writes a Go value (an MCP tool argument) back out
// onto the wire for this bridge's outbound call.
type ParamSerializer struct{}

func NewParamSerializer() *ParamSerializer { return &ParamSerializer{} }

// SerializePathParam renders value per meta's style (default "simple") for
// substitution into the path template. The result is NOT URL-encoded here;
// Bind percent-encodes it with url.PathEscape before handing it to
// toolid.Interpolate, which substitutes it verbatim.
func (s *ParamSerializer) SerializePathParam(value any, meta toolsynth.ParamMeta) string {
	style := meta.Style
	if style == "" {
		style = "simple"
	}
	switch style {
	case "label":
		return "." + s.serializeSimple(value, meta.Explode, ".")
	case "matrix":
		return s.serializeMatrix(meta.Name, value, meta.Explode)
	default: // simple
		return s.serializeSimple(value, meta.Explode, ",")
	}
}

// SerializeQueryParam renders value into url.Values contributions per
// meta's style (default "form").
func (s *ParamSerializer) SerializeQueryParam(values url.Values, meta toolsynth.ParamMeta, value any) {
	style := meta.Style
	if style == "" {
		style = "form"
	}
	switch style {
	case "spaceDelimited":
		values.Add(meta.Name, s.serializeSimple(value, false, " "))
	case "pipeDelimited":
		values.Add(meta.Name, s.serializeSimple(value, false, "|"))
	case "deepObject":
		s.serializeDeepObject(values, meta.Name, value)
	default: // form
		s.serializeForm(values, meta.Name, value, meta.Explode)
	}
}

// SerializeHeaderParam renders value for a header, always "simple" style
// per the OAS3 Parameter Object (headers don't support other styles).
func (s *ParamSerializer) SerializeHeaderParam(value any, explode bool) string {
	return s.serializeSimple(value, explode, ",")
}

// SerializeCookieParam renders a single "name=value" cookie pair. Arrays
// and objects use form-style comma joining, matching the teacher's cookie
// deserialization default (style=form, explode=false).
func (s *ParamSerializer) SerializeCookieParam(name string, value any) string {
	return name + "=" + s.serializeSimple(value, false, ",")
}

func (s *ParamSerializer) serializeSimple(value any, explode bool, joinSep string) string {
	switch v := value.(type) {
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = scalarToString(item)
		}
		return strings.Join(parts, joinSep)
	case map[string]any:
		keys := sortedKeys(v)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			if explode {
				parts = append(parts, fmt.Sprintf("%s=%s", k, scalarToString(v[k])))
			} else {
				parts = append(parts, k, scalarToString(v[k]))
			}
		}
		sep := joinSep
		if explode {
			sep = ","
		}
		return strings.Join(parts, sep)
	default:
		return scalarToString(v)
	}
}

func (s *ParamSerializer) serializeMatrix(name string, value any, explode bool) string {
	switch v := value.(type) {
	case []any:
		if explode {
			parts := make([]string, len(v))
			for i, item := range v {
				parts[i] = ";" + name + "=" + scalarToString(item)
			}
			return strings.Join(parts, "")
		}
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = scalarToString(item)
		}
		return ";" + name + "=" + strings.Join(parts, ",")
	case map[string]any:
		keys := sortedKeys(v)
		if explode {
			var sb strings.Builder
			for _, k := range keys {
				sb.WriteString(";" + k + "=" + scalarToString(v[k]))
			}
			return sb.String()
		}
		parts := make([]string, 0, len(keys)*2)
		for _, k := range keys {
			parts = append(parts, k, scalarToString(v[k]))
		}
		return ";" + name + "=" + strings.Join(parts, ",")
	default:
		return ";" + name + "=" + scalarToString(v)
	}
}

func (s *ParamSerializer) serializeForm(values url.Values, name string, value any, explode bool) {
	switch v := value.(type) {
	case []any:
		if explode {
			for _, item := range v {
				values.Add(name, scalarToString(item))
			}
			return
		}
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = scalarToString(item)
		}
		values.Add(name, strings.Join(parts, ","))
	case map[string]any:
		keys := sortedKeys(v)
		if explode {
			for _, k := range keys {
				values.Add(k, scalarToString(v[k]))
			}
			return
		}
		parts := make([]string, 0, len(keys)*2)
		for _, k := range keys {
			parts = append(parts, k, scalarToString(v[k]))
		}
		values.Add(name, strings.Join(parts, ","))
	default:
		values.Add(name, scalarToString(v))
	}
}

func (s *ParamSerializer) serializeDeepObject(values url.Values, name string, value any) {
	obj, ok := value.(map[string]any)
	if !ok {
		values.Add(name, scalarToString(value))
		return
	}
	for _, k := range sortedKeys(obj) {
		values.Add(fmt.Sprintf("%s[%s]", name, k), scalarToString(obj[k]))
	}
}

func scalarToString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		return trimFloat(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	return s
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
