package executor

import (
	"net/url"

	"github.com/oas2mcp/oas2mcp/oaserr"
	"github.com/oas2mcp/oas2mcp/toolid"
	"github.com/oas2mcp/oas2mcp/toolsynth"
)

// BoundRequest is the fully-resolved shape of one outbound call, produced
// by Bind before auth headers and the outbound client get involved.
type BoundRequest struct {
	Method      string
	Path        string // interpolated, leading "/", no scheme/host/query
	Query       url.Values
	Headers     map[string]string
	Cookies     []string
	Body        map[string]any // property name -> value, pre-encoding
	ContentType string
}

var methodsWithoutImplicitBody = map[string]bool{
	"GET": true, "DELETE": true, "HEAD": true, "OPTIONS": true,
}

// Bind implements spec.md §4.4's binding procedure: path/query/header/
// cookie/body assignment from a tool's declared parameters, plus the
// catch-all rule for arguments the tool didn't declare.
func Bind(tool *toolsynth.Tool, args map[string]any) (*BoundRequest, error) {
	serializer := NewParamSerializer()

	pathValues := map[string]string{}
	query := url.Values{}
	headers := map[string]string{}
	var cookies []string
	body := map[string]any{}
	consumed := map[string]bool{}

	for _, meta := range tool.ParametersMeta {
		val, present := args[meta.Name]
		if !present {
			if meta.Required {
				return nil, &oaserr.MissingParameterError{Name: meta.Name, In: string(meta.In)}
			}
			continue
		}
		consumed[meta.Name] = true

		switch meta.In {
		case toolsynth.LocationPath:
			pathValues[meta.Name] = url.PathEscape(serializer.SerializePathParam(val, meta))
		case toolsynth.LocationQuery:
			serializer.SerializeQueryParam(query, meta, val)
		case toolsynth.LocationHeader:
			hv := serializer.SerializeHeaderParam(val, meta.Explode)
			if err := validateHeader(meta.Name, hv); err != nil {
				return nil, err
			}
			headers[meta.Name] = hv
		case toolsynth.LocationCookie:
			cookies = append(cookies, serializer.SerializeCookieParam(meta.Name, val))
		case toolsynth.LocationBody:
			body[meta.WireName] = val
		}
	}

	for name, val := range args {
		if consumed[name] {
			continue
		}
		if methodsWithoutImplicitBody[tool.HTTPMethod] {
			query.Add(name, scalarToString(val))
		} else {
			body[name] = val
		}
	}

	path := toolid.Interpolate(tool.OriginalPath, pathValues)

	return &BoundRequest{
		Method:      tool.HTTPMethod,
		Path:        path,
		Query:       query,
		Headers:     headers,
		Cookies:     cookies,
		Body:        body,
		ContentType: tool.RequestBodyContentType,
	}, nil
}
