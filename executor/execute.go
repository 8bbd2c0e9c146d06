package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/oas2mcp/oas2mcp/oaserr"
	"github.com/oas2mcp/oas2mcp/openapi"
	"github.com/oas2mcp/oas2mcp/toolsynth"
)

// Result is what a successful tool invocation returns to the dispatcher:
// the upstream status and a best-effort decoded body (json.Unmarshal'd
// into any when the response is JSON, raw text otherwise).
type Result struct {
	StatusCode int
	Headers    http.Header
	Body       any
}

// Executor issues the bound, authenticated HTTP request for a synthesised
// tool call. BaseURL comes from the first server entry of the loaded
// document unless overridden.
type Executor struct {
	BaseURL string
	Client  *http.Client
	Auth    AuthProvider
	hasAuth bool
}

// NewExecutor builds an Executor against doc's first declared server.
// auth may be nil, in which case NoAuth is used and the caller-reserved
// "authorization"/"cookie" header rule in headers.go does not apply.
func NewExecutor(doc *openapi.Document, auth AuthProvider, allowPrivateIPs bool) *Executor {
	base := ""
	if len(doc.Servers) > 0 {
		base = strings.TrimRight(doc.Servers[0].URL, "/")
	}
	hasAuth := auth != nil
	if auth == nil {
		auth = NoAuth{}
	}
	return &Executor{
		BaseURL: base,
		Client:  NewOutboundClient(allowPrivateIPs),
		Auth:    auth,
		hasAuth: hasAuth,
	}
}

// Invoke binds args against tool, issues the request, and retries exactly
// once on a 401/403 response if the auth provider's HandleAuthError says
// the retry is worth attempting (e.g. after refreshing a token).
func (e *Executor) Invoke(ctx context.Context, tool *toolsynth.Tool, args map[string]any) (*Result, error) {
	bound, err := Bind(tool, args)
	if err != nil {
		return nil, err
	}

	result, err := e.doRequest(ctx, bound)
	if err == nil {
		return result, nil
	}

	var upErr *oaserr.UpstreamError
	if !errors.As(err, &upErr) {
		return nil, err
	}
	if upErr.StatusCode != http.StatusUnauthorized && upErr.StatusCode != http.StatusForbidden {
		return nil, err
	}

	retry, handleErr := e.Auth.HandleAuthError(ctx, err)
	if handleErr != nil {
		return nil, handleErr
	}
	if !retry {
		return nil, err
	}
	return e.doRequest(ctx, bound)
}

func (e *Executor) doRequest(ctx context.Context, bound *BoundRequest) (*Result, error) {
	bodyBytes, contentType, err := encodeBody(bound.Body, bound.ContentType)
	if err != nil {
		return nil, err
	}
	if len(bodyBytes) > maxRequestBody {
		return nil, &oaserr.NetworkError{Cause: errors.New("request body exceeds size limit")}
	}

	url := e.BaseURL + bound.Path
	if encoded := bound.Query.Encode(); encoded != "" {
		url += "?" + encoded
	}

	authHeaders, err := e.Auth.AuthHeaders(ctx)
	if err != nil {
		return nil, err
	}

	for name := range bound.Headers {
		if err := validateAuthMerge(name, authHeaders, e.hasAuth); err != nil {
			return nil, err
		}
	}
	if len(bound.Cookies) > 0 {
		if err := validateAuthMerge("cookie", authHeaders, e.hasAuth); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, bound.Method, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, &oaserr.NetworkError{Cause: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for name, value := range bound.Headers {
		req.Header.Set(name, value)
	}
	for _, cookie := range bound.Cookies {
		req.Header.Add("Cookie", cookie)
	}
	for name, value := range authHeaders {
		if isSystemControlledHeader(name) {
			continue
		}
		req.Header.Set(name, value)
	}

	resp, err := e.Client.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, &oaserr.TimeoutError{Cause: err}
		}
		return nil, &oaserr.NetworkError{Cause: err}
	}
	defer resp.Body.Close()

	limited := io.LimitReader(resp.Body, maxResponseBody+1)
	raw, err := io.ReadAll(limited)
	if err != nil {
		return nil, &oaserr.NetworkError{Cause: err}
	}
	if len(raw) > maxResponseBody {
		raw = raw[:maxResponseBody]
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		sanitized := sanitizeUpstreamBody(resp.StatusCode, string(raw))
		return nil, &oaserr.UpstreamError{StatusCode: resp.StatusCode, Message: sanitized}
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       decodeResponseBody(resp.Header.Get("Content-Type"), raw),
	}, nil
}

func decodeResponseBody(contentType string, raw []byte) any {
	if strings.Contains(contentType, "json") {
		var v any
		if err := json.Unmarshal(raw, &v); err == nil {
			return v
		}
	}
	return string(raw)
}
