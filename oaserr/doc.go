// Package oaserr provides structured error types for oas2mcp.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), letting callers distinguish categories of failure (a spec
// that won't load vs. a tool call blocked for safety vs. an upstream 5xx)
// without string-matching error text.
//
// # Error categories
//
//   - SpecLoadError / SpecShapeError: spec ingestion failures, fatal at startup
//   - ToolIDFormatError: malformed (method, path) pairs that can't be encoded
//   - ToolNotFoundError: a tools/call for an unknown name or id
//   - MissingParameterError: a required parameter absent from call args
//   - HeaderInjectionError / SystemHeaderConflictError / AuthHeaderConflictError:
//     blocked outbound requests (never retried)
//   - UpstreamError: a non-2xx response from the target API
//   - TimeoutError / NetworkError: outbound transport failures
//   - SessionUnknownError / OriginRejectedError: HTTP transport protocol errors
//
// # Usage with errors.Is
//
//	_, err := executor.Invoke(ctx, tool, args)
//	if errors.Is(err, oaserr.ErrUpstream) {
//	    var upErr *oaserr.UpstreamError
//	    errors.As(err, &upErr)
//	    // upErr.StatusCode is available here
//	}
package oaserr
