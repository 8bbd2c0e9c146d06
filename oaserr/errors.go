package oaserr

import (
	"errors"
	"fmt"
	"regexp"
)

// Sentinel errors for use with errors.Is().
var (
	ErrSpecLoad             = errors.New("spec load error")
	ErrSpecShape            = errors.New("spec shape error")
	ErrToolIDFormat         = errors.New("tool id format error")
	ErrToolNotFound         = errors.New("tool not found")
	ErrMissingParameter     = errors.New("missing required parameter")
	ErrHeaderInjection      = errors.New("header injection blocked")
	ErrSystemHeaderConflict = errors.New("system-controlled header conflict")
	ErrAuthHeaderConflict   = errors.New("auth header conflict")
	ErrUpstream             = errors.New("upstream error")
	ErrTimeout              = errors.New("timeout")
	ErrNetwork              = errors.New("network error")
	ErrSessionUnknown       = errors.New("session unknown")
	ErrOriginRejected       = errors.New("origin rejected")
	ErrNameConstraint       = errors.New("name constraint violated")
)

// SpecLoadError represents a failure to fetch, read, or parse an OpenAPI
// document, including a restricted-YAML construct being rejected.
type SpecLoadError struct {
	Source  string // file path, URL, or "stdin"/"inline"
	Message string
	Cause   error
}

func (e *SpecLoadError) Error() string {
	msg := "spec load error"
	if e.Source != "" {
		msg += " for " + e.Source
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *SpecLoadError) Unwrap() error { return e.Cause }
func (e *SpecLoadError) Is(target error) bool {
	return target == ErrSpecLoad
}

// SpecShapeError represents a structurally invalid spec: missing paths,
// an unresolvable non-cycle $ref, or similar shape violations.
type SpecShapeError struct {
	Path    string // JSON-pointer-ish path into the document
	Message string
	Cause   error
}

func (e *SpecShapeError) Error() string {
	msg := "spec shape error"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *SpecShapeError) Unwrap() error { return e.Cause }
func (e *SpecShapeError) Is(target error) bool {
	return target == ErrSpecShape
}

// ToolIDFormatError represents a (method, path) pair that cannot be encoded
// into a tool id, or a tool id that cannot be decoded.
type ToolIDFormatError struct {
	Method  string
	Path    string
	Message string
}

func (e *ToolIDFormatError) Error() string {
	msg := "tool id format error"
	if e.Method != "" || e.Path != "" {
		msg += fmt.Sprintf(" (%s %s)", e.Method, e.Path)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *ToolIDFormatError) Is(target error) bool {
	return target == ErrToolIDFormat
}

// NameConstraintError represents a synthesised tool display name that
// violates the ≤64-char / ^[a-z0-9_-]+$ constraint with abbreviation
// disabled, where the pipeline has no remaining step (truncate-and-hash,
// dictionary substitution) left to fix it without ignoring the caller's
// disable switch.
type NameConstraintError struct {
	OperationID string
	Name        string
	Message     string
}

func (e *NameConstraintError) Error() string {
	msg := fmt.Sprintf("name constraint violated for operation %q", e.OperationID)
	if e.Name != "" {
		msg += fmt.Sprintf(" (derived name %q)", e.Name)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *NameConstraintError) Is(target error) bool {
	return target == ErrNameConstraint
}

// ToolNotFoundError represents a tools/call for an id or name the registry
// does not recognise.
type ToolNotFoundError struct {
	NameOrID string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("tool not found: %s", e.NameOrID)
}

func (e *ToolNotFoundError) Is(target error) bool {
	return target == ErrToolNotFound
}

// MissingParameterError represents a required parameter (in any location)
// absent from the caller's arguments.
type MissingParameterError struct {
	Name string
	In   string // "path", "query", etc.
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing required %s parameter: %s", e.In, e.Name)
}

func (e *MissingParameterError) Is(target error) bool {
	return target == ErrMissingParameter
}

// HeaderInjectionError represents a header value containing CR or LF.
type HeaderInjectionError struct {
	HeaderName string
}

func (e *HeaderInjectionError) Error() string {
	return fmt.Sprintf("header %q contains CR/LF, rejected", e.HeaderName)
}

func (e *HeaderInjectionError) Is(target error) bool {
	return target == ErrHeaderInjection
}

// SystemHeaderConflictError represents an attempt to set a header whose
// value must be controlled by the transport, not the caller.
type SystemHeaderConflictError struct {
	HeaderName string
}

func (e *SystemHeaderConflictError) Error() string {
	return fmt.Sprintf("header %q is system-controlled and cannot be set by a caller", e.HeaderName)
}

func (e *SystemHeaderConflictError) Is(target error) bool {
	return target == ErrSystemHeaderConflict
}

// AuthHeaderConflictError represents a caller-supplied header colliding
// with a header name the auth provider also wants to set.
type AuthHeaderConflictError struct {
	HeaderName string
}

func (e *AuthHeaderConflictError) Error() string {
	return fmt.Sprintf("header %q conflicts with a header set by the auth provider", e.HeaderName)
}

func (e *AuthHeaderConflictError) Is(target error) bool {
	return target == ErrAuthHeaderConflict
}

// UpstreamError represents a non-2xx HTTP response from the target API.
// Message is already sanitised per §7 (redacted for 401/403, truncated
// otherwise) by the time this error is constructed.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error (status %d): %s", e.StatusCode, e.Message)
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// TimeoutError represents an outbound call that exceeded its deadline.
type TimeoutError struct {
	Cause error
}

func (e *TimeoutError) Error() string {
	msg := "timeout"
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *TimeoutError) Unwrap() error { return e.Cause }
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// NetworkError represents a non-timeout transport failure (DNS, connection
// refused, TLS handshake, etc.)
type NetworkError struct {
	Cause error
}

func (e *NetworkError) Error() string {
	msg := "network error"
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *NetworkError) Unwrap() error { return e.Cause }
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// SessionUnknownError represents an HTTP request bearing an unrecognised
// or expired Mcp-Session-Id.
type SessionUnknownError struct {
	SessionID string
}

func (e *SessionUnknownError) Error() string {
	return fmt.Sprintf("unknown session: %s", e.SessionID)
}

func (e *SessionUnknownError) Is(target error) bool {
	return target == ErrSessionUnknown
}

// OriginRejectedError represents a request whose Origin header did not
// match the configured allow-list (DNS-rebinding defence).
type OriginRejectedError struct {
	Origin string
}

func (e *OriginRejectedError) Error() string {
	return fmt.Sprintf("origin rejected: %s", e.Origin)
}

func (e *OriginRejectedError) Is(target error) bool {
	return target == ErrOriginRejected
}

// pathPattern strips absolute filesystem paths from error text before it
// reaches an MCP client, regardless of which transport is carrying the
// response.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

// Sanitize renders err's message with local filesystem paths redacted, the
// text every tools/call failure is rendered as across both transports.
func Sanitize(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}
