package executor

import (
	"strings"

	"github.com/oas2mcp/oas2mcp/oaserr"
)

// systemControlledHeaders are headers the transport, not a caller, must
// control: letting a caller set any of these would enable request
// smuggling or host-header injection.
var systemControlledHeaders = map[string]bool{
	"host":             true,
	"content-length":   true,
	"transfer-encoding": true,
	"connection":       true,
	"upgrade":          true,
	"te":               true,
	"trailer":          true,
	"proxy-connection": true,
	"keep-alive":       true,
}

// callerAllowedWithoutAuthProvider is the set of headers a caller may set
// directly when no auth provider is configured for this spec.
var callerAllowedWithoutAuthProvider = map[string]bool{
	"authorization": true,
	"cookie":        true,
}

func isSystemControlledHeader(name string) bool {
	return systemControlledHeaders[strings.ToLower(name)]
}

func containsCRLF(value string) bool {
	return strings.ContainsAny(value, "\r\n")
}

// validateHeader rejects CRLF injection and system-controlled header names
// before a header is added to an outbound request.
func validateHeader(name, value string) error {
	if containsCRLF(value) {
		return &oaserr.HeaderInjectionError{HeaderName: name}
	}
	if isSystemControlledHeader(name) {
		return &oaserr.SystemHeaderConflictError{HeaderName: name}
	}
	return nil
}

// validateAuthMerge checks a caller-supplied header against the set the
// auth provider contributes. A direct name collision is always rejected.
// "authorization"/"cookie" are additionally reserved for the auth provider
// whenever one is configured, even if it happens not to set that specific
// header this call — a caller only gets to set those two itself when the
// spec has no auth provider at all.
func validateAuthMerge(name string, authHeaders map[string]string, hasAuthProvider bool) error {
	lower := strings.ToLower(name)
	if _, collides := lookupHeaderCI(authHeaders, lower); collides {
		return &oaserr.AuthHeaderConflictError{HeaderName: name}
	}
	if hasAuthProvider && callerAllowedWithoutAuthProvider[lower] {
		return &oaserr.AuthHeaderConflictError{HeaderName: name}
	}
	return nil
}

func lookupHeaderCI(headers map[string]string, lowerName string) (string, bool) {
	for k, v := range headers {
		if strings.ToLower(k) == lowerName {
			return v, true
		}
	}
	return "", false
}
