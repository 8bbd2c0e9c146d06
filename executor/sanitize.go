package executor

const (
	redactedAuthBody = "[Authentication/Authorization error — details redacted]"
	truncatedSuffix  = "… [truncated]"
	maxErrorBodyLen  = 1000
)

// sanitizeUpstreamBody implements the response-body sanitization rule: a
// 401/403 body is never surfaced verbatim, no matter what it contains.
// Any other failing body is capped at maxErrorBodyLen runes.
func sanitizeUpstreamBody(statusCode int, body string) string {
	if statusCode == 401 || statusCode == 403 {
		return redactedAuthBody
	}
	runes := []rune(body)
	if len(runes) <= maxErrorBodyLen {
		return body
	}
	return string(runes[:maxErrorBodyLen]) + truncatedSuffix
}
