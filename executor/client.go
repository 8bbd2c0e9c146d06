package executor

import (
	"net/http"
	"time"

	"github.com/oas2mcp/oas2mcp/internal/netsafe"
)

const (
	requestTimeout  = 30 * time.Second
	maxRequestBody  = 50 * 1024 * 1024
	maxResponseBody = 50 * 1024 * 1024
	maxRedirects    = 5
)

// NewOutboundClient builds the bounded, SSRF-safe client every outbound
// tool call is issued through: 30s timeout, 5 redirects max, no cookie jar
// (cookie parameters are sent as an explicit Cookie header instead, see
// bind.go, since a shared jar would leak cookies across unrelated tool
// invocations sharing this client).
func NewOutboundClient(allowPrivateIPs bool) *http.Client {
	return netsafe.NewClientWithRedirectLimit(requestTimeout, maxRedirects, allowPrivateIPs)
}
