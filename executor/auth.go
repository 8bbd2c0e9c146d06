package executor

import "context"

// AuthProvider is the pluggable two-method authentication contract every
// outbound call goes through: fresh headers are fetched before every
// request, and the provider decides whether a 401/403 response is worth
// one retry.
type AuthProvider interface {
	// AuthHeaders returns the headers to merge over a bound request. Called
	// before every attempt, including the retry, so a provider backed by a
	// token refresh can always hand back a currently-valid credential.
	AuthHeaders(ctx context.Context) (map[string]string, error)

	// HandleAuthError is consulted only after a 401/403 response. Returning
	// true causes AuthHeaders to be re-fetched and the call retried exactly
	// once; returning false (or err being non-nil) ends the call.
	HandleAuthError(ctx context.Context, err error) (bool, error)
}

// NoAuth is an AuthProvider that contributes no headers and never retries,
// for specs with no declared security requirements.
type NoAuth struct{}

func (NoAuth) AuthHeaders(ctx context.Context) (map[string]string, error) { return nil, nil }
func (NoAuth) HandleAuthError(ctx context.Context, err error) (bool, error) {
	return false, nil
}

// StaticHeaders is an AuthProvider that always contributes the same fixed
// set of headers (the `--headers` CLI flag's case) and never retries,
// since a static credential that was rejected once will be rejected again.
type StaticHeaders map[string]string

func (s StaticHeaders) AuthHeaders(ctx context.Context) (map[string]string, error) {
	headers := make(map[string]string, len(s))
	for k, v := range s {
		headers[k] = v
	}
	return headers, nil
}

func (StaticHeaders) HandleAuthError(ctx context.Context, err error) (bool, error) {
	return false, nil
}
