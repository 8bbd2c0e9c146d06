package executor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oas2mcp/oas2mcp/oaserr"
	"github.com/oas2mcp/oas2mcp/openapi"
	"github.com/oas2mcp/oas2mcp/toolsynth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docWithServer(url string) *openapi.Document {
	return &openapi.Document{Servers: []*openapi.Server{{URL: url}}}
}

func TestExecutorInvokeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/widgets/7", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"7","name":"gadget"}`))
	}))
	defer srv.Close()

	exec := NewExecutor(docWithServer(srv.URL), nil, true)
	tool := &toolsynth.Tool{
		HTTPMethod:   "GET",
		OriginalPath: "/widgets/{id}",
		ParametersMeta: []toolsynth.ParamMeta{
			{Name: "id", In: toolsynth.LocationPath, Required: true},
		},
	}

	result, err := exec.Invoke(context.Background(), tool, map[string]any{"id": "7"})
	require.NoError(t, err)
	assert.Equal(t, 200, result.StatusCode)
	body, ok := result.Body.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "gadget", body["name"])
}

func TestExecutorInvokeUpstreamErrorSanitizesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	exec := NewExecutor(docWithServer(srv.URL), nil, true)
	tool := &toolsynth.Tool{HTTPMethod: "GET", OriginalPath: "/fail"}

	_, err := exec.Invoke(context.Background(), tool, map[string]any{})
	var upErr *oaserr.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, 500, upErr.StatusCode)
	assert.Equal(t, "boom", upErr.Message)
}

func TestExecutorInvokeRedactsUnauthorizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("token expired: eyJhbGciOi..."))
	}))
	defer srv.Close()

	exec := NewExecutor(docWithServer(srv.URL), nil, true)
	tool := &toolsynth.Tool{HTTPMethod: "GET", OriginalPath: "/secret"}

	_, err := exec.Invoke(context.Background(), tool, map[string]any{})
	var upErr *oaserr.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, redactedAuthBody, upErr.Message)
}

type retryOnceAuth struct {
	headers   map[string]string
	retried   bool
	attempted int
}

func (a *retryOnceAuth) AuthHeaders(ctx context.Context) (map[string]string, error) {
	a.attempted++
	return a.headers, nil
}

func (a *retryOnceAuth) HandleAuthError(ctx context.Context, err error) (bool, error) {
	if a.retried {
		return false, nil
	}
	a.retried = true
	a.headers = map[string]string{"Authorization": "Bearer refreshed"}
	return true, nil
}

func TestExecutorRetriesOnceOn401(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Header.Get("Authorization") == "Bearer refreshed" {
			w.Write([]byte(`{"ok":true}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	auth := &retryOnceAuth{}
	exec := NewExecutor(docWithServer(srv.URL), auth, true)
	tool := &toolsynth.Tool{HTTPMethod: "GET", OriginalPath: "/needs-auth"}

	result, err := exec.Invoke(context.Background(), tool, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, 200, result.StatusCode)
	assert.Equal(t, 2, calls)
}

func TestExecutorDoesNotRetryTwice(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	auth := &retryOnceAuth{}
	exec := NewExecutor(docWithServer(srv.URL), auth, true)
	tool := &toolsynth.Tool{HTTPMethod: "GET", OriginalPath: "/always-fails"}

	_, err := exec.Invoke(context.Background(), tool, map[string]any{})
	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestExecutorRejectsCallerAuthorizationHeaderWhenProviderConfigured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("server should not be called when header validation rejects the request")
	}))
	defer srv.Close()

	exec := NewExecutor(docWithServer(srv.URL), StaticHeaders{"Authorization": "Bearer server-token"}, true)
	tool := &toolsynth.Tool{
		HTTPMethod:   "GET",
		OriginalPath: "/widgets",
		ParametersMeta: []toolsynth.ParamMeta{
			{Name: "Authorization", In: toolsynth.LocationHeader},
		},
	}

	_, err := exec.Invoke(context.Background(), tool, map[string]any{"Authorization": "Bearer caller-token"})
	var acErr *oaserr.AuthHeaderConflictError
	assert.True(t, errors.As(err, &acErr))
}
