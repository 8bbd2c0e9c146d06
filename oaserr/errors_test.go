package oaserr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecLoadError_IsMatchesSentinel(t *testing.T) {
	err := &SpecLoadError{Source: "petstore.yaml", Message: "not found"}
	assert.True(t, errors.Is(err, ErrSpecLoad))
	assert.Contains(t, err.Error(), "petstore.yaml")
	assert.Contains(t, err.Error(), "not found")
}

func TestSpecLoadError_UnwrapsCause(t *testing.T) {
	cause := errors.New("disk failure")
	err := &SpecLoadError{Cause: cause}
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.Contains(t, err.Error(), "disk failure")
}

func TestToolNotFoundError_IsMatchesSentinel(t *testing.T) {
	err := &ToolNotFoundError{NameOrID: "getWidget"}
	assert.True(t, errors.Is(err, ErrToolNotFound))
	assert.Contains(t, err.Error(), "getWidget")
}

func TestMissingParameterError_FormatsNameAndLocation(t *testing.T) {
	err := &MissingParameterError{Name: "petId", In: "path"}
	assert.True(t, errors.Is(err, ErrMissingParameter))
	assert.Equal(t, "missing required path parameter: petId", err.Error())
}

func TestHeaderInjectionError_IsMatchesSentinel(t *testing.T) {
	err := &HeaderInjectionError{HeaderName: "X-Custom"}
	assert.True(t, errors.Is(err, ErrHeaderInjection))
}

func TestSystemHeaderConflictError_IsMatchesSentinel(t *testing.T) {
	err := &SystemHeaderConflictError{HeaderName: "Content-Length"}
	assert.True(t, errors.Is(err, ErrSystemHeaderConflict))
}

func TestAuthHeaderConflictError_IsMatchesSentinel(t *testing.T) {
	err := &AuthHeaderConflictError{HeaderName: "Authorization"}
	assert.True(t, errors.Is(err, ErrAuthHeaderConflict))
}

func TestTimeoutError_UnwrapsCause(t *testing.T) {
	cause := errors.New("context deadline exceeded")
	err := &TimeoutError{Cause: cause}
	assert.True(t, errors.Is(err, ErrTimeout))
	require.Equal(t, cause, errors.Unwrap(err))
}

func TestNetworkError_IsMatchesSentinel(t *testing.T) {
	err := &NetworkError{Cause: errors.New("connection refused")}
	assert.True(t, errors.Is(err, ErrNetwork))
}

func TestSessionUnknownError_IsMatchesSentinel(t *testing.T) {
	err := &SessionUnknownError{SessionID: "abc-123"}
	assert.True(t, errors.Is(err, ErrSessionUnknown))
	assert.Contains(t, err.Error(), "abc-123")
}

func TestOriginRejectedError_IsMatchesSentinel(t *testing.T) {
	err := &OriginRejectedError{Origin: "https://evil.example"}
	assert.True(t, errors.Is(err, ErrOriginRejected))
	assert.Contains(t, err.Error(), "https://evil.example")
}

func TestSanitize_RedactsFilesystemPaths(t *testing.T) {
	err := &SpecLoadError{Source: "/home/alice/specs/petstore.yaml", Message: "permission denied"}
	got := Sanitize(err)
	assert.NotContains(t, got, "/home/alice")
	assert.Contains(t, got, "<path>")
	assert.Contains(t, got, "permission denied")
}

func TestSanitize_NilErrorReturnsEmptyString(t *testing.T) {
	assert.Equal(t, "", Sanitize(nil))
}

func TestSanitize_LeavesNonPathTextUnchanged(t *testing.T) {
	err := errors.New("invalid tool id format")
	assert.Equal(t, "invalid tool id format", Sanitize(err))
}
