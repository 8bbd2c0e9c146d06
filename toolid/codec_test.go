package toolid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"simple", "GET", "/widgets"},
		{"single param", "GET", "/widgets/{id}"},
		{"nested params", "POST", "/accounts/{accountId}/widgets/{widgetId}"},
		{"rpc action suffix", "POST", "/api/widgets/{widgetId}:activate"},
		{"trailing slash preserved", "GET", "/widgets/"},
		{"no leading slash", "DELETE", "widgets/{id}"},
		{"deep nesting", "GET", "/a/{b}/c/{d}/e/{f}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Encode(tt.method, tt.path)
			require.NoError(t, err)

			gotMethod, gotPath, err := Decode(id)
			require.NoError(t, err)
			assert.Equal(t, tt.method, gotMethod)

			expectedPath := tt.path
			if expectedPath == "" || expectedPath[0] != '/' {
				expectedPath = "/" + expectedPath
			}
			assert.Equal(t, expectedPath, gotPath)
		})
	}
}

func TestEncodeUppercasesMethod(t *testing.T) {
	id, err := Encode("get", "/widgets")
	require.NoError(t, err)
	assert.Equal(t, "GET::widgets", id)
}

func TestEncodeWorkedExample(t *testing.T) {
	// §8 S3: POST /api/widgets/{widgetId}:activate
	id, err := Encode("POST", "/api/widgets/{widgetId}:activate")
	require.NoError(t, err)
	assert.Equal(t, "POST::api__widgets__---widgetId:activate", id)

	method, path, err := Decode(id)
	require.NoError(t, err)
	assert.Equal(t, "POST", method)
	assert.Equal(t, "/api/widgets/{widgetId}:activate", path)
}

func TestEncodeRejectsDoubleColonInPath(t *testing.T) {
	_, err := Encode("GET", "/widgets::deprecated")
	require.Error(t, err)
	assert.ErrorContains(t, err, "::")
}

func TestEncodeRejectsEmptyMethod(t *testing.T) {
	_, err := Encode("", "/widgets")
	require.Error(t, err)
}

func TestDecodeRejectsMissingSeparator(t *testing.T) {
	_, _, err := Decode("GETwidgets")
	require.Error(t, err)
}

func TestDecodeRejectsEmptyMethod(t *testing.T) {
	_, _, err := Decode("::widgets")
	require.Error(t, err)
}

func TestDecodeRejectsSecondDoubleColon(t *testing.T) {
	_, _, err := Decode("GET::widgets::extra")
	require.Error(t, err)
}

func TestSanitizeRunCollapsesDisallowedCharacters(t *testing.T) {
	id, err := Encode("GET", "/widgets/{a b}")
	require.NoError(t, err)
	assert.Equal(t, "GET::widgets__---a-b", id)
}

func TestEncodePreservesColonOutsideParams(t *testing.T) {
	id, err := Encode("POST", "/jobs/{jobId}:cancel")
	require.NoError(t, err)
	assert.Contains(t, id, ":cancel")
}
