package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalOAS3 = `
openapi: 3.0.3
info:
  title: Widget API
  version: 1.0.0
paths:
  /widgets/{widgetId}:
    get:
      operationId: getWidget
      parameters:
        - name: widgetId
          in: path
          required: true
          schema:
            $ref: '#/components/schemas/WidgetId'
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Widget'
components:
  schemas:
    WidgetId:
      type: string
    Widget:
      type: object
      properties:
        id:
          $ref: '#/components/schemas/WidgetId'
        name:
          type: string
`

func TestLoadFromBytesResolvesRefs(t *testing.T) {
	doc, err := Load(WithBytes([]byte(minimalOAS3)))
	require.NoError(t, err)
	assert.Equal(t, "Widget API", doc.Info.Title)
	op := doc.Paths["/widgets/{widgetId}"].Get
	require.NotNil(t, op)
	schema := op.Responses["200"].Content["application/json"].Schema
	require.NotNil(t, schema)
	assert.Equal(t, "object", schema.Type)
	idProp := schema.Properties["id"]
	require.NotNil(t, idProp)
	assert.Equal(t, "string", idProp.Type)
}

func TestLoadRequiresExactlyOneSource(t *testing.T) {
	_, err := Load()
	require.Error(t, err)

	_, err = Load(WithBytes([]byte(minimalOAS3)), WithFilePath("/tmp/does-not-matter.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsNon3xVersion(t *testing.T) {
	_, err := Load(WithBytes([]byte("openapi: 4.0.0\ninfo:\n  title: x\n  version: 1\npaths:\n  /x:\n    get:\n      responses:\n        '200':\n          description: ok\n")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported openapi version")
}

func TestLoadRejectsMissingPaths(t *testing.T) {
	_, err := Load(WithBytes([]byte("openapi: 3.0.3\ninfo:\n  title: x\n  version: 1\npaths: {}\n")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no paths")
}

func TestLoadTranslatesSwagger2(t *testing.T) {
	const swagger2 = `
swagger: '2.0'
host: api.example.com
basePath: /v1
schemes: [https]
info:
  title: Legacy API
  version: 1.0.0
consumes: [application/json]
produces: [application/json]
paths:
  /widgets/{id}:
    get:
      operationId: getWidget
      parameters:
        - name: id
          in: path
          required: true
          type: string
      responses:
        '200':
          description: ok
          schema:
            $ref: '#/definitions/Widget'
definitions:
  Widget:
    type: object
    properties:
      id:
        type: string
`
	doc, err := Load(WithBytes([]byte(swagger2)))
	require.NoError(t, err)
	assert.Equal(t, "Legacy API", doc.Info.Title)
	require.Len(t, doc.Servers, 1)
	assert.Equal(t, "https://api.example.com/v1", doc.Servers[0].URL)
	op := doc.Paths["/widgets/{id}"].Get
	require.NotNil(t, op)
	schema := op.Responses["200"].Content["application/json"].Schema
	require.NotNil(t, schema)
	assert.Equal(t, "object", schema.Type)
	require.Len(t, op.Parameters, 1)
	assert.Equal(t, "id", op.Parameters[0].Name)
	require.NotNil(t, op.Parameters[0].Schema)
	assert.Equal(t, "string", op.Parameters[0].Schema.Type)
}

func TestLoadSourceNameOverride(t *testing.T) {
	_, err := Load(WithBytes([]byte("openapi: 3.0.3\ninfo:\n  title: x\n  version: 1\npaths: {}\n")), WithSourceName("my-spec.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "my-spec.yaml")
}
