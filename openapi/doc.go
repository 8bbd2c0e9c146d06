// Package openapi loads an OpenAPI 3.x document (JSON or YAML, with
// best-effort Swagger 2.0 acceptance) into the trimmed object model this
// bridge actually needs: paths, operations, parameters, request bodies,
// responses, and the subset of components that tool synthesis reads.
//
// Load resolves "#/components/**" references in place, leaving the
// returned Document free of $ref nodes wherever a cycle doesn't force one
// to remain (a cyclic reference resolves to an empty object rather than
// looping forever). It does not fetch external files or HTTP refs — this
// bridge only ever ingests a single already-fetched document.
package openapi
