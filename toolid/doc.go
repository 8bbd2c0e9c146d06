// Package toolid implements the bidirectional codec between an OpenAPI
// (method, path) operation pair and the single opaque token used as an MCP
// tool's id.
//
// The token survives round-tripping through MCP clients that only see a
// flat string: uppercase method, "::" separator, then the path with "/"
// folded to "__", "{param}" folded to "---param", and a lone ":" (the
// Google-RPC action suffix, e.g. "widgets/{id}:activate") left untouched.
//
// toolid is deliberately the lowest-level package in this module — nothing
// here depends on openapi, registry, or executor — so that the encode/
// decode grammar can be tested in complete isolation (see §8 of the design
// spec: round-trip, double-colon rejection, and interpolation properties).
package toolid
