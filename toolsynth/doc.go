// Package toolsynth turns a loaded OpenAPI document into an MCP tool
// registry: one Tool per (path, method, operation), each carrying the
// input JSON Schema, parameter metadata the executor needs to bind a call,
// and a stable id/name pair. It also applies the post-synthesis filtering
// modes (all/dynamic/explicit) that decide which tools a given server
// instance actually exposes.
package toolsynth
