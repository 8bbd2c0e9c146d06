// Package abbrev derives a stable, collision-resistant MCP tool display
// name (≤ 64 chars, matching ^[a-z0-9_-]+$) from an OpenAPI operationId or
// a synthesised "METHOD-path" fallback.
//
// The pipeline tokenizes on camelCase/digit/underscore/hyphen boundaries,
// always drops filler words and applies a small abbreviation dictionary,
// and then, only if the joined result is still longer than 64 characters,
// strips interior vowels from tokens longer than four characters. A name
// that still doesn't fit, or whose operationId is itself longer than 64
// characters, is truncated and suffixed with a stable hash of the original
// operationId, so identical inputs always abbreviate to identical names.
package abbrev
