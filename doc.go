// Package oas2mcp bridges a single OpenAPI document into a Model Context
// Protocol (MCP) server: every operation in the document becomes a callable
// MCP tool, backed by an HTTP client that executes the real request against
// the document's declared servers.
//
// # Overview
//
// The bridge is built from a small pipeline of packages, each independently
// testable and each responsible for one stage:
//
//   - openapi: parses and normalizes an OpenAPI 3.x document (YAML or JSON)
//   - toolid: encodes/decodes the (method, path) pair of an operation into a
//     short, collision-resistant tool identifier
//   - abbrev: shortens generated tool names to fit MCP client display limits
//     without losing the information needed to disambiguate them
//   - toolsynth: synthesizes one MCP tool per operation from the parsed
//     document (in dynamic mode the registry keeps none of them)
//   - executor: executes a synthesized tool's underlying HTTP request against
//     the target API, applying the configured auth provider
//   - mcpdispatch: the hand-rolled JSON-RPC 2.0 dispatcher used by the
//     streamable HTTP transport
//   - transport/stdio, transport/httpstream: the two transports a client can
//     reach the bridge through
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/oas2mcp/oas2mcp
//
// # Quick Start
//
// Load a document and synthesize its tool registry:
//
//	import (
//		"github.com/oas2mcp/oas2mcp/openapi"
//		"github.com/oas2mcp/oas2mcp/toolsynth"
//	)
//
//	doc, err := openapi.Load(openapi.WithFilePath("petstore.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	reg, err := toolsynth.Synthesize(doc, toolsynth.Options{Mode: toolsynth.ModeAll})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("synthesized %d tools\n", len(reg.Tools))
//
// Execute a tool's request directly:
//
//	import "github.com/oas2mcp/oas2mcp/executor"
//
//	exec := executor.NewExecutor(doc, authProvider, true)
//	tool, _, ok := reg.Lookup("GET::pets__---petId") // tool id or display name
//	if !ok {
//		log.Fatal("tool not found")
//	}
//	result, err := exec.Invoke(ctx, tool, map[string]any{"petId": "42"})
//
// Serve the registry over stdio, the mode a local MCP client (an IDE or
// desktop app) launches as a subprocess:
//
//	import "github.com/oas2mcp/oas2mcp/transport/stdio"
//
//	err = stdio.Run(ctx, reg, exec, prompts, resources, "petstore-bridge", oas2mcp.Version())
//
// Or serve it over the streamable HTTP + SSE transport for remote clients:
//
//	import "github.com/oas2mcp/oas2mcp/transport/httpstream"
//
//	handler := httpstream.New(dispatcher, httpstream.Options{IdleTTL: 15 * time.Minute})
//	http.ListenAndServe(":8080", handler)
//
// # OpenAPI Package
//
// The openapi package loads and normalizes a document from YAML or JSON,
// resolving the pieces toolsynth needs (paths, operations, parameters,
// request bodies, security schemes) into a version-independent shape.
//
// Key features:
//   - OAS 3.0.x and 3.1.x support
//   - Local $ref resolution within a single document
//   - Server objects parsed as written (the executor calls the first
//     server URL without substituting server variables)
//   - Structural validation of required fields
//
// See the openapi package documentation for more details.
//
// # Toolsynth Package
//
// The toolsynth package turns a parsed document into MCP tools. In all mode
// (the default) it emits one tool per operation, named and described from
// the operation's summary, parameters, and request body schema; explicit
// mode keeps only the tools listed by id or name. In dynamic mode the
// registry holds no synthesized tools, only the document. The executor
// package provides ListAPIEndpoints, GetAPIEndpointSchema and
// InvokeAPIEndpoint for discovering and invoking endpoints against that
// document; no transport in this module registers them as MCP tools.
//
// Key features:
//   - Deterministic, collision-resistant tool naming via toolid and abbrev
//   - JSON Schema synthesis for path, query, header, and body parameters
//   - Custom tool registration alongside synthesized ones
//
// # Executor Package
//
// The executor package turns a tool invocation's arguments into a real HTTP
// request against the document's servers, and the response back into the
// tool's output.
//
// Key features:
//   - Path, query, and header parameter binding from tool arguments
//   - Request body construction from the tool's declared content type
//   - A pluggable AuthProvider interface, with NoAuth and StaticHeaders
//     (fixed headers such as an API key or bearer token) built in
//   - Response size limits and content-type-aware body decoding
//
// # Transports
//
// Two transports reach the same underlying registry and executor:
//
//   - transport/stdio delegates JSON-RPC framing entirely to the MCP Go SDK's
//     own server loop, the mode for a locally spawned client subprocess.
//   - transport/httpstream implements the streamable HTTP + SSE transport by
//     hand: POST /mcp for requests, GET /mcp for the SSE response stream,
//     DELETE /mcp to end a session, GET /health for liveness.
//
// # Security Considerations
//
//   - Error messages returned to a client have local filesystem paths
//     redacted (see oaserr.Sanitize) before being sent over either transport.
//   - The streamable HTTP transport checks the Origin header against a
//     configured allow-list before accepting a request.
//   - Auth credentials are never echoed back in a tool's output or in error
//     text.
//
// # Limitations
//
//   - OAS 3.0.x and 3.1.x are the native format; OAS 2.0 (Swagger)
//     documents are translated to the OAS 3 shape on load, best-effort.
//   - Remote ($ref to an external URL) references are not resolved.
//   - One OpenAPI document per server process; joining multiple documents
//     into a single bridge is out of scope.
//
// # Error Handling
//
// All packages return errors directly rather than panicking. The oaserr
// package defines the taxonomy of errors a tool invocation or transport
// request can fail with (unknown tool, unknown session, rejected origin,
// upstream request failure), each wrapping the underlying cause so
// errors.Is/errors.As work across package boundaries.
//
// # Command-Line Interface
//
// In addition to the library packages, oas2mcp provides a command-line
// interface:
//
//	# Serve a document over stdio
//	oas2mcp serve --openapi-spec petstore.yaml
//
//	# Serve over streamable HTTP on a given host and port
//	oas2mcp serve --openapi-spec petstore.yaml --transport http --port 8080
//
//	# Restrict to a subset of tags and attach a static auth header
//	oas2mcp serve --openapi-spec petstore.yaml --tag pets --headers Authorization="Bearer token"
//
//	# Print build information
//	oas2mcp version
//
// Install the CLI:
//
//	go install github.com/oas2mcp/oas2mcp/cmd/oas2mcp@latest
package oas2mcp
