// Package executor turns a resolved tool invocation (tool id plus MCP
// arguments) into exactly one outbound HTTP transaction: it binds
// arguments to path/query/header/cookie/body per their declared OAS3
// serialization style, injects auth headers, retries once on 401/403, and
// sanitizes failure messages before they reach the caller.
package executor
