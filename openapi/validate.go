package openapi

import (
	"fmt"

	"github.com/oas2mcp/oas2mcp/oaserr"
)

// validateStructure performs the cheap structural checks Load needs before
// handing a Document to tool synthesis: the pieces synthesis and the
// executor assume are present. It does not attempt full JSON-Schema
// validation of the document against the OpenAPI meta-schema — the teacher
// does not either, preferring to fail late and specifically at the point a
// malformed piece is actually used.
func validateStructure(doc *Document, source string) error {
	if doc.OpenAPI == "" {
		return &oaserr.SpecShapeError{Path: source, Message: "missing \"openapi\" version field"}
	}
	if doc.OpenAPI[0] != '3' {
		return &oaserr.SpecShapeError{Path: source, Message: fmt.Sprintf("unsupported openapi version %q, only 3.x is supported", doc.OpenAPI)}
	}
	if doc.Info == nil {
		return &oaserr.SpecShapeError{Path: source, Message: "missing \"info\" object"}
	}
	if doc.Info.Title == "" {
		return &oaserr.SpecShapeError{Path: source + "#/info", Message: "\"info.title\" must not be empty"}
	}
	if len(doc.Paths) == 0 {
		return &oaserr.SpecShapeError{Path: source + "#/paths", Message: "document defines no paths"}
	}
	for path, item := range doc.Paths {
		if item == nil {
			return &oaserr.SpecShapeError{Path: source + "#/paths/" + path, Message: "path item must not be empty"}
		}
		for _, entry := range item.Operations() {
			if entry.Op.Responses == nil {
				return &oaserr.SpecShapeError{
					Path:    fmt.Sprintf("%s#/paths%s/%s", source, path, entry.Method),
					Message: "operation must declare at least one response",
				}
			}
		}
	}
	return nil
}
