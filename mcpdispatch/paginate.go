package mcpdispatch

import (
	"strconv"

	"github.com/oas2mcp/oas2mcp/oaserr"
)

// paginate applies cursor-offset/limit pagination to a slice, the same
// shape as the teacher's walk_* tools use for large result sets: the page
// size is defaultSize (100 when defaultSize is not positive), and the
// returned page never exceeds a positive maxSize.
func paginate[T any](items []T, offset, defaultSize, maxSize int) []T {
	limit := defaultSize
	if limit <= 0 {
		limit = 100
	}
	if maxSize > 0 && limit > maxSize {
		limit = maxSize
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func encodeCursor(offset int) string {
	return strconv.Itoa(offset)
}

func decodeCursor(cursor string) int {
	if cursor == "" {
		return 0
	}
	n, err := strconv.Atoi(cursor)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func sanitizeErrorText(err error) string {
	return oaserr.Sanitize(err)
}
