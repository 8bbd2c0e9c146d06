// Package options provides shared utilities for functional-option
// validation across packages (openapi.Load, the serve command's flag checks).
package options

import "fmt"

// ValidateSingleInputSource ensures exactly one input source is specified.
// sources is a variadic list of booleans indicating whether each source is
// set. Returns an error if zero or more than one are set.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	count := 0
	for _, hasSource := range sources {
		if hasSource {
			count++
		}
	}
	if count == 0 {
		return fmt.Errorf("%s", noSourceMsg)
	}
	if count > 1 {
		return fmt.Errorf("%s", multiSourceMsg)
	}
	return nil
}
