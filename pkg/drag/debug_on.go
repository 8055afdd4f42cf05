//go:build sheetdock_debug

package drag

import "fmt"

// mustHold panics when a controller invariant is broken.
func mustHold(ok bool, format string, args ...any) {
	if !ok {
		panic(fmt.Sprintf("drag: "+format, args...))
	}
}
