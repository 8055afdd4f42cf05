//go:build !sheetdock_debug

package drag

// mustHold is a no-op outside sheetdock_debug builds.
func mustHold(bool, string, ...any) {}
