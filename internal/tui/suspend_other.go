//go:build !unix

package tui

// suspendProcess is a no-op where there is no job control.
func suspendProcess() error {
	return nil
}
