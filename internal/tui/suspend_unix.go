//go:build unix

package tui

import "golang.org/x/sys/unix"

// suspendProcess stops the process the way a shell's ^Z does. It returns
// once the process is continued.
func suspendProcess() error {
	return unix.Kill(unix.Getpid(), unix.SIGTSTP)
}
