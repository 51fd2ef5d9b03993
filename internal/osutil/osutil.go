// Package osutil holds platform names, exit codes and file modes
package osutil

const Windows = "windows"

type ExitCode int

const (
	ExitOK ExitCode = iota
	ExitError
	// ExitPartial means the session was cut but some tracks failed.
	ExitPartial
)

const (
	DirPermission  = 0o755
	FilePermission = 0o644
)
