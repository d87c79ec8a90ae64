//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package cli

// isTerminal always reports false, so the REPL reads plain lines.
func isTerminal(uintptr) bool { return false }
