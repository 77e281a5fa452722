// Package terminal provides terminal detection utilities.
package terminal

import (
	"os"

	"golang.org/x/term"
)

var isTerminalFn = term.IsTerminal

// IsInteractive reports whether stdin and stderr are both interactive terminals.
// Prompts read from stdin and draw on stderr so stdout stays machine-readable.
func IsInteractive() bool {
	return isTerminalFn(int(os.Stdin.Fd())) && isTerminalFn(int(os.Stderr.Fd()))
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isTerminalFn(int(f.Fd()))
}
