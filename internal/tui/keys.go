package tui

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Control bytes recognized by the key listener.
const (
	keyCtrlC = 0x03
	keyEsc   = 0x1b
)

// ListenKeys puts the terminal into raw mode and invokes stop once on
// Esc or Ctrl+C. It returns a restore function that must run before the
// process exits. In raw mode Ctrl+C arrives as a byte rather than
// SIGINT, so the listener is the primary cancellation source for
// interactive runs.
func ListenKeys(in *os.File, stop func()) (restore func(), err error) {
	fd := int(in.Fd())

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}

	go func() {
		buf := make([]byte, 1)

		for {
			n, readErr := in.Read(buf)
			if readErr != nil {
				return
			}

			if n == 1 && (buf[0] == keyCtrlC || buf[0] == keyEsc) {
				stop()

				return
			}
		}
	}()

	return func() {
		_ = term.Restore(fd, oldState)
	}, nil
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Size returns the terminal dimensions of f, falling back to 80×24 when
// they cannot be determined.
func Size(f *os.File) (width, height int) {
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth, 24
	}

	return width, height
}
