package tui

import "fmt"

// ANSI control sequences for the in-place repaint cycle.
const (
	ansiClearAll    = "\x1b[2J"
	ansiClearEOL    = "\x1b[K"
	ansiHideCursor  = "\x1b[?25l"
	ansiShowCursor  = "\x1b[?25h"
	ansiAltScreenOn = "\x1b[?1049h"
	ansiAltScreenOf = "\x1b[?1049l"
)

// ansiMoveTo positions the cursor at the start of the given zero-based
// row.
func ansiMoveTo(row int) string {
	return fmt.Sprintf("\x1b[%d;1H", row+1)
}

// EnterSequence and LeaveSequence are emitted by the run command around
// the draw loop: alternate screen buffer plus cursor visibility.
const (
	EnterSequence = ansiAltScreenOn + ansiHideCursor
	LeaveSequence = ansiShowCursor + ansiAltScreenOf
)
