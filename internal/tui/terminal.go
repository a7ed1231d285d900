// Package tui renders the live normality dashboard. It is a pure
// consumer of published snapshots: nothing in here feeds back into the
// computation path.
package tui

import "strings"

// Box drawing characters.
const (
	BoxHorizontal = "─"
	BoxVertical   = "│"
)

// Bar characters.
const (
	BarFilled = "█"
)

// DrawSeparator draws a thin horizontal separator line.
func DrawSeparator(width int) string {
	if width <= 0 {
		return ""
	}

	return strings.Repeat(BoxHorizontal, width)
}

// DrawBar draws a solid bar of length proportional to value/maxValue,
// capped at barMax cells.
func DrawBar(value, maxValue uint64, barMax int) string {
	if maxValue == 0 || barMax <= 0 {
		return ""
	}

	cells := int(float64(value) / float64(maxValue) * float64(barMax))
	if cells > barMax {
		cells = barMax
	}

	return strings.Repeat(BarFilled, cells)
}

// PadRight pads s with spaces on the right to reach width.
// If s is already longer than width, returns s unchanged.
func PadRight(s string, width int) string {
	if len(s) >= width {
		return s
	}

	return s + strings.Repeat(" ", width-len(s))
}

// PadLeft pads s with spaces on the left to reach width.
// If s is already longer than width, returns s unchanged.
func PadLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}

	return strings.Repeat(" ", width-len(s)) + s
}

// TruncateHead keeps the trailing maxWidth bytes of s. Used for the
// live digit feed, where the newest digits matter.
func TruncateHead(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	if len(s) <= maxWidth {
		return s
	}

	return s[len(s)-maxWidth:]
}

// TruncateTail keeps the leading maxWidth bytes of s. Used for the
// pinned π prefix, where the oldest digits matter.
func TruncateTail(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	if len(s) <= maxWidth {
		return s
	}

	return s[:maxWidth]
}

// DigitsString converts a slice of digit values 0–9 into their ASCII
// representation.
func DigitsString(digits []byte) string {
	var b strings.Builder

	b.Grow(len(digits))

	for _, d := range digits {
		b.WriteByte('0' + d)
	}

	return b.String()
}
