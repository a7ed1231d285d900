package tui

import (
	"strings"

	"github.com/hoyeonchoKMOU/IsPiNormalNumber/pkg/alg/stats"
)

// sparkBlocks are the eight block glyphs from lowest to highest.
var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// sparkFloor prevents division by zero on all-zero series.
const sparkFloor = 0.001

// Sparkline renders the trailing maxWidth values as a block-glyph
// series normalized to the window maximum. Empty input renders empty.
func Sparkline(values []float64, maxWidth int) string {
	if len(values) == 0 || maxWidth <= 0 {
		return ""
	}

	window := values
	if len(window) > maxWidth {
		window = window[len(window)-maxWidth:]
	}

	maxVal := stats.Max(window)
	if maxVal < sparkFloor {
		maxVal = sparkFloor
	}

	levels := len(sparkBlocks) - 1

	var b strings.Builder

	for _, v := range window {
		idx := stats.Clamp(int(v/maxVal*float64(levels)+0.5), 0, levels)
		b.WriteRune(sparkBlocks[idx])
	}

	return b.String()
}
