package tui

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/hoyeonchoKMOU/IsPiNormalNumber/internal/digitstats"
	"github.com/hoyeonchoKMOU/IsPiNormalNumber/pkg/alg/stats"
)

// Dashboard layout rows, mirroring the flicker-free fixed grid: every
// frame overwrites the same rows in place and clears to end of line, so
// the screen is only wiped once.
const (
	rowTitle    = 0
	rowSepTop   = 1
	rowBars     = 2
	rowSepMid   = 12
	rowPiPrefix = 13
	rowRecent   = 14
	rowSepLow   = 15
	rowStats    = 16
	rowSparkDev = 18
	rowSparkEnt = 19
	rowSparkChi = 20
	rowHint     = 22
	rowCount    = 23
)

// Layout widths.
const (
	defaultWidth   = 80
	minBarCells    = 10
	barReserved    = 36
	piPrefixIndent = 14
	recentIndent   = 16
	sparkIndent    = 38
	minSparkCells  = 10
	percentScale   = 100
)

// barPalette assigns one color per digit, cycling through the standard
// and bright ANSI foregrounds.
var barPalette = [digitstats.AlphabetSize]color.Attribute{
	color.FgRed,
	color.FgGreen,
	color.FgYellow,
	color.FgBlue,
	color.FgMagenta,
	color.FgCyan,
	color.FgWhite,
	color.FgHiRed,
	color.FgHiGreen,
	color.FgHiYellow,
}

// Dashboard renders snapshots into a fixed terminal grid.
type Dashboard struct {
	out     io.Writer
	width   int
	height  int
	noColor bool
	cleared bool
}

// NewDashboard creates a renderer writing to out at the given terminal
// width. Width values below 1 fall back to 80 columns; the height
// starts at the full grid and can be reduced with SetSize.
func NewDashboard(out io.Writer, width int, noColor bool) *Dashboard {
	if width <= 0 {
		width = defaultWidth
	}

	return &Dashboard{out: out, width: width, height: rowCount, noColor: noColor}
}

// SetWidth updates the render width, e.g. after a terminal resize.
func (d *Dashboard) SetWidth(width int) {
	if width > 0 {
		d.width = width
	}
}

// SetSize updates both render dimensions. On terminals shorter than
// the grid only the top rows are painted, so the frame never scrolls.
func (d *Dashboard) SetSize(width, height int) {
	d.SetWidth(width)

	if height > 0 {
		d.height = height
	}
}

// Draw paints a snapshot. The first call clears the screen; later calls
// overwrite rows in place.
func (d *Dashboard) Draw(snap digitstats.Snapshot) error {
	if !d.cleared {
		_, err := fmt.Fprint(d.out, ansiClearAll)
		if err != nil {
			return fmt.Errorf("clear screen: %w", err)
		}

		d.cleared = true
	}

	lines := d.RenderLines(snap)
	if len(lines) > d.height {
		lines = lines[:d.height]
	}

	for row, line := range lines {
		_, err := fmt.Fprintf(d.out, "%s%s%s", ansiMoveTo(row), line, ansiClearEOL)
		if err != nil {
			return fmt.Errorf("draw row %d: %w", row, err)
		}
	}

	return nil
}

// RenderLines produces the full grid as plain line contents, one entry
// per row. Positioning is left to Draw so the layout is testable.
func (d *Dashboard) RenderLines(snap digitstats.Snapshot) []string {
	lines := make([]string, rowCount)

	lines[rowTitle] = d.titleLine(snap)
	lines[rowSepTop] = DrawSeparator(d.width)

	maxCount := stats.Max(snap.Counts[:])
	for digit, count := range snap.Counts {
		lines[rowBars+digit] = d.barLine(byte(digit), count, maxCount, snap.Digits)
	}

	lines[rowSepMid] = DrawSeparator(d.width)
	lines[rowPiPrefix] = d.piPrefixLine(snap)
	lines[rowRecent] = d.recentLine(snap)
	lines[rowSepLow] = DrawSeparator(d.width)
	lines[rowStats] = d.statsLine(snap)

	sparkWidth := max(d.width-sparkIndent, minSparkCells)

	lines[rowSparkDev] = d.dim("  Max |deviation| → 0 : ") +
		d.paint(Sparkline(snap.MaxDeviationSeries(), sparkWidth), color.FgCyan)
	lines[rowSparkEnt] = d.dim("  Entropy → 3.3219 : ") +
		d.paint(Sparkline(snap.EntropySeries(), sparkWidth), color.FgGreen)
	lines[rowSparkChi] = d.dim("  χ² → 0 : ") +
		d.paint(Sparkline(snap.ChiSquaredSeries(), sparkWidth), color.FgYellow)

	if snap.Running {
		lines[rowHint] = d.dim("  Press Ctrl+C or ESC to stop")
	} else {
		lines[rowHint] = d.paint("  Stopped", color.FgYellow)
	}

	return lines
}

func (d *Dashboard) titleLine(snap digitstats.Snapshot) string {
	title := fmt.Sprintf(
		"  Pi Normal Number Test — %s digits (%.0f d/s)     [Chudnovsky Binary Splitting]",
		humanize.Comma(int64(snap.Digits)),
		snap.RatePerSec,
	)

	return d.paint(title, color.Bold)
}

func (d *Dashboard) barLine(digit byte, count, maxCount, total uint64) string {
	var pct, dev float64
	if total > 0 {
		pct = float64(count) / float64(total) * percentScale
		dev = pct - percentScale/digitstats.AlphabetSize
	}

	barMax := max(d.width-barReserved, minBarCells)
	bar := DrawBar(count, maxCount, barMax)

	return fmt.Sprintf("  %d %s %s %s (%5.2f%% %+6.2f%%)",
		digit,
		BoxVertical,
		d.paint(bar, barPalette[digit]),
		PadLeft(humanize.Comma(int64(count)), 8),
		pct,
		dev,
	)
}

func (d *Dashboard) piPrefixLine(snap digitstats.Snapshot) string {
	shown := TruncateTail(DigitsString(snap.First), max(d.width-piPrefixIndent, 1))

	ellipsis := ""
	if snap.Digits > uint64(len(snap.First)) {
		ellipsis = d.dim("...")
	}

	return d.paint("  Pi = 3.", color.Bold) + shown + ellipsis
}

func (d *Dashboard) recentLine(snap digitstats.Snapshot) string {
	shown := TruncateHead(DigitsString(snap.Recent), max(d.width-recentIndent, 1))

	return d.dim("  Latest: ...") + shown
}

func (d *Dashboard) statsLine(snap digitstats.Snapshot) string {
	if snap.Digits == 0 {
		return d.dim("  warming up...")
	}

	verdict := d.paint("SKEWED", color.FgYellow)
	if snap.Uniform() {
		verdict = d.paint("UNIFORM", color.FgGreen)
	}

	entropyPct := snap.EntropyBits / digitstats.MaxEntropyBits * percentScale

	return fmt.Sprintf("%s%-8.3f %s   Entropy: %.4f/%.4f bits (%.2f%%)   |dev|max: %.3f%%",
		d.paint("  χ²= ", color.Bold),
		snap.ChiSquared,
		verdict,
		snap.EntropyBits,
		digitstats.MaxEntropyBits,
		entropyPct,
		snap.MaxDeviation*percentScale,
	)
}

// paint applies a color attribute unless colors are disabled.
func (d *Dashboard) paint(s string, attr color.Attribute) string {
	if d.noColor {
		return s
	}

	c := color.New(attr)
	c.EnableColor()

	return c.Sprint(s)
}

// dim renders secondary text in the faint gray used for labels.
func (d *Dashboard) dim(s string) string {
	return d.paint(s, color.FgHiBlack)
}
