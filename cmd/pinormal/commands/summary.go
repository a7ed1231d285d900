package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/hoyeonchoKMOU/IsPiNormalNumber/internal/digitstats"
)

// summaryTable renders the final uniformity verdict for a run.
func summaryTable(snap digitstats.Snapshot) string {
	verdict := "SKEWED"
	if snap.Uniform() {
		verdict = "UNIFORM"
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false
	// StyleLight upper-cases footer cells; keep the label casing
	// aligned with the row labels above it.
	tbl.Style().Format.Footer = text.FormatDefault

	tbl.AppendRow(table.Row{"Digits analyzed", humanize.Comma(int64(snap.Digits))})
	tbl.AppendRow(table.Row{"Chi-squared", fmt.Sprintf("%.4f (critical %.3f)", snap.ChiSquared, digitstats.ChiSquaredCritical95)})
	tbl.AppendRow(table.Row{"Entropy", fmt.Sprintf("%.6f / %.6f bits", snap.EntropyBits, digitstats.MaxEntropyBits)})
	tbl.AppendRow(table.Row{"Max deviation", fmt.Sprintf("%.6f", snap.MaxDeviation)})
	tbl.AppendFooter(table.Row{"Verdict", verdict})

	return tbl.Render()
}

// analyzeDigits runs the full digit stream through a fresh tracker.
func analyzeDigits(digits []byte) digitstats.Snapshot {
	tracker := digitstats.NewTracker(digitstats.Options{})
	for _, d := range digits {
		tracker.Ingest(d)
	}

	tracker.AppendSample()

	return tracker.Snapshot(false, 0)
}
