// Package report renders digit-uniformity convergence charts as a
// standalone HTML page.
package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/hoyeonchoKMOU/IsPiNormalNumber/internal/digitstats"
)

const (
	chartWidth  = "1100px"
	chartHeight = "420px"
	lineWidth   = 2

	colorChi     = "#5470c6"
	colorEntropy = "#91cc75"
	colorMaxDev  = "#fac858"
	colorLimit   = "#ee6666"
)

// WriteConvergencePage renders the convergence history of the snapshot
// as an HTML page with one chart per statistic.
func WriteConvergencePage(w io.Writer, snap digitstats.Snapshot) error {
	page := components.NewPage()
	page.SetLayout(components.PageCenterLayout)
	page.PageTitle = pageTitle(snap)

	page.AddCharts(
		chiSquaredChart(snap),
		entropyChart(snap),
		maxDeviationChart(snap),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render convergence page: %w", err)
	}

	return nil
}

func pageTitle(snap digitstats.Snapshot) string {
	return fmt.Sprintf("Pi Digit Uniformity - %s digits", humanize.Comma(int64(snap.Digits)))
}

func chiSquaredChart(snap digitstats.Snapshot) *charts.Line {
	labels := sampleLabels(snap.History)

	line := newLineChart(
		"Chi-Squared Convergence",
		fmt.Sprintf("Statistic against the 95%% critical value (%.3f, 9 degrees of freedom).", digitstats.ChiSquaredCritical95),
		"Chi-squared",
	)
	line.SetXAxis(labels)
	line.AddSeries("Chi-squared", lineData(snap.ChiSquaredSeries()),
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: colorChi}),
		charts.WithLineStyleOpts(opts.LineStyle{Width: lineWidth}),
	)
	line.AddSeries("95% critical value", constantSeries(digitstats.ChiSquaredCritical95, len(labels)),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: colorLimit}),
		charts.WithLineStyleOpts(opts.LineStyle{Width: 1, Type: "dashed"}),
	)

	return line
}

func entropyChart(snap digitstats.Snapshot) *charts.Line {
	labels := sampleLabels(snap.History)

	line := newLineChart(
		"Shannon Entropy Convergence",
		fmt.Sprintf("Bits per digit; a uniform stream approaches log2(10) = %.4f.", digitstats.MaxEntropyBits),
		"Entropy (bits)",
	)
	line.SetXAxis(labels)
	line.AddSeries("Entropy", lineData(snap.EntropySeries()),
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: colorEntropy}),
		charts.WithLineStyleOpts(opts.LineStyle{Width: lineWidth}),
	)
	line.AddSeries("Uniform limit", constantSeries(digitstats.MaxEntropyBits, len(labels)),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: colorLimit}),
		charts.WithLineStyleOpts(opts.LineStyle{Width: 1, Type: "dashed"}),
	)

	return line
}

func maxDeviationChart(snap digitstats.Snapshot) *charts.Line {
	labels := sampleLabels(snap.History)

	line := newLineChart(
		"Maximum Frequency Deviation",
		"Largest absolute distance of any digit frequency from the expected 10%.",
		"Max deviation",
	)
	line.SetXAxis(labels)
	line.AddSeries("Max deviation", lineData(snap.MaxDeviationSeries()),
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: colorMaxDev}),
		charts.WithLineStyleOpts(opts.LineStyle{Width: lineWidth}),
	)

	return line
}

func newLineChart(title, subtitle, yName string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  chartWidth,
			Height: chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Digits analyzed"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
		charts.WithDataZoomOpts(
			opts.DataZoom{Type: "slider", Start: 0, End: 100},
			opts.DataZoom{Type: "inside"},
		),
	)

	return line
}

func sampleLabels(history []digitstats.Sample) []string {
	labels := make([]string, len(history))
	for i, s := range history {
		labels[i] = humanize.Comma(int64(s.Digits))
	}

	return labels
}

func lineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		data[i] = opts.LineData{Value: v}
	}

	return data
}

func constantSeries(value float64, n int) []opts.LineData {
	data := make([]opts.LineData, n)
	for i := range data {
		data[i] = opts.LineData{Value: value}
	}

	return data
}
