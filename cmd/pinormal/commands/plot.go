package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hoyeonchoKMOU/IsPiNormalNumber/internal/chudnovsky"
	"github.com/hoyeonchoKMOU/IsPiNormalNumber/internal/dump"
	"github.com/hoyeonchoKMOU/IsPiNormalNumber/internal/report"
)

// PlotCommand holds flags for the HTML convergence report command.
type PlotCommand struct {
	digits   int
	inPath   string
	outPath  string
	messages io.Writer
}

// NewPlotCommand creates the convergence report command.
func NewPlotCommand() *cobra.Command {
	plot := &PlotCommand{messages: os.Stdout}

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render digit-uniformity convergence as an HTML page",
		Long: `Render chi-squared, entropy, and max-deviation convergence charts
to a standalone HTML file. Digits come from a fresh computation
(--digits) or from an LZ4 dump written by compute --out (--in).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return plot.execute()
		},
	}

	cmd.Flags().IntVarP(&plot.digits, "digits", "n", 100_000, "Number of fractional digits to compute")
	cmd.Flags().StringVarP(&plot.inPath, "in", "i", "", "Read digits from an LZ4 dump instead of computing")
	cmd.Flags().StringVarP(&plot.outPath, "out", "o", "pi_convergence.html", "Output HTML path")

	return cmd
}

func (p *PlotCommand) execute() error {
	digits, err := p.loadDigits()
	if err != nil {
		return err
	}

	f, err := os.Create(p.outPath)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}

	if renderErr := report.WriteConvergencePage(f, analyzeDigits(digits)); renderErr != nil {
		_ = f.Close()

		return renderErr
	}

	if closeErr := f.Close(); closeErr != nil {
		return fmt.Errorf("close report: %w", closeErr)
	}

	fmt.Fprintf(p.messages, "Wrote %s\n", p.outPath)

	return nil
}

func (p *PlotCommand) loadDigits() ([]byte, error) {
	if p.inPath == "" {
		if p.digits <= 0 {
			return nil, ErrDigitsFlag
		}

		digits := chudnovsky.ComputeDigits(p.digits, chudnovsky.DefaultGuardDigits)
		if len(digits) > p.digits {
			digits = digits[:p.digits]
		}

		return digits, nil
	}

	f, err := os.Open(p.inPath)
	if err != nil {
		return nil, fmt.Errorf("open dump: %w", err)
	}
	defer f.Close()

	digits, err := dump.Read(f)
	if err != nil {
		return nil, err
	}

	return digits, nil
}
