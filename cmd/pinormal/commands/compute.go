package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/hoyeonchoKMOU/IsPiNormalNumber/internal/chudnovsky"
	"github.com/hoyeonchoKMOU/IsPiNormalNumber/internal/dump"
	"github.com/hoyeonchoKMOU/IsPiNormalNumber/internal/tui"
)

// ErrDigitsFlag indicates a missing or non-positive --digits value.
var ErrDigitsFlag = errors.New("--digits must be positive")

// ComputeCommand holds flags for the one-shot compute command.
type ComputeCommand struct {
	digits      int
	guardDigits int
	outPath     string
	printDigits bool
	out         io.Writer
}

// NewComputeCommand creates the one-shot digit computation command.
func NewComputeCommand() *cobra.Command {
	compute := &ComputeCommand{out: os.Stdout}

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute a fixed number of pi digits and report uniformity",
		Long: `Compute the first N fractional digits of pi in a single pass and
print uniformity statistics. The digit stream can be archived as an
LZ4-compressed dump with --out and replayed by the plot command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return compute.execute()
		},
	}

	cmd.Flags().IntVarP(&compute.digits, "digits", "n", 10_000, "Number of fractional digits to compute")
	cmd.Flags().IntVar(&compute.guardDigits, "guard", chudnovsky.DefaultGuardDigits, "Extraction guard digits")
	cmd.Flags().StringVarP(&compute.outPath, "digits-out", "o", "", "Write an LZ4 digit dump to this path")
	cmd.Flags().BoolVar(&compute.printDigits, "print", false, "Print the digits themselves")

	return cmd
}

func (c *ComputeCommand) execute() error {
	if c.digits <= 0 {
		return ErrDigitsFlag
	}

	guard := c.guardDigits
	if guard < chudnovsky.MinGuardDigits {
		guard = chudnovsky.MinGuardDigits
	}

	start := time.Now()

	digits := chudnovsky.ComputeDigits(c.digits, guard)
	if len(digits) > c.digits {
		digits = digits[:c.digits]
	}

	elapsed := time.Since(start)

	if c.outPath != "" {
		if err := c.writeDump(digits); err != nil {
			return err
		}
	}

	if c.printDigits {
		fmt.Fprintf(c.out, "3.%s\n", tui.DigitsString(digits))
	}

	fmt.Fprintf(c.out, "Computed %s digits in %s\n\n",
		humanize.Comma(int64(len(digits))), elapsed.Round(time.Millisecond))
	fmt.Fprintln(c.out, summaryTable(analyzeDigits(digits)))

	return nil
}

func (c *ComputeCommand) writeDump(digits []byte) error {
	f, err := os.Create(c.outPath)
	if err != nil {
		return fmt.Errorf("create dump: %w", err)
	}

	if writeErr := dump.Write(f, digits); writeErr != nil {
		_ = f.Close()

		return writeErr
	}

	if closeErr := f.Close(); closeErr != nil {
		return fmt.Errorf("close dump: %w", closeErr)
	}

	return nil
}
