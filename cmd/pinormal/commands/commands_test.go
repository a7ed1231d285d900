package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoyeonchoKMOU/IsPiNormalNumber/internal/chudnovsky"
	"github.com/hoyeonchoKMOU/IsPiNormalNumber/internal/config"
	"github.com/hoyeonchoKMOU/IsPiNormalNumber/internal/dump"
)

func TestComputeCommandSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	compute := &ComputeCommand{
		digits:      1_000,
		guardDigits: chudnovsky.DefaultGuardDigits,
		out:         &buf,
	}

	require.NoError(t, compute.execute())

	out := buf.String()
	assert.Contains(t, out, "Computed 1,000 digits")
	assert.Contains(t, out, "Chi-squared")
	assert.Contains(t, out, "Verdict")
}

func TestComputeCommandPrintsDigits(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	compute := &ComputeCommand{
		digits:      10,
		guardDigits: chudnovsky.DefaultGuardDigits,
		printDigits: true,
		out:         &buf,
	}

	require.NoError(t, compute.execute())
	assert.Contains(t, buf.String(), "3.1415926535")
}

func TestComputeCommandRejectsZeroDigits(t *testing.T) {
	t.Parallel()

	compute := &ComputeCommand{out: &bytes.Buffer{}}

	assert.ErrorIs(t, compute.execute(), ErrDigitsFlag)
}

func TestComputeCommandWritesDump(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "digits.lz4")

	compute := &ComputeCommand{
		digits:      500,
		guardDigits: chudnovsky.DefaultGuardDigits,
		outPath:     path,
		out:         &bytes.Buffer{},
	}

	require.NoError(t, compute.execute())

	f, err := os.Open(path)
	require.NoError(t, err)

	defer f.Close()

	digits, err := dump.Read(f)
	require.NoError(t, err)
	require.Len(t, digits, 500)
	assert.Equal(t, []byte{1, 4, 1, 5, 9}, digits[:5])
}

func TestPlotCommandFromDump(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dumpPath := filepath.Join(dir, "digits.lz4")
	htmlPath := filepath.Join(dir, "report.html")

	digits := chudnovsky.ComputeDigits(1_000, chudnovsky.DefaultGuardDigits)[:1_000]

	f, err := os.Create(dumpPath)
	require.NoError(t, err)
	require.NoError(t, dump.Write(f, digits))
	require.NoError(t, f.Close())

	plot := &PlotCommand{
		inPath:   dumpPath,
		outPath:  htmlPath,
		messages: &bytes.Buffer{},
	}

	require.NoError(t, plot.execute())

	html, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Chi-Squared Convergence")
}

func TestConfigInitWritesValidFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pinormal.yaml")

	require.NoError(t, writeDefaultConfig(&bytes.Buffer{}, path, false))
	require.NoError(t, config.ValidateFile(path))

	// A second init without --force must refuse.
	assert.ErrorIs(t, writeDefaultConfig(&bytes.Buffer{}, path, false), ErrConfigExists)

	// With force it overwrites.
	assert.NoError(t, writeDefaultConfig(&bytes.Buffer{}, path, true))
}

func TestSummaryTableVerdict(t *testing.T) {
	t.Parallel()

	uniform := make([]byte, 1_000)
	for i := range uniform {
		uniform[i] = byte(i % 10)
	}

	rendered := summaryTable(analyzeDigits(uniform))
	assert.Contains(t, rendered, "UNIFORM")

	// The footer label must keep its mixed-case form despite the
	// table style's footer formatter.
	assert.Contains(t, rendered, "Verdict")
	assert.NotContains(t, rendered, "VERDICT")

	skewed := bytes.Repeat([]byte{7}, 1_000)
	assert.Contains(t, summaryTable(analyzeDigits(skewed)), "SKEWED")
}
