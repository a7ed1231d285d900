package chudnovsky

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pi50 is the canonical fractional expansion of π to 50 digits.
const pi50 = "14159265358979323846264338327950288419716939937510"

func digitsToString(digits []byte) string {
	out := make([]byte, len(digits))
	for i, d := range digits {
		out[i] = '0' + d
	}

	return string(out)
}

func TestSplitLeafTermZero(t *testing.T) {
	t.Parallel()

	node := Split(0, 1)

	assert.Equal(t, "1", node.P.String())
	assert.Equal(t, "1", node.Q.String())
	assert.Equal(t, "13591409", node.T.String())
}

func TestSplitLeafTermOne(t *testing.T) {
	t.Parallel()

	node := Split(1, 2)

	// P(1) = 1·1·5 = 5, Q(1) = 640320³/24, T(1) = −(A+B)·5.
	assert.Equal(t, "5", node.P.String())
	assert.Equal(t, "10939058860032000", node.Q.String())
	assert.Equal(t, "-2793657715", node.T.String())
	assert.Equal(t, -1, node.T.Sign())
}

func TestSplitMergeMatchesDirectRange(t *testing.T) {
	t.Parallel()

	// Merging adjacent sub-ranges must equal splitting the full range,
	// regardless of where the midpoint falls.
	tests := []struct {
		name    string
		a, m, b uint64
	}{
		{name: "balanced", a: 0, m: 2, b: 4},
		{name: "unbalanced", a: 0, m: 1, b: 5},
		{name: "interior", a: 3, m: 6, b: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			whole := Split(tt.a, tt.b)
			merged := Merge(Split(tt.a, tt.m), Split(tt.m, tt.b))

			assert.Zero(t, whole.P.Cmp(merged.P))
			assert.Zero(t, whole.Q.Cmp(merged.Q))
			assert.Zero(t, whole.T.Cmp(merged.T))
		})
	}
}

func TestSplitInvalidRangePanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { Split(3, 3) })
	assert.Panics(t, func() { Split(5, 2) })
}

func TestComputeDigitsKnownPrefix(t *testing.T) {
	t.Parallel()

	digits := ComputeDigits(50, DefaultGuardDigits)

	require.Len(t, digits, 50)
	assert.Equal(t, pi50, digitsToString(digits))
}

func TestComputeDigitsZero(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ComputeDigits(0, DefaultGuardDigits))
}

func TestComputeDigitsNegativePanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { ComputeDigits(-1, DefaultGuardDigits) })
}

func TestExtendAccumulatesTerms(t *testing.T) {
	t.Parallel()

	st := NewState()
	st.Extend(4)
	st.Extend(4)

	whole := Split(0, 8)

	assert.Equal(t, uint64(8), st.Terms)
	assert.Zero(t, whole.P.Cmp(st.Node().P))
	assert.Zero(t, whole.Q.Cmp(st.Node().Q))
	assert.Zero(t, whole.T.Cmp(st.Node().T))
}

func TestExtendZeroPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewState().Extend(0) })
}

func TestExtractNewNegativeGuardPanics(t *testing.T) {
	t.Parallel()

	st := NewState()
	st.Extend(4)

	assert.Panics(t, func() { st.ExtractNew(-1) })
}

func TestExtractNewDigitStability(t *testing.T) {
	t.Parallel()

	// Every extension must append to the stream, never revise it: the
	// digits at n1 terms are a strict prefix of the digits at n2 > n1.
	st := NewState()

	var stream []byte

	for range 6 {
		st.Extend(8)

		batch := st.ExtractNew(DefaultGuardDigits)
		stream = append(stream, batch...)

		require.Equal(t, st.DigitsEmitted, len(stream))
	}

	require.Greater(t, len(stream), 50)
	assert.Equal(t, pi50, digitsToString(stream[:50]))
}

func TestExtractNewInsufficientPrecision(t *testing.T) {
	t.Parallel()

	st := NewState()
	st.Extend(2)

	// Two terms yield ~28 digits of working precision; a guard wider
	// than that leaves nothing stable to emit.
	assert.Empty(t, st.ExtractNew(100))
	assert.Zero(t, st.DigitsEmitted)
}

func TestExtractNewEmptyState(t *testing.T) {
	t.Parallel()

	assert.Empty(t, NewState().ExtractNew(DefaultGuardDigits))
}
