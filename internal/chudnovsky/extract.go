package chudnovsky

import (
	"fmt"
	"math/big"
)

// DefaultGuardDigits is the default extra working precision carried
// beyond the digits declared stable. One series term is worth ~14.18
// digits, so 20 guard digits absorb the last partially-converged term
// plus truncation error in the final division.
const DefaultGuardDigits = 20

// MinGuardDigits is the smallest guard margin that still covers one
// full series term of uncertainty.
const MinGuardDigits = 16

// base is the output radix. Only decimal extraction is supported.
const base = 10

// ExtractNew converts the accumulated rational value into decimal
// digits and returns the newly stabilized fractional digits beyond
// DigitsEmitted, as values 0–9. The leading integer digit 3 is not part
// of the stream.
//
// The working precision is floor(Terms · DigitsPerTerm); only digits
// below (working precision − guard) are considered stable and emitted.
// Digits emitted once are never re-emitted or revised. When no new
// digit clears the guard margin the call returns nil and the caller is
// expected to extend the accumulator further — that is normal control
// flow, not an error. A negative guard is a caller bug and panics.
func (s *State) ExtractNew(guard int) []byte {
	if guard < 0 {
		panic(fmt.Sprintf("chudnovsky: negative guard precision %d", guard))
	}

	if s.Terms == 0 {
		return nil
	}

	prec := int(float64(s.Terms) * DigitsPerTerm)

	stable := prec - guard
	if stable <= s.DigitsEmitted {
		return nil
	}

	// π · 10^prec = Q · 426880 · √(10005 · 10^(2·prec)) / T. The even
	// power of ten keeps the radicand's square root integral in the
	// digits that matter; the single integer square root resolves the
	// 640320^{3/2} half-power exactly.
	tenPow := new(big.Int).Exp(big.NewInt(base), big.NewInt(int64(2*prec)), nil)

	radicand := mul(big.NewInt(sqrtArg), tenPow)
	root := new(big.Int).Sqrt(radicand)

	num := mul(s.node.Q, big.NewInt(seriesScale))
	num = mul(num, root)

	scaled := new(big.Int).Quo(num, s.node.T)

	// scaled has exactly prec+1 decimal digits: the integer digit 3
	// followed by prec fractional digits.
	text := scaled.String()
	if len(text)-1 < stable {
		stable = len(text) - 1
	}

	if stable <= s.DigitsEmitted {
		return nil
	}

	out := make([]byte, 0, stable-s.DigitsEmitted)
	for _, c := range text[1+s.DigitsEmitted : 1+stable] {
		out = append(out, byte(c-'0'))
	}

	s.DigitsEmitted = stable

	return out
}

// ComputeDigits computes the first n fractional decimal digits of π in
// one shot with the given guard margin. It is the non-incremental
// convenience used by the compute, plot, and MCP surfaces. A negative
// digit count panics.
func ComputeDigits(n, guard int) []byte {
	if n < 0 {
		panic(fmt.Sprintf("chudnovsky: negative digit count %d", n))
	}

	if n == 0 {
		return nil
	}

	terms := uint64(float64(n+guard)/DigitsPerTerm) + 2

	st := NewState()
	st.Extend(terms)

	digits := st.ExtractNew(guard)
	if len(digits) > n {
		digits = digits[:n]
	}

	return digits
}
