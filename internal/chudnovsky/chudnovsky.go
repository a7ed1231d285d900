// Package chudnovsky evaluates the Chudnovsky series for 1/π with exact
// binary splitting over arbitrary-precision integers and extracts stable
// decimal digits from the accumulated rational value.
package chudnovsky

import (
	"fmt"
	"math/big"
)

// Chudnovsky series constants. The series is
//
//	1/π = 12 · Σ (−1)^k (6k)! (A + B·k) / ((3k)! (k!)³ 640320^{3k+3/2})
//
// arranged so every per-term quantity is an exact integer.
const (
	// SeriesA is the constant part of the linear numerator factor.
	SeriesA = 13591409

	// SeriesB is the per-term multiplier of the linear numerator factor.
	SeriesB = 545140134

	// c3Over24 is 640320³ / 24, the cubic denominator growth factor.
	c3Over24 = 10_939_058_860_032_000

	// sqrtArg is the radicand of the constant √10005 factor.
	sqrtArg = 10005

	// seriesScale is the integer 426880; together with √10005 it carries
	// the 640320^{3/2}/12 constant term of the closed form.
	seriesScale = 426880
)

// DigitsPerTerm is the decimal digit yield of a single series term,
// log10(640320³/24/6/2/6) ≈ 14.181647.
const DigitsPerTerm = 14.181647

// Node holds the exact (P, Q, T) contribution of the half-open term
// range [a, b). P and Q are products of the per-term numerator and
// denominator factors; T is the partial sum scaled by Q.
type Node struct {
	P *big.Int
	Q *big.Int
	T *big.Int
}

// Split computes the exact series contribution for terms [a, b) by
// binary splitting. It is pure and deterministic and performs no
// division or rounding. An empty or inverted range is a caller bug and
// panics.
func Split(a, b uint64) Node {
	if a >= b {
		panic(fmt.Sprintf("chudnovsky: invalid term range [%d, %d)", a, b))
	}

	if b-a == 1 {
		return leaf(a)
	}

	m := a + (b-a)/2

	return Merge(Split(a, m), Split(m, b))
}

// leaf computes the single-term contribution for index a from the
// closed-form factors.
func leaf(a uint64) Node {
	if a == 0 {
		return Node{P: big.NewInt(1), Q: big.NewInt(1), T: big.NewInt(SeriesA)}
	}

	// P(a) = (6a−5)(2a−1)(6a−1).
	p := new(big.Int).SetUint64(6*a - 5)
	p.Mul(p, new(big.Int).SetUint64(2*a-1))
	p.Mul(p, new(big.Int).SetUint64(6*a-1))

	// Q(a) = a³ · 640320³/24.
	ai := new(big.Int).SetUint64(a)
	q := new(big.Int).Mul(ai, ai)
	q.Mul(q, ai)
	q.Mul(q, big.NewInt(c3Over24))

	// T(a) = (A + B·a) · P(a), negated for odd a.
	t := new(big.Int).Mul(ai, big.NewInt(SeriesB))
	t.Add(t, big.NewInt(SeriesA))
	t.Mul(t, p)

	if a%2 == 1 {
		t.Neg(t)
	}

	return Node{P: p, Q: q, T: t}
}

// Merge combines the contributions of two adjacent ranges [a, m) and
// [m, b) into one node for [a, b) using the binary-splitting identity
// P = Pl·Pr, Q = Ql·Qr, T = Tl·Qr + Pl·Tr. Exact integer operations
// only.
func Merge(left, right Node) Node {
	return Node{
		P: mul(left.P, right.P),
		Q: mul(left.Q, right.Q),
		T: new(big.Int).Add(mul(left.T, right.Q), mul(left.P, right.T)),
	}
}
