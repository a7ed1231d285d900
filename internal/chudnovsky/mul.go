package chudnovsky

import (
	"math/big"

	"github.com/remyoudompheng/bigfft"
)

// fftThresholdBits is the operand size at which multiplication switches
// from math/big's Karatsuba to Schönhage-Strassen FFT. Below this size
// the FFT setup cost exceeds the gain; above it FFT's O(n log n) wins.
const fftThresholdBits = 500_000

// mul multiplies two big integers, routing very large operands through
// the FFT multiplier. The deep merge levels of a multi-million-digit
// run spend nearly all their time here.
func mul(x, y *big.Int) *big.Int {
	if x.BitLen() > fftThresholdBits && y.BitLen() > fftThresholdBits {
		return bigfft.Mul(x, y)
	}

	return new(big.Int).Mul(x, y)
}
